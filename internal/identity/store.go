// Package identity abstracts the user store behind the accountant
// lifecycle operations so it can be swapped for an in-memory fake in tests.
package identity

import (
	"context"

	"github.com/ledgerdesk/ledgerdesk-accounts/internal/domain"
)

// NewUser describes an identity to create. Created identities are
// pre-confirmed: no verification step, usable immediately.
type NewUser struct {
	Email          string
	Password       string
	FullName       string
	Role           domain.Role
	CreatedByAdmin *string
}

// Store manages identities and their credentials. Creating an identity
// also creates its profile row; deleting one cascades the profile away.
type Store interface {
	// UserFromToken resolves a bearer token to the identity it was issued
	// for. Fails with domain.ErrUnauthenticated for expired, tampered, or
	// orphaned tokens.
	UserFromToken(ctx context.Context, raw string) (domain.Identity, error)

	// CreateUser registers a new identity together with its profile.
	// Fails with domain.ErrEmailTaken when the email is already registered.
	CreateUser(ctx context.Context, user NewUser) (domain.Identity, error)

	// DeleteUser removes an identity. The profile is removed as a cascading
	// consequence. Fails with domain.ErrNotFound when the identity is gone
	// already, which callers may treat as success.
	DeleteUser(ctx context.Context, userID string) error

	// Authenticate verifies an email/password pair.
	// Fails with domain.ErrUnauthenticated on any mismatch.
	Authenticate(ctx context.Context, email, password string) (domain.Identity, error)

	// UpdatePassword rotates a password after verifying the current one.
	UpdatePassword(ctx context.Context, userID, current, next string) error
}
