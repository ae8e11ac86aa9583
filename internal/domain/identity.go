package domain

import "time"

// Role classifies what a profile is allowed to do.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleAccountant Role = "accountant"
)

// Identity is an authenticatable user managed by the identity store.
type Identity struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile carries the application-level attributes of an identity.
// Accountant profiles always record the admin that provisioned them;
// admin profiles are self-registered and have no creator.
type Profile struct {
	ID             string
	UserID         string
	FullName       string
	Email          string
	Role           Role
	CreatedByAdmin *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OwnedBy reports whether the profile was provisioned by the given admin.
func (p Profile) OwnedBy(adminID string) bool {
	return p.CreatedByAdmin != nil && *p.CreatedByAdmin == adminID
}
