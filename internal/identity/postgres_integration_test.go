//go:build integration

package identity_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/ledgerdesk-accounts/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/identity"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/repository"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/token"
)

func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL must be set for integration tests")
	}

	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("failed to connect db: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func TestCreateDeleteUserLifecycle(t *testing.T) {
	ctx := context.Background()
	pool := setupDB(t)
	tokens := token.NewManager([]byte("0123456789abcdef0123456789abcdef"), time.Minute)
	store := identity.NewPostgresStore(pool, tokens)
	profiles := repository.NewPostgresProfileRepo(pool)

	admin, err := store.CreateUser(ctx, identity.NewUser{
		Email:    "it-admin@ledgerdesk.test",
		Password: "password",
		FullName: "Integration Admin",
		Role:     domain.RoleAdmin,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.DeleteUser(ctx, admin.ID) })

	acct, err := store.CreateUser(ctx, identity.NewUser{
		Email:          "it-acct@ledgerdesk.test",
		Password:       "secret",
		FullName:       "Integration Accountant",
		Role:           domain.RoleAccountant,
		CreatedByAdmin: &admin.ID,
	})
	require.NoError(t, err)

	profile, err := profiles.GetByUserID(ctx, acct.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAccountant, profile.Role)
	require.NotNil(t, profile.CreatedByAdmin)
	require.Equal(t, admin.ID, *profile.CreatedByAdmin)

	// Duplicate email is rejected without leaving a partial identity.
	_, err = store.CreateUser(ctx, identity.NewUser{
		Email:    "it-acct@ledgerdesk.test",
		Password: "secret",
		FullName: "Duplicate",
		Role:     domain.RoleAccountant,
	})
	require.ErrorIs(t, err, domain.ErrEmailTaken)

	// Deleting the identity cascades the profile away.
	require.NoError(t, store.DeleteUser(ctx, acct.ID))
	_, err = profiles.GetByUserID(ctx, acct.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.ErrorIs(t, store.DeleteUser(ctx, acct.ID), domain.ErrNotFound)
}

func TestAuthenticateAndTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	pool := setupDB(t)
	tokens := token.NewManager([]byte("0123456789abcdef0123456789abcdef"), time.Minute)
	store := identity.NewPostgresStore(pool, tokens)

	who, err := store.CreateUser(ctx, identity.NewUser{
		Email:    "it-login@ledgerdesk.test",
		Password: "password",
		FullName: "Integration Login",
		Role:     domain.RoleAdmin,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.DeleteUser(ctx, who.ID) })

	authed, err := store.Authenticate(ctx, "IT-Login@ledgerdesk.test", "password")
	require.NoError(t, err)
	require.Equal(t, who.ID, authed.ID)

	_, err = store.Authenticate(ctx, "it-login@ledgerdesk.test", "wrong")
	require.ErrorIs(t, err, domain.ErrUnauthenticated)

	raw, err := tokens.Issue(authed, domain.RoleAdmin)
	require.NoError(t, err)

	resolved, err := store.UserFromToken(ctx, raw)
	require.NoError(t, err)
	require.Equal(t, who.ID, resolved.ID)
}
