package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ledgerdesk/ledgerdesk-accounts/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/service"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/token"
)

func testTokenManager() *token.Manager {
	return token.NewManager([]byte("0123456789abcdef0123456789abcdef"), time.Minute)
}

func TestLoginIssuesSession(t *testing.T) {
	ctx := context.Background()
	store, profiles := newMemoryStore()
	admin := store.seedAdmin("admin@ledgerdesk.test", "password")

	svc := service.NewAuthService(store, profiles, testTokenManager(), zap.NewNop())

	session, err := svc.Login(ctx, "admin@ledgerdesk.test", "password")
	require.NoError(t, err)
	require.NotEmpty(t, session.AccessToken)
	require.Equal(t, "Bearer", session.TokenType)
	require.Equal(t, int64(60), session.ExpiresIn)
	require.Equal(t, admin.ID, session.User.UserID)
	require.Equal(t, "admin", session.User.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	store, profiles := newMemoryStore()
	store.seedAdmin("admin@ledgerdesk.test", "password")

	svc := service.NewAuthService(store, profiles, testTokenManager(), zap.NewNop())

	_, err := svc.Login(ctx, "admin@ledgerdesk.test", "wrong")
	require.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.Login(ctx, "nobody@ledgerdesk.test", "password")
	require.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.Login(ctx, "", "")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestResolveBearer(t *testing.T) {
	ctx := context.Background()
	store, profiles := newMemoryStore()
	admin := store.seedAdmin("admin@ledgerdesk.test", "password")

	svc := service.NewAuthService(store, profiles, testTokenManager(), zap.NewNop())

	who, profile, err := svc.ResolveBearer(ctx, admin.ID)
	require.NoError(t, err)
	require.Equal(t, admin.ID, who.ID)
	require.Equal(t, domain.RoleAdmin, profile.Role)

	_, _, err = svc.ResolveBearer(ctx, "not-a-token")
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestResolveBearerOrphanedIdentity(t *testing.T) {
	ctx := context.Background()
	store, profiles := newMemoryStore()
	admin := store.seedAdmin("admin@ledgerdesk.test", "password")

	// Identity survives but the profile row is gone.
	delete(profiles.byUserID, admin.ID)

	svc := service.NewAuthService(store, profiles, testTokenManager(), zap.NewNop())

	_, _, err := svc.ResolveBearer(ctx, admin.ID)
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	store, profiles := newMemoryStore()
	admin := store.seedAdmin("admin@ledgerdesk.test", "old-password")

	svc := service.NewAuthService(store, profiles, testTokenManager(), zap.NewNop())

	err := svc.ChangePassword(ctx, admin.ID, "wrong", "new-password")
	require.ErrorIs(t, err, domain.ErrUnauthenticated)

	require.NoError(t, svc.ChangePassword(ctx, admin.ID, "old-password", "new-password"))

	_, err = svc.Login(ctx, "admin@ledgerdesk.test", "new-password")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, admin.ID, "", "")
	require.ErrorIs(t, err, domain.ErrValidation)
}
