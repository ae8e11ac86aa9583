package token_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk/ledgerdesk-accounts/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/token"
)

func TestIssueAndVerify(t *testing.T) {
	manager := token.NewManager([]byte("test-signing-secret-0123456789ab"), time.Minute)
	identity := domain.Identity{ID: "user-1", Email: "admin@ledgerdesk.test"}

	raw, err := manager.Issue(identity, domain.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	std, custom, err := manager.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", std.Subject)
	require.Equal(t, "admin@ledgerdesk.test", custom.Email)
	require.Equal(t, "admin", custom.Role)
}

func TestVerifyExpiredToken(t *testing.T) {
	manager := token.NewManager([]byte("test-signing-secret-0123456789ab"), -time.Minute)

	raw, err := manager.Issue(domain.Identity{ID: "user-1"}, domain.RoleAccountant)
	require.NoError(t, err)

	_, _, err = manager.Verify(raw)
	require.True(t, errors.Is(err, domain.ErrUnauthenticated))
}

func TestVerifyWrongSecret(t *testing.T) {
	issuerSide := token.NewManager([]byte("test-signing-secret-0123456789ab"), time.Minute)
	verifierSide := token.NewManager([]byte("another-signing-secret-012345678"), time.Minute)

	raw, err := issuerSide.Issue(domain.Identity{ID: "user-1"}, domain.RoleAdmin)
	require.NoError(t, err)

	_, _, err = verifierSide.Verify(raw)
	require.True(t, errors.Is(err, domain.ErrUnauthenticated))
}

func TestVerifyGarbage(t *testing.T) {
	manager := token.NewManager([]byte("test-signing-secret-0123456789ab"), time.Minute)

	_, _, err := manager.Verify("not-a-jwt")
	require.True(t, errors.Is(err, domain.ErrUnauthenticated))
}
