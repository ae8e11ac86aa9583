package token

import (
	"fmt"
	"time"

	jose "github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"

	"github.com/ledgerdesk/ledgerdesk-accounts/internal/domain"
)

const issuer = "ledgerdesk-accounts"

// AccessTokenClaims are the custom claims carried alongside the standard set.
type AccessTokenClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Manager issues and verifies HS256 access tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a token manager with the shared signing secret.
func NewManager(secret []byte, ttl time.Duration) *Manager {
	return &Manager{secret: secret, ttl: ttl}
}

// TTL returns the configured access token lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs an access token for the given identity.
func (m *Manager) Issue(identity domain.Identity, role domain.Role) (string, error) {
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: m.secret},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", fmt.Errorf("create signer: %w", err)
	}

	now := time.Now()
	std := jwt.Claims{
		Issuer:   issuer,
		Subject:  identity.ID,
		IssuedAt: jwt.NewNumericDate(now),
		Expiry:   jwt.NewNumericDate(now.Add(m.ttl)),
	}
	custom := AccessTokenClaims{Email: identity.Email, Role: string(role)}

	raw, err := jwt.Signed(signer).Claims(std).Claims(custom).Serialize()
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return raw, nil
}

// Verify parses and validates a raw token, returning its claims.
// Expired or tampered tokens fail with domain.ErrUnauthenticated.
func (m *Manager) Verify(raw string) (*jwt.Claims, *AccessTokenClaims, error) {
	parsed, err := jwt.ParseSigned(raw, []jose.SignatureAlgorithm{jose.HS256})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}

	var (
		std    jwt.Claims
		custom AccessTokenClaims
	)
	if err := parsed.Claims(m.secret, &std, &custom); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if err := std.Validate(jwt.Expected{Issuer: issuer, Time: time.Now()}); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	return &std, &custom, nil
}
