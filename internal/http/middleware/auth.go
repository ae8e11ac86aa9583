package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ledgerdesk/ledgerdesk-accounts/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/service"
)

const (
	identityKey = "callerIdentity"
	profileKey  = "callerProfile"
)

// Gate failure kinds. The two legacy admin endpoints translate these to
// different statuses, so the distinction must survive the gate.
var (
	ErrMissingAuthHeader = fmt.Errorf("%w: authorization header absent", domain.ErrUnauthenticated)
	ErrInvalidToken      = fmt.Errorf("%w: token rejected", domain.ErrUnauthenticated)
)

// Gate validates bearer credentials and resolves the caller's role.
type Gate struct {
	Auth *service.AuthService
}

// NewGate creates the authorization gate.
func NewGate(auth *service.AuthService) *Gate {
	return &Gate{Auth: auth}
}

// Caller resolves the request's bearer token to an identity and profile.
// Verification only; nothing is mutated.
func (g *Gate) Caller(c *gin.Context) (domain.Identity, domain.Profile, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return domain.Identity{}, domain.Profile{}, ErrMissingAuthHeader
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return domain.Identity{}, domain.Profile{}, ErrInvalidToken
	}

	who, profile, err := g.Auth.ResolveBearer(c.Request.Context(), strings.TrimSpace(parts[1]))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return domain.Identity{}, domain.Profile{}, ErrInvalidToken
		}
		return domain.Identity{}, domain.Profile{}, err
	}
	return who, profile, nil
}

// Admin resolves the caller and requires the admin role.
func (g *Gate) Admin(c *gin.Context) (domain.Identity, error) {
	who, profile, err := g.Caller(c)
	if err != nil {
		return domain.Identity{}, err
	}
	if profile.Role != domain.RoleAdmin {
		return domain.Identity{}, domain.ErrForbidden
	}
	return who, nil
}

// RequireAdmin aborts non-admin requests with the statuses the dashboard
// expects from the create-accountant endpoint.
func (g *Gate) RequireAdmin(c *gin.Context) {
	who, err := g.Admin(c)
	switch {
	case errors.Is(err, ErrMissingAuthHeader):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing Authorization header"})
		return
	case errors.Is(err, ErrInvalidToken):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	case errors.Is(err, domain.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	case err != nil:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.Set(identityKey, who)
	c.Next()
}

// RequireUser admits any authenticated identity and attaches it to the context.
func (g *Gate) RequireUser(c *gin.Context) {
	who, profile, err := g.Caller(c)
	switch {
	case errors.Is(err, ErrMissingAuthHeader):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing Authorization header"})
		return
	case errors.Is(err, ErrInvalidToken):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	case err != nil:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.Set(identityKey, who)
	c.Set(profileKey, profile)
	c.Next()
}

// CallerIdentity returns the identity attached by the gate.
func CallerIdentity(c *gin.Context) (domain.Identity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	who, ok := value.(domain.Identity)
	return who, ok
}

// CallerProfile returns the profile attached by RequireUser.
func CallerProfile(c *gin.Context) (domain.Profile, bool) {
	value, ok := c.Get(profileKey)
	if !ok {
		return domain.Profile{}, false
	}
	profile, ok := value.(domain.Profile)
	return profile, ok
}
