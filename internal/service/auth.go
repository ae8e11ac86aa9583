package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ledgerdesk/ledgerdesk-accounts/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/identity"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/repository"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/token"
)

// AuthService handles login, credential rotation, and bearer resolution.
type AuthService struct {
	store    identity.Store
	profiles repository.ProfileRepository
	tokens   *token.Manager
	logger   *zap.Logger
}

// NewAuthService wires the authentication service.
func NewAuthService(store identity.Store, profiles repository.ProfileRepository, tokens *token.Manager, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{store: store, profiles: profiles, tokens: tokens, logger: logger}
}

// Session is the REST login payload.
type Session struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int64       `json:"expires_in"`
	User        ProfileView `json:"user"`
}

// ProfileView is the identity/profile shape exposed over HTTP.
type ProfileView struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	Email          string  `json:"email"`
	FullName       string  `json:"full_name"`
	Role           string  `json:"role"`
	CreatedByAdmin *string `json:"created_by_admin"`
}

// NewProfileView maps a profile to its HTTP representation.
func NewProfileView(p domain.Profile) ProfileView {
	return ProfileView{
		ID:             p.ID,
		UserID:         p.UserID,
		Email:          p.Email,
		FullName:       p.FullName,
		Role:           string(p.Role),
		CreatedByAdmin: p.CreatedByAdmin,
	}
}

// ResolveBearer resolves a bearer token to the identity and profile behind
// it. Read-only; the gate middleware is a thin wrapper over this.
func (s *AuthService) ResolveBearer(ctx context.Context, raw string) (domain.Identity, domain.Profile, error) {
	who, err := s.store.UserFromToken(ctx, raw)
	if err != nil {
		return domain.Identity{}, domain.Profile{}, err
	}
	profile, err := s.profiles.GetByUserID(ctx, who.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Identity without a profile cannot be authorized for anything.
			return domain.Identity{}, domain.Profile{}, domain.ErrUnauthenticated
		}
		return domain.Identity{}, domain.Profile{}, fmt.Errorf("load caller profile: %w", err)
	}
	return who, profile, nil
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return Session{}, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	who, err := s.store.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			s.logger.Warn("login rejected", zap.String("email", strings.ToLower(strings.TrimSpace(email))))
		}
		return Session{}, err
	}

	profile, err := s.profiles.GetByUserID(ctx, who.ID)
	if err != nil {
		return Session{}, fmt.Errorf("load profile: %w", err)
	}

	access, err := s.tokens.Issue(who, profile.Role)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("login succeeded", zap.String("user_id", who.ID), zap.String("role", string(profile.Role)))
	return Session{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
		User:        NewProfileView(profile),
	}, nil
}

// ChangePassword rotates the caller's password after verifying the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	if current == "" || next == "" {
		return fmt.Errorf("%w: current and new password are required", domain.ErrValidation)
	}
	if err := s.store.UpdatePassword(ctx, userID, current, next); err != nil {
		return err
	}
	s.logger.Info("password changed", zap.String("user_id", userID))
	return nil
}
