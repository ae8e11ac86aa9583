package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ledgerdesk/ledgerdesk-accounts/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/identity"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/repository"
)

// ProvisionService owns the accountant account lifecycle. Both operations
// assume the caller was already resolved to an admin by the authorization
// gate; the ownership invariant is enforced here regardless.
type ProvisionService struct {
	store    identity.Store
	profiles repository.ProfileRepository
	logger   *zap.Logger
}

// NewProvisionService wires the accountant lifecycle service.
func NewProvisionService(store identity.Store, profiles repository.ProfileRepository, logger *zap.Logger) *ProvisionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProvisionService{store: store, profiles: profiles, logger: logger}
}

// ProvisionedUser is the identity/profile pair created for an accountant.
type ProvisionedUser struct {
	Identity domain.Identity
	Profile  domain.Profile
}

// Decision is the outcome of an ownership check.
type Decision struct {
	Allowed bool
	Reason  string
}

// allowDeprovision is the safety invariant for deletion: an admin may only
// remove accountants it provisioned, and never another admin.
func allowDeprovision(adminID string, target domain.Profile) Decision {
	if target.Role != domain.RoleAccountant || !target.OwnedBy(adminID) {
		return Decision{Reason: "you may only delete accountants you created"}
	}
	return Decision{Allowed: true}
}

// Provision creates a subordinate accountant for the given admin. The new
// identity is pre-confirmed and immediately usable.
func (s *ProvisionService) Provision(ctx context.Context, admin domain.Identity, email, password, fullName string) (ProvisionedUser, error) {
	ctx, span := s.startSpan(ctx, "ProvisionService.Provision")
	defer span.End()

	if strings.TrimSpace(email) == "" || password == "" || strings.TrimSpace(fullName) == "" {
		return ProvisionedUser{}, fmt.Errorf("%w: missing required fields: email, password, fullName", domain.ErrValidation)
	}

	created, err := s.store.CreateUser(ctx, identity.NewUser{
		Email:          email,
		Password:       password,
		FullName:       strings.TrimSpace(fullName),
		Role:           domain.RoleAccountant,
		CreatedByAdmin: &admin.ID,
	})
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, domain.ErrEmailTaken) {
			return ProvisionedUser{}, err
		}
		return ProvisionedUser{}, fmt.Errorf("create accountant: %w", err)
	}

	profile, err := s.profiles.GetByUserID(ctx, created.ID)
	if err != nil {
		span.RecordError(err)
		return ProvisionedUser{}, fmt.Errorf("load created profile: %w", err)
	}

	s.logger.Info("accountant provisioned",
		zap.String("admin_id", admin.ID),
		zap.String("user_id", created.ID),
	)
	return ProvisionedUser{Identity: created, Profile: profile}, nil
}

// Deprovision deletes an accountant provisioned by the given admin. Deletion
// is a one-way transition: a target that is already gone reports
// domain.ErrNotFound, never a partial state.
func (s *ProvisionService) Deprovision(ctx context.Context, admin domain.Identity, targetUserID string) error {
	ctx, span := s.startSpan(ctx, "ProvisionService.Deprovision")
	defer span.End()

	if strings.TrimSpace(targetUserID) == "" {
		return fmt.Errorf("%w: missing required field: accountantId", domain.ErrValidation)
	}

	target, err := s.profiles.GetByUserID(ctx, targetUserID)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("accountant profile: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("load accountant profile: %w", err)
	}

	if decision := allowDeprovision(admin.ID, target); !decision.Allowed {
		s.logger.Warn("deprovision denied",
			zap.String("admin_id", admin.ID),
			zap.String("target_user_id", targetUserID),
			zap.String("reason", decision.Reason),
		)
		return fmt.Errorf("%w: %s", domain.ErrForbidden, decision.Reason)
	}

	if err := s.store.DeleteUser(ctx, targetUserID); err != nil {
		// A concurrent delete winning the race is still a deleted accountant.
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		span.RecordError(err)
		return fmt.Errorf("delete accountant: %w", err)
	}

	s.logger.Info("accountant deprovisioned",
		zap.String("admin_id", admin.ID),
		zap.String("target_user_id", targetUserID),
	)
	return nil
}

func (s *ProvisionService) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.Tracer("ledgerdesk-accounts/service").Start(ctx, name)
}
