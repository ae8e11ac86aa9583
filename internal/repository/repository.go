package repository

import (
	"context"

	"github.com/ledgerdesk/ledgerdesk-accounts/internal/domain"
)

// ProfileRepository reads application profiles. Profile rows are written
// by the identity store as part of identity creation, never directly.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (domain.Profile, error)
	ListByCreator(ctx context.Context, adminID string) ([]domain.Profile, error)
}

// AccountRepository persists bank account records.
type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByID(ctx context.Context, id string) (domain.Account, error)
	ListByOwners(ctx context.Context, userIDs []string) ([]domain.Account, error)
	Update(ctx context.Context, account domain.Account) (domain.Account, error)
	Delete(ctx context.Context, id string) error
}

// CardRepository persists debit cards. Cards have no owner of their own;
// visibility follows the owning account.
type CardRepository interface {
	Create(ctx context.Context, card domain.DebitCard) (domain.DebitCard, error)
	GetByID(ctx context.Context, id string) (domain.DebitCard, error)
	ListByOwners(ctx context.Context, userIDs []string) ([]domain.DebitCard, error)
	Update(ctx context.Context, card domain.DebitCard) (domain.DebitCard, error)
	Delete(ctx context.Context, id string) error
}

// CustomerRepository persists customer KYC records.
type CustomerRepository interface {
	Create(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	GetByID(ctx context.Context, id string) (domain.Customer, error)
	ListByOwners(ctx context.Context, userIDs []string) ([]domain.Customer, error)
	Update(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	Delete(ctx context.Context, id string) error
}

// MerchantRepository persists payment-merchant profiles.
type MerchantRepository interface {
	Create(ctx context.Context, merchant domain.Merchant) (domain.Merchant, error)
	GetByID(ctx context.Context, id string) (domain.Merchant, error)
	ListByOwners(ctx context.Context, userIDs []string) ([]domain.Merchant, error)
	Update(ctx context.Context, merchant domain.Merchant) (domain.Merchant, error)
	Delete(ctx context.Context, id string) error
}
