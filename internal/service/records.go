package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ledgerdesk/ledgerdesk-accounts/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/repository"
)

// RecordService is the CRM data layer: bank accounts, debit cards,
// customers, and merchant profiles. Row visibility: accountants see their
// own rows, admins additionally see rows owned by accountants they
// provisioned.
type RecordService struct {
	accounts  repository.AccountRepository
	cards     repository.CardRepository
	customers repository.CustomerRepository
	merchants repository.MerchantRepository
	profiles  repository.ProfileRepository
	logger    *zap.Logger
}

// NewRecordService wires the record service.
func NewRecordService(
	accounts repository.AccountRepository,
	cards repository.CardRepository,
	customers repository.CustomerRepository,
	merchants repository.MerchantRepository,
	profiles repository.ProfileRepository,
	logger *zap.Logger,
) *RecordService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordService{
		accounts:  accounts,
		cards:     cards,
		customers: customers,
		merchants: merchants,
		profiles:  profiles,
		logger:    logger,
	}
}

// visibleOwners returns the user ids whose rows the viewer may read.
func (s *RecordService) visibleOwners(ctx context.Context, viewer domain.Profile) ([]string, error) {
	owners := []string{viewer.UserID}
	if viewer.Role != domain.RoleAdmin {
		return owners, nil
	}
	subordinates, err := s.profiles.ListByCreator(ctx, viewer.UserID)
	if err != nil {
		return nil, fmt.Errorf("list subordinates: %w", err)
	}
	for _, p := range subordinates {
		owners = append(owners, p.UserID)
	}
	return owners, nil
}

// mayAccess reports whether the viewer may read or mutate rows owned by ownerID.
func (s *RecordService) mayAccess(ctx context.Context, viewer domain.Profile, ownerID string) (bool, error) {
	if ownerID == viewer.UserID {
		return true, nil
	}
	if viewer.Role != domain.RoleAdmin {
		return false, nil
	}
	owner, err := s.profiles.GetByUserID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load row owner: %w", err)
	}
	return owner.OwnedBy(viewer.UserID), nil
}

func (s *RecordService) guardOwner(ctx context.Context, viewer domain.Profile, ownerID string) error {
	ok, err := s.mayAccess(ctx, viewer, ownerID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: record belongs to another user", domain.ErrForbidden)
	}
	return nil
}

// Accounts

func (s *RecordService) ListAccounts(ctx context.Context, viewer domain.Profile) ([]domain.Account, error) {
	owners, err := s.visibleOwners(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return s.accounts.ListByOwners(ctx, owners)
}

func (s *RecordService) CreateAccount(ctx context.Context, viewer domain.Profile, account domain.Account) (domain.Account, error) {
	if strings.TrimSpace(account.AccountHolderName) == "" || strings.TrimSpace(account.AccountNumber) == "" {
		return domain.Account{}, fmt.Errorf("%w: account holder name and number are required", domain.ErrValidation)
	}
	account.UserID = viewer.UserID
	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		return domain.Account{}, err
	}
	s.logger.Info("account created", zap.String("account_id", created.ID), zap.String("user_id", viewer.UserID))
	return created, nil
}

func (s *RecordService) GetAccount(ctx context.Context, viewer domain.Profile, id string) (domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}
	if err := s.guardOwner(ctx, viewer, account.UserID); err != nil {
		return domain.Account{}, err
	}
	return account, nil
}

func (s *RecordService) UpdateAccount(ctx context.Context, viewer domain.Profile, account domain.Account) (domain.Account, error) {
	existing, err := s.accounts.GetByID(ctx, account.ID)
	if err != nil {
		return domain.Account{}, err
	}
	if err := s.guardOwner(ctx, viewer, existing.UserID); err != nil {
		return domain.Account{}, err
	}
	return s.accounts.Update(ctx, account)
}

func (s *RecordService) DeleteAccount(ctx context.Context, viewer domain.Profile, id string) error {
	existing, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guardOwner(ctx, viewer, existing.UserID); err != nil {
		return err
	}
	return s.accounts.Delete(ctx, id)
}

// Debit cards. Cards carry no owner; access follows the linked account.

func (s *RecordService) ListCards(ctx context.Context, viewer domain.Profile) ([]domain.DebitCard, error) {
	owners, err := s.visibleOwners(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return s.cards.ListByOwners(ctx, owners)
}

func (s *RecordService) CreateCard(ctx context.Context, viewer domain.Profile, card domain.DebitCard) (domain.DebitCard, error) {
	if strings.TrimSpace(card.AccountID) == "" || strings.TrimSpace(card.CardNumber) == "" {
		return domain.DebitCard{}, fmt.Errorf("%w: account id and card number are required", domain.ErrValidation)
	}
	account, err := s.accounts.GetByID(ctx, card.AccountID)
	if err != nil {
		return domain.DebitCard{}, err
	}
	if err := s.guardOwner(ctx, viewer, account.UserID); err != nil {
		return domain.DebitCard{}, err
	}
	return s.cards.Create(ctx, card)
}

func (s *RecordService) GetCard(ctx context.Context, viewer domain.Profile, id string) (domain.DebitCard, error) {
	card, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return domain.DebitCard{}, err
	}
	if err := s.guardCardOwner(ctx, viewer, card); err != nil {
		return domain.DebitCard{}, err
	}
	return card, nil
}

func (s *RecordService) UpdateCard(ctx context.Context, viewer domain.Profile, card domain.DebitCard) (domain.DebitCard, error) {
	existing, err := s.cards.GetByID(ctx, card.ID)
	if err != nil {
		return domain.DebitCard{}, err
	}
	if err := s.guardCardOwner(ctx, viewer, existing); err != nil {
		return domain.DebitCard{}, err
	}
	return s.cards.Update(ctx, card)
}

func (s *RecordService) DeleteCard(ctx context.Context, viewer domain.Profile, id string) error {
	existing, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guardCardOwner(ctx, viewer, existing); err != nil {
		return err
	}
	return s.cards.Delete(ctx, id)
}

func (s *RecordService) guardCardOwner(ctx context.Context, viewer domain.Profile, card domain.DebitCard) error {
	account, err := s.accounts.GetByID(ctx, card.AccountID)
	if err != nil {
		return err
	}
	return s.guardOwner(ctx, viewer, account.UserID)
}

// Customers

func (s *RecordService) ListCustomers(ctx context.Context, viewer domain.Profile) ([]domain.Customer, error) {
	owners, err := s.visibleOwners(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return s.customers.ListByOwners(ctx, owners)
}

func (s *RecordService) CreateCustomer(ctx context.Context, viewer domain.Profile, customer domain.Customer) (domain.Customer, error) {
	if strings.TrimSpace(customer.CustomerName) == "" {
		return domain.Customer{}, fmt.Errorf("%w: customer name is required", domain.ErrValidation)
	}
	customer.UserID = viewer.UserID
	return s.customers.Create(ctx, customer)
}

func (s *RecordService) GetCustomer(ctx context.Context, viewer domain.Profile, id string) (domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if err := s.guardOwner(ctx, viewer, customer.UserID); err != nil {
		return domain.Customer{}, err
	}
	return customer, nil
}

func (s *RecordService) UpdateCustomer(ctx context.Context, viewer domain.Profile, customer domain.Customer) (domain.Customer, error) {
	existing, err := s.customers.GetByID(ctx, customer.ID)
	if err != nil {
		return domain.Customer{}, err
	}
	if err := s.guardOwner(ctx, viewer, existing.UserID); err != nil {
		return domain.Customer{}, err
	}
	return s.customers.Update(ctx, customer)
}

func (s *RecordService) DeleteCustomer(ctx context.Context, viewer domain.Profile, id string) error {
	existing, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guardOwner(ctx, viewer, existing.UserID); err != nil {
		return err
	}
	return s.customers.Delete(ctx, id)
}

// Merchants

func (s *RecordService) ListMerchants(ctx context.Context, viewer domain.Profile) ([]domain.Merchant, error) {
	owners, err := s.visibleOwners(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return s.merchants.ListByOwners(ctx, owners)
}

func (s *RecordService) CreateMerchant(ctx context.Context, viewer domain.Profile, merchant domain.Merchant) (domain.Merchant, error) {
	if strings.TrimSpace(merchant.MerchantType) == "" {
		return domain.Merchant{}, fmt.Errorf("%w: merchant type is required", domain.ErrValidation)
	}
	merchant.UserID = viewer.UserID
	return s.merchants.Create(ctx, merchant)
}

func (s *RecordService) GetMerchant(ctx context.Context, viewer domain.Profile, id string) (domain.Merchant, error) {
	merchant, err := s.merchants.GetByID(ctx, id)
	if err != nil {
		return domain.Merchant{}, err
	}
	if err := s.guardOwner(ctx, viewer, merchant.UserID); err != nil {
		return domain.Merchant{}, err
	}
	return merchant, nil
}

func (s *RecordService) UpdateMerchant(ctx context.Context, viewer domain.Profile, merchant domain.Merchant) (domain.Merchant, error) {
	existing, err := s.merchants.GetByID(ctx, merchant.ID)
	if err != nil {
		return domain.Merchant{}, err
	}
	if err := s.guardOwner(ctx, viewer, existing.UserID); err != nil {
		return domain.Merchant{}, err
	}
	return s.merchants.Update(ctx, merchant)
}

func (s *RecordService) DeleteMerchant(ctx context.Context, viewer domain.Profile, id string) error {
	existing, err := s.merchants.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guardOwner(ctx, viewer, existing.UserID); err != nil {
		return err
	}
	return s.merchants.Delete(ctx, id)
}
