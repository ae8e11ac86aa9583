package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ledgerdesk/ledgerdesk-accounts/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/repository"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/service"
)

type recordsFixture struct {
	store    *memoryStore
	profiles *memoryProfileRepo
	accounts *memoryAccountRepo
	svc      *service.RecordService

	admin      domain.Profile
	accountant domain.Profile
	outsider   domain.Profile
}

// newRecordsFixture seeds an admin, an accountant it created, and an
// unrelated accountant created by another admin.
func newRecordsFixture(t *testing.T) *recordsFixture {
	t.Helper()
	ctx := context.Background()
	store, profiles := newMemoryStore()

	admin := store.seedAdmin("admin@ledgerdesk.test", "password")
	other := store.seedAdmin("other@ledgerdesk.test", "password")

	provision := service.NewProvisionService(store, profiles, zap.NewNop())
	owned, err := provision.Provision(ctx, admin, "acct@ledgerdesk.test", "secret", "Owned Accountant")
	require.NoError(t, err)
	foreign, err := provision.Provision(ctx, other, "foreign@ledgerdesk.test", "secret", "Foreign Accountant")
	require.NoError(t, err)

	accounts := &memoryAccountRepo{byID: map[string]domain.Account{}}
	cards := &memoryCardRepo{byID: map[string]domain.DebitCard{}, accounts: accounts}
	customers := &memoryCustomerRepo{byID: map[string]domain.Customer{}}
	merchants := &memoryMerchantRepo{byID: map[string]domain.Merchant{}}

	svc := service.NewRecordService(accounts, cards, customers, merchants, profiles, zap.NewNop())

	adminProfile, err := profiles.GetByUserID(ctx, admin.ID)
	require.NoError(t, err)

	return &recordsFixture{
		store:      store,
		profiles:   profiles,
		accounts:   accounts,
		svc:        svc,
		admin:      adminProfile,
		accountant: owned.Profile,
		outsider:   foreign.Profile,
	}
}

func TestAccountantSeesOnlyOwnAccounts(t *testing.T) {
	ctx := context.Background()
	f := newRecordsFixture(t)

	mine, err := f.svc.CreateAccount(ctx, f.accountant, domain.Account{
		AccountHolderName: "Holder A", AccountNumber: "111",
	})
	require.NoError(t, err)
	require.Equal(t, f.accountant.UserID, mine.UserID)

	_, err = f.svc.CreateAccount(ctx, f.outsider, domain.Account{
		AccountHolderName: "Holder B", AccountNumber: "222",
	})
	require.NoError(t, err)

	listed, err := f.svc.ListAccounts(ctx, f.accountant)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, mine.ID, listed[0].ID)
}

func TestAdminSeesSubordinateAccounts(t *testing.T) {
	ctx := context.Background()
	f := newRecordsFixture(t)

	sub, err := f.svc.CreateAccount(ctx, f.accountant, domain.Account{
		AccountHolderName: "Sub Holder", AccountNumber: "111",
	})
	require.NoError(t, err)
	foreign, err := f.svc.CreateAccount(ctx, f.outsider, domain.Account{
		AccountHolderName: "Foreign Holder", AccountNumber: "222",
	})
	require.NoError(t, err)

	listed, err := f.svc.ListAccounts(ctx, f.admin)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, sub.ID, listed[0].ID)

	// Direct lookups follow the same boundary.
	_, err = f.svc.GetAccount(ctx, f.admin, sub.ID)
	require.NoError(t, err)
	_, err = f.svc.GetAccount(ctx, f.admin, foreign.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAccountUpdateAndDeleteGuarded(t *testing.T) {
	ctx := context.Background()
	f := newRecordsFixture(t)

	account, err := f.svc.CreateAccount(ctx, f.accountant, domain.Account{
		AccountHolderName: "Holder", AccountNumber: "111",
	})
	require.NoError(t, err)

	account.BankName = "Updated Bank"
	_, err = f.svc.UpdateAccount(ctx, f.outsider, account)
	require.ErrorIs(t, err, domain.ErrForbidden)

	err = f.svc.DeleteAccount(ctx, f.outsider, account.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := f.svc.UpdateAccount(ctx, f.accountant, account)
	require.NoError(t, err)
	require.Equal(t, "Updated Bank", updated.BankName)

	require.NoError(t, f.svc.DeleteAccount(ctx, f.accountant, account.ID))
	_, err = f.svc.GetAccount(ctx, f.accountant, account.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCardVisibilityFollowsAccount(t *testing.T) {
	ctx := context.Background()
	f := newRecordsFixture(t)

	account, err := f.svc.CreateAccount(ctx, f.accountant, domain.Account{
		AccountHolderName: "Holder", AccountNumber: "111",
	})
	require.NoError(t, err)

	card, err := f.svc.CreateCard(ctx, f.accountant, domain.DebitCard{
		AccountID: account.ID, CardNumber: "4111111111111111", CVV: "123", ExpiryDate: "12/28",
	})
	require.NoError(t, err)

	// The outsider cannot attach a card to someone else's account.
	_, err = f.svc.CreateCard(ctx, f.outsider, domain.DebitCard{
		AccountID: account.ID, CardNumber: "5555", CVV: "999", ExpiryDate: "01/29",
	})
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.GetCard(ctx, f.outsider, card.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	// The creating admin sees the subordinate's card.
	_, err = f.svc.GetCard(ctx, f.admin, card.ID)
	require.NoError(t, err)

	listed, err := f.svc.ListCards(ctx, f.admin)
	require.NoError(t, err)
	require.Len(t, listed, 1)
}

func TestCustomerAndMerchantScoping(t *testing.T) {
	ctx := context.Background()
	f := newRecordsFixture(t)

	customer, err := f.svc.CreateCustomer(ctx, f.accountant, domain.Customer{CustomerName: "KYC One"})
	require.NoError(t, err)
	require.Equal(t, f.accountant.UserID, customer.UserID)

	_, err = f.svc.GetCustomer(ctx, f.outsider, customer.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	merchant, err := f.svc.CreateMerchant(ctx, f.accountant, domain.Merchant{MerchantType: "upi"})
	require.NoError(t, err)

	listed, err := f.svc.ListMerchants(ctx, f.admin)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, merchant.ID, listed[0].ID)

	require.NoError(t, f.svc.DeleteMerchant(ctx, f.admin, merchant.ID))
}

func TestCreateAccountValidation(t *testing.T) {
	ctx := context.Background()
	f := newRecordsFixture(t)

	_, err := f.svc.CreateAccount(ctx, f.accountant, domain.Account{AccountNumber: "111"})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.CreateCard(ctx, f.accountant, domain.DebitCard{CardNumber: "4111"})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.CreateCustomer(ctx, f.accountant, domain.Customer{})
	require.ErrorIs(t, err, domain.ErrValidation)
}

// In-memory record repositories.

type memoryAccountRepo struct {
	byID map[string]domain.Account
}

func (m *memoryAccountRepo) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	m.byID[account.ID] = account
	return account, nil
}

func (m *memoryAccountRepo) GetByID(_ context.Context, id string) (domain.Account, error) {
	account, ok := m.byID[id]
	if !ok {
		return domain.Account{}, domain.ErrNotFound
	}
	return account, nil
}

func (m *memoryAccountRepo) ListByOwners(_ context.Context, userIDs []string) ([]domain.Account, error) {
	var out []domain.Account
	for _, account := range m.byID {
		if containsID(userIDs, account.UserID) {
			out = append(out, account)
		}
	}
	return out, nil
}

func (m *memoryAccountRepo) Update(_ context.Context, account domain.Account) (domain.Account, error) {
	if _, ok := m.byID[account.ID]; !ok {
		return domain.Account{}, domain.ErrNotFound
	}
	m.byID[account.ID] = account
	return account, nil
}

func (m *memoryAccountRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memoryCardRepo struct {
	byID     map[string]domain.DebitCard
	accounts *memoryAccountRepo
}

func (m *memoryCardRepo) Create(_ context.Context, card domain.DebitCard) (domain.DebitCard, error) {
	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	m.byID[card.ID] = card
	return card, nil
}

func (m *memoryCardRepo) GetByID(_ context.Context, id string) (domain.DebitCard, error) {
	card, ok := m.byID[id]
	if !ok {
		return domain.DebitCard{}, domain.ErrNotFound
	}
	return card, nil
}

func (m *memoryCardRepo) ListByOwners(_ context.Context, userIDs []string) ([]domain.DebitCard, error) {
	var out []domain.DebitCard
	for _, card := range m.byID {
		account, ok := m.accounts.byID[card.AccountID]
		if ok && containsID(userIDs, account.UserID) {
			out = append(out, card)
		}
	}
	return out, nil
}

func (m *memoryCardRepo) Update(_ context.Context, card domain.DebitCard) (domain.DebitCard, error) {
	existing, ok := m.byID[card.ID]
	if !ok {
		return domain.DebitCard{}, domain.ErrNotFound
	}
	card.AccountID = existing.AccountID
	m.byID[card.ID] = card
	return card, nil
}

func (m *memoryCardRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memoryCustomerRepo struct {
	byID map[string]domain.Customer
}

func (m *memoryCustomerRepo) Create(_ context.Context, customer domain.Customer) (domain.Customer, error) {
	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	m.byID[customer.ID] = customer
	return customer, nil
}

func (m *memoryCustomerRepo) GetByID(_ context.Context, id string) (domain.Customer, error) {
	customer, ok := m.byID[id]
	if !ok {
		return domain.Customer{}, domain.ErrNotFound
	}
	return customer, nil
}

func (m *memoryCustomerRepo) ListByOwners(_ context.Context, userIDs []string) ([]domain.Customer, error) {
	var out []domain.Customer
	for _, customer := range m.byID {
		if containsID(userIDs, customer.UserID) {
			out = append(out, customer)
		}
	}
	return out, nil
}

func (m *memoryCustomerRepo) Update(_ context.Context, customer domain.Customer) (domain.Customer, error) {
	if _, ok := m.byID[customer.ID]; !ok {
		return domain.Customer{}, domain.ErrNotFound
	}
	m.byID[customer.ID] = customer
	return customer, nil
}

func (m *memoryCustomerRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memoryMerchantRepo struct {
	byID map[string]domain.Merchant
}

func (m *memoryMerchantRepo) Create(_ context.Context, merchant domain.Merchant) (domain.Merchant, error) {
	if merchant.ID == "" {
		merchant.ID = uuid.NewString()
	}
	m.byID[merchant.ID] = merchant
	return merchant, nil
}

func (m *memoryMerchantRepo) GetByID(_ context.Context, id string) (domain.Merchant, error) {
	merchant, ok := m.byID[id]
	if !ok {
		return domain.Merchant{}, domain.ErrNotFound
	}
	return merchant, nil
}

func (m *memoryMerchantRepo) ListByOwners(_ context.Context, userIDs []string) ([]domain.Merchant, error) {
	var out []domain.Merchant
	for _, merchant := range m.byID {
		if containsID(userIDs, merchant.UserID) {
			out = append(out, merchant)
		}
	}
	return out, nil
}

func (m *memoryMerchantRepo) Update(_ context.Context, merchant domain.Merchant) (domain.Merchant, error) {
	if _, ok := m.byID[merchant.ID]; !ok {
		return domain.Merchant{}, domain.ErrNotFound
	}
	m.byID[merchant.ID] = merchant
	return merchant, nil
}

func (m *memoryMerchantRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

var (
	_ repository.AccountRepository  = (*memoryAccountRepo)(nil)
	_ repository.CardRepository     = (*memoryCardRepo)(nil)
	_ repository.CustomerRepository = (*memoryCustomerRepo)(nil)
	_ repository.MerchantRepository = (*memoryMerchantRepo)(nil)
)
