package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerdesk/ledgerdesk-accounts/internal/domain"
)

// Compile-time interface assertions.
var (
	_ ProfileRepository  = (*PostgresProfileRepo)(nil)
	_ AccountRepository  = (*PostgresAccountRepo)(nil)
	_ CardRepository     = (*PostgresCardRepo)(nil)
	_ CustomerRepository = (*PostgresCustomerRepo)(nil)
	_ MerchantRepository = (*PostgresMerchantRepo)(nil)
)

// PostgresProfileRepo implements ProfileRepository.
type PostgresProfileRepo struct {
	db *pgxpool.Pool
}

func NewPostgresProfileRepo(db *pgxpool.Pool) *PostgresProfileRepo {
	return &PostgresProfileRepo{db: db}
}

const selectProfileSQL = `SELECT id, user_id, full_name, email, role, created_by_admin, created_at, updated_at
FROM profiles`

func (r *PostgresProfileRepo) GetByUserID(ctx context.Context, userID string) (domain.Profile, error) {
	row := r.db.QueryRow(ctx, selectProfileSQL+` WHERE user_id = $1`, userID)
	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, fmt.Errorf("get profile: %w", domain.ErrNotFound)
		}
		return domain.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

func (r *PostgresProfileRepo) ListByCreator(ctx context.Context, adminID string) ([]domain.Profile, error) {
	rows, err := r.db.Query(ctx, selectProfileSQL+` WHERE created_by_admin = $1 ORDER BY created_at`, adminID)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

func scanProfile(row pgx.Row) (domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(&p.ID, &p.UserID, &p.FullName, &p.Email, &p.Role, &p.CreatedByAdmin, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// PostgresAccountRepo implements AccountRepository.
type PostgresAccountRepo struct {
	db *pgxpool.Pool
}

func NewPostgresAccountRepo(db *pgxpool.Pool) *PostgresAccountRepo {
	return &PostgresAccountRepo{db: db}
}

const accountColumns = `id, user_id, account_holder_name, account_number, ifsc_code, bank_name,
customer_id, email_id, mobile_number, internet_banking_id, internet_banking_password, atm_pin,
status, account_provided_by, account_given_to, aadhaar_front_image_path, aadhaar_back_image_path,
created_at, updated_at`

const insertAccountSQL = `INSERT INTO accounts (id, user_id, account_holder_name, account_number, ifsc_code, bank_name,
customer_id, email_id, mobile_number, internet_banking_id, internet_banking_password, atm_pin,
status, account_provided_by, account_given_to, aadhaar_front_image_path, aadhaar_back_image_path)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
RETURNING ` + accountColumns

const updateAccountSQL = `UPDATE accounts SET account_holder_name=$2, account_number=$3, ifsc_code=$4, bank_name=$5,
customer_id=$6, email_id=$7, mobile_number=$8, internet_banking_id=$9, internet_banking_password=$10, atm_pin=$11,
status=$12, account_provided_by=$13, account_given_to=$14, aadhaar_front_image_path=$15, aadhaar_back_image_path=$16,
updated_at=NOW()
WHERE id=$1
RETURNING ` + accountColumns

func (r *PostgresAccountRepo) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	row := r.db.QueryRow(ctx, insertAccountSQL,
		account.ID, account.UserID, account.AccountHolderName, account.AccountNumber, account.IFSCCode, account.BankName,
		account.CustomerID, account.EmailID, account.MobileNumber, account.InternetBankingID, account.InternetBankingPassword,
		account.ATMPin, account.Status, account.AccountProvidedBy, account.AccountGivenTo,
		account.AadhaarFrontImagePath, account.AadhaarBackImagePath,
	)
	created, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}
	return created, nil
}

func (r *PostgresAccountRepo) GetByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Account{}, fmt.Errorf("get account: %w", domain.ErrNotFound)
		}
		return domain.Account{}, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}

func (r *PostgresAccountRepo) ListByOwners(ctx context.Context, userIDs []string) ([]domain.Account, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE user_id = ANY($1) ORDER BY created_at DESC`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (r *PostgresAccountRepo) Update(ctx context.Context, account domain.Account) (domain.Account, error) {
	row := r.db.QueryRow(ctx, updateAccountSQL,
		account.ID, account.AccountHolderName, account.AccountNumber, account.IFSCCode, account.BankName,
		account.CustomerID, account.EmailID, account.MobileNumber, account.InternetBankingID, account.InternetBankingPassword,
		account.ATMPin, account.Status, account.AccountProvidedBy, account.AccountGivenTo,
		account.AadhaarFrontImagePath, account.AadhaarBackImagePath,
	)
	updated, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Account{}, fmt.Errorf("update account: %w", domain.ErrNotFound)
		}
		return domain.Account{}, fmt.Errorf("update account: %w", err)
	}
	return updated, nil
}

func (r *PostgresAccountRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete account: %w", domain.ErrNotFound)
	}
	return nil
}

func scanAccount(row pgx.Row) (domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.ID, &a.UserID, &a.AccountHolderName, &a.AccountNumber, &a.IFSCCode, &a.BankName,
		&a.CustomerID, &a.EmailID, &a.MobileNumber, &a.InternetBankingID, &a.InternetBankingPassword, &a.ATMPin,
		&a.Status, &a.AccountProvidedBy, &a.AccountGivenTo, &a.AadhaarFrontImagePath, &a.AadhaarBackImagePath,
		&a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// PostgresCardRepo implements CardRepository.
type PostgresCardRepo struct {
	db *pgxpool.Pool
}

func NewPostgresCardRepo(db *pgxpool.Pool) *PostgresCardRepo {
	return &PostgresCardRepo{db: db}
}

const cardColumns = `id, account_id, card_number, cvv, expiry_date, created_at, updated_at`

func (r *PostgresCardRepo) Create(ctx context.Context, card domain.DebitCard) (domain.DebitCard, error) {
	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO debit_cards (id, account_id, card_number, cvv, expiry_date)
VALUES ($1,$2,$3,$4,$5)
RETURNING `+cardColumns,
		card.ID, card.AccountID, card.CardNumber, card.CVV, card.ExpiryDate,
	)
	created, err := scanCard(row)
	if err != nil {
		return domain.DebitCard{}, fmt.Errorf("create card: %w", err)
	}
	return created, nil
}

func (r *PostgresCardRepo) GetByID(ctx context.Context, id string) (domain.DebitCard, error) {
	row := r.db.QueryRow(ctx, `SELECT `+cardColumns+` FROM debit_cards WHERE id = $1`, id)
	card, err := scanCard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DebitCard{}, fmt.Errorf("get card: %w", domain.ErrNotFound)
		}
		return domain.DebitCard{}, fmt.Errorf("get card: %w", err)
	}
	return card, nil
}

func (r *PostgresCardRepo) ListByOwners(ctx context.Context, userIDs []string) ([]domain.DebitCard, error) {
	rows, err := r.db.Query(ctx,
		`SELECT c.id, c.account_id, c.card_number, c.cvv, c.expiry_date, c.created_at, c.updated_at
FROM debit_cards c
JOIN accounts a ON a.id = c.account_id
WHERE a.user_id = ANY($1)
ORDER BY c.created_at DESC`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.DebitCard
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

func (r *PostgresCardRepo) Update(ctx context.Context, card domain.DebitCard) (domain.DebitCard, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE debit_cards SET card_number=$2, cvv=$3, expiry_date=$4, updated_at=NOW()
WHERE id=$1
RETURNING `+cardColumns,
		card.ID, card.CardNumber, card.CVV, card.ExpiryDate,
	)
	updated, err := scanCard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DebitCard{}, fmt.Errorf("update card: %w", domain.ErrNotFound)
		}
		return domain.DebitCard{}, fmt.Errorf("update card: %w", err)
	}
	return updated, nil
}

func (r *PostgresCardRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM debit_cards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete card: %w", domain.ErrNotFound)
	}
	return nil
}

func scanCard(row pgx.Row) (domain.DebitCard, error) {
	var c domain.DebitCard
	err := row.Scan(&c.ID, &c.AccountID, &c.CardNumber, &c.CVV, &c.ExpiryDate, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// PostgresCustomerRepo implements CustomerRepository.
type PostgresCustomerRepo struct {
	db *pgxpool.Pool
}

func NewPostgresCustomerRepo(db *pgxpool.Pool) *PostgresCustomerRepo {
	return &PostgresCustomerRepo{db: db}
}

const customerColumns = `id, user_id, customer_name, aadhaar_number, pan_number, aadhaar_image_path, pan_image_path, created_at, updated_at`

func (r *PostgresCustomerRepo) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	if customer.ID == "" {
		customer.ID = uuid.NewString()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO customers (id, user_id, customer_name, aadhaar_number, pan_number, aadhaar_image_path, pan_image_path)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING `+customerColumns,
		customer.ID, customer.UserID, customer.CustomerName, customer.AadhaarNumber, customer.PANNumber,
		customer.AadhaarImagePath, customer.PANImagePath,
	)
	created, err := scanCustomer(row)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}
	return created, nil
}

func (r *PostgresCustomerRepo) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	row := r.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	customer, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Customer{}, fmt.Errorf("get customer: %w", domain.ErrNotFound)
		}
		return domain.Customer{}, fmt.Errorf("get customer: %w", err)
	}
	return customer, nil
}

func (r *PostgresCustomerRepo) ListByOwners(ctx context.Context, userIDs []string) ([]domain.Customer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE user_id = ANY($1) ORDER BY created_at DESC`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

func (r *PostgresCustomerRepo) Update(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE customers SET customer_name=$2, aadhaar_number=$3, pan_number=$4, aadhaar_image_path=$5, pan_image_path=$6, updated_at=NOW()
WHERE id=$1
RETURNING `+customerColumns,
		customer.ID, customer.CustomerName, customer.AadhaarNumber, customer.PANNumber,
		customer.AadhaarImagePath, customer.PANImagePath,
	)
	updated, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Customer{}, fmt.Errorf("update customer: %w", domain.ErrNotFound)
		}
		return domain.Customer{}, fmt.Errorf("update customer: %w", err)
	}
	return updated, nil
}

func (r *PostgresCustomerRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete customer: %w", domain.ErrNotFound)
	}
	return nil
}

func scanCustomer(row pgx.Row) (domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.ID, &c.UserID, &c.CustomerName, &c.AadhaarNumber, &c.PANNumber,
		&c.AadhaarImagePath, &c.PANImagePath, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// PostgresMerchantRepo implements MerchantRepository.
type PostgresMerchantRepo struct {
	db *pgxpool.Pool
}

func NewPostgresMerchantRepo(db *pgxpool.Pool) *PostgresMerchantRepo {
	return &PostgresMerchantRepo{db: db}
}

const merchantColumns = `id, user_id, merchant_type, account_id, email_id, mobile_number, password, qr_code_path, created_at, updated_at`

func (r *PostgresMerchantRepo) Create(ctx context.Context, merchant domain.Merchant) (domain.Merchant, error) {
	if merchant.ID == "" {
		merchant.ID = uuid.NewString()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO merchants (id, user_id, merchant_type, account_id, email_id, mobile_number, password, qr_code_path)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING `+merchantColumns,
		merchant.ID, merchant.UserID, merchant.MerchantType, merchant.AccountID, merchant.EmailID,
		merchant.MobileNumber, merchant.Password, merchant.QRCodePath,
	)
	created, err := scanMerchant(row)
	if err != nil {
		return domain.Merchant{}, fmt.Errorf("create merchant: %w", err)
	}
	return created, nil
}

func (r *PostgresMerchantRepo) GetByID(ctx context.Context, id string) (domain.Merchant, error) {
	row := r.db.QueryRow(ctx, `SELECT `+merchantColumns+` FROM merchants WHERE id = $1`, id)
	merchant, err := scanMerchant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Merchant{}, fmt.Errorf("get merchant: %w", domain.ErrNotFound)
		}
		return domain.Merchant{}, fmt.Errorf("get merchant: %w", err)
	}
	return merchant, nil
}

func (r *PostgresMerchantRepo) ListByOwners(ctx context.Context, userIDs []string) ([]domain.Merchant, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+merchantColumns+` FROM merchants WHERE user_id = ANY($1) ORDER BY created_at DESC`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("list merchants: %w", err)
	}
	defer rows.Close()

	var merchants []domain.Merchant
	for rows.Next() {
		merchant, err := scanMerchant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan merchant: %w", err)
		}
		merchants = append(merchants, merchant)
	}
	return merchants, rows.Err()
}

func (r *PostgresMerchantRepo) Update(ctx context.Context, merchant domain.Merchant) (domain.Merchant, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE merchants SET merchant_type=$2, account_id=$3, email_id=$4, mobile_number=$5, password=$6, qr_code_path=$7, updated_at=NOW()
WHERE id=$1
RETURNING `+merchantColumns,
		merchant.ID, merchant.MerchantType, merchant.AccountID, merchant.EmailID,
		merchant.MobileNumber, merchant.Password, merchant.QRCodePath,
	)
	updated, err := scanMerchant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Merchant{}, fmt.Errorf("update merchant: %w", domain.ErrNotFound)
		}
		return domain.Merchant{}, fmt.Errorf("update merchant: %w", err)
	}
	return updated, nil
}

func (r *PostgresMerchantRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM merchants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete merchant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete merchant: %w", domain.ErrNotFound)
	}
	return nil
}

func scanMerchant(row pgx.Row) (domain.Merchant, error) {
	var m domain.Merchant
	err := row.Scan(&m.ID, &m.UserID, &m.MerchantType, &m.AccountID, &m.EmailID, &m.MobileNumber,
		&m.Password, &m.QRCodePath, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}
