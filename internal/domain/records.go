package domain

import "time"

// Account is a registered bank account with its access credentials and
// KYC document paths. Paths are blob-store keys, not URLs.
type Account struct {
	ID                      string
	UserID                  string
	AccountHolderName       string
	AccountNumber           string
	IFSCCode                string
	BankName                string
	CustomerID              string
	EmailID                 string
	MobileNumber            string
	InternetBankingID       string
	InternetBankingPassword string
	ATMPin                  string
	Status                  string
	AccountProvidedBy       string
	AccountGivenTo          string
	AadhaarFrontImagePath   string
	AadhaarBackImagePath    string
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// DebitCard belongs to exactly one account.
type DebitCard struct {
	ID         string
	AccountID  string
	CardNumber string
	CVV        string
	ExpiryDate string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Customer is a KYC subject tracked independently of accounts.
type Customer struct {
	ID               string
	UserID           string
	CustomerName     string
	AadhaarNumber    string
	PANNumber        string
	AadhaarImagePath string
	PANImagePath     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Merchant is a payment-merchant profile, optionally linked to an account.
type Merchant struct {
	ID           string
	UserID       string
	MerchantType string
	AccountID    string
	EmailID      string
	MobileNumber string
	Password     string
	QRCodePath   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
