package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ledgerdesk/ledgerdesk-accounts/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/http/middleware"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/service"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/storage"
)

// RecordsHandler exposes the CRM record endpoints backing the dashboard
// sections: accounts, debit cards, customers, merchants.
type RecordsHandler struct {
	Records  *service.RecordService
	Resolver *storage.Resolver
}

// NewRecordsHandler creates the records handler.
func NewRecordsHandler(records *service.RecordService, resolver *storage.Resolver) *RecordsHandler {
	return &RecordsHandler{Records: records, Resolver: resolver}
}

type accountPayload struct {
	AccountHolderName       string `json:"account_holder_name"`
	AccountNumber           string `json:"account_number"`
	IFSCCode                string `json:"ifsc_code"`
	BankName                string `json:"bank_name"`
	CustomerID              string `json:"customer_id"`
	EmailID                 string `json:"email_id"`
	MobileNumber            string `json:"mobile_number"`
	InternetBankingID       string `json:"internet_banking_id"`
	InternetBankingPassword string `json:"internet_banking_password"`
	ATMPin                  string `json:"atm_pin"`
	Status                  string `json:"status"`
	AccountProvidedBy       string `json:"account_provided_by"`
	AccountGivenTo          string `json:"account_given_to"`
	AadhaarFrontImagePath   string `json:"aadhaar_front_image_path"`
	AadhaarBackImagePath    string `json:"aadhaar_back_image_path"`
}

type accountView struct {
	ID                      string    `json:"id"`
	UserID                  string    `json:"user_id"`
	AccountHolderName       string    `json:"account_holder_name"`
	AccountNumber           string    `json:"account_number"`
	IFSCCode                string    `json:"ifsc_code"`
	BankName                string    `json:"bank_name"`
	CustomerID              string    `json:"customer_id"`
	EmailID                 string    `json:"email_id"`
	MobileNumber            string    `json:"mobile_number"`
	InternetBankingID       string    `json:"internet_banking_id"`
	InternetBankingPassword string    `json:"internet_banking_password"`
	ATMPin                  string    `json:"atm_pin"`
	Status                  string    `json:"status"`
	AccountProvidedBy       string    `json:"account_provided_by"`
	AccountGivenTo          string    `json:"account_given_to"`
	AadhaarFrontImageURL    string    `json:"aadhaar_front_image_url"`
	AadhaarBackImageURL     string    `json:"aadhaar_back_image_url"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

func (h *RecordsHandler) accountView(a domain.Account) accountView {
	return accountView{
		ID:                      a.ID,
		UserID:                  a.UserID,
		AccountHolderName:       a.AccountHolderName,
		AccountNumber:           a.AccountNumber,
		IFSCCode:                a.IFSCCode,
		BankName:                a.BankName,
		CustomerID:              a.CustomerID,
		EmailID:                 a.EmailID,
		MobileNumber:            a.MobileNumber,
		InternetBankingID:       a.InternetBankingID,
		InternetBankingPassword: a.InternetBankingPassword,
		ATMPin:                  a.ATMPin,
		Status:                  a.Status,
		AccountProvidedBy:       a.AccountProvidedBy,
		AccountGivenTo:          a.AccountGivenTo,
		AadhaarFrontImageURL:    h.Resolver.PublicURL(a.AadhaarFrontImagePath),
		AadhaarBackImageURL:     h.Resolver.PublicURL(a.AadhaarBackImagePath),
		CreatedAt:               a.CreatedAt,
		UpdatedAt:               a.UpdatedAt,
	}
}

func (p accountPayload) model() domain.Account {
	return domain.Account{
		AccountHolderName:       p.AccountHolderName,
		AccountNumber:           p.AccountNumber,
		IFSCCode:                p.IFSCCode,
		BankName:                p.BankName,
		CustomerID:              p.CustomerID,
		EmailID:                 p.EmailID,
		MobileNumber:            p.MobileNumber,
		InternetBankingID:       p.InternetBankingID,
		InternetBankingPassword: p.InternetBankingPassword,
		ATMPin:                  p.ATMPin,
		Status:                  p.Status,
		AccountProvidedBy:       p.AccountProvidedBy,
		AccountGivenTo:          p.AccountGivenTo,
		AadhaarFrontImagePath:   p.AadhaarFrontImagePath,
		AadhaarBackImagePath:    p.AadhaarBackImagePath,
	}
}

func (h *RecordsHandler) ListAccounts(c *gin.Context) {
	viewer, ok := middleware.CallerProfile(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	accounts, err := h.Records.ListAccounts(c.Request.Context(), viewer)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	views := make([]accountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, h.accountView(a))
	}
	c.JSON(http.StatusOK, gin.H{"accounts": views})
}

func (h *RecordsHandler) CreateAccount(c *gin.Context) {
	viewer, ok := middleware.CallerProfile(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	var req accountPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	created, err := h.Records.CreateAccount(c.Request.Context(), viewer, req.model())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": h.accountView(created)})
}

func (h *RecordsHandler) GetAccount(c *gin.Context) {
	viewer, ok := middleware.CallerProfile(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	account, err := h.Records.GetAccount(c.Request.Context(), viewer, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": h.accountView(account)})
}

func (h *RecordsHandler) UpdateAccount(c *gin.Context) {
	viewer, ok := middleware.CallerProfile(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	var req accountPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	model := req.model()
	model.ID = c.Param("id")
	updated, err := h.Records.UpdateAccount(c.Request.Context(), viewer, model)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": h.accountView(updated)})
}

func (h *RecordsHandler) DeleteAccount(c *gin.Context) {
	viewer, ok := middleware.CallerProfile(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if err := h.Records.DeleteAccount(c.Request.Context(), viewer, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type cardPayload struct {
	AccountID  string `json:"account_id"`
	CardNumber string `json:"card_number"`
	CVV        string `json:"cvv"`
	ExpiryDate string `json:"expiry_date"`
}

func (h *RecordsHandler) ListCards(c *gin.Context) {
	viewer, ok := middleware.CallerProfile(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	cards, err := h.Records.ListCards(c.Request.Context(), viewer)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cards": cards})
}

func (h *RecordsHandler) CreateCard(c *gin.Context) {
	viewer, ok := middleware.CallerProfile(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	var req cardPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	created, err := h.Records.CreateCard(c.Request.Context(), viewer, domain.DebitCard{
		AccountID:  req.AccountID,
		CardNumber: req.CardNumber,
		CVV:        req.CVV,
		ExpiryDate: req.ExpiryDate,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"card": created})
}

func (h *RecordsHandler) GetCard(c *gin.Context) {
	viewer, ok := middleware.CallerProfile(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	card, err := h.Records.GetCard(c.Request.Context(), viewer, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"card": card})
}

func (h *RecordsHandler) UpdateCard(c *gin.Context) {
	viewer, ok := middleware.CallerProfile(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	var req cardPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	updated, err := h.Records.UpdateCard(c.Request.Context(), viewer, domain.DebitCard{
		ID:         c.Param("id"),
		CardNumber: req.CardNumber,
		CVV:        req.CVV,
		ExpiryDate: req.ExpiryDate,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"card": updated})
}

func (h *RecordsHandler) DeleteCard(c *gin.Context) {
	viewer, ok := middleware.CallerProfile(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if err := h.Records.DeleteCard(c.Request.Context(), viewer, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type customerPayload struct {
	CustomerName     string `json:"customer_name"`
	AadhaarNumber    string `json:"aadhaar_number"`
	PANNumber        string `json:"pan_number"`
	AadhaarImagePath string `json:"aadhaar_image_path"`
	PANImagePath     string `json:"pan_image_path"`
}

type customerView struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	CustomerName    string    `json:"customer_name"`
	AadhaarNumber   string    `json:"aadhaar_number"`
	PANNumber       string    `json:"pan_number"`
	AadhaarImageURL string    `json:"aadhaar_image_url"`
	PANImageURL     string    `json:"pan_image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (h *RecordsHandler) customerView(cu domain.Customer) customerView {
	return customerView{
		ID:              cu.ID,
		UserID:          cu.UserID,
		CustomerName:    cu.CustomerName,
		AadhaarNumber:   cu.AadhaarNumber,
		PANNumber:       cu.PANNumber,
		AadhaarImageURL: h.Resolver.PublicURL(cu.AadhaarImagePath),
		PANImageURL:     h.Resolver.PublicURL(cu.PANImagePath),
		CreatedAt:       cu.CreatedAt,
		UpdatedAt:       cu.UpdatedAt,
	}
}

func (h *RecordsHandler) ListCustomers(c *gin.Context) {
	viewer, ok := middleware.CallerProfile(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	customers, err := h.Records.ListCustomers(c.Request.Context(), viewer)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	views := make([]customerView, 0, len(customers))
	for _, cu := range customers {
		views = append(views, h.customerView(cu))
	}
	c.JSON(http.StatusOK, gin.H{"customers": views})
}

func (h *RecordsHandler) CreateCustomer(c *gin.Context) {
	viewer, ok := middleware.CallerProfile(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	var req customerPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	created, err := h.Records.CreateCustomer(c.Request.Context(), viewer, domain.Customer{
		CustomerName:     req.CustomerName,
		AadhaarNumber:    req.AadhaarNumber,
		PANNumber:        req.PANNumber,
		AadhaarImagePath: req.AadhaarImagePath,
		PANImagePath:     req.PANImagePath,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": h.customerView(created)})
}

func (h *RecordsHandler) GetCustomer(c *gin.Context) {
	viewer, ok := middleware.CallerProfile(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	customer, err := h.Records.GetCustomer(c.Request.Context(), viewer, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": h.customerView(customer)})
}

func (h *RecordsHandler) UpdateCustomer(c *gin.Context) {
	viewer, ok := middleware.CallerProfile(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	var req customerPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	updated, err := h.Records.UpdateCustomer(c.Request.Context(), viewer, domain.Customer{
		ID:               c.Param("id"),
		CustomerName:     req.CustomerName,
		AadhaarNumber:    req.AadhaarNumber,
		PANNumber:        req.PANNumber,
		AadhaarImagePath: req.AadhaarImagePath,
		PANImagePath:     req.PANImagePath,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": h.customerView(updated)})
}

func (h *RecordsHandler) DeleteCustomer(c *gin.Context) {
	viewer, ok := middleware.CallerProfile(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if err := h.Records.DeleteCustomer(c.Request.Context(), viewer, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type merchantPayload struct {
	MerchantType string `json:"merchant_type"`
	AccountID    string `json:"account_id"`
	EmailID      string `json:"email_id"`
	MobileNumber string `json:"mobile_number"`
	Password     string `json:"password"`
	QRCodePath   string `json:"qr_code_path"`
}

type merchantView struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	MerchantType string    `json:"merchant_type"`
	AccountID    string    `json:"account_id"`
	EmailID      string    `json:"email_id"`
	MobileNumber string    `json:"mobile_number"`
	Password     string    `json:"password"`
	QRCodeURL    string    `json:"qr_code_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (h *RecordsHandler) merchantView(m domain.Merchant) merchantView {
	return merchantView{
		ID:           m.ID,
		UserID:       m.UserID,
		MerchantType: m.MerchantType,
		AccountID:    m.AccountID,
		EmailID:      m.EmailID,
		MobileNumber: m.MobileNumber,
		Password:     m.Password,
		QRCodeURL:    h.Resolver.PublicURL(m.QRCodePath),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (h *RecordsHandler) ListMerchants(c *gin.Context) {
	viewer, ok := middleware.CallerProfile(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	merchants, err := h.Records.ListMerchants(c.Request.Context(), viewer)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	views := make([]merchantView, 0, len(merchants))
	for _, m := range merchants {
		views = append(views, h.merchantView(m))
	}
	c.JSON(http.StatusOK, gin.H{"merchants": views})
}

func (h *RecordsHandler) CreateMerchant(c *gin.Context) {
	viewer, ok := middleware.CallerProfile(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	var req merchantPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	created, err := h.Records.CreateMerchant(c.Request.Context(), viewer, domain.Merchant{
		MerchantType: req.MerchantType,
		AccountID:    req.AccountID,
		EmailID:      req.EmailID,
		MobileNumber: req.MobileNumber,
		Password:     req.Password,
		QRCodePath:   req.QRCodePath,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"merchant": h.merchantView(created)})
}

func (h *RecordsHandler) GetMerchant(c *gin.Context) {
	viewer, ok := middleware.CallerProfile(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	merchant, err := h.Records.GetMerchant(c.Request.Context(), viewer, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"merchant": h.merchantView(merchant)})
}

func (h *RecordsHandler) UpdateMerchant(c *gin.Context) {
	viewer, ok := middleware.CallerProfile(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	var req merchantPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	updated, err := h.Records.UpdateMerchant(c.Request.Context(), viewer, domain.Merchant{
		ID:           c.Param("id"),
		MerchantType: req.MerchantType,
		AccountID:    req.AccountID,
		EmailID:      req.EmailID,
		MobileNumber: req.MobileNumber,
		Password:     req.Password,
		QRCodePath:   req.QRCodePath,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"merchant": h.merchantView(updated)})
}

func (h *RecordsHandler) DeleteMerchant(c *gin.Context) {
	viewer, ok := middleware.CallerProfile(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if err := h.Records.DeleteMerchant(c.Request.Context(), viewer, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
