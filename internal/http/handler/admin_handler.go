package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ledgerdesk/ledgerdesk-accounts/internal/domain"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/http/middleware"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/service"
)

// AdminHandler exposes the accountant lifecycle endpoints consumed by the
// dashboard's user management screen.
type AdminHandler struct {
	Provision *service.ProvisionService
	Gate      *middleware.Gate
}

// NewAdminHandler creates the admin handler.
func NewAdminHandler(provision *service.ProvisionService, gate *middleware.Gate) *AdminHandler {
	return &AdminHandler{Provision: provision, Gate: gate}
}

type createAccountantRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type createdUserView struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	FullName       string  `json:"full_name"`
	Role           string  `json:"role"`
	CreatedByAdmin *string `json:"created_by_admin"`
	CreatedAt      string  `json:"created_at"`
}

// CreateAccountant provisions a new accountant for the calling admin.
// Runs behind Gate.RequireAdmin.
func (h *AdminHandler) CreateAccountant(c *gin.Context) {
	admin, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req createAccountantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: email, password, fullName"})
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" || strings.TrimSpace(req.FullName) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: email, password, fullName"})
		return
	}

	created, err := h.Provision.Provision(c.Request.Context(), admin, req.Email, req.Password, req.FullName)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "A user with this email address has already been registered"})
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: email, password, fullName"})
		default:
			zap.L().Error("create accountant failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": createdUserView{
			ID:             created.Identity.ID,
			Email:          created.Identity.Email,
			FullName:       created.Profile.FullName,
			Role:           string(created.Profile.Role),
			CreatedByAdmin: created.Profile.CreatedByAdmin,
			CreatedAt:      created.Identity.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		},
	})
}

type deleteAccountantRequest struct {
	AccountantID string `json:"accountantId"`
}

// DeleteAccountant removes an accountant the calling admin provisioned.
// The legacy dashboard treats every failure as a 400 with an error message,
// so the gate runs inline here instead of as middleware.
func (h *AdminHandler) DeleteAccountant(c *gin.Context) {
	admin, err := h.Gate.Admin(c)
	if err != nil {
		h.deleteFailure(c, err)
		return
	}

	var req deleteAccountantRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.AccountantID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required field: accountantId"})
		return
	}

	if err := h.Provision.Deprovision(c.Request.Context(), admin, req.AccountantID); err != nil {
		h.deleteFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Accountant deleted successfully"})
}

func (h *AdminHandler) deleteFailure(c *gin.Context, err error) {
	var msg string
	switch {
	case errors.Is(err, middleware.ErrMissingAuthHeader):
		msg = "Missing authorization header"
	case errors.Is(err, middleware.ErrInvalidToken):
		msg = "Invalid authentication"
	case errors.Is(err, domain.ErrForbidden):
		if strings.Contains(err.Error(), "delete accountants") {
			msg = "Unauthorized: You can only delete accountants you created"
		} else {
			msg = "Unauthorized: Admin access required"
		}
	case errors.Is(err, domain.ErrNotFound):
		msg = "Accountant profile not found"
	case errors.Is(err, domain.ErrValidation):
		msg = "Missing required field: accountantId"
	default:
		zap.L().Error("delete accountant failed", zap.Error(err))
		msg = "Internal server error"
	}
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
}
