package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/ledgerdesk/ledgerdesk-accounts/internal/config"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/http/handler"
	"github.com/ledgerdesk/ledgerdesk-accounts/internal/http/middleware"
)

// NewRouter wires Gin routes and middleware.
func NewRouter(
	cfg config.Config,
	gate *middleware.Gate,
	adminHandler *handler.AdminHandler,
	authHandler *handler.AuthHandler,
	recordsHandler *handler.RecordsHandler,
	rateLimiter *middleware.RateLimiter,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(nil))
	if rateLimiter != nil {
		r.Use(rateLimiter.Handler())
	}
	r.Use(middleware.CORS(cfg))
	r.Use(otelgin.Middleware(cfg.ServiceName))

	// The two accountant lifecycle endpoints predate the rest of the API and
	// keep their original preflight responses: create answers 204 with no
	// body, delete answers 200 "ok".
	r.POST("/create-accountant", gate.RequireAdmin, adminHandler.CreateAccountant)
	r.OPTIONS("/create-accountant", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.POST("/delete-accountant", adminHandler.DeleteAccountant)
	r.OPTIONS("/delete-accountant", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/change-password", gate.RequireUser, authHandler.ChangePassword)
		authGroup.GET("/me", gate.RequireUser, authHandler.Me)
	}

	records := r.Group("/", gate.RequireUser)
	{
		records.GET("/accounts", recordsHandler.ListAccounts)
		records.POST("/accounts", recordsHandler.CreateAccount)
		records.GET("/accounts/:id", recordsHandler.GetAccount)
		records.PUT("/accounts/:id", recordsHandler.UpdateAccount)
		records.DELETE("/accounts/:id", recordsHandler.DeleteAccount)

		records.GET("/cards", recordsHandler.ListCards)
		records.POST("/cards", recordsHandler.CreateCard)
		records.GET("/cards/:id", recordsHandler.GetCard)
		records.PUT("/cards/:id", recordsHandler.UpdateCard)
		records.DELETE("/cards/:id", recordsHandler.DeleteCard)

		records.GET("/customers", recordsHandler.ListCustomers)
		records.POST("/customers", recordsHandler.CreateCustomer)
		records.GET("/customers/:id", recordsHandler.GetCustomer)
		records.PUT("/customers/:id", recordsHandler.UpdateCustomer)
		records.DELETE("/customers/:id", recordsHandler.DeleteCustomer)

		records.GET("/merchants", recordsHandler.ListMerchants)
		records.POST("/merchants", recordsHandler.CreateMerchant)
		records.GET("/merchants/:id", recordsHandler.GetMerchant)
		records.PUT("/merchants/:id", recordsHandler.UpdateMerchant)
		records.DELETE("/merchants/:id", recordsHandler.DeleteMerchant)
	}

	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return r
}
