package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/miteshrvasoya/autofix-workshop/internal/config"
	"github.com/miteshrvasoya/autofix-workshop/internal/domain/enum"
	"github.com/miteshrvasoya/autofix-workshop/internal/presentation/http/handler"
	"github.com/miteshrvasoya/autofix-workshop/internal/presentation/http/middleware"
	"github.com/miteshrvasoya/autofix-workshop/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Customer  *handler.CustomerHandler
	Vehicle   *handler.VehicleHandler
	Invoice   *handler.InvoiceHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	api := router.Group("/api")
	{
		// Public routes (no authentication required)
		api.POST("/auth/login", h.Auth.Login)
		api.GET("/public/invoice/:id", h.Invoice.Get)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Profile
	protected.GET("/auth/me", h.Auth.Me)

	// Dashboard (revenue numbers are admin-only)
	protected.GET("/dashboard/summary",
		middleware.RequireRole(enum.RoleAdmin), h.Dashboard.GetSummary)

	// Customers
	customer := protected.Group("/customer")
	{
		customer.POST("", h.Customer.Create)
		customer.GET("", h.Customer.List)
		customer.GET("/:id", h.Customer.Get)
		customer.GET("/search_by_phone/:phone", h.Customer.SearchByPhone)
	}

	// Vehicles
	vehicle := protected.Group("/vehicle")
	{
		vehicle.POST("", h.Vehicle.Create)
		vehicle.GET("", h.Vehicle.List)
		vehicle.GET("/:id", h.Vehicle.Get)
		vehicle.GET("/get_by_customer_id/:customerId", h.Vehicle.GetByCustomer)
	}

	// Invoices
	invoice := protected.Group("/invoice")
	{
		invoice.POST("", h.Invoice.Create)
		invoice.GET("", h.Invoice.List)
		invoice.GET("/:id", h.Invoice.Get)
	}
}
