package main

import (
	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
	"github.com/miteshrvasoya/autofix-workshop/internal/application/service"
	"github.com/miteshrvasoya/autofix-workshop/internal/config"
	"github.com/miteshrvasoya/autofix-workshop/internal/infrastructure/repository"
	"github.com/miteshrvasoya/autofix-workshop/internal/presentation/http/handler"
	"github.com/miteshrvasoya/autofix-workshop/internal/presentation/http/routes"
	"github.com/miteshrvasoya/autofix-workshop/pkg/utils"
)

// buildRouter wires repositories, services and handlers onto a Gin engine.
// Split out from main so tests can run the full HTTP stack against any *gorm.DB.
func buildRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)

	authService := service.NewAuthService(userRepo, jwtManager)
	customerService := service.NewCustomerService(customerRepo)
	vehicleService := service.NewVehicleService(vehicleRepo, customerRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, customerRepo, vehicleRepo, cfg.Billing.TaxRate, cfg.Billing.DefaultPaymentMethod)
	dashboardService := service.NewDashboardService(invoiceRepo, customerRepo, vehicleRepo)

	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Customer:  handler.NewCustomerHandler(customerService),
		Vehicle:   handler.NewVehicleHandler(vehicleService),
		Invoice:   handler.NewInvoiceHandler(invoiceService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	return routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})
}
