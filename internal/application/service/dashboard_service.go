package service

import (
	"context"

	"github.com/miteshrvasoya/autofix-workshop/internal/domain/entity"
	"github.com/miteshrvasoya/autofix-workshop/internal/domain/enum"
	"github.com/miteshrvasoya/autofix-workshop/internal/domain/repository"
)

// DashboardService aggregates summary numbers for the dashboard home screen
type DashboardService struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	vehicleRepo  repository.VehicleRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	vehicleRepo repository.VehicleRepository,
) *DashboardService {
	return &DashboardService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		vehicleRepo:  vehicleRepo,
	}
}

// Summary is the dashboard summary payload
type Summary struct {
	TotalInvoices   int64            `json:"totalInvoices"`
	TotalCustomers  int64            `json:"totalCustomers"`
	TotalVehicles   int64            `json:"totalVehicles"`
	TotalRevenue    float64          `json:"totalRevenue"`
	PendingPayments float64          `json:"pendingPayments"`
	RecentInvoices  []entity.Invoice `json:"recentInvoices"`
}

// GetSummary computes the dashboard summary
func (s *DashboardService) GetSummary(ctx context.Context) (*Summary, error) {
	totalInvoices, err := s.invoiceRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalCustomers, err := s.customerRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalVehicles, err := s.vehicleRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.invoiceRepo.SumAmountByStatus(ctx, enum.InvoiceStatusPaid)
	if err != nil {
		return nil, err
	}
	pending, err := s.invoiceRepo.SumAmountByStatus(ctx, enum.InvoiceStatusPending)
	if err != nil {
		return nil, err
	}
	recent, err := s.invoiceRepo.Recent(ctx, 5)
	if err != nil {
		return nil, err
	}

	return &Summary{
		TotalInvoices:   totalInvoices,
		TotalCustomers:  totalCustomers,
		TotalVehicles:   totalVehicles,
		TotalRevenue:    revenue,
		PendingPayments: pending,
		RecentInvoices:  recent,
	}, nil
}
