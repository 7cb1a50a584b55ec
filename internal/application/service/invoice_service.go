package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/miteshrvasoya/autofix-workshop/internal/domain/entity"
	"github.com/miteshrvasoya/autofix-workshop/internal/domain/enum"
	"github.com/miteshrvasoya/autofix-workshop/internal/domain/repository"
	"github.com/miteshrvasoya/autofix-workshop/pkg/apperror"
	"github.com/miteshrvasoya/autofix-workshop/pkg/pagination"
)

// InvoiceService handles invoice-related operations
type InvoiceService struct {
	invoiceRepo          repository.InvoiceRepository
	customerRepo         repository.CustomerRepository
	vehicleRepo          repository.VehicleRepository
	taxRate              float64
	defaultPaymentMethod string
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	vehicleRepo repository.VehicleRepository,
	taxRate float64,
	defaultPaymentMethod string,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:          invoiceRepo,
		customerRepo:         customerRepo,
		vehicleRepo:          vehicleRepo,
		taxRate:              taxRate,
		defaultPaymentMethod: defaultPaymentMethod,
	}
}

// ServiceLineInput represents a billed line in a create request
type ServiceLineInput struct {
	Description string
	Quantity    int
	UnitPrice   float64
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	CustomerID    uuid.UUID
	VehicleID     uuid.UUID
	Date          string
	DueDate       string
	Status        string
	PaymentMethod string
	Notes         string
	Services      []ServiceLineInput
	// Amount as computed by the client. Never trusted; logged when it
	// disagrees with the server-side derivation.
	Amount float64
}

const dateLayout = "2006-01-02"

// CreateInvoice validates and persists a new invoice. Line totals, subtotal,
// tax and amount are derived here from the submitted services; the vehicle
// must belong to the submitted customer.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, input.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperror.NewNotFoundError("Vehicle")
	}
	if vehicle.OwnerID != customer.ID {
		return nil, apperror.NewBadRequestError("Vehicle does not belong to the selected customer")
	}

	date, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		return nil, apperror.NewFieldError("date", "Date must be YYYY-MM-DD")
	}
	dueDate := date
	if input.DueDate != "" {
		dueDate, err = time.Parse(dateLayout, input.DueDate)
		if err != nil {
			return nil, apperror.NewFieldError("dueDate", "Due date must be YYYY-MM-DD")
		}
	}

	status := enum.InvoiceStatusPending
	if input.Status != "" {
		parsed, ok := enum.ParseInvoiceStatus(input.Status)
		if !ok {
			return nil, apperror.NewFieldError("status", "Status must be pending, paid or overdue")
		}
		status = parsed
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = s.defaultPaymentMethod
	}

	var subtotal float64
	lines := make([]entity.InvoiceService, 0, len(input.Services))
	for _, svc := range input.Services {
		lineTotal := float64(svc.Quantity) * svc.UnitPrice
		subtotal += lineTotal
		lines = append(lines, entity.InvoiceService{
			Description: svc.Description,
			Quantity:    svc.Quantity,
			UnitPrice:   svc.UnitPrice,
			Total:       lineTotal,
		})
	}
	tax := subtotal * s.taxRate
	amount := subtotal + tax

	if input.Amount != 0 && math.Abs(input.Amount-amount) > 0.01 {
		log.Printf("invoice amount mismatch: client sent %.2f, derived %.2f", input.Amount, amount)
	}

	invoice := &entity.Invoice{
		CustomerID:    customer.ID,
		VehicleID:     vehicle.ID,
		Date:          date,
		DueDate:       dueDate,
		Status:        status,
		PaymentMethod: paymentMethod,
		Notes:         input.Notes,
		Subtotal:      subtotal,
		Tax:           tax,
		Amount:        amount,
		Services:      lines,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetWithServices(ctx, invoice.ID)
}

func (s *InvoiceService) validate(input *CreateInvoiceInput) error {
	if input.CustomerID == uuid.Nil {
		return apperror.NewFieldError("customerId", "Customer is required")
	}
	if input.VehicleID == uuid.Nil {
		return apperror.NewFieldError("vehicleId", "Vehicle is required")
	}
	if input.Date == "" {
		return apperror.NewFieldError("date", "Date is required")
	}
	if len(input.Services) == 0 {
		return apperror.NewFieldError("services", "At least one service is required")
	}
	for i, svc := range input.Services {
		if svc.Description == "" {
			return apperror.NewFieldError(fmt.Sprintf("services[%d].description", i), "Description is required")
		}
		if svc.UnitPrice <= 0 {
			return apperror.NewFieldError(fmt.Sprintf("services[%d].unitPrice", i), "Unit price must be greater than zero")
		}
		if svc.Quantity < 1 {
			return apperror.NewFieldError(fmt.Sprintf("services[%d].quantity", i), "Quantity must be at least 1")
		}
	}
	return nil
}

// GetInvoice retrieves an invoice with its service lines
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithServices(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices filtered by status and customer search
func (s *InvoiceService) ListInvoices(ctx context.Context, params *pagination.Params, status, search string) (*pagination.PaginatedResult[entity.Invoice], error) {
	filters := &repository.InvoiceListFilters{Search: search}
	if status != "" && status != "all" {
		parsed, ok := enum.ParseInvoiceStatus(status)
		if !ok {
			return nil, apperror.NewBadRequestError("Unknown status filter: " + status)
		}
		filters.Status = &parsed
	}

	invoices, total, err := s.invoiceRepo.List(ctx, params, filters)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(invoices, params, total), nil
}
