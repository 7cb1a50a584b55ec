package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/miteshrvasoya/autofix-workshop/internal/domain/entity"
	"github.com/miteshrvasoya/autofix-workshop/internal/domain/enum"
	"github.com/miteshrvasoya/autofix-workshop/pkg/pagination"
)

// InvoiceListFilters narrows an invoice listing
type InvoiceListFilters struct {
	Status *enum.InvoiceStatus
	Search string
}

// InvoiceRepository defines the interface for invoice data access
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetWithServices(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	List(ctx context.Context, params *pagination.Params, filters *InvoiceListFilters) ([]entity.Invoice, int64, error)
	Count(ctx context.Context) (int64, error)
	SumAmountByStatus(ctx context.Context, status enum.InvoiceStatus) (float64, error)
	Recent(ctx context.Context, limit int) ([]entity.Invoice, error)
}
