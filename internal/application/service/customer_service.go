package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/miteshrvasoya/autofix-workshop/internal/domain/entity"
	"github.com/miteshrvasoya/autofix-workshop/internal/domain/repository"
	"github.com/miteshrvasoya/autofix-workshop/pkg/apperror"
	"github.com/miteshrvasoya/autofix-workshop/pkg/pagination"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Notes   string
}

// CreateCustomer creates a new customer. Name, email and phone are required.
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	var fieldErrs []apperror.FieldError
	if input.Name == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if input.Email == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "email", Message: "Email is required"})
	}
	if input.Phone == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "phone", Message: "Phone is required"})
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	customer := &entity.Customer{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
		Notes:   input.Notes,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// SearchByPhone looks up a customer by exact phone number
func (s *CustomerService) SearchByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers with pagination, sorting and search
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.Params, sortBy, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, sortBy, search)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(customers, params, total), nil
}
