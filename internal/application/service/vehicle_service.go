package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/miteshrvasoya/autofix-workshop/internal/domain/entity"
	"github.com/miteshrvasoya/autofix-workshop/internal/domain/repository"
	"github.com/miteshrvasoya/autofix-workshop/pkg/apperror"
	"github.com/miteshrvasoya/autofix-workshop/pkg/pagination"
)

// VehicleService handles vehicle-related operations
type VehicleService struct {
	vehicleRepo  repository.VehicleRepository
	customerRepo repository.CustomerRepository
}

// NewVehicleService creates a new vehicle service
func NewVehicleService(vehicleRepo repository.VehicleRepository, customerRepo repository.CustomerRepository) *VehicleService {
	return &VehicleService{
		vehicleRepo:  vehicleRepo,
		customerRepo: customerRepo,
	}
}

// CreateVehicleInput represents the create vehicle input
type CreateVehicleInput struct {
	Make         string
	Model        string
	Year         string
	Registration string
	VIN          string
	Color        string
	FuelType     string
	Odometer     string
	Notes        string
	CustomerID   uuid.UUID
}

// CreateVehicle creates a new vehicle owned by an existing customer
func (s *VehicleService) CreateVehicle(ctx context.Context, input *CreateVehicleInput) (*entity.Vehicle, error) {
	var fieldErrs []apperror.FieldError
	if input.Make == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "make", Message: "Make is required"})
	}
	if input.Model == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "model", Message: "Model is required"})
	}
	if input.Year == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "year", Message: "Year is required"})
	}
	if input.Registration == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "registration", Message: "Registration is required"})
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	owner, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	vehicle := &entity.Vehicle{
		Make:         input.Make,
		Model:        input.Model,
		Year:         input.Year,
		Registration: input.Registration,
		VIN:          input.VIN,
		Color:        input.Color,
		FuelType:     input.FuelType,
		Odometer:     input.Odometer,
		Notes:        input.Notes,
		OwnerID:      owner.ID,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	return vehicle, nil
}

// GetVehicle retrieves a vehicle by ID
func (s *VehicleService) GetVehicle(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperror.NewNotFoundError("Vehicle")
	}
	return vehicle, nil
}

// ListByCustomer returns every vehicle owned by the given customer
func (s *VehicleService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Vehicle, error) {
	return s.vehicleRepo.ListByOwner(ctx, customerID)
}

// ListVehicles lists vehicles with pagination and search
func (s *VehicleService) ListVehicles(ctx context.Context, params *pagination.Params, search string) (*pagination.PaginatedResult[entity.Vehicle], error) {
	vehicles, total, err := s.vehicleRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(vehicles, params, total), nil
}
