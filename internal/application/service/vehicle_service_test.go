package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/miteshrvasoya/autofix-workshop/internal/infrastructure/repository"
	"github.com/miteshrvasoya/autofix-workshop/pkg/apperror"
)

func TestCreateVehicleRequiresExistingOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := NewVehicleService(repository.NewVehicleRepository(db), repository.NewCustomerRepository(db))

	_, err := svc.CreateVehicle(context.Background(), &CreateVehicleInput{
		Make:         "Honda",
		Model:        "City",
		Year:         "2020",
		Registration: "MH12AB1234",
		CustomerID:   uuid.New(),
	})
	if err == nil {
		t.Fatal("expected error for unknown owner")
	}
	if apperror.GetAppError(err).Code != 404 {
		t.Errorf("code = %d, want 404", apperror.GetAppError(err).Code)
	}
}

func TestCreateVehicleValidatesRequiredFields(t *testing.T) {
	db := setupTestDB(t)
	svc := NewVehicleService(repository.NewVehicleRepository(db), repository.NewCustomerRepository(db))
	owner := createTestCustomer(t, db, "Ravi", "9876543210")

	_, err := svc.CreateVehicle(context.Background(), &CreateVehicleInput{CustomerID: owner.ID})
	if !apperror.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	appErr := apperror.GetAppError(err)
	if len(appErr.Errors) != 4 {
		t.Errorf("expected 4 field errors, got %+v", appErr.Errors)
	}
}

func TestListByCustomerScopesToOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := NewVehicleService(repository.NewVehicleRepository(db), repository.NewCustomerRepository(db))
	ownerA := createTestCustomer(t, db, "Ravi", "9876543210")
	ownerB := createTestCustomer(t, db, "Priya", "9123456789")
	createTestVehicle(t, db, ownerA, "MH12AB1234")
	createTestVehicle(t, db, ownerA, "MH12CD5678")
	createTestVehicle(t, db, ownerB, "MH14XY9999")

	vehicles, err := svc.ListByCustomer(context.Background(), ownerA.ID)
	if err != nil {
		t.Fatalf("ListByCustomer failed: %v", err)
	}
	if len(vehicles) != 2 {
		t.Fatalf("expected 2 vehicles, got %d", len(vehicles))
	}
	for _, v := range vehicles {
		if v.OwnerID != ownerA.ID {
			t.Errorf("vehicle %s owned by %s, want %s", v.ID, v.OwnerID, ownerA.ID)
		}
	}
}
