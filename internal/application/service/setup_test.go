package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/miteshrvasoya/autofix-workshop/internal/domain/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Customer{},
		&entity.Vehicle{},
		&entity.Invoice{},
		&entity.InvoiceService{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestCustomer(t *testing.T, db *gorm.DB, name, phone string) *entity.Customer {
	t.Helper()
	customer := &entity.Customer{Name: name, Email: name + "@example.com", Phone: phone}
	if err := db.WithContext(context.Background()).Create(customer).Error; err != nil {
		t.Fatalf("failed to create test customer: %v", err)
	}
	return customer
}

func createTestVehicle(t *testing.T, db *gorm.DB, owner *entity.Customer, registration string) *entity.Vehicle {
	t.Helper()
	vehicle := &entity.Vehicle{
		Make:         "Honda",
		Model:        "City",
		Year:         "2020",
		Registration: registration,
		OwnerID:      owner.ID,
	}
	if err := db.WithContext(context.Background()).Create(vehicle).Error; err != nil {
		t.Fatalf("failed to create test vehicle: %v", err)
	}
	return vehicle
}
