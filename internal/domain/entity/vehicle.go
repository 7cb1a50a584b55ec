package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vehicle represents a customer's vehicle
type Vehicle struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Make         string         `gorm:"size:100;not null" json:"make"`
	Model        string         `gorm:"size:100;not null" json:"model"`
	Year         string         `gorm:"size:10" json:"year"`
	Registration string         `gorm:"size:50;index" json:"registration"`
	VIN          string         `gorm:"size:50" json:"vin,omitempty"`
	Color        string         `gorm:"size:50" json:"color,omitempty"`
	FuelType     string         `gorm:"size:50" json:"fuelType,omitempty"`
	Odometer     string         `gorm:"size:50" json:"odometer,omitempty"`
	Notes        string         `gorm:"type:text" json:"notes,omitempty"`
	OwnerID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"ownerId"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Owner *Customer `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

// BeforeCreate generates a UUID before creating a new vehicle
func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Vehicle model
func (Vehicle) TableName() string {
	return "vehicles"
}
