package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/miteshrvasoya/autofix-workshop/internal/domain/enum"
	"gorm.io/gorm"
)

// Invoice represents a billed workshop job for one customer/vehicle pair.
// Subtotal, Tax and Amount are always derived from the service lines at
// creation time; the stored values are a snapshot, never an input.
type Invoice struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"customerId"`
	VehicleID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"vehicleId"`
	Date          time.Time          `gorm:"type:date;not null" json:"-"`
	DueDate       time.Time          `gorm:"type:date;not null" json:"-"`
	Status        enum.InvoiceStatus `gorm:"default:0;index" json:"status"`
	PaymentMethod string             `gorm:"size:50" json:"paymentMethod"`
	Notes         string             `gorm:"type:text" json:"notes,omitempty"`
	Subtotal      float64            `gorm:"not null" json:"subtotal"`
	Tax           float64            `gorm:"not null" json:"tax"`
	Amount        float64            `gorm:"not null" json:"amount"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer        `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Vehicle  *Vehicle         `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Services []InvoiceService `gorm:"foreignKey:InvoiceID" json:"services,omitempty"`
}

const dateLayout = "2006-01-02"

// MarshalJSON custom marshaler to emit plain dates on the wire
func (i Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	return json.Marshal(&struct {
		Alias
		Date    string `json:"date"`
		DueDate string `json:"dueDate"`
	}{
		Alias:   Alias(i),
		Date:    i.Date.Format(dateLayout),
		DueDate: i.DueDate.Format(dateLayout),
	})
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceService represents a billed line item on an invoice
type InvoiceService struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"invoiceId"`
	Description string         `gorm:"size:255;not null" json:"description"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	UnitPrice   float64        `gorm:"not null" json:"unitPrice"`
	Total       float64        `gorm:"not null" json:"total"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new invoice line
func (s *InvoiceService) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceService model
func (InvoiceService) TableName() string {
	return "invoice_services"
}
