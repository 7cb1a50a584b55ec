package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceStatus represents the payment status of an invoice
type InvoiceStatus int

const (
	InvoiceStatusPending InvoiceStatus = 0
	InvoiceStatusPaid    InvoiceStatus = 1
	InvoiceStatusOverdue InvoiceStatus = 2
)

func (s InvoiceStatus) String() string {
	return [...]string{"pending", "paid", "overdue"}[s]
}

// ParseInvoiceStatus maps a wire string to a status, defaulting to pending
func ParseInvoiceStatus(str string) (InvoiceStatus, bool) {
	switch str {
	case "pending":
		return InvoiceStatusPending, true
	case "paid":
		return InvoiceStatusPaid, true
	case "overdue":
		return InvoiceStatusOverdue, true
	}
	return InvoiceStatusPending, false
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	if parsed, ok := ParseInvoiceStatus(str); ok {
		*s = parsed
	}
	return nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InvoiceStatus(v)
	case int:
		*s = InvoiceStatus(v)
	}
	return nil
}
