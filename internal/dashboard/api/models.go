package api

// User is the authenticated account returned by a successful login.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
	Role   string `json:"role"`
}

// LoginResult carries the user together with the bearer token.
type LoginResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Customer is a workshop customer record.
type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// Vehicle is a customer-owned vehicle record.
type Vehicle struct {
	ID           string `json:"id"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         string `json:"year"`
	Registration string `json:"registration"`
	VIN          string `json:"vin"`
	Color        string `json:"color"`
	FuelType     string `json:"fuelType"`
	Odometer     string `json:"odometer"`
	Notes        string `json:"notes"`
	OwnerID      string `json:"ownerId"`
}

// ServiceLine is a billed line on a persisted invoice.
type ServiceLine struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// Invoice is a persisted invoice record. Dates are "YYYY-MM-DD" strings.
type Invoice struct {
	ID            string        `json:"id"`
	CustomerID    string        `json:"customerId"`
	VehicleID     string        `json:"vehicleId"`
	Date          string        `json:"date"`
	DueDate       string        `json:"dueDate"`
	Status        string        `json:"status"`
	PaymentMethod string        `json:"paymentMethod"`
	Notes         string        `json:"notes"`
	Subtotal      float64       `json:"subtotal"`
	Tax           float64       `json:"tax"`
	Amount        float64       `json:"amount"`
	Services      []ServiceLine `json:"services"`
	Customer      *Customer     `json:"customer,omitempty"`
	Vehicle       *Vehicle      `json:"vehicle,omitempty"`
}

// InvoicePage is one page of an invoice listing.
type InvoicePage struct {
	Items        []Invoice `json:"items"`
	TotalItems   int64     `json:"totalItems"`
	CurrentPage  int       `json:"currentPage"`
	TotalPages   int       `json:"totalPages"`
	ItemsPerPage int       `json:"itemsPerPage"`
}

// CreateCustomerPayload is the body for the create-customer operation.
type CreateCustomerPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// CreateVehiclePayload is the body for the create-vehicle operation.
type CreateVehiclePayload struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         string `json:"year"`
	Registration string `json:"registration"`
	VIN          string `json:"vin,omitempty"`
	Color        string `json:"color,omitempty"`
	FuelType     string `json:"fuelType,omitempty"`
	Odometer     string `json:"odometer,omitempty"`
	Notes        string `json:"notes,omitempty"`
	CustomerID   string `json:"customerId"`
}

// ServiceLinePayload is one billed line in a create-invoice request.
type ServiceLinePayload struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// CreateInvoicePayload is the body for the create-invoice operation.
type CreateInvoicePayload struct {
	CustomerID    string               `json:"customerId"`
	VehicleID     string               `json:"vehicleId"`
	Date          string               `json:"date"`
	DueDate       string               `json:"dueDate,omitempty"`
	Status        string               `json:"status,omitempty"`
	PaymentMethod string               `json:"paymentMethod,omitempty"`
	Notes         string               `json:"notes,omitempty"`
	Services      []ServiceLinePayload `json:"services"`
	Amount        float64              `json:"amount"`
}
