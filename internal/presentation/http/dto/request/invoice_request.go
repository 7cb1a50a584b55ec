package request

// ServiceLineRequest represents one billed line in a create invoice request
type ServiceLineRequest struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// CreateInvoiceRequest represents the create invoice request body
type CreateInvoiceRequest struct {
	CustomerID    string               `json:"customerId" binding:"required"`
	VehicleID     string               `json:"vehicleId" binding:"required"`
	Date          string               `json:"date" binding:"required"`
	DueDate       string               `json:"dueDate"`
	Status        string               `json:"status"`
	PaymentMethod string               `json:"paymentMethod"`
	Notes         string               `json:"notes"`
	Services      []ServiceLineRequest `json:"services" binding:"required"`
	Amount        float64              `json:"amount"`
}
