package request

// CreateVehicleRequest represents the create vehicle request body
type CreateVehicleRequest struct {
	Make         string `json:"make" binding:"required"`
	Model        string `json:"model" binding:"required"`
	Year         string `json:"year" binding:"required"`
	Registration string `json:"registration" binding:"required"`
	VIN          string `json:"vin"`
	Color        string `json:"color"`
	FuelType     string `json:"fuelType"`
	Odometer     string `json:"odometer"`
	Notes        string `json:"notes"`
	CustomerID   string `json:"customerId" binding:"required"`
}
