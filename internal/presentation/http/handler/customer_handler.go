package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/miteshrvasoya/autofix-workshop/internal/application/service"
	"github.com/miteshrvasoya/autofix-workshop/internal/presentation/http/dto/request"
	"github.com/miteshrvasoya/autofix-workshop/internal/presentation/http/dto/response"
	"github.com/miteshrvasoya/autofix-workshop/pkg/pagination"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Create handles customer creation
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created", customer)
}

// Get retrieves a customer by ID
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved", customer)
}

// SearchByPhone looks up a customer by exact phone number
func (h *CustomerHandler) SearchByPhone(c *gin.Context) {
	phone := c.Param("phone")
	customer, err := h.customerService.SearchByPhone(c.Request.Context(), phone)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer found", customer)
}

// List handles customer listing with pagination, sorting and search
func (h *CustomerHandler) List(c *gin.Context) {
	params := pagination.DefaultParams()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}
	params.Validate()

	sortBy := c.DefaultQuery("sortBy", "name")
	search := c.Query("search")

	result, err := h.customerService.ListCustomers(c.Request.Context(), params, sortBy, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customers retrieved", result)
}
