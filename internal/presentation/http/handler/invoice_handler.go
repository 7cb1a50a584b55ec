package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/miteshrvasoya/autofix-workshop/internal/application/service"
	"github.com/miteshrvasoya/autofix-workshop/internal/presentation/http/dto/request"
	"github.com/miteshrvasoya/autofix-workshop/internal/presentation/http/dto/response"
	"github.com/miteshrvasoya/autofix-workshop/pkg/pagination"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create handles invoice creation
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}
	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		response.BadRequest(c, "Invalid vehicle ID")
		return
	}

	services := make([]service.ServiceLineInput, 0, len(req.Services))
	for _, svc := range req.Services {
		services = append(services, service.ServiceLineInput{
			Description: svc.Description,
			Quantity:    svc.Quantity,
			UnitPrice:   svc.UnitPrice,
		})
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		CustomerID:    customerID,
		VehicleID:     vehicleID,
		Date:          req.Date,
		DueDate:       req.DueDate,
		Status:        req.Status,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		Services:      services,
		Amount:        req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created", invoice)
}

// Get retrieves an invoice by ID
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved", invoice)
}

// List handles invoice listing with status and search filters
func (h *InvoiceHandler) List(c *gin.Context) {
	params := pagination.DefaultParams()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}
	params.Validate()

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params, c.Query("status"), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoices retrieved", result)
}
