package composer

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/miteshrvasoya/autofix-workshop/internal/dashboard/api"
	"github.com/miteshrvasoya/autofix-workshop/pkg/apperror"
)

const dateLayout = "2006-01-02"

// DirectoryService is the customer/vehicle lookup and creation collaborator.
type DirectoryService interface {
	SearchCustomerByPhone(ctx context.Context, phone string) (*api.Customer, error)
	CreateCustomer(ctx context.Context, payload api.CreateCustomerPayload) (*api.Customer, error)
	VehiclesByCustomer(ctx context.Context, customerID string) ([]api.Vehicle, error)
	CreateVehicle(ctx context.Context, payload api.CreateVehiclePayload) (*api.Vehicle, error)
}

// LedgerService is the invoice persistence collaborator.
type LedgerService interface {
	CreateInvoice(ctx context.Context, payload api.CreateInvoicePayload) (*api.Invoice, error)
}

// Dialog is the composer's sub-dialog state. The two inline create
// dialogs are mutually exclusive.
type Dialog int

const (
	DialogNone Dialog = iota
	DialogAddCustomer
	DialogAddVehicle
)

// Draft is the in-progress, not-yet-persisted invoice. Dates are
// "YYYY-MM-DD" strings. Services never drops below one row.
type Draft struct {
	CustomerID    string
	VehicleID     string
	Date          string
	DueDate       string
	Status        string
	PaymentMethod string
	Notes         string
	Services      []ServiceLineItem
}

// Options tunes the composer's search and billing behavior. Zero values
// fall back to the standard defaults.
type Options struct {
	TaxRate              float64
	DefaultStatus        string
	DefaultPaymentMethod string
	SearchDebounce       time.Duration
	MinSearchLength      int
}

// Composer drives the invoice creation workflow: customer resolution,
// customer-scoped vehicle resolution, line-item editing with derived
// totals, and the final validated submission.
type Composer struct {
	mu        sync.Mutex
	directory DirectoryService
	ledger    LedgerService

	taxRate              float64
	defaultStatus        string
	defaultPaymentMethod string
	debounce             time.Duration
	minSearchLength      int

	draft     Draft
	customers []api.Customer
	vehicles  []api.Vehicle
	dialog    Dialog
	lastError string

	searchTimer *time.Timer
	searchSeq   uint64
	vehicleSeq  uint64
}

// New creates a composer with a fresh draft holding one blank line item.
func New(directory DirectoryService, ledger LedgerService, opts Options) *Composer {
	if opts.TaxRate == 0 {
		opts.TaxRate = DefaultTaxRate
	}
	if opts.DefaultStatus == "" {
		opts.DefaultStatus = "pending"
	}
	if opts.DefaultPaymentMethod == "" {
		opts.DefaultPaymentMethod = "credit"
	}
	if opts.SearchDebounce == 0 {
		opts.SearchDebounce = 500 * time.Millisecond
	}
	if opts.MinSearchLength == 0 {
		opts.MinSearchLength = 4
	}

	c := &Composer{
		directory:            directory,
		ledger:               ledger,
		taxRate:              opts.TaxRate,
		defaultStatus:        opts.DefaultStatus,
		defaultPaymentMethod: opts.DefaultPaymentMethod,
		debounce:             opts.SearchDebounce,
		minSearchLength:      opts.MinSearchLength,
	}
	c.draft = c.newDraft()
	return c
}

func (c *Composer) newDraft() Draft {
	return Draft{
		Date:          time.Now().Format(dateLayout),
		Status:        c.defaultStatus,
		PaymentMethod: c.defaultPaymentMethod,
		Services:      []ServiceLineItem{blankLineItem()},
	}
}

// Seed pre-selects a customer (and optionally one of their vehicles)
// passed in from navigation, fetching the vehicle candidates.
func (c *Composer) Seed(ctx context.Context, customerID, vehicleID string) {
	if customerID == "" {
		return
	}
	c.SelectCustomer(ctx, customerID)
	if vehicleID != "" {
		c.mu.Lock()
		c.draft.VehicleID = vehicleID
		c.mu.Unlock()
	}
}

// Draft returns a copy of the in-progress draft.
func (c *Composer) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	draft := c.draft
	draft.Services = append([]ServiceLineItem(nil), c.draft.Services...)
	return draft
}

// Customers returns the current customer candidate list.
func (c *Composer) Customers() []api.Customer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]api.Customer(nil), c.customers...)
}

// Vehicles returns the vehicle candidates scoped to the selected customer.
func (c *Composer) Vehicles() []api.Vehicle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]api.Vehicle(nil), c.vehicles...)
}

// Dialog returns which inline create dialog, if any, is open.
func (c *Composer) Dialog() Dialog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dialog
}

// OpenDialog opens one of the inline create dialogs, closing any other.
func (c *Composer) OpenDialog(d Dialog) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialog = d
}

// CloseDialog dismisses the open dialog.
func (c *Composer) CloseDialog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialog = DialogNone
}

// LastError returns the banner message from the most recent failed
// submission, or empty.
func (c *Composer) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

// SetCustomerQuery feeds one keystroke of the customer search input.
// The lookup is dispatched only after the debounce window settles, and
// only when the query meets the minimum length.
func (c *Composer) SetCustomerQuery(ctx context.Context, query string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.searchTimer != nil {
		c.searchTimer.Stop()
		c.searchTimer = nil
	}
	if len(query) < c.minSearchLength {
		return
	}
	c.searchTimer = time.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		c.searchSeq++
		seq := c.searchSeq
		c.mu.Unlock()
		c.runSearch(ctx, query, seq)
	})
}

// runSearch performs the customer lookup and applies the result only if
// no newer search has been issued since. A lookup failure keeps the
// prior candidate list intact.
func (c *Composer) runSearch(ctx context.Context, query string, seq uint64) error {
	customer, err := c.directory.SearchCustomerByPhone(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.searchSeq {
		return apperror.ErrStaleResponse
	}
	if err != nil {
		log.Printf("composer: customer search failed: %v", err)
		return err
	}
	c.customers = []api.Customer{*customer}
	return nil
}

// SelectCustomer sets the draft's customer, clears the now-invalid
// vehicle selection, and refreshes the vehicle candidates for the new
// customer.
func (c *Composer) SelectCustomer(ctx context.Context, customerID string) {
	c.mu.Lock()
	c.draft.CustomerID = customerID
	c.draft.VehicleID = ""
	c.vehicles = nil
	c.vehicleSeq++
	seq := c.vehicleSeq
	c.mu.Unlock()

	if err := c.loadVehicles(ctx, customerID, seq); err != nil {
		log.Printf("composer: vehicle fetch failed: %v", err)
	}
}

// loadVehicles fetches the vehicles owned by customerID and applies them
// only if the selection has not moved on since the fetch was issued.
func (c *Composer) loadVehicles(ctx context.Context, customerID string, seq uint64) error {
	vehicles, err := c.directory.VehiclesByCustomer(ctx, customerID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.vehicleSeq || c.draft.CustomerID != customerID {
		return apperror.ErrStaleResponse
	}
	if err != nil {
		return err
	}
	c.vehicles = vehicles
	return nil
}

// SelectVehicle sets the draft's vehicle.
func (c *Composer) SelectVehicle(vehicleID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.VehicleID = vehicleID
}

// SetDate sets the invoice date ("YYYY-MM-DD").
func (c *Composer) SetDate(date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Date = date
}

// SetDueDate sets the due date ("YYYY-MM-DD").
func (c *Composer) SetDueDate(dueDate string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.DueDate = dueDate
}

// SetStatus sets the invoice status.
func (c *Composer) SetStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Status = status
}

// SetPaymentMethod sets the payment method.
func (c *Composer) SetPaymentMethod(method string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.PaymentMethod = method
}

// SetNotes sets the free-text notes.
func (c *Composer) SetNotes(notes string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Notes = notes
}

// CreateCustomer runs the inline create-customer action: all three
// fields are required; on success the new record joins the candidate
// list and becomes the selected customer.
func (c *Composer) CreateCustomer(ctx context.Context, name, email, phone string) (*api.Customer, error) {
	var fieldErrors []apperror.FieldError
	if name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if email == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "email", Message: "Email is required"})
	}
	if phone == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "phone", Message: "Phone is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	customer, err := c.directory.CreateCustomer(ctx, api.CreateCustomerPayload{
		Name:  name,
		Email: email,
		Phone: phone,
	})
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.customers = append(c.customers, *customer)
	c.dialog = DialogNone
	c.mu.Unlock()

	c.SelectCustomer(ctx, customer.ID)
	return customer, nil
}

// CreateVehicle runs the inline create-vehicle action for the selected
// customer; on success the new vehicle joins the candidate list and
// becomes the selected vehicle.
func (c *Composer) CreateVehicle(ctx context.Context, payload api.CreateVehiclePayload) (*api.Vehicle, error) {
	c.mu.Lock()
	customerID := c.draft.CustomerID
	c.mu.Unlock()

	if customerID == "" {
		return nil, apperror.NewFieldError("customerId", "Select a customer first")
	}

	var fieldErrors []apperror.FieldError
	if payload.Make == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "make", Message: "Make is required"})
	}
	if payload.Model == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "model", Message: "Model is required"})
	}
	if payload.Year == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "year", Message: "Year is required"})
	}
	if payload.Registration == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "registration", Message: "Registration is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	payload.CustomerID = customerID
	vehicle, err := c.directory.CreateVehicle(ctx, payload)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Selection may have moved to another customer while the create was
	// in flight; only a vehicle of the current customer may be applied.
	if c.draft.CustomerID == vehicle.OwnerID {
		c.vehicles = append(c.vehicles, *vehicle)
		c.draft.VehicleID = vehicle.ID
	}
	c.dialog = DialogNone
	return vehicle, nil
}

// AddLineItem appends a blank service row.
func (c *Composer) AddLineItem() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Services = append(c.draft.Services, blankLineItem())
}

// RemoveLineItem removes the row at index. The list never drops below
// one row; removing the last remaining row is a no-op.
func (c *Composer) RemoveLineItem(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.draft.Services) <= 1 {
		return
	}
	if index < 0 || index >= len(c.draft.Services) {
		return
	}
	c.draft.Services = append(c.draft.Services[:index], c.draft.Services[index+1:]...)
}

// UpdateLineItem applies one edit to the row at index. Quantity and unit
// price parse numerically with invalid input coerced to 0, and the row's
// total is recomputed from the fresh values.
func (c *Composer) UpdateLineItem(index int, field Field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.draft.Services) {
		return
	}

	item := &c.draft.Services[index]
	switch field {
	case FieldDescription:
		item.Description = value
	case FieldQuantity:
		item.Quantity = parseQuantity(value)
	case FieldUnitPrice:
		item.UnitPrice = parsePrice(value)
	}
	item.Total = float64(item.Quantity) * item.UnitPrice
}

// Totals derives the running subtotal, tax and grand total from the
// current line items.
func (c *Composer) Totals() Totals {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ComputeTotals(c.draft.Services, c.taxRate)
}

// Submit validates the draft, builds the normalized payload and calls
// the ledger. On success the draft is replaced with a fresh one; on
// failure it is left intact and the error message is kept for display.
func (c *Composer) Submit(ctx context.Context) (*api.Invoice, error) {
	c.mu.Lock()
	if err := validateDraft(&c.draft); err != nil {
		c.mu.Unlock()
		return nil, err
	}

	totals := ComputeTotals(c.draft.Services, c.taxRate)
	payload := api.CreateInvoicePayload{
		CustomerID:    c.draft.CustomerID,
		VehicleID:     c.draft.VehicleID,
		Date:          c.draft.Date,
		DueDate:       c.draft.DueDate,
		Status:        c.draft.Status,
		PaymentMethod: c.draft.PaymentMethod,
		Notes:         c.draft.Notes,
		Amount:        totals.GrandTotal,
	}
	if payload.DueDate == "" {
		payload.DueDate = payload.Date
	}
	if payload.PaymentMethod == "" {
		payload.PaymentMethod = c.defaultPaymentMethod
	}
	for _, item := range c.draft.Services {
		payload.Services = append(payload.Services, api.ServiceLinePayload{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		})
	}
	c.mu.Unlock()

	invoice, err := c.ledger.CreateInvoice(ctx, payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastError = apperror.GetAppError(err).Message
		return nil, err
	}
	c.draft = c.newDraft()
	c.customers = nil
	c.vehicles = nil
	c.lastError = ""
	return invoice, nil
}

// validateDraft enforces the required-field checks ahead of submission,
// in a fixed order, aborting at the first failure.
func validateDraft(draft *Draft) error {
	if draft.CustomerID == "" {
		return apperror.NewFieldError("customerId", "Select a customer")
	}
	if draft.VehicleID == "" {
		return apperror.NewFieldError("vehicleId", "Select a vehicle")
	}
	if draft.Date == "" {
		return apperror.NewFieldError("date", "Date is required")
	}
	if len(draft.Services) == 0 {
		return apperror.NewFieldError("services", "At least one service is required")
	}
	for i, item := range draft.Services {
		if item.Description == "" {
			return apperror.NewFieldError(
				lineField(i, "description"), "Description is required")
		}
		if item.UnitPrice <= 0 {
			return apperror.NewFieldError(
				lineField(i, "unitPrice"), "Unit price must be greater than zero")
		}
	}
	return nil
}

func lineField(index int, field string) string {
	return fmt.Sprintf("services[%d].%s", index, field)
}
