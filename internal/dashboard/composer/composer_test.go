package composer

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/miteshrvasoya/autofix-workshop/internal/dashboard/api"
	"github.com/miteshrvasoya/autofix-workshop/pkg/apperror"
)

type fakeDirectory struct {
	mu            sync.Mutex
	searchCalls   int
	searchResult  *api.Customer
	searchErr     error
	vehiclesByID  map[string][]api.Vehicle
	vehiclesErr   error
	createdCust   *api.Customer
	createdCustN  int
	createVehErr  error
	createVehID   string
}

func (f *fakeDirectory) SearchCustomerByPhone(ctx context.Context, phone string) (*api.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if f.searchResult != nil {
		return f.searchResult, nil
	}
	return &api.Customer{ID: "c-1", Name: "Found", Phone: phone}, nil
}

func (f *fakeDirectory) CreateCustomer(ctx context.Context, payload api.CreateCustomerPayload) (*api.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdCustN++
	f.createdCust = &api.Customer{ID: "c-new", Name: payload.Name, Email: payload.Email, Phone: payload.Phone}
	return f.createdCust, nil
}

func (f *fakeDirectory) VehiclesByCustomer(ctx context.Context, customerID string) ([]api.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.vehiclesErr != nil {
		return nil, f.vehiclesErr
	}
	return f.vehiclesByID[customerID], nil
}

func (f *fakeDirectory) CreateVehicle(ctx context.Context, payload api.CreateVehiclePayload) (*api.Vehicle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createVehErr != nil {
		return nil, f.createVehErr
	}
	id := f.createVehID
	if id == "" {
		id = "v-new"
	}
	return &api.Vehicle{
		ID:           id,
		Make:         payload.Make,
		Model:        payload.Model,
		Year:         payload.Year,
		Registration: payload.Registration,
		OwnerID:      payload.CustomerID,
	}, nil
}

type fakeLedger struct {
	mu      sync.Mutex
	calls   int
	lastReq api.CreateInvoicePayload
	result  *api.Invoice
	err     error
}

func (f *fakeLedger) CreateInvoice(ctx context.Context, payload api.CreateInvoicePayload) (*api.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastReq = payload
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &api.Invoice{ID: "inv-1", CustomerID: payload.CustomerID, Amount: payload.Amount}, nil
}

func newTestComposer(dir *fakeDirectory, ledger *fakeLedger) *Composer {
	return New(dir, ledger, Options{})
}

func TestNewDraftStartsWithOneBlankLine(t *testing.T) {
	c := newTestComposer(&fakeDirectory{}, &fakeLedger{})
	draft := c.Draft()

	if len(draft.Services) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(draft.Services))
	}
	line := draft.Services[0]
	if line.Description != "" || line.Quantity != 1 || line.UnitPrice != 0 || line.Total != 0 {
		t.Errorf("unexpected blank line: %+v", line)
	}
	if draft.Status != "pending" {
		t.Errorf("expected default status pending, got %q", draft.Status)
	}
	if draft.PaymentMethod != "credit" {
		t.Errorf("expected default payment method credit, got %q", draft.PaymentMethod)
	}
	if draft.Date == "" {
		t.Error("expected date to be pre-filled")
	}
}

func TestLineItemListNeverDropsBelowOne(t *testing.T) {
	c := newTestComposer(&fakeDirectory{}, &fakeLedger{})

	c.RemoveLineItem(0)
	if got := len(c.Draft().Services); got != 1 {
		t.Fatalf("remove on single row should be a no-op, got %d rows", got)
	}

	c.AddLineItem()
	c.AddLineItem()
	c.RemoveLineItem(1)
	if got := len(c.Draft().Services); got != 2 {
		t.Fatalf("expected 2 rows, got %d", got)
	}

	c.RemoveLineItem(1)
	c.RemoveLineItem(0)
	if got := len(c.Draft().Services); got != 1 {
		t.Fatalf("list dropped below one row: %d", got)
	}
}

func TestUpdateLineItemRecomputesTotal(t *testing.T) {
	tests := []struct {
		name      string
		field     Field
		value     string
		wantQty   int
		wantPrice float64
		wantTotal float64
	}{
		{"quantity", FieldQuantity, "3", 3, 0, 0},
		{"price", FieldUnitPrice, "25.50", 1, 25.50, 25.50},
		{"invalid quantity coerces to zero", FieldQuantity, "abc", 0, 0, 0},
		{"invalid price coerces to zero", FieldUnitPrice, "", 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestComposer(&fakeDirectory{}, &fakeLedger{})
			c.UpdateLineItem(0, tt.field, tt.value)

			line := c.Draft().Services[0]
			if line.Quantity != tt.wantQty {
				t.Errorf("quantity = %d, want %d", line.Quantity, tt.wantQty)
			}
			if line.UnitPrice != tt.wantPrice {
				t.Errorf("unitPrice = %v, want %v", line.UnitPrice, tt.wantPrice)
			}
			if line.Total != tt.wantTotal {
				t.Errorf("total = %v, want %v", line.Total, tt.wantTotal)
			}
		})
	}
}

func TestUpdateLineItemLeavesOtherRowsUntouched(t *testing.T) {
	c := newTestComposer(&fakeDirectory{}, &fakeLedger{})
	c.AddLineItem()
	c.UpdateLineItem(0, FieldDescription, "Oil Change")
	c.UpdateLineItem(0, FieldUnitPrice, "25")

	c.UpdateLineItem(1, FieldUnitPrice, "99")

	first := c.Draft().Services[0]
	if first.Description != "Oil Change" || first.UnitPrice != 25 {
		t.Errorf("row 0 was modified: %+v", first)
	}
}

func TestTotalsDerivation(t *testing.T) {
	c := newTestComposer(&fakeDirectory{}, &fakeLedger{})
	c.UpdateLineItem(0, FieldDescription, "Oil Change")
	c.UpdateLineItem(0, FieldQuantity, "2")
	c.UpdateLineItem(0, FieldUnitPrice, "25.00")

	totals := c.Totals()
	if totals.Subtotal != 50.00 {
		t.Errorf("subtotal = %v, want 50.00", totals.Subtotal)
	}
	if totals.Tax != 3.75 {
		t.Errorf("tax = %v, want 3.75", totals.Tax)
	}
	if totals.GrandTotal != 53.75 {
		t.Errorf("grandTotal = %v, want 53.75", totals.GrandTotal)
	}
}

func TestComputeTotalsIsPure(t *testing.T) {
	items := []ServiceLineItem{
		{Description: "A", Quantity: 1, UnitPrice: 10, Total: 10},
		{Description: "B", Quantity: 2, UnitPrice: 15, Total: 30},
	}
	totals := ComputeTotals(items, DefaultTaxRate)

	if totals.Subtotal != 40 {
		t.Errorf("subtotal = %v, want 40", totals.Subtotal)
	}
	if totals.Tax != 3 {
		t.Errorf("tax = %v, want 3", totals.Tax)
	}
	if totals.GrandTotal != 43 {
		t.Errorf("grandTotal = %v, want 43", totals.GrandTotal)
	}
}

func TestSelectCustomerResetsVehicleSelection(t *testing.T) {
	dir := &fakeDirectory{vehiclesByID: map[string][]api.Vehicle{
		"cust-a": {{ID: "veh-a", OwnerID: "cust-a"}},
		"cust-b": {{ID: "veh-b1", OwnerID: "cust-b"}, {ID: "veh-b2", OwnerID: "cust-b"}},
	}}
	c := newTestComposer(dir, &fakeLedger{})

	c.SelectCustomer(context.Background(), "cust-a")
	c.SelectVehicle("veh-a")

	c.SelectCustomer(context.Background(), "cust-b")

	draft := c.Draft()
	if draft.VehicleID != "" {
		t.Errorf("vehicleId not reset on customer change: %q", draft.VehicleID)
	}
	vehicles := c.Vehicles()
	if len(vehicles) != 2 {
		t.Fatalf("expected 2 vehicles for cust-b, got %d", len(vehicles))
	}
	for _, v := range vehicles {
		if v.OwnerID != "cust-b" {
			t.Errorf("vehicle %s belongs to %s, not cust-b", v.ID, v.OwnerID)
		}
	}
}

func TestStaleVehicleFetchIsDiscarded(t *testing.T) {
	dir := &fakeDirectory{vehiclesByID: map[string][]api.Vehicle{
		"cust-a": {{ID: "veh-a", OwnerID: "cust-a"}},
		"cust-b": {{ID: "veh-b", OwnerID: "cust-b"}},
	}}
	c := newTestComposer(dir, &fakeLedger{})

	// Simulate selecting A then B where A's fetch resolves after B's.
	c.mu.Lock()
	c.draft.CustomerID = "cust-a"
	c.vehicleSeq++
	seqA := c.vehicleSeq
	c.draft.CustomerID = "cust-b"
	c.draft.VehicleID = ""
	c.vehicleSeq++
	seqB := c.vehicleSeq
	c.mu.Unlock()

	if err := c.loadVehicles(context.Background(), "cust-b", seqB); err != nil {
		t.Fatalf("fresh fetch failed: %v", err)
	}
	if err := c.loadVehicles(context.Background(), "cust-a", seqA); !errors.Is(err, apperror.ErrStaleResponse) {
		t.Fatalf("stale fetch not discarded, err = %v", err)
	}

	vehicles := c.Vehicles()
	if len(vehicles) != 1 || vehicles[0].OwnerID != "cust-b" {
		t.Errorf("vehicle list shows stale data: %+v", vehicles)
	}
}

func TestVehicleFetchFailureKeepsPriorList(t *testing.T) {
	dir := &fakeDirectory{vehiclesByID: map[string][]api.Vehicle{
		"cust-a": {{ID: "veh-a", OwnerID: "cust-a"}},
	}}
	c := newTestComposer(dir, &fakeLedger{})
	c.SelectCustomer(context.Background(), "cust-a")

	dir.mu.Lock()
	dir.vehiclesErr = apperror.NewServiceError(http.StatusInternalServerError, "boom")
	dir.mu.Unlock()

	c.mu.Lock()
	c.vehicleSeq++
	seq := c.vehicleSeq
	c.mu.Unlock()
	if err := c.loadVehicles(context.Background(), "cust-a", seq); err == nil {
		t.Fatal("expected fetch error")
	}

	if got := len(c.Vehicles()); got != 1 {
		t.Errorf("prior vehicle list was lost, got %d entries", got)
	}
}

func TestSearchDebounceIssuesSingleCall(t *testing.T) {
	dir := &fakeDirectory{}
	c := New(dir, &fakeLedger{}, Options{SearchDebounce: 20 * time.Millisecond})

	query := "9876543210"
	for i := 4; i <= len(query); i++ {
		c.SetCustomerQuery(context.Background(), query[:i])
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)

	dir.mu.Lock()
	calls := dir.searchCalls
	dir.mu.Unlock()
	if calls != 1 {
		t.Errorf("expected exactly 1 search call after debounce, got %d", calls)
	}
	if got := c.Customers(); len(got) != 1 {
		t.Errorf("expected 1 candidate, got %d", len(got))
	}
}

func TestShortQueryNeverDispatches(t *testing.T) {
	dir := &fakeDirectory{}
	c := New(dir, &fakeLedger{}, Options{SearchDebounce: 10 * time.Millisecond})

	c.SetCustomerQuery(context.Background(), "987")
	time.Sleep(50 * time.Millisecond)

	dir.mu.Lock()
	calls := dir.searchCalls
	dir.mu.Unlock()
	if calls != 0 {
		t.Errorf("query below minimum length dispatched %d calls", calls)
	}
}

func TestStaleSearchResponseIsDiscarded(t *testing.T) {
	dir := &fakeDirectory{searchResult: &api.Customer{ID: "c-old", Phone: "1111111111"}}
	c := newTestComposer(dir, &fakeLedger{})

	c.mu.Lock()
	c.searchSeq++
	oldSeq := c.searchSeq
	c.searchSeq++
	newSeq := c.searchSeq
	c.mu.Unlock()

	dir.mu.Lock()
	dir.searchResult = &api.Customer{ID: "c-new", Phone: "2222222222"}
	dir.mu.Unlock()
	if err := c.runSearch(context.Background(), "2222222222", newSeq); err != nil {
		t.Fatalf("fresh search failed: %v", err)
	}

	dir.mu.Lock()
	dir.searchResult = &api.Customer{ID: "c-old", Phone: "1111111111"}
	dir.mu.Unlock()
	if err := c.runSearch(context.Background(), "1111111111", oldSeq); !errors.Is(err, apperror.ErrStaleResponse) {
		t.Fatalf("stale search not discarded, err = %v", err)
	}

	customers := c.Customers()
	if len(customers) != 1 || customers[0].ID != "c-new" {
		t.Errorf("candidate list shows stale result: %+v", customers)
	}
}

func TestCreateCustomerValidatesAndSelects(t *testing.T) {
	dir := &fakeDirectory{vehiclesByID: map[string][]api.Vehicle{}}
	c := newTestComposer(dir, &fakeLedger{})

	if _, err := c.CreateCustomer(context.Background(), "", "a@b.com", "9876543210"); !apperror.IsValidation(err) {
		t.Fatalf("expected validation error for missing name, got %v", err)
	}
	if dir.createdCustN != 0 {
		t.Fatal("create call reached directory despite validation failure")
	}

	customer, err := c.CreateCustomer(context.Background(), "New Customer", "a@b.com", "9876543210")
	if err != nil {
		t.Fatalf("CreateCustomer failed: %v", err)
	}
	if c.Draft().CustomerID != customer.ID {
		t.Errorf("new customer not auto-selected, draft has %q", c.Draft().CustomerID)
	}
	found := false
	for _, cand := range c.Customers() {
		if cand.ID == customer.ID {
			found = true
		}
	}
	if !found {
		t.Error("new customer not appended to candidate list")
	}
}

func TestCreateVehicleRequiresCustomerAndFields(t *testing.T) {
	dir := &fakeDirectory{vehiclesByID: map[string][]api.Vehicle{}}
	c := newTestComposer(dir, &fakeLedger{})

	if _, err := c.CreateVehicle(context.Background(), api.CreateVehiclePayload{
		Make: "Honda", Model: "City", Year: "2020", Registration: "MH12AB1234",
	}); !apperror.IsValidation(err) {
		t.Fatalf("expected validation error without a selected customer, got %v", err)
	}

	c.SelectCustomer(context.Background(), "cust-a")

	if _, err := c.CreateVehicle(context.Background(), api.CreateVehiclePayload{Make: "Honda"}); !apperror.IsValidation(err) {
		t.Fatalf("expected validation error for missing fields, got %v", err)
	}

	vehicle, err := c.CreateVehicle(context.Background(), api.CreateVehiclePayload{
		Make: "Honda", Model: "City", Year: "2020", Registration: "MH12AB1234",
	})
	if err != nil {
		t.Fatalf("CreateVehicle failed: %v", err)
	}
	if c.Draft().VehicleID != vehicle.ID {
		t.Errorf("new vehicle not auto-selected, draft has %q", c.Draft().VehicleID)
	}
	if got := len(c.Vehicles()); got != 1 {
		t.Errorf("new vehicle not appended, candidate count %d", got)
	}
}

func TestDialogStatesAreMutuallyExclusive(t *testing.T) {
	c := newTestComposer(&fakeDirectory{}, &fakeLedger{})

	c.OpenDialog(DialogAddCustomer)
	if c.Dialog() != DialogAddCustomer {
		t.Fatalf("dialog = %v, want DialogAddCustomer", c.Dialog())
	}
	c.OpenDialog(DialogAddVehicle)
	if c.Dialog() != DialogAddVehicle {
		t.Fatalf("dialog = %v, want DialogAddVehicle", c.Dialog())
	}
	c.CloseDialog()
	if c.Dialog() != DialogNone {
		t.Fatalf("dialog = %v, want DialogNone", c.Dialog())
	}
}

func TestSubmitValidation(t *testing.T) {
	makeReady := func(c *Composer) {
		c.SelectCustomer(context.Background(), "cust-a")
		c.SelectVehicle("veh-a")
		c.SetDate("2026-08-30")
		c.UpdateLineItem(0, FieldDescription, "Oil Change")
		c.UpdateLineItem(0, FieldUnitPrice, "25")
	}

	tests := []struct {
		name      string
		mutate    func(c *Composer)
		wantField string
	}{
		{"missing customer", func(c *Composer) {
			c.mu.Lock()
			c.draft.CustomerID = ""
			c.mu.Unlock()
		}, "customerId"},
		{"missing vehicle", func(c *Composer) {
			c.SelectVehicle("")
		}, "vehicleId"},
		{"missing date", func(c *Composer) {
			c.SetDate("")
		}, "date"},
		{"empty description", func(c *Composer) {
			c.UpdateLineItem(0, FieldDescription, "")
		}, "services[0].description"},
		{"zero unit price", func(c *Composer) {
			c.UpdateLineItem(0, FieldUnitPrice, "0")
		}, "services[0].unitPrice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := &fakeDirectory{vehiclesByID: map[string][]api.Vehicle{}}
			ledger := &fakeLedger{}
			c := newTestComposer(dir, ledger)
			makeReady(c)
			tt.mutate(c)

			_, err := c.Submit(context.Background())
			if !apperror.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			appErr := apperror.GetAppError(err)
			if len(appErr.Errors) == 0 || appErr.Errors[0].Field != tt.wantField {
				t.Errorf("error field = %+v, want %s", appErr.Errors, tt.wantField)
			}
			if ledger.calls != 0 {
				t.Error("network create-call was invoked despite validation failure")
			}
		})
	}
}

func TestSubmitBuildsNormalizedPayload(t *testing.T) {
	dir := &fakeDirectory{vehiclesByID: map[string][]api.Vehicle{}}
	ledger := &fakeLedger{}
	c := newTestComposer(dir, ledger)

	c.SelectCustomer(context.Background(), "cust-a")
	c.SelectVehicle("veh-a")
	c.SetDate("2026-08-30")
	c.UpdateLineItem(0, FieldDescription, "Oil Change")
	c.UpdateLineItem(0, FieldQuantity, "2")
	c.UpdateLineItem(0, FieldUnitPrice, "25.00")

	invoice, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if invoice == nil {
		t.Fatal("expected invoice result")
	}

	req := ledger.lastReq
	if req.DueDate != "2026-08-30" {
		t.Errorf("dueDate should default to date, got %q", req.DueDate)
	}
	if req.Status != "pending" {
		t.Errorf("status = %q, want pending", req.Status)
	}
	if req.PaymentMethod != "credit" {
		t.Errorf("paymentMethod = %q, want credit", req.PaymentMethod)
	}
	if req.Amount != 53.75 {
		t.Errorf("amount = %v, want 53.75", req.Amount)
	}
	if len(req.Services) != 1 || req.Services[0].Total != 50 {
		t.Errorf("unexpected services payload: %+v", req.Services)
	}

	// Draft is replaced with a fresh one on success.
	draft := c.Draft()
	if draft.CustomerID != "" || draft.VehicleID != "" || len(draft.Services) != 1 {
		t.Errorf("draft not reset after success: %+v", draft)
	}
}

func TestFailedSubmitKeepsDraftIntact(t *testing.T) {
	dir := &fakeDirectory{vehiclesByID: map[string][]api.Vehicle{}}
	ledger := &fakeLedger{err: apperror.NewServiceError(http.StatusInternalServerError, "ledger down")}
	c := newTestComposer(dir, ledger)

	c.SelectCustomer(context.Background(), "cust-a")
	c.SelectVehicle("veh-a")
	c.SetDate("2026-08-30")
	c.UpdateLineItem(0, FieldDescription, "Brake Pads")
	c.UpdateLineItem(0, FieldUnitPrice, "80")
	before := c.Draft()

	_, err := c.Submit(context.Background())
	if err == nil {
		t.Fatal("expected submission error")
	}

	after := c.Draft()
	if after.CustomerID != before.CustomerID || after.VehicleID != before.VehicleID {
		t.Error("selection changed after failed submit")
	}
	if len(after.Services) != len(before.Services) || after.Services[0] != before.Services[0] {
		t.Error("line items changed after failed submit")
	}
	if !strings.Contains(c.LastError(), "ledger down") {
		t.Errorf("banner message = %q, want server message", c.LastError())
	}

	// Screen stays re-submittable.
	ledger.mu.Lock()
	ledger.err = nil
	ledger.mu.Unlock()
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if c.LastError() != "" {
		t.Errorf("banner not cleared after successful retry: %q", c.LastError())
	}
}
