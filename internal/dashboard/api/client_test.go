package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/miteshrvasoya/autofix-workshop/pkg/apperror"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func envelopeResponse(w http.ResponseWriter, status int, success bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"message": message,
		"data":    data,
	})
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		envelopeResponse(w, http.StatusOK, true, "ok", Customer{ID: "c-1"})
	}))
	defer server.Close()

	client := NewClient(server.URL, staticTokens("token-abc"))
	if _, err := client.GetCustomer(context.Background(), "c-1"); err != nil {
		t.Fatalf("GetCustomer failed: %v", err)
	}
	if gotAuth != "Bearer token-abc" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
}

func TestClientOmitsHeaderWhenLoggedOut(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		envelopeResponse(w, http.StatusOK, true, "ok", Customer{ID: "c-1"})
	}))
	defer server.Close()

	client := NewClient(server.URL, staticTokens(""))
	if _, err := client.GetCustomer(context.Background(), "c-1"); err != nil {
		t.Fatalf("GetCustomer failed: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("unexpected Authorization header: %q", gotAuth)
	}
}

func TestClientDecodesEnvelopeData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/customer/search_by_phone/9876543210" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		envelopeResponse(w, http.StatusOK, true, "Customer found", Customer{
			ID: "c-1", Name: "Mitesh", Phone: "9876543210",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	customer, err := client.SearchCustomerByPhone(context.Background(), "9876543210")
	if err != nil {
		t.Fatalf("SearchCustomerByPhone failed: %v", err)
	}
	if customer.ID != "c-1" || customer.Name != "Mitesh" {
		t.Errorf("decoded customer = %+v", customer)
	}
}

func TestClientConvertsFailureEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		envelopeResponse(w, http.StatusNotFound, false, "Customer not found", nil)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.SearchCustomerByPhone(context.Background(), "0000000000")
	if err == nil {
		t.Fatal("expected error")
	}
	appErr := apperror.GetAppError(err)
	if appErr.Code != http.StatusNotFound {
		t.Errorf("code = %d, want 404", appErr.Code)
	}
	if appErr.Message != "Customer not found" {
		t.Errorf("message = %q, want server message", appErr.Message)
	}
}

func TestClientFallsBackToGenericMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		envelopeResponse(w, http.StatusInternalServerError, false, "", nil)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.GetInvoice(context.Background(), "x")
	if err == nil {
		t.Fatal("expected error")
	}
	if apperror.GetAppError(err).Message != "An error occurred" {
		t.Errorf("message = %q, want generic fallback", apperror.GetAppError(err).Message)
	}
}

func TestClientFiresUnauthorizedHookOn401(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		envelopeResponse(w, http.StatusUnauthorized, false, "Invalid or expired token", nil)
	}))
	defer server.Close()

	client := NewClient(server.URL, staticTokens("stale-token"))
	hookFired := 0
	client.SetUnauthorizedHook(func() { hookFired++ })

	_, err := client.CreateInvoice(context.Background(), CreateInvoicePayload{})
	if !apperror.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if hookFired != 1 {
		t.Errorf("unauthorized hook fired %d times, want 1", hookFired)
	}
}

func TestClientListInvoicesQuery(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		envelopeResponse(w, http.StatusOK, true, "ok", InvoicePage{
			Items:       []Invoice{{ID: "inv-1"}},
			TotalItems:  1,
			CurrentPage: 2,
			TotalPages:  5,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	page, err := client.ListInvoices(context.Background(), 2, 10, "pending", "honda")
	if err != nil {
		t.Fatalf("ListInvoices failed: %v", err)
	}
	if page.CurrentPage != 2 || page.TotalPages != 5 || len(page.Items) != 1 {
		t.Errorf("decoded page = %+v", page)
	}
	if gotQuery != "limit=10&page=2&search=honda&status=pending" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestClientTransportFailureIsServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := NewClient(server.URL, nil)
	_, err := client.GetCustomer(context.Background(), "c-1")
	if err == nil {
		t.Fatal("expected transport error")
	}
	if apperror.GetAppError(err).Message != "Unable to reach the server" {
		t.Errorf("message = %q", apperror.GetAppError(err).Message)
	}
}
