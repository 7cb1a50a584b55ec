package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/miteshrvasoya/autofix-workshop/pkg/apperror"
)

// TokenSource supplies the bearer token attached to authenticated requests.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Client talks to the workshop API. Every response arrives in the
// {success, data, message} envelope; non-success responses are converted
// to *apperror.AppError carrying the server message.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized func()
}

// NewClient creates a client for the API at baseURL. tokens may be nil for
// a client that only calls public endpoints.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     tokens,
	}
}

// SetUnauthorizedHook registers a callback invoked whenever any request
// comes back 401. The session layer uses this to tear down globally.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Errors  []apperror.FieldError `json:"errors"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperror.NewBadRequestError("Failed to encode request: " + err.Error())
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperror.NewBadRequestError("Failed to build request: " + err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperror.NewServiceError(http.StatusServiceUnavailable, "Unable to reach the server")
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return apperror.NewServiceError(resp.StatusCode, "")
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apperror.NewServiceError(http.StatusUnauthorized, env.Message)
	}

	if resp.StatusCode >= 300 || !env.Success {
		appErr := apperror.NewServiceError(resp.StatusCode, env.Message)
		appErr.Errors = env.Errors
		return appErr
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return apperror.NewServiceError(resp.StatusCode, "Unexpected response shape")
		}
	}

	return nil
}

// Login authenticates by mobile number and password.
func (c *Client) Login(ctx context.Context, mobile, password string) (*LoginResult, error) {
	body := map[string]string{"mobile": mobile, "password": password}
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Me fetches the account behind the current token.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SearchCustomerByPhone looks up a customer by exact phone number.
func (c *Client) SearchCustomerByPhone(ctx context.Context, phone string) (*Customer, error) {
	var customer Customer
	if err := c.do(ctx, http.MethodGet, "/customer/search_by_phone/"+url.PathEscape(phone), nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// CreateCustomer creates a new customer record.
func (c *Client) CreateCustomer(ctx context.Context, payload CreateCustomerPayload) (*Customer, error) {
	var customer Customer
	if err := c.do(ctx, http.MethodPost, "/customer", payload, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetCustomer fetches a customer by ID.
func (c *Client) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	var customer Customer
	if err := c.do(ctx, http.MethodGet, "/customer/"+url.PathEscape(id), nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// VehiclesByCustomer lists every vehicle owned by the given customer.
func (c *Client) VehiclesByCustomer(ctx context.Context, customerID string) ([]Vehicle, error) {
	var vehicles []Vehicle
	if err := c.do(ctx, http.MethodGet, "/vehicle/get_by_customer_id/"+url.PathEscape(customerID), nil, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// CreateVehicle creates a new vehicle record.
func (c *Client) CreateVehicle(ctx context.Context, payload CreateVehiclePayload) (*Vehicle, error) {
	var vehicle Vehicle
	if err := c.do(ctx, http.MethodPost, "/vehicle", payload, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// CreateInvoice submits a finished invoice.
func (c *Client) CreateInvoice(ctx context.Context, payload CreateInvoicePayload) (*Invoice, error) {
	var invoice Invoice
	if err := c.do(ctx, http.MethodPost, "/invoice", payload, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// GetPublicInvoice fetches an invoice through the unauthenticated
// sharing route.
func (c *Client) GetPublicInvoice(ctx context.Context, id string) (*Invoice, error) {
	var invoice Invoice
	if err := c.do(ctx, http.MethodGet, "/public/invoice/"+url.PathEscape(id), nil, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// GetInvoice fetches an invoice by ID.
func (c *Client) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	var invoice Invoice
	if err := c.do(ctx, http.MethodGet, "/invoice/"+url.PathEscape(id), nil, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// ListInvoices fetches one page of invoices, optionally filtered by
// status ("all" disables the filter) and a free-text search term.
func (c *Client) ListInvoices(ctx context.Context, page, limit int, status, search string) (*InvoicePage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	if status != "" {
		query.Set("status", status)
	}
	if search != "" {
		query.Set("search", search)
	}

	var result InvoicePage
	if err := c.do(ctx, http.MethodGet, "/invoice?"+query.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
