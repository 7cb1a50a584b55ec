package session

import (
	"context"
	"encoding/json"
	"log"
	"regexp"
	"sync"

	"github.com/miteshrvasoya/autofix-workshop/internal/dashboard/api"
	"github.com/miteshrvasoya/autofix-workshop/pkg/apperror"
)

// State is the authentication state of the dashboard.
type State int

const (
	// StateInitializing means the persisted session has not been loaded yet.
	StateInitializing State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Subject is the authenticated identity persisted alongside the token.
type Subject struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
	Role   string `json:"role"`
}

// AuthClient is the external auth collaborator used by Login.
type AuthClient interface {
	Login(ctx context.Context, mobile, password string) (*api.LoginResult, error)
}

var mobilePattern = regexp.MustCompile(`^\d{10}$`)

const minPasswordLength = 6

// Manager owns the session lifecycle: load on startup, login, logout,
// and global invalidation on an authorization failure from any request.
// A session is valid only when token and subject are present together;
// partial persisted state is treated as logged out.
type Manager struct {
	mu      sync.Mutex
	store   Store
	auth    AuthClient
	state   State
	token   string
	subject *Subject
}

// NewManager creates a manager in the Initializing state. Call Load to
// restore any persisted session before evaluating routes.
func NewManager(store Store, auth AuthClient) *Manager {
	return &Manager{
		store: store,
		auth:  auth,
		state: StateInitializing,
	}
}

// Load restores a previously persisted session. Malformed persisted state
// is cleaned up and treated as absence of a session, never as a fatal error.
func (m *Manager) Load() {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, err := m.store.ReadToken()
	if err != nil {
		log.Printf("session: failed to read token: %v", err)
		m.becomeUnauthenticatedLocked()
		return
	}
	raw, err := m.store.ReadSubject()
	if err != nil {
		log.Printf("session: failed to read subject: %v", err)
		m.becomeUnauthenticatedLocked()
		return
	}

	if token == "" || len(raw) == 0 {
		m.becomeUnauthenticatedLocked()
		return
	}

	var subject Subject
	if err := json.Unmarshal(raw, &subject); err != nil || subject.ID == "" {
		log.Printf("session: discarding malformed persisted subject: %v", err)
		m.becomeUnauthenticatedLocked()
		return
	}

	m.token = token
	m.subject = &subject
	m.state = StateAuthenticated
}

// Login validates the credentials locally, then calls the auth service.
// Local validation failures never reach the network.
func (m *Manager) Login(ctx context.Context, mobile, password string) error {
	var fieldErrors []apperror.FieldError
	if !mobilePattern.MatchString(mobile) {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "mobile",
			Message: "Enter a valid 10 digit mobile number",
		})
	}
	if len(password) < minPasswordLength {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "password",
			Message: "Password must be at least 6 characters",
		})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}

	result, err := m.auth.Login(ctx, mobile, password)
	if err != nil {
		return err
	}

	subject := &Subject{
		ID:     result.User.ID,
		Name:   result.User.Name,
		Mobile: result.User.Mobile,
		Role:   result.User.Role,
	}
	encoded, err := json.Marshal(subject)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Write(result.Token, encoded); err != nil {
		log.Printf("session: failed to persist session: %v", err)
	}
	m.token = result.Token
	m.subject = subject
	m.state = StateAuthenticated
	return nil
}

// Logout clears the session unconditionally. Even if clearing the store
// fails, the in-memory state still transitions to Unauthenticated.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.becomeUnauthenticatedLocked()
}

// Invalidate tears the session down in response to an authorization
// failure from any request. Wire this as the API client's 401 hook.
func (m *Manager) Invalidate() {
	m.Logout()
}

func (m *Manager) becomeUnauthenticatedLocked() {
	if err := m.store.Clear(); err != nil {
		log.Printf("session: failed to clear persisted session: %v", err)
	}
	m.token = ""
	m.subject = nil
	m.state = StateUnauthenticated
}

// Token returns the current bearer token, or empty when logged out.
// Satisfies api.TokenSource.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// State returns the current authentication state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subject returns a copy of the authenticated identity, or nil.
func (m *Manager) Subject() *Subject {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.subject == nil {
		return nil
	}
	subject := *m.subject
	return &subject
}
