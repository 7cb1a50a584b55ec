package session

import (
	"context"
	"testing"
)

func newGuardInState(t *testing.T, state State) *Guard {
	t.Helper()
	m := NewManager(NewMemoryStore(), &fakeAuth{result: validLoginResult()})
	switch state {
	case StateInitializing:
		// Manager starts here.
	case StateUnauthenticated:
		m.Load()
	case StateAuthenticated:
		m.Load()
		if err := m.Login(context.Background(), "9876543210", "password123"); err != nil {
			t.Fatalf("Login failed: %v", err)
		}
	}
	return NewGuard(m, []string{"/public"})
}

func TestGuardEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		state State
		path  string
		want  Decision
	}{
		{"initializing holds rendering", StateInitializing, "/invoices", DecisionWait},
		{"unauthenticated protected route", StateUnauthenticated, "/invoices", DecisionRedirectLogin},
		{"unauthenticated login route", StateUnauthenticated, "/login", DecisionAllow},
		{"unauthenticated public route", StateUnauthenticated, "/public/invoice/123", DecisionAllow},
		{"authenticated protected route", StateAuthenticated, "/invoices", DecisionAllow},
		{"authenticated login route bounces home", StateAuthenticated, "/login", DecisionRedirectHome},
		{"authenticated public route", StateAuthenticated, "/public/invoice/123", DecisionAllow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGuardInState(t, tt.state)
			if got := g.Evaluate(tt.path); got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestGuardReactsToInvalidation(t *testing.T) {
	m := NewManager(NewMemoryStore(), &fakeAuth{result: validLoginResult()})
	m.Load()
	if err := m.Login(context.Background(), "9876543210", "password123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	g := NewGuard(m, []string{"/public"})

	if got := g.Evaluate("/invoices/new"); got != DecisionAllow {
		t.Fatalf("Evaluate = %v, want allow", got)
	}

	// A 401 from any request tears the session down globally; the next
	// evaluation sends the viewer to the login screen.
	m.Invalidate()

	if got := g.Evaluate("/invoices/new"); got != DecisionRedirectLogin {
		t.Errorf("Evaluate after invalidation = %v, want redirect-login", got)
	}
}

func TestGuardIsPublic(t *testing.T) {
	g := newGuardInState(t, StateUnauthenticated)

	if !g.IsPublic("/login") {
		t.Error("login route must be public")
	}
	if !g.IsPublic("/public/invoice/abc") {
		t.Error("public prefix route must be public")
	}
	if g.IsPublic("/invoices") {
		t.Error("protected route reported as public")
	}
}
