package session

import "strings"

// Decision is the guard's verdict for a navigation attempt.
type Decision int

const (
	// DecisionWait means the session is still loading; hold rendering.
	DecisionWait Decision = iota
	DecisionAllow
	DecisionRedirectLogin
	DecisionRedirectHome
)

func (d Decision) String() string {
	switch d {
	case DecisionWait:
		return "wait"
	case DecisionAllow:
		return "allow"
	case DecisionRedirectLogin:
		return "redirect-login"
	case DecisionRedirectHome:
		return "redirect-home"
	default:
		return "unknown"
	}
}

const (
	// LoginRoute is where unauthenticated viewers are sent.
	LoginRoute = "/login"
	// HomeRoute is where authenticated viewers landing on the login
	// screen are sent instead.
	HomeRoute = "/"
)

// Guard gates navigation behind a valid session, exempting routes that
// carry a public prefix and the login route itself.
type Guard struct {
	manager        *Manager
	publicPrefixes []string
}

// NewGuard creates a guard over the given session manager.
func NewGuard(manager *Manager, publicPrefixes []string) *Guard {
	return &Guard{
		manager:        manager,
		publicPrefixes: publicPrefixes,
	}
}

// IsPublic reports whether path is exempt from the session check.
func (g *Guard) IsPublic(path string) bool {
	if path == LoginRoute {
		return true
	}
	for _, prefix := range g.publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Evaluate decides what to do with a navigation to path given the
// current session state.
func (g *Guard) Evaluate(path string) Decision {
	switch g.manager.State() {
	case StateInitializing:
		return DecisionWait
	case StateAuthenticated:
		if path == LoginRoute {
			return DecisionRedirectHome
		}
		return DecisionAllow
	default:
		if g.IsPublic(path) {
			return DecisionAllow
		}
		return DecisionRedirectLogin
	}
}
