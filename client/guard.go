package client

// Decision is what a route guard check tells the UI to do.
type Decision int

const (
	// Allow lets the navigation proceed.
	Allow Decision = iota
	// RedirectLogin sends an anonymous user to the login screen.
	RedirectLogin
	// RedirectHome bounces an authenticated user who lacks the role.
	RedirectHome
)

// Guard makes routing decisions from the current session. It is pure and
// synchronous: no network, no side effects.
type Guard struct {
	sessions *Manager
}

// NewGuard creates a guard over the session manager.
func NewGuard(sessions *Manager) *Guard {
	return &Guard{sessions: sessions}
}

// Check decides whether the current user may enter a route requiring one of
// the given roles. An empty required set means any signed-in user may enter.
func (g *Guard) Check(required ...string) Decision {
	session := g.sessions.Current()
	if !session.Authenticated {
		return RedirectLogin
	}
	if len(required) == 0 {
		return Allow
	}
	for _, role := range required {
		if session.User.Role == role {
			return Allow
		}
	}
	return RedirectHome
}
