package client

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gymstream/client/store"
)

// State is where the session stands.
type State int

const (
	// StateUnknown means the saved session has not been loaded yet.
	StateUnknown State = iota
	StateAnonymous
	StateAuthenticated
)

// AuthUser is the signed-in account as persisted in the session store.
// Role holds the primary role with the ROLE_ prefix already stripped.
type AuthUser struct {
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Role      string   `json:"role"`
	Roles     []string `json:"roles"`
}

// Session is a point-in-time snapshot of the session state.
type Session struct {
	Authenticated bool
	User          AuthUser
}

// Manager owns the login lifecycle. It is the only writer of the session
// store; the API client reads the token from the same store on each request.
type Manager struct {
	client *Client
	store  *store.Store

	mu    sync.RWMutex
	state State
	user  AuthUser
}

// NewManager creates a session manager over the client's store. The saved
// session, if any, is loaded on first use.
func NewManager(c *Client) *Manager {
	return &Manager{client: c, store: c.Store(), state: StateUnknown}
}

// Login signs in and persists the session. The token is saved before the
// user record, and the in-memory state flips only after both are durable,
// so a crash mid-login can never leave a user without a token.
func (m *Manager) Login(ctx context.Context, username, password string) (Session, error) {
	result, err := m.client.Auth.Signin(ctx, username, password)
	if err != nil {
		return Session{}, err
	}

	user := AuthUser{
		ID:        result.ID,
		Username:  result.Username,
		Email:     result.Email,
		FirstName: result.FirstName,
		LastName:  result.LastName,
		Role:      PrimaryRole(result.Roles, result.Role),
		Roles:     result.Roles,
	}
	userJSON, err := json.Marshal(user)
	if err != nil {
		return Session{}, err
	}

	m.store.Set(store.KeyToken, result.Token)
	m.store.Set(store.KeyUser, string(userJSON))
	m.client.resetUnauthorized()

	m.mu.Lock()
	m.state = StateAuthenticated
	m.user = user
	m.mu.Unlock()

	return Session{Authenticated: true, User: user}, nil
}

// Register relays an account registration. It never touches the session:
// the new user still has to sign in.
func (m *Manager) Register(ctx context.Context, data SignupData) (string, error) {
	return m.client.Auth.Signup(ctx, data)
}

// Logout discards the session locally. There is no server-side session to
// tear down; the token simply stops being sent.
func (m *Manager) Logout() {
	m.store.Clear()

	m.mu.Lock()
	m.state = StateAnonymous
	m.user = AuthUser{}
	m.mu.Unlock()
}

// Invalidate resets the session to anonymous. Wire it to the client's
// unauthorized hook so a revoked token drops the in-memory session too.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	m.state = StateAnonymous
	m.user = AuthUser{}
	m.mu.Unlock()
}

// Current returns the session snapshot, loading persisted state on first
// call. No network traffic: a stale token stays "authenticated" until the
// backend rejects it.
func (m *Manager) Current() Session {
	m.mu.RLock()
	if m.state != StateUnknown {
		defer m.mu.RUnlock()
		return Session{Authenticated: m.state == StateAuthenticated, User: m.user}
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateUnknown {
		m.load()
	}
	return Session{Authenticated: m.state == StateAuthenticated, User: m.user}
}

// load hydrates from the store. Caller holds the write lock.
func (m *Manager) load() {
	m.state = StateAnonymous

	token, ok := m.store.Get(store.KeyToken)
	if !ok || token == "" {
		return
	}
	userJSON, ok := m.store.Get(store.KeyUser)
	if !ok {
		return
	}
	var user AuthUser
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return
	}

	m.state = StateAuthenticated
	m.user = user
}

// TokenExpiresAt decodes the stored token's expiry without verifying the
// signature. Display only: the backend is the sole judge of validity.
func (m *Manager) TokenExpiresAt() (time.Time, bool) {
	token, ok := m.store.Get(store.KeyToken)
	if !ok || token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// PrimaryRole picks the effective role from a wire authority list: the
// first entry wins, with the ROLE_ prefix stripped. fallback covers
// responses that carry a bare role instead of a list.
func PrimaryRole(roles []string, fallback string) string {
	if len(roles) == 0 {
		return strings.TrimPrefix(fallback, "ROLE_")
	}
	return strings.TrimPrefix(roles[0], "ROLE_")
}
