// Package client is the Go consumer of the gymstream backend API. It owns
// the session token, injects it on every request and reacts to the backend
// revoking it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/joeshaw/envdecode"

	"gymstream/client/store"
)

// Config holds everything the client needs to reach the backend.
type Config struct {
	BaseURL  string        `env:"GYM_API_URL,default=http://localhost:8080"`
	Timeout  time.Duration `env:"GYM_API_TIMEOUT,default=30s"`
	StateDir string        `env:"GYM_STATE_DIR,default=.gymstream"`
}

// LoadConfig decodes the client configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// APIError is a non-2xx response from the backend, carrying the backend's
// message verbatim when one was present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// A fired unauthorized hook suppresses further firings for this long, so a
// burst of in-flight requests all hitting 401 triggers one navigation.
const unauthorizedDebounce = 2 * time.Second

// Client talks to the gymstream backend. All outbound traffic goes through
// its single request path so the bearer token and 401 handling are uniform.
type Client struct {
	baseURL string
	httpc   *http.Client
	store   *store.Store

	mu               sync.Mutex
	onUnauthorized   func()
	lastUnauthorized time.Time

	Auth               *AuthService
	Users              *UsersService
	Memberships        *MembershipsService
	Equipment          *EquipmentService
	GymClasses         *GymClassesService
	TrainingSessions   *TrainingSessionsService
	ClassRegistrations *ClassRegistrationsService
	Payments           *PaymentsService
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithUnauthorizedHook registers the callback fired when the backend rejects
// the session token. The UI wires its navigate-to-login here.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// New creates a client for the backend at cfg.BaseURL, authenticating from
// the session state in st.
func New(cfg Config, st *store.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: cfg.BaseURL,
		httpc:   &http.Client{Timeout: cfg.Timeout},
		store:   st,
	}
	if c.httpc.Timeout == 0 {
		c.httpc.Timeout = 30 * time.Second
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthService{c: c}
	c.Users = &UsersService{c: c}
	c.Memberships = &MembershipsService{c: c}
	c.Equipment = &EquipmentService{c: c}
	c.GymClasses = &GymClassesService{c: c}
	c.TrainingSessions = &TrainingSessionsService{c: c}
	c.ClassRegistrations = &ClassRegistrationsService{c: c}
	c.Payments = &PaymentsService{c: c}
	return c
}

// Store exposes the session store backing this client.
func (c *Client) Store() *store.Store {
	return c.store
}

// do sends one request and decodes the response into out (when non-nil).
// A 401 clears the session before the error is returned.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.store.Get(store.KeyToken); ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.sessionRevoked()
	}
	if resp.StatusCode >= 400 {
		return apiError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// sessionRevoked clears the stored session and fires the unauthorized hook,
// at most once per debounce window.
func (c *Client) sessionRevoked() {
	c.store.Clear()

	c.mu.Lock()
	hook := c.onUnauthorized
	now := time.Now()
	fire := hook != nil && now.Sub(c.lastUnauthorized) > unauthorizedDebounce
	if fire {
		c.lastUnauthorized = now
	}
	c.mu.Unlock()

	if fire {
		hook()
	}
}

// resetUnauthorized re-arms the unauthorized hook. The session manager calls
// it on a fresh login so revoking the new session fires the hook even inside
// the previous session's debounce window.
func (c *Client) resetUnauthorized() {
	c.mu.Lock()
	c.lastUnauthorized = time.Time{}
	c.mu.Unlock()
}

func apiError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Message
	}
	return apiErr
}
