package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymstream/client/store"
)

func signinStub(t *testing.T, result SigninResult) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/signin" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	}
}

func TestManager_LoginPersistsSession(t *testing.T) {
	c, st := newTestClient(t, signinStub(t, SigninResult{
		Token:    "jwt-abc",
		ID:       1,
		Username: "admin",
		Email:    "admin@gymstream.local",
		Roles:    []string{"ROLE_ADMIN"},
	}))
	m := NewManager(c)

	session, err := m.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.True(t, session.Authenticated)
	assert.Equal(t, "ADMIN", session.User.Role)

	token, ok := st.Get(store.KeyToken)
	require.True(t, ok)
	assert.Equal(t, "jwt-abc", token)

	userJSON, ok := st.Get(store.KeyUser)
	require.True(t, ok)
	var saved AuthUser
	require.NoError(t, json.Unmarshal([]byte(userJSON), &saved))
	assert.Equal(t, "admin", saved.Username)
	assert.Equal(t, "ADMIN", saved.Role)
}

func TestManager_LoginFailureLeavesStateAlone(t *testing.T) {
	c, st := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Error: Invalid username or password"}`))
	})
	m := NewManager(c)

	_, err := m.Login(context.Background(), "admin", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Error: Invalid username or password", err.Error())

	assert.False(t, m.Current().Authenticated)
	_, hasToken := st.Get(store.KeyToken)
	assert.False(t, hasToken)
}

func TestManager_LogoutClearsEverything(t *testing.T) {
	c, st := newTestClient(t, signinStub(t, SigninResult{
		Token: "jwt-abc", Username: "admin", Roles: []string{"ROLE_ADMIN"},
	}))
	m := NewManager(c)

	_, err := m.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	m.Logout()
	assert.False(t, m.Current().Authenticated)
	_, hasToken := st.Get(store.KeyToken)
	assert.False(t, hasToken)
	_, hasUser := st.Get(store.KeyUser)
	assert.False(t, hasUser)
}

func TestManager_LogoutStopsSendingToken(t *testing.T) {
	var gotAuth []string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/signin" {
			_ = json.NewEncoder(w).Encode(SigninResult{Token: "jwt-abc", Username: "admin", Roles: []string{"ROLE_ADMIN"}})
			return
		}
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		w.Write([]byte("[]"))
	})
	m := NewManager(c)

	_, err := m.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	_, err = c.Users.List(context.Background())
	require.NoError(t, err)

	m.Logout()
	_, err = c.Users.List(context.Background())
	require.NoError(t, err)

	require.Len(t, gotAuth, 2)
	assert.Equal(t, "Bearer jwt-abc", gotAuth[0], "logged in call carries the token")
	assert.Empty(t, gotAuth[1], "post-logout call must not carry a token")
}

func TestManager_RoundTripFromStore(t *testing.T) {
	fs := afero.NewMemMapFs()

	// First run: log in against a stub backend.
	srv := httptest.NewServer(signinStub(t, SigninResult{
		Token: "jwt-abc", ID: 3, Username: "terry",
		Roles: []string{"ROLE_TRAINER", "ROLE_MEMBER"},
	}))
	c := New(Config{BaseURL: srv.URL}, store.New(fs, "/state"))
	_, err := NewManager(c).Login(context.Background(), "terry", "pw")
	require.NoError(t, err)
	srv.Close()

	// Second run: no backend at all; the session must come from the store.
	dead := New(Config{BaseURL: "http://127.0.0.1:1"}, store.New(fs, "/state"))
	session := NewManager(dead).Current()
	assert.True(t, session.Authenticated)
	assert.Equal(t, "terry", session.User.Username)
	assert.Equal(t, "TRAINER", session.User.Role, "first role wins")
}

func TestManager_InvalidateResetsToAnonymous(t *testing.T) {
	c, _ := newTestClient(t, signinStub(t, SigninResult{
		Token: "jwt-abc", Username: "admin", Roles: []string{"ROLE_ADMIN"},
	}))
	m := NewManager(c)

	_, err := m.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	m.Invalidate()
	assert.False(t, m.Current().Authenticated)
}

func TestManager_ReloginRearmsUnauthorizedHook(t *testing.T) {
	var m *Manager
	fired := 0
	c, st := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/signin" {
			_ = json.NewEncoder(w).Encode(SigninResult{Token: "jwt-abc", Username: "admin", Roles: []string{"ROLE_ADMIN"}})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Error: token revoked"}`))
	}, WithUnauthorizedHook(func() {
		fired++
		m.Invalidate()
	}))
	m = NewManager(c)

	_, err := m.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	_, err = c.Users.List(context.Background())
	require.Error(t, err)
	require.Equal(t, 1, fired)
	assert.False(t, m.Current().Authenticated)

	// Log back in inside the debounce window, then lose the new session to
	// a stale 401. The manager must not stay authenticated over an empty
	// store.
	_, err = m.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	_, err = c.Users.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, fired, "revoking the new session must fire the hook again")
	assert.False(t, m.Current().Authenticated)
	_, hasToken := st.Get(store.KeyToken)
	assert.False(t, hasToken)
}

func TestManager_TokenExpiresAt(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("whatever"))
	require.NoError(t, err)

	c, st := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	m := NewManager(c)

	if _, ok := m.TokenExpiresAt(); ok {
		t.Fatal("no token should mean no expiry")
	}

	st.Set(store.KeyToken, raw)
	got, ok := m.TokenExpiresAt()
	require.True(t, ok)
	assert.True(t, got.Equal(exp))

	st.Set(store.KeyToken, "not-a-jwt")
	_, ok = m.TokenExpiresAt()
	assert.False(t, ok)
}

func TestPrimaryRole(t *testing.T) {
	assert.Equal(t, "ADMIN", PrimaryRole([]string{"ROLE_ADMIN"}, ""))
	assert.Equal(t, "TRAINER", PrimaryRole([]string{"ROLE_TRAINER", "ROLE_MEMBER"}, ""))
	assert.Equal(t, "MEMBER", PrimaryRole(nil, "ROLE_MEMBER"))
	assert.Equal(t, "STAFF", PrimaryRole(nil, "STAFF"))
}
