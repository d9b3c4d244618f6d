package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymstream/client/store"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *store.Store) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	st := store.New(afero.NewMemMapFs(), "/state")
	return New(Config{BaseURL: srv.URL}, st, opts...), st
}

func TestClient_InjectsBearerToken(t *testing.T) {
	var gotAuth string
	c, st := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("[]"))
	})

	st.Set(store.KeyToken, "tok-123")
	_, err := c.Users.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	sawHeader := false
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, sawHeader = r.Header["Authorization"]
		w.Write([]byte("[]"))
	})

	_, err := c.Users.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
	assert.False(t, sawHeader, "Authorization header should be absent, not empty")
}

func TestClient_UnauthorizedClearsStoreAndFiresHook(t *testing.T) {
	fired := 0
	c, st := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid or expired token"}`))
	}, WithUnauthorizedHook(func() { fired++ }))

	st.Set(store.KeyToken, "stale")
	st.Set(store.KeyUser, `{"username":"admin"}`)

	_, err := c.Users.List(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid or expired token", apiErr.Message)

	_, hasToken := st.Get(store.KeyToken)
	assert.False(t, hasToken, "token should be cleared")
	_, hasUser := st.Get(store.KeyUser)
	assert.False(t, hasUser, "user should be cleared")
	assert.Equal(t, 1, fired)
}

func TestClient_UnauthorizedHookDebounced(t *testing.T) {
	fired := 0
	c, st := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, WithUnauthorizedHook(func() { fired++ }))

	st.Set(store.KeyToken, "stale")
	for range 5 {
		_, _ = c.Users.List(context.Background())
	}
	assert.Equal(t, 1, fired, "a burst of 401s should fire the hook once")
}

func TestClient_ErrorCarriesBackendMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Error: Username is already taken!"}`))
	})

	_, err := c.Auth.Signup(context.Background(), SignupData{Username: "dup"})
	require.Error(t, err)
	assert.Equal(t, "Error: Username is already taken!", err.Error())
}

func TestClient_ErrorWithoutMessageFallsBack(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Users.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Bad Gateway", err.Error())
}

func TestIsNotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"user not found"}`))
	})

	_, err := c.Users.Get(context.Background(), 99)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(nil))
}

func TestClient_Dashboard(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/memberships/count/active":
			w.Write([]byte(`{"count":12}`))
		case "/api/gym-classes/count/active":
			w.Write([]byte(`{"count":4}`))
		case "/api/training-sessions/upcoming":
			w.Write([]byte(`[{},{},{}]`))
		case "/api/payments/overdue":
			w.Write([]byte(`[{}]`))
		case "/api/equipment/maintenance/needed":
			w.Write([]byte(`[]`))
		default:
			http.NotFound(w, r)
		}
	})

	d, err := c.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), d.ActiveMemberships)
	assert.Equal(t, int64(4), d.ActiveClasses)
	assert.Equal(t, 3, d.UpcomingSessions)
	assert.Equal(t, 1, d.OverduePayments)
	assert.Equal(t, 0, d.EquipmentMaintenance)
}

func TestClient_DashboardFailsWhole(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/payments/overdue" {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"failed to list payments"}`))
			return
		}
		w.Write([]byte(`{"count":0}`))
	})

	_, err := c.Dashboard(context.Background())
	require.Error(t, err)
}
