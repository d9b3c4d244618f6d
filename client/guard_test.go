package client

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"gymstream/client/store"
)

func seededManager(t *testing.T, role string) *Manager {
	t.Helper()

	c, st := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	if role != "" {
		st.Set(store.KeyToken, "tok")
		st.Set(store.KeyUser, `{"username":"someone","role":"`+role+`"}`)
	}
	return NewManager(c)
}

func TestGuard_AnonymousRedirectsToLogin(t *testing.T) {
	g := NewGuard(seededManager(t, ""))

	assert.Equal(t, RedirectLogin, g.Check())
	assert.Equal(t, RedirectLogin, g.Check("ADMIN"))
}

func TestGuard_AuthenticatedNoRequirementAllows(t *testing.T) {
	g := NewGuard(seededManager(t, "MEMBER"))
	assert.Equal(t, Allow, g.Check())
}

func TestGuard_RoleMatchAllows(t *testing.T) {
	g := NewGuard(seededManager(t, "STAFF"))
	assert.Equal(t, Allow, g.Check("ADMIN", "STAFF"))
}

func TestGuard_RoleMismatchRedirectsHome(t *testing.T) {
	g := NewGuard(seededManager(t, "MEMBER"))
	assert.Equal(t, RedirectHome, g.Check("ADMIN", "STAFF"))
}
