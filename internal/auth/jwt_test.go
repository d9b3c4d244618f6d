package auth

import (
	"testing"
	"time"

	"gymstream/models"
)

func testUser() models.User {
	return models.User{
		ID:       7,
		Username: "jane",
		Role:     models.RoleTrainer,
	}
}

func TestNewTokenManager_RequiresSecret(t *testing.T) {
	if _, err := NewTokenManager("", time.Hour); err != ErrSecretRequired {
		t.Errorf("expected ErrSecretRequired, got %v", err)
	}
}

func TestIssueAndParse_RoundTrip(t *testing.T) {
	mgr, err := NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to create token manager: %v", err)
	}

	token, expiresAt, err := mgr.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if !expiresAt.After(time.Now()) {
		t.Error("expected expiry in the future")
	}

	claims, err := mgr.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.Subject != "jane" {
		t.Errorf("expected subject 'jane', got %q", claims.Subject)
	}
	if claims.UserID != 7 {
		t.Errorf("expected uid 7, got %d", claims.UserID)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "ROLE_TRAINER" {
		t.Errorf("expected roles [ROLE_TRAINER], got %v", claims.Roles)
	}
}

func TestParse_RejectsExpiredToken(t *testing.T) {
	mgr, err := NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to create token manager: %v", err)
	}
	mgr.ttl = -time.Minute

	token, _, err := mgr.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := mgr.Parse(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParse_RejectsWrongSecret(t *testing.T) {
	issuer, _ := NewTokenManager("secret-a", time.Hour)
	verifier, _ := NewTokenManager("secret-b", time.Hour)

	token, _, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := verifier.Parse(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestClaims_PrimaryRole(t *testing.T) {
	claims := Claims{Roles: []string{"ROLE_TRAINER", "ROLE_MEMBER"}}
	if got := claims.PrimaryRole(); got != models.RoleTrainer {
		t.Errorf("expected TRAINER, got %q", got)
	}

	claims = Claims{}
	if got := claims.PrimaryRole(); got != "" {
		t.Errorf("expected empty role, got %q", got)
	}
}
