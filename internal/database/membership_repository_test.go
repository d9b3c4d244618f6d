package database

import (
	"testing"
	"time"

	"gymstream/models"
)

func createTestMembership(t *testing.T, repo *MembershipRepository, user models.User, status models.MembershipStatus) models.Membership {
	t.Helper()
	now := time.Now().UTC()
	m := models.Membership{
		User:      user.Ref(),
		Type:      models.MembershipBasic,
		Status:    status,
		Price:     29.99,
		StartDate: now.AddDate(0, -1, 0),
		EndDate:   now.AddDate(0, 11, 0),
	}
	if err := repo.Create(&m); err != nil {
		t.Fatalf("failed to create membership: %v", err)
	}
	return m
}

func TestMembershipCreate_LoadsUserRef(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db.Connection())
	repo := NewMembershipRepository(db.Connection())

	alice := createTestUser(t, users, "alice", models.RoleMember)
	m := createTestMembership(t, repo, alice, models.MembershipActive)

	if m.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if m.User.Username != "alice" {
		t.Errorf("expected embedded user 'alice', got %q", m.User.Username)
	}
	if m.User.Role != models.RoleMember {
		t.Errorf("expected embedded role MEMBER, got %q", m.User.Role)
	}
}

func TestMembershipGetActiveByUser(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db.Connection())
	repo := NewMembershipRepository(db.Connection())

	alice := createTestUser(t, users, "alice", models.RoleMember)
	createTestMembership(t, repo, alice, models.MembershipExpired)
	active := createTestMembership(t, repo, alice, models.MembershipActive)

	got, err := repo.GetActiveByUser(alice.ID)
	if err != nil {
		t.Fatalf("GetActiveByUser failed: %v", err)
	}
	if got.ID != active.ID {
		t.Errorf("expected membership %d, got %d", active.ID, got.ID)
	}
}

func TestMembershipGetActiveByUser_None(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db.Connection())
	repo := NewMembershipRepository(db.Connection())

	alice := createTestUser(t, users, "alice", models.RoleMember)
	createTestMembership(t, repo, alice, models.MembershipCancelled)

	if _, err := repo.GetActiveByUser(alice.ID); err != ErrNoActiveMembership {
		t.Errorf("expected ErrNoActiveMembership, got %v", err)
	}
}

func TestMembershipHasActive(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db.Connection())
	repo := NewMembershipRepository(db.Connection())

	alice := createTestUser(t, users, "alice", models.RoleMember)
	bob := createTestUser(t, users, "bob", models.RoleMember)
	createTestMembership(t, repo, alice, models.MembershipActive)

	has, err := repo.HasActive(alice.ID)
	if err != nil {
		t.Fatalf("HasActive failed: %v", err)
	}
	if !has {
		t.Error("expected alice to have an active membership")
	}

	has, err = repo.HasActive(bob.ID)
	if err != nil {
		t.Fatalf("HasActive failed: %v", err)
	}
	if has {
		t.Error("expected bob to have no active membership")
	}
}

func TestMembershipListExpiring(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db.Connection())
	repo := NewMembershipRepository(db.Connection())

	alice := createTestUser(t, users, "alice", models.RoleMember)
	now := time.Now().UTC()

	soon := models.Membership{
		User: alice.Ref(), Type: models.MembershipPremium, Status: models.MembershipActive,
		Price: 49.99, StartDate: now.AddDate(-1, 0, 0), EndDate: now.AddDate(0, 0, 7),
	}
	if err := repo.Create(&soon); err != nil {
		t.Fatalf("failed to create membership: %v", err)
	}
	later := models.Membership{
		User: alice.Ref(), Type: models.MembershipBasic, Status: models.MembershipActive,
		Price: 29.99, StartDate: now, EndDate: now.AddDate(1, 0, 0),
	}
	if err := repo.Create(&later); err != nil {
		t.Fatalf("failed to create membership: %v", err)
	}

	expiring, err := repo.ListExpiring(now, now.AddDate(0, 0, 30))
	if err != nil {
		t.Fatalf("ListExpiring failed: %v", err)
	}
	if len(expiring) != 1 {
		t.Fatalf("expected 1 expiring membership, got %d", len(expiring))
	}
	if expiring[0].ID != soon.ID {
		t.Errorf("expected membership %d, got %d", soon.ID, expiring[0].ID)
	}
}

func TestMembershipUpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db.Connection())
	repo := NewMembershipRepository(db.Connection())

	alice := createTestUser(t, users, "alice", models.RoleMember)
	m := createTestMembership(t, repo, alice, models.MembershipActive)

	got, err := repo.UpdateStatus(m.ID, models.MembershipSuspended)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if got.Status != models.MembershipSuspended {
		t.Errorf("expected status SUSPENDED, got %q", got.Status)
	}
}

func TestMembershipRenew(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db.Connection())
	repo := NewMembershipRepository(db.Connection())

	alice := createTestUser(t, users, "alice", models.RoleMember)
	m := createTestMembership(t, repo, alice, models.MembershipExpired)

	newEnd := time.Now().UTC().AddDate(1, 0, 0).Truncate(time.Second)
	got, err := repo.Renew(m.ID, newEnd)
	if err != nil {
		t.Fatalf("Renew failed: %v", err)
	}
	if got.Status != models.MembershipActive {
		t.Errorf("expected status ACTIVE after renew, got %q", got.Status)
	}
	if !got.EndDate.Equal(newEnd) {
		t.Errorf("expected end date %v, got %v", newEnd, got.EndDate)
	}
}

func TestMembershipDelete_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMembershipRepository(db.Connection())

	if err := repo.Delete(42); err != ErrMembershipNotFound {
		t.Errorf("expected ErrMembershipNotFound, got %v", err)
	}
}
