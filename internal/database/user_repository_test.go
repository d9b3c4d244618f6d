package database

import (
	"testing"

	"gymstream/models"
)

func TestUserCreate_Success(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db.Connection())

	user := createTestUser(t, repo, "alice", models.RoleMember)

	if user.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("expected non-zero CreatedAt")
	}

	got, err := repo.GetByID(user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Username != "alice" {
		t.Errorf("expected username 'alice', got %q", got.Username)
	}
	if got.Role != models.RoleMember {
		t.Errorf("expected role MEMBER, got %q", got.Role)
	}
}

func TestUserCreate_DefaultsToMember(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db.Connection())

	user := models.User{Username: "bob", Email: "bob@example.com", PasswordHash: "x", Enabled: true}
	if err := repo.Create(&user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if user.Role != models.RoleMember {
		t.Errorf("expected default role MEMBER, got %q", user.Role)
	}
}

func TestUserCreate_DuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db.Connection())

	createTestUser(t, repo, "alice", models.RoleMember)

	dup := models.User{Username: "alice", Email: "other@example.com", PasswordHash: "x"}
	if err := repo.Create(&dup); err != ErrUsernameExists {
		t.Errorf("expected ErrUsernameExists, got %v", err)
	}
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db.Connection())

	createTestUser(t, repo, "alice", models.RoleMember)

	dup := models.User{Username: "other", Email: "alice@example.com", PasswordHash: "x"}
	if err := repo.Create(&dup); err != ErrEmailExists {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
}

func TestUserGetByUsername_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db.Connection())

	_, err := repo.GetByUsername("nobody")
	if err != ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserListByRole(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db.Connection())

	createTestUser(t, repo, "trainer1", models.RoleTrainer)
	createTestUser(t, repo, "trainer2", models.RoleTrainer)
	createTestUser(t, repo, "member1", models.RoleMember)

	trainers, err := repo.ListByRole(models.RoleTrainer)
	if err != nil {
		t.Fatalf("ListByRole failed: %v", err)
	}
	if len(trainers) != 2 {
		t.Fatalf("expected 2 trainers, got %d", len(trainers))
	}
	for _, tr := range trainers {
		if tr.Role != models.RoleTrainer {
			t.Errorf("expected role TRAINER, got %q", tr.Role)
		}
	}
}

func TestUserUpdate_ProfileOnly(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db.Connection())

	user := createTestUser(t, repo, "alice", models.RoleMember)
	user.FirstName = "Alice"
	user.LastName = "Anderson"
	user.PasswordHash = "should-not-be-saved"
	if err := repo.Update(&user); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := repo.GetByID(user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.FirstName != "Alice" || got.LastName != "Anderson" {
		t.Errorf("expected updated name, got %q %q", got.FirstName, got.LastName)
	}
	if got.PasswordHash != "not-a-real-hash" {
		t.Error("expected Update to leave the password hash untouched")
	}
}

func TestUserUpdate_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db.Connection())

	user := models.User{ID: 999, Username: "ghost", Email: "ghost@example.com", Role: models.RoleMember}
	if err := repo.Update(&user); err != ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserUpdatePassword(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db.Connection())

	user := createTestUser(t, repo, "alice", models.RoleMember)
	if err := repo.UpdatePassword(user.ID, "new-hash"); err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}

	got, err := repo.GetByID(user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.PasswordHash != "new-hash" {
		t.Errorf("expected updated hash, got %q", got.PasswordHash)
	}
}

func TestUserDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db.Connection())

	user := createTestUser(t, repo, "alice", models.RoleMember)
	if err := repo.Delete(user.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.GetByID(user.ID); err != ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound after delete, got %v", err)
	}
	if err := repo.Delete(user.ID); err != ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound on second delete, got %v", err)
	}
}

func TestEnsureDefaultAdmin(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db.Connection())

	if err := EnsureDefaultAdmin(repo, testLogger()); err != nil {
		t.Fatalf("EnsureDefaultAdmin failed: %v", err)
	}

	admin, err := repo.GetByUsername(DefaultAdminUsername)
	if err != nil {
		t.Fatalf("expected default admin to exist: %v", err)
	}
	if admin.Role != models.RoleAdmin {
		t.Errorf("expected role ADMIN, got %q", admin.Role)
	}
	if !admin.Enabled {
		t.Error("expected default admin to be enabled")
	}

	// A second call must not create another account.
	if err := EnsureDefaultAdmin(repo, testLogger()); err != nil {
		t.Fatalf("second EnsureDefaultAdmin failed: %v", err)
	}
	count, err := repo.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 user, got %d", count)
	}
}

func TestEnsureDefaultAdmin_SkipsWhenUsersExist(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db.Connection())

	createTestUser(t, repo, "alice", models.RoleMember)
	if err := EnsureDefaultAdmin(repo, testLogger()); err != nil {
		t.Fatalf("EnsureDefaultAdmin failed: %v", err)
	}
	if _, err := repo.GetByUsername(DefaultAdminUsername); err != ErrUserNotFound {
		t.Errorf("expected no default admin, got %v", err)
	}
}
