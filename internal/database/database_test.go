package database

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"gymstream/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupTestDB creates a migrated sqlite database in a temp directory.
func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(Config{DatabasePath: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser inserts a user with the given username and role.
func createTestUser(t *testing.T, repo *UserRepository, username string, role models.Role) models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "not-a-real-hash",
		Role:         role,
		Enabled:      true,
	}
	if err := repo.Create(&user); err != nil {
		t.Fatalf("failed to create user %q: %v", username, err)
	}
	return user
}

func TestNewDB_RequiresPath(t *testing.T) {
	_, err := NewDB(Config{})
	if err != ErrDatabasePathRequired {
		t.Errorf("expected ErrDatabasePathRequired, got %v", err)
	}
}

func TestNewDB_MigratesSchema(t *testing.T) {
	db := setupTestDB(t)

	// All entity tables should exist after migration.
	tables := []string{"users", "memberships", "equipment", "gym_classes",
		"training_sessions", "class_registrations", "payments"}
	for _, table := range tables {
		var n int
		err := db.Connection().QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&n)
		if err != nil {
			t.Fatalf("failed to query sqlite_master: %v", err)
		}
		if n != 1 {
			t.Errorf("expected table %q to exist", table)
		}
	}
}

func TestNewDB_ReopenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db1, err := NewDB(Config{DatabasePath: path})
	if err != nil {
		t.Fatalf("first open failed: %v", err)
	}
	users := NewUserRepository(db1.Connection())
	createTestUser(t, users, "alice", models.RoleMember)
	db1.Close()

	db2, err := NewDB(Config{DatabasePath: path})
	if err != nil {
		t.Fatalf("second open failed: %v", err)
	}
	defer db2.Close()

	got, err := NewUserRepository(db2.Connection()).GetByUsername("alice")
	if err != nil {
		t.Fatalf("failed to load user after reopen: %v", err)
	}
	if got.Username != "alice" {
		t.Errorf("expected username 'alice', got %q", got.Username)
	}
}
