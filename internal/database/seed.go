package database

import (
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"gymstream/models"
)

// Default administrator credentials created on first start.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

// EnsureDefaultAdmin creates the default administrator account when the users
// table is empty, so a fresh install is reachable.
func EnsureDefaultAdmin(users *UserRepository, logger *slog.Logger) error {
	count, err := users.Count()
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash default admin password: %w", err)
	}

	admin := models.User{
		Username:     DefaultAdminUsername,
		Email:        "admin@gymstream.local",
		FirstName:    "System",
		LastName:     "Administrator",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		Enabled:      true,
	}
	if err := users.Create(&admin); err != nil {
		return fmt.Errorf("create default admin: %w", err)
	}

	logger.Warn("created default admin account, change its password",
		"username", DefaultAdminUsername)
	return nil
}
