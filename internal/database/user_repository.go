package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gymstream/models"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already in use")
)

const userColumns = "id, username, email, first_name, last_name, password_hash, role, enabled, created_at, updated_at"

// UserRepository persists user accounts.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a user repository on the given connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. Fails if the username or email is taken.
func (r *UserRepository) Create(user *models.User) error {
	taken, err := r.ExistsByUsername(user.Username)
	if err != nil {
		return err
	}
	if taken {
		return ErrUsernameExists
	}
	taken, err = r.ExistsByEmail(user.Email)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailExists
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = models.RoleMember
	}

	res, err := r.db.Exec(`INSERT INTO users (username, email, first_name, last_name, password_hash, role, enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Username, user.Email, user.FirstName, user.LastName, user.PasswordHash, user.Role, user.Enabled, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID, err = res.LastInsertId()
	return err
}

// GetByID returns the user with the given ID.
func (r *UserRepository) GetByID(id int64) (models.User, error) {
	row := r.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row)
}

// GetByUsername returns the user with the given username.
func (r *UserRepository) GetByUsername(username string) (models.User, error) {
	row := r.db.QueryRow("SELECT "+userColumns+" FROM users WHERE username = ?", username)
	return scanUser(row)
}

// ExistsByUsername reports whether a user with the username exists.
func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM users WHERE username = ?", username).Scan(&n); err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n > 0, nil
}

// ExistsByEmail reports whether a user with the email exists.
func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM users WHERE email = ?", email).Scan(&n); err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n > 0, nil
}

// List returns all users ordered by creation time.
func (r *UserRepository) List() ([]models.User, error) {
	return r.queryUsers("SELECT " + userColumns + " FROM users ORDER BY created_at, id")
}

// ListByRole returns all users with the given role.
func (r *UserRepository) ListByRole(role models.Role) ([]models.User, error) {
	return r.queryUsers("SELECT "+userColumns+" FROM users WHERE role = ? ORDER BY created_at, id", role)
}

// Update persists profile changes to an existing user. The password hash is
// left untouched; use UpdatePassword for that.
func (r *UserRepository) Update(user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	res, err := r.db.Exec(`UPDATE users SET email = ?, first_name = ?, last_name = ?, role = ?, enabled = ?, updated_at = ? WHERE id = ?`,
		user.Email, user.FirstName, user.LastName, user.Role, user.Enabled, user.UpdatedAt, user.ID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return requireRow(res, ErrUserNotFound)
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepository) UpdatePassword(id int64, passwordHash string) error {
	res, err := r.db.Exec("UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?",
		passwordHash, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return requireRow(res, ErrUserNotFound)
}

// Delete removes a user and everything cascading from it.
func (r *UserRepository) Delete(id int64) error {
	res, err := r.db.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return requireRow(res, ErrUserNotFound)
}

// Count returns the total number of users.
func (r *UserRepository) Count() (int64, error) {
	var n int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *UserRepository) queryUsers(query string, args ...any) ([]models.User, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.Role, &u.Enabled, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

// requireRow converts a zero-rows-affected result into notFound.
func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
