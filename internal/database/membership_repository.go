package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gymstream/models"
)

var (
	ErrMembershipNotFound = errors.New("membership not found")
	ErrNoActiveMembership = errors.New("no active membership for user")
)

const membershipSelect = `SELECT m.id, u.id, u.username, u.first_name, u.last_name, u.role,
	m.type, m.status, m.price, m.start_date, m.end_date, m.description, m.created_at, m.updated_at
	FROM memberships m JOIN users u ON u.id = m.user_id`

// MembershipRepository persists membership plans.
type MembershipRepository struct {
	db *sql.DB
}

// NewMembershipRepository creates a membership repository on the given connection.
func NewMembershipRepository(db *sql.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Create inserts a membership for m.User.ID and reloads the stored row.
func (r *MembershipRepository) Create(m *models.Membership) error {
	if m.Status == "" {
		m.Status = models.MembershipActive
	}
	now := time.Now().UTC()
	res, err := r.db.Exec(`INSERT INTO memberships (user_id, type, status, price, start_date, end_date, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.User.ID, m.Type, m.Status, m.Price, m.StartDate, m.EndDate, m.Description, now, now)
	if err != nil {
		return fmt.Errorf("insert membership: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetByID(id)
	if err != nil {
		return err
	}
	*m = stored
	return nil
}

// GetByID returns the membership with the given ID.
func (r *MembershipRepository) GetByID(id int64) (models.Membership, error) {
	row := r.db.QueryRow(membershipSelect+" WHERE m.id = ?", id)
	return scanMembership(row)
}

// List returns all memberships.
func (r *MembershipRepository) List() ([]models.Membership, error) {
	return r.query(membershipSelect + " ORDER BY m.created_at, m.id")
}

// ListByUser returns all memberships belonging to a user.
func (r *MembershipRepository) ListByUser(userID int64) ([]models.Membership, error) {
	return r.query(membershipSelect+" WHERE m.user_id = ? ORDER BY m.start_date DESC", userID)
}

// GetActiveByUser returns the user's current active membership.
func (r *MembershipRepository) GetActiveByUser(userID int64) (models.Membership, error) {
	row := r.db.QueryRow(membershipSelect+` WHERE m.user_id = ? AND m.status = ? AND m.end_date > ?
		ORDER BY m.end_date DESC LIMIT 1`, userID, models.MembershipActive, time.Now().UTC())
	m, err := scanMembership(row)
	if errors.Is(err, ErrMembershipNotFound) {
		return models.Membership{}, ErrNoActiveMembership
	}
	return m, err
}

// ListByStatus returns memberships in the given status.
func (r *MembershipRepository) ListByStatus(status models.MembershipStatus) ([]models.Membership, error) {
	return r.query(membershipSelect+" WHERE m.status = ? ORDER BY m.end_date", status)
}

// ListExpiring returns active memberships ending within the given window.
func (r *MembershipRepository) ListExpiring(start, end time.Time) ([]models.Membership, error) {
	return r.query(membershipSelect+" WHERE m.status = ? AND m.end_date BETWEEN ? AND ? ORDER BY m.end_date",
		models.MembershipActive, start, end)
}

// ListExpired returns memberships past their end date that are still marked active.
func (r *MembershipRepository) ListExpired() ([]models.Membership, error) {
	return r.query(membershipSelect+" WHERE m.status = ? AND m.end_date <= ? ORDER BY m.end_date",
		models.MembershipActive, time.Now().UTC())
}

// CountActive returns the number of active memberships.
func (r *MembershipRepository) CountActive() (int64, error) {
	var n int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM memberships WHERE status = ?", models.MembershipActive).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count memberships: %w", err)
	}
	return n, nil
}

// HasActive reports whether the user holds a current active membership.
func (r *MembershipRepository) HasActive(userID int64) (bool, error) {
	var n int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM memberships WHERE user_id = ? AND status = ? AND end_date > ?",
		userID, models.MembershipActive, time.Now().UTC()).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("count memberships: %w", err)
	}
	return n > 0, nil
}

// Update persists changes to type, price, dates and description.
func (r *MembershipRepository) Update(m *models.Membership) error {
	res, err := r.db.Exec(`UPDATE memberships SET type = ?, price = ?, start_date = ?, end_date = ?, description = ?, updated_at = ? WHERE id = ?`,
		m.Type, m.Price, m.StartDate, m.EndDate, m.Description, time.Now().UTC(), m.ID)
	if err != nil {
		return fmt.Errorf("update membership: %w", err)
	}
	if err := requireRow(res, ErrMembershipNotFound); err != nil {
		return err
	}
	stored, err := r.GetByID(m.ID)
	if err != nil {
		return err
	}
	*m = stored
	return nil
}

// UpdateStatus changes the membership status.
func (r *MembershipRepository) UpdateStatus(id int64, status models.MembershipStatus) (models.Membership, error) {
	res, err := r.db.Exec("UPDATE memberships SET status = ?, updated_at = ? WHERE id = ?",
		status, time.Now().UTC(), id)
	if err != nil {
		return models.Membership{}, fmt.Errorf("update membership status: %w", err)
	}
	if err := requireRow(res, ErrMembershipNotFound); err != nil {
		return models.Membership{}, err
	}
	return r.GetByID(id)
}

// Renew extends the membership to a new end date and re-activates it.
func (r *MembershipRepository) Renew(id int64, newEndDate time.Time) (models.Membership, error) {
	res, err := r.db.Exec("UPDATE memberships SET end_date = ?, status = ?, updated_at = ? WHERE id = ?",
		newEndDate, models.MembershipActive, time.Now().UTC(), id)
	if err != nil {
		return models.Membership{}, fmt.Errorf("renew membership: %w", err)
	}
	if err := requireRow(res, ErrMembershipNotFound); err != nil {
		return models.Membership{}, err
	}
	return r.GetByID(id)
}

// Delete removes a membership.
func (r *MembershipRepository) Delete(id int64) error {
	res, err := r.db.Exec("DELETE FROM memberships WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	return requireRow(res, ErrMembershipNotFound)
}

func (r *MembershipRepository) query(query string, args ...any) ([]models.Membership, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query memberships: %w", err)
	}
	defer rows.Close()

	memberships := []models.Membership{}
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

func scanMembership(row rowScanner) (models.Membership, error) {
	var m models.Membership
	err := row.Scan(&m.ID, &m.User.ID, &m.User.Username, &m.User.FirstName, &m.User.LastName, &m.User.Role,
		&m.Type, &m.Status, &m.Price, &m.StartDate, &m.EndDate, &m.Description, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Membership{}, ErrMembershipNotFound
	}
	if err != nil {
		return models.Membership{}, fmt.Errorf("scan membership: %w", err)
	}
	return m, nil
}
