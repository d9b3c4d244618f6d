package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gymstream/models"
)

var (
	ErrRegistrationNotFound = errors.New("class registration not found")
	ErrAlreadyRegistered    = errors.New("member is already registered for this class")
)

const registrationSelect = `SELECT r.id,
	u.id, u.username, u.first_name, u.last_name, u.role,
	c.id, c.name, c.type, c.start_time, c.location,
	r.status, r.registration_date, r.attendance_date, r.notes, r.created_at, r.updated_at
	FROM class_registrations r
	JOIN users u ON u.id = r.member_id
	JOIN gym_classes c ON c.id = r.class_id`

// ClassRegistrationRepository persists member signups for gym classes.
type ClassRegistrationRepository struct {
	db *sql.DB
}

// NewClassRegistrationRepository creates a registration repository on the given connection.
func NewClassRegistrationRepository(db *sql.DB) *ClassRegistrationRepository {
	return &ClassRegistrationRepository{db: db}
}

// Register creates a REGISTERED entry for the member in the class. Fails if
// the member already holds an active registration for it.
func (r *ClassRegistrationRepository) Register(memberID, classID int64, notes string) (models.ClassRegistration, error) {
	registered, err := r.IsRegistered(memberID, classID)
	if err != nil {
		return models.ClassRegistration{}, err
	}
	if registered {
		return models.ClassRegistration{}, ErrAlreadyRegistered
	}

	now := time.Now().UTC()
	res, err := r.db.Exec(`INSERT INTO class_registrations (member_id, class_id, status, registration_date, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		memberID, classID, models.RegistrationRegistered, now, notes, now, now)
	if err != nil {
		return models.ClassRegistration{}, fmt.Errorf("insert class registration: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.ClassRegistration{}, err
	}
	return r.GetByID(id)
}

// GetByID returns the registration with the given ID.
func (r *ClassRegistrationRepository) GetByID(id int64) (models.ClassRegistration, error) {
	row := r.db.QueryRow(registrationSelect+" WHERE r.id = ?", id)
	return scanRegistration(row)
}

// List returns all registrations.
func (r *ClassRegistrationRepository) List() ([]models.ClassRegistration, error) {
	return r.query(registrationSelect + " ORDER BY r.registration_date, r.id")
}

// ListByMember returns a member's registrations.
func (r *ClassRegistrationRepository) ListByMember(memberID int64) ([]models.ClassRegistration, error) {
	return r.query(registrationSelect+" WHERE r.member_id = ? ORDER BY r.registration_date, r.id", memberID)
}

// ListByClass returns all registrations for a class.
func (r *ClassRegistrationRepository) ListByClass(classID int64) ([]models.ClassRegistration, error) {
	return r.query(registrationSelect+" WHERE r.class_id = ? ORDER BY r.registration_date, r.id", classID)
}

// ListByMemberAndStatus returns a member's registrations in the given status.
func (r *ClassRegistrationRepository) ListByMemberAndStatus(memberID int64, status models.RegistrationStatus) ([]models.ClassRegistration, error) {
	return r.query(registrationSelect+" WHERE r.member_id = ? AND r.status = ? ORDER BY r.registration_date, r.id",
		memberID, status)
}

// ListByClassAndStatus returns a class's registrations in the given status.
func (r *ClassRegistrationRepository) ListByClassAndStatus(classID int64, status models.RegistrationStatus) ([]models.ClassRegistration, error) {
	return r.query(registrationSelect+" WHERE r.class_id = ? AND r.status = ? ORDER BY r.registration_date, r.id",
		classID, status)
}

// CountActiveByClass returns the number of registrations counting toward a
// class's enrollment.
func (r *ClassRegistrationRepository) CountActiveByClass(classID int64) (int64, error) {
	var n int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM class_registrations WHERE class_id = ? AND status IN (?, ?)",
		classID, models.RegistrationRegistered, models.RegistrationAttended).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count class registrations: %w", err)
	}
	return n, nil
}

// CountAttendedByMember returns how many classes a member has attended.
func (r *ClassRegistrationRepository) CountAttendedByMember(memberID int64) (int64, error) {
	var n int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM class_registrations WHERE member_id = ? AND status = ?",
		memberID, models.RegistrationAttended).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count class registrations: %w", err)
	}
	return n, nil
}

// IsRegistered reports whether the member holds an active registration for
// the class.
func (r *ClassRegistrationRepository) IsRegistered(memberID, classID int64) (bool, error) {
	var n int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM class_registrations WHERE member_id = ? AND class_id = ? AND status IN (?, ?)",
		memberID, classID, models.RegistrationRegistered, models.RegistrationAttended).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("count class registrations: %w", err)
	}
	return n > 0, nil
}

// UpdateStatus changes the registration status.
func (r *ClassRegistrationRepository) UpdateStatus(id int64, status models.RegistrationStatus) (models.ClassRegistration, error) {
	res, err := r.db.Exec("UPDATE class_registrations SET status = ?, updated_at = ? WHERE id = ?",
		status, time.Now().UTC(), id)
	if err != nil {
		return models.ClassRegistration{}, fmt.Errorf("update class registration status: %w", err)
	}
	if err := requireRow(res, ErrRegistrationNotFound); err != nil {
		return models.ClassRegistration{}, err
	}
	return r.GetByID(id)
}

// MarkAttendance records the member as having attended, stamping the date.
func (r *ClassRegistrationRepository) MarkAttendance(id int64) (models.ClassRegistration, error) {
	now := time.Now().UTC()
	res, err := r.db.Exec("UPDATE class_registrations SET status = ?, attendance_date = ?, updated_at = ? WHERE id = ?",
		models.RegistrationAttended, now, now, id)
	if err != nil {
		return models.ClassRegistration{}, fmt.Errorf("mark attendance: %w", err)
	}
	if err := requireRow(res, ErrRegistrationNotFound); err != nil {
		return models.ClassRegistration{}, err
	}
	return r.GetByID(id)
}

// MarkNoShow records the member as a no-show.
func (r *ClassRegistrationRepository) MarkNoShow(id int64) (models.ClassRegistration, error) {
	return r.UpdateStatus(id, models.RegistrationNoShow)
}

// Cancel marks the registration cancelled.
func (r *ClassRegistrationRepository) Cancel(id int64) (models.ClassRegistration, error) {
	return r.UpdateStatus(id, models.RegistrationCancelled)
}

// Delete removes a registration.
func (r *ClassRegistrationRepository) Delete(id int64) error {
	res, err := r.db.Exec("DELETE FROM class_registrations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete class registration: %w", err)
	}
	return requireRow(res, ErrRegistrationNotFound)
}

func (r *ClassRegistrationRepository) query(query string, args ...any) ([]models.ClassRegistration, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query class registrations: %w", err)
	}
	defer rows.Close()

	regs := []models.ClassRegistration{}
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func scanRegistration(row rowScanner) (models.ClassRegistration, error) {
	var reg models.ClassRegistration
	var attendance sql.NullTime
	err := row.Scan(&reg.ID,
		&reg.Member.ID, &reg.Member.Username, &reg.Member.FirstName, &reg.Member.LastName, &reg.Member.Role,
		&reg.GymClass.ID, &reg.GymClass.Name, &reg.GymClass.Type, &reg.GymClass.StartTime, &reg.GymClass.Location,
		&reg.Status, &reg.RegistrationDate, &attendance, &reg.Notes, &reg.CreatedAt, &reg.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ClassRegistration{}, ErrRegistrationNotFound
	}
	if err != nil {
		return models.ClassRegistration{}, fmt.Errorf("scan class registration: %w", err)
	}
	reg.AttendanceDate = timePtr(attendance)
	return reg, nil
}
