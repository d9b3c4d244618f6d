package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gymstream/models"
)

var (
	ErrClassNotFound = errors.New("gym class not found")
	ErrClassFull     = errors.New("gym class is at capacity")
	ErrClassEmpty    = errors.New("gym class has no enrollment to remove")
)

const gymClassSelect = `SELECT c.id, c.name, c.description, c.type, c.status,
	u.id, u.username, u.first_name, u.last_name, u.role,
	c.start_time, c.end_time, c.duration, c.max_capacity, c.current_enrollment,
	c.price, c.location, c.schedule_days, c.created_at, c.updated_at
	FROM gym_classes c JOIN users u ON u.id = c.trainer_id`

// GymClassRepository persists group classes.
type GymClassRepository struct {
	db *sql.DB
}

// NewGymClassRepository creates a gym class repository on the given connection.
func NewGymClassRepository(db *sql.DB) *GymClassRepository {
	return &GymClassRepository{db: db}
}

// Create inserts a class led by c.Trainer.ID and reloads the stored row.
func (r *GymClassRepository) Create(c *models.GymClass) error {
	if c.Status == "" {
		c.Status = models.ClassActive
	}
	now := time.Now().UTC()
	res, err := r.db.Exec(`INSERT INTO gym_classes (name, description, type, status, trainer_id, start_time, end_time,
		duration, max_capacity, current_enrollment, price, location, schedule_days, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Description, c.Type, c.Status, c.Trainer.ID, c.StartTime, c.EndTime,
		c.Duration, c.MaxCapacity, c.CurrentEnrollment, c.Price, c.Location, c.ScheduleDays, now, now)
	if err != nil {
		return fmt.Errorf("insert gym class: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetByID(id)
	if err != nil {
		return err
	}
	*c = stored
	return nil
}

// GetByID returns the class with the given ID.
func (r *GymClassRepository) GetByID(id int64) (models.GymClass, error) {
	row := r.db.QueryRow(gymClassSelect+" WHERE c.id = ?", id)
	return scanGymClass(row)
}

// List returns all classes.
func (r *GymClassRepository) List() ([]models.GymClass, error) {
	return r.query(gymClassSelect + " ORDER BY c.name, c.id")
}

// ListByType returns classes of the given type.
func (r *GymClassRepository) ListByType(t models.ClassType) ([]models.GymClass, error) {
	return r.query(gymClassSelect+" WHERE c.type = ? ORDER BY c.name, c.id", t)
}

// ListByStatus returns classes in the given status.
func (r *GymClassRepository) ListByStatus(s models.ClassStatus) ([]models.GymClass, error) {
	return r.query(gymClassSelect+" WHERE c.status = ? ORDER BY c.name, c.id", s)
}

// ListByTrainer returns classes led by the given trainer.
func (r *GymClassRepository) ListByTrainer(trainerID int64) ([]models.GymClass, error) {
	return r.query(gymClassSelect+" WHERE c.trainer_id = ? ORDER BY c.name, c.id", trainerID)
}

// ListByLocation returns classes held at the given location.
func (r *GymClassRepository) ListByLocation(location string) ([]models.GymClass, error) {
	return r.query(gymClassSelect+" WHERE c.location = ? ORDER BY c.name, c.id", location)
}

// ListAvailable returns active classes with open capacity.
func (r *GymClassRepository) ListAvailable() ([]models.GymClass, error) {
	return r.query(gymClassSelect+" WHERE c.status = ? AND c.current_enrollment < c.max_capacity ORDER BY c.name, c.id",
		models.ClassActive)
}

// ListFull returns classes with no open capacity.
func (r *GymClassRepository) ListFull() ([]models.GymClass, error) {
	return r.query(gymClassSelect+" WHERE c.status = ? OR c.current_enrollment >= c.max_capacity ORDER BY c.name, c.id",
		models.ClassFull)
}

// Search matches the term against name and description.
func (r *GymClassRepository) Search(term string) ([]models.GymClass, error) {
	pattern := "%" + term + "%"
	return r.query(gymClassSelect+" WHERE c.name LIKE ? OR c.description LIKE ? ORDER BY c.name, c.id", pattern, pattern)
}

// CountActive returns the number of active classes.
func (r *GymClassRepository) CountActive() (int64, error) {
	var n int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM gym_classes WHERE status = ?", models.ClassActive).Scan(&n); err != nil {
		return 0, fmt.Errorf("count gym classes: %w", err)
	}
	return n, nil
}

// Update persists changes to a class and reloads the stored row.
func (r *GymClassRepository) Update(c *models.GymClass) error {
	res, err := r.db.Exec(`UPDATE gym_classes SET name = ?, description = ?, type = ?, trainer_id = ?, start_time = ?,
		end_time = ?, duration = ?, max_capacity = ?, price = ?, location = ?, schedule_days = ?, updated_at = ?
		WHERE id = ?`,
		c.Name, c.Description, c.Type, c.Trainer.ID, c.StartTime, c.EndTime, c.Duration, c.MaxCapacity,
		c.Price, c.Location, c.ScheduleDays, time.Now().UTC(), c.ID)
	if err != nil {
		return fmt.Errorf("update gym class: %w", err)
	}
	if err := requireRow(res, ErrClassNotFound); err != nil {
		return err
	}
	stored, err := r.GetByID(c.ID)
	if err != nil {
		return err
	}
	*c = stored
	return nil
}

// UpdateStatus changes the class status.
func (r *GymClassRepository) UpdateStatus(id int64, status models.ClassStatus) (models.GymClass, error) {
	res, err := r.db.Exec("UPDATE gym_classes SET status = ?, updated_at = ? WHERE id = ?", status, time.Now().UTC(), id)
	if err != nil {
		return models.GymClass{}, fmt.Errorf("update gym class status: %w", err)
	}
	if err := requireRow(res, ErrClassNotFound); err != nil {
		return models.GymClass{}, err
	}
	return r.GetByID(id)
}

// IncrementEnrollment adds one enrollment, marking the class FULL when it
// reaches capacity. The capacity check and the increment are one guarded
// statement so concurrent registrations cannot oversell a class.
func (r *GymClassRepository) IncrementEnrollment(id int64) (models.GymClass, error) {
	res, err := r.db.Exec(`UPDATE gym_classes
		SET current_enrollment = current_enrollment + 1,
			status = CASE WHEN current_enrollment + 1 >= max_capacity THEN ? ELSE status END,
			updated_at = ?
		WHERE id = ? AND current_enrollment < max_capacity`,
		models.ClassFull, time.Now().UTC(), id)
	if err != nil {
		return models.GymClass{}, fmt.Errorf("increment enrollment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.GymClass{}, err
	}
	if n == 0 {
		if _, err := r.GetByID(id); err != nil {
			return models.GymClass{}, err
		}
		return models.GymClass{}, ErrClassFull
	}
	return r.GetByID(id)
}

// DecrementEnrollment removes one enrollment, reopening a FULL class. Guarded
// the same way as IncrementEnrollment.
func (r *GymClassRepository) DecrementEnrollment(id int64) (models.GymClass, error) {
	res, err := r.db.Exec(`UPDATE gym_classes
		SET current_enrollment = current_enrollment - 1,
			status = CASE WHEN status = ? THEN ? ELSE status END,
			updated_at = ?
		WHERE id = ? AND current_enrollment > 0`,
		models.ClassFull, models.ClassActive, time.Now().UTC(), id)
	if err != nil {
		return models.GymClass{}, fmt.Errorf("decrement enrollment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.GymClass{}, err
	}
	if n == 0 {
		if _, err := r.GetByID(id); err != nil {
			return models.GymClass{}, err
		}
		return models.GymClass{}, ErrClassEmpty
	}
	return r.GetByID(id)
}

// Delete removes a class.
func (r *GymClassRepository) Delete(id int64) error {
	res, err := r.db.Exec("DELETE FROM gym_classes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete gym class: %w", err)
	}
	return requireRow(res, ErrClassNotFound)
}

func (r *GymClassRepository) query(query string, args ...any) ([]models.GymClass, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query gym classes: %w", err)
	}
	defer rows.Close()

	classes := []models.GymClass{}
	for rows.Next() {
		c, err := scanGymClass(rows)
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

func scanGymClass(row rowScanner) (models.GymClass, error) {
	var c models.GymClass
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Type, &c.Status,
		&c.Trainer.ID, &c.Trainer.Username, &c.Trainer.FirstName, &c.Trainer.LastName, &c.Trainer.Role,
		&c.StartTime, &c.EndTime, &c.Duration, &c.MaxCapacity, &c.CurrentEnrollment,
		&c.Price, &c.Location, &c.ScheduleDays, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GymClass{}, ErrClassNotFound
	}
	if err != nil {
		return models.GymClass{}, fmt.Errorf("scan gym class: %w", err)
	}
	return c, nil
}
