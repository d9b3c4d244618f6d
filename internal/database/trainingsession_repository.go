package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gymstream/models"
)

var ErrSessionNotFound = errors.New("training session not found")

const sessionSelect = `SELECT s.id,
	t.id, t.username, t.first_name, t.last_name, t.role,
	m.id, m.username, m.first_name, m.last_name, m.role,
	s.type, s.status, s.scheduled_date, s.start_time, s.end_time, s.duration,
	s.price, s.notes, s.location, s.created_at, s.updated_at
	FROM training_sessions s
	JOIN users t ON t.id = s.trainer_id
	JOIN users m ON m.id = s.member_id`

// TrainingSessionRepository persists trainer/member appointments.
type TrainingSessionRepository struct {
	db *sql.DB
}

// NewTrainingSessionRepository creates a training session repository on the given connection.
func NewTrainingSessionRepository(db *sql.DB) *TrainingSessionRepository {
	return &TrainingSessionRepository{db: db}
}

// Create inserts a session between s.Trainer.ID and s.Member.ID and reloads
// the stored row.
func (r *TrainingSessionRepository) Create(s *models.TrainingSession) error {
	if s.Status == "" {
		s.Status = models.SessionScheduled
	}
	now := time.Now().UTC()
	res, err := r.db.Exec(`INSERT INTO training_sessions (trainer_id, member_id, type, status, scheduled_date,
		start_time, end_time, duration, price, notes, location, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Trainer.ID, s.Member.ID, s.Type, s.Status, s.ScheduledDate,
		nullTime(s.StartTime), nullTime(s.EndTime), s.Duration, s.Price, s.Notes, s.Location, now, now)
	if err != nil {
		return fmt.Errorf("insert training session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetByID(id)
	if err != nil {
		return err
	}
	*s = stored
	return nil
}

// GetByID returns the session with the given ID.
func (r *TrainingSessionRepository) GetByID(id int64) (models.TrainingSession, error) {
	row := r.db.QueryRow(sessionSelect+" WHERE s.id = ?", id)
	return scanSession(row)
}

// List returns all sessions.
func (r *TrainingSessionRepository) List() ([]models.TrainingSession, error) {
	return r.query(sessionSelect + " ORDER BY s.scheduled_date, s.id")
}

// ListByTrainer returns sessions led by the given trainer.
func (r *TrainingSessionRepository) ListByTrainer(trainerID int64) ([]models.TrainingSession, error) {
	return r.query(sessionSelect+" WHERE s.trainer_id = ? ORDER BY s.scheduled_date, s.id", trainerID)
}

// ListByMember returns sessions booked by the given member.
func (r *TrainingSessionRepository) ListByMember(memberID int64) ([]models.TrainingSession, error) {
	return r.query(sessionSelect+" WHERE s.member_id = ? ORDER BY s.scheduled_date, s.id", memberID)
}

// ListByStatus returns sessions in the given status.
func (r *TrainingSessionRepository) ListByStatus(status models.SessionStatus) ([]models.TrainingSession, error) {
	return r.query(sessionSelect+" WHERE s.status = ? ORDER BY s.scheduled_date, s.id", status)
}

// ListByType returns sessions of the given type.
func (r *TrainingSessionRepository) ListByType(t models.SessionType) ([]models.TrainingSession, error) {
	return r.query(sessionSelect+" WHERE s.type = ? ORDER BY s.scheduled_date, s.id", t)
}

// ListUpcoming returns scheduled sessions ahead of now.
func (r *TrainingSessionRepository) ListUpcoming() ([]models.TrainingSession, error) {
	return r.query(sessionSelect+" WHERE s.status = ? AND s.scheduled_date > ? ORDER BY s.scheduled_date, s.id",
		models.SessionScheduled, time.Now().UTC())
}

// ListUpcomingByTrainer returns upcoming sessions for a trainer.
func (r *TrainingSessionRepository) ListUpcomingByTrainer(trainerID int64) ([]models.TrainingSession, error) {
	return r.query(sessionSelect+` WHERE s.trainer_id = ? AND s.status = ? AND s.scheduled_date > ?
		ORDER BY s.scheduled_date, s.id`, trainerID, models.SessionScheduled, time.Now().UTC())
}

// ListUpcomingByMember returns upcoming sessions for a member.
func (r *TrainingSessionRepository) ListUpcomingByMember(memberID int64) ([]models.TrainingSession, error) {
	return r.query(sessionSelect+` WHERE s.member_id = ? AND s.status = ? AND s.scheduled_date > ?
		ORDER BY s.scheduled_date, s.id`, memberID, models.SessionScheduled, time.Now().UTC())
}

// ListByDateRange returns sessions scheduled inside the window.
func (r *TrainingSessionRepository) ListByDateRange(start, end time.Time) ([]models.TrainingSession, error) {
	return r.query(sessionSelect+" WHERE s.scheduled_date BETWEEN ? AND ? ORDER BY s.scheduled_date, s.id", start, end)
}

// CountCompletedByTrainer returns how many sessions a trainer has completed.
func (r *TrainingSessionRepository) CountCompletedByTrainer(trainerID int64) (int64, error) {
	var n int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM training_sessions WHERE trainer_id = ? AND status = ?",
		trainerID, models.SessionCompleted).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count training sessions: %w", err)
	}
	return n, nil
}

// CountCompletedByMember returns how many sessions a member has completed.
func (r *TrainingSessionRepository) CountCompletedByMember(memberID int64) (int64, error) {
	var n int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM training_sessions WHERE member_id = ? AND status = ?",
		memberID, models.SessionCompleted).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count training sessions: %w", err)
	}
	return n, nil
}

// Update persists changes to a session and reloads the stored row.
func (r *TrainingSessionRepository) Update(s *models.TrainingSession) error {
	res, err := r.db.Exec(`UPDATE training_sessions SET trainer_id = ?, member_id = ?, type = ?, scheduled_date = ?,
		start_time = ?, end_time = ?, duration = ?, price = ?, notes = ?, location = ?, updated_at = ? WHERE id = ?`,
		s.Trainer.ID, s.Member.ID, s.Type, s.ScheduledDate, nullTime(s.StartTime), nullTime(s.EndTime),
		s.Duration, s.Price, s.Notes, s.Location, time.Now().UTC(), s.ID)
	if err != nil {
		return fmt.Errorf("update training session: %w", err)
	}
	if err := requireRow(res, ErrSessionNotFound); err != nil {
		return err
	}
	stored, err := r.GetByID(s.ID)
	if err != nil {
		return err
	}
	*s = stored
	return nil
}

// UpdateStatus changes the session status. Completing a session stamps its
// end time.
func (r *TrainingSessionRepository) UpdateStatus(id int64, status models.SessionStatus) (models.TrainingSession, error) {
	now := time.Now().UTC()
	var res sql.Result
	var err error
	if status == models.SessionCompleted {
		res, err = r.db.Exec("UPDATE training_sessions SET status = ?, end_time = ?, updated_at = ? WHERE id = ?",
			status, now, now, id)
	} else {
		res, err = r.db.Exec("UPDATE training_sessions SET status = ?, updated_at = ? WHERE id = ?", status, now, id)
	}
	if err != nil {
		return models.TrainingSession{}, fmt.Errorf("update training session status: %w", err)
	}
	if err := requireRow(res, ErrSessionNotFound); err != nil {
		return models.TrainingSession{}, err
	}
	return r.GetByID(id)
}

// Reschedule moves the session to a new date and resets it to SCHEDULED.
func (r *TrainingSessionRepository) Reschedule(id int64, newDate time.Time) (models.TrainingSession, error) {
	res, err := r.db.Exec("UPDATE training_sessions SET scheduled_date = ?, status = ?, updated_at = ? WHERE id = ?",
		newDate, models.SessionScheduled, time.Now().UTC(), id)
	if err != nil {
		return models.TrainingSession{}, fmt.Errorf("reschedule training session: %w", err)
	}
	if err := requireRow(res, ErrSessionNotFound); err != nil {
		return models.TrainingSession{}, err
	}
	return r.GetByID(id)
}

// Delete removes a session.
func (r *TrainingSessionRepository) Delete(id int64) error {
	res, err := r.db.Exec("DELETE FROM training_sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete training session: %w", err)
	}
	return requireRow(res, ErrSessionNotFound)
}

func (r *TrainingSessionRepository) query(query string, args ...any) ([]models.TrainingSession, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query training sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.TrainingSession{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func scanSession(row rowScanner) (models.TrainingSession, error) {
	var s models.TrainingSession
	var start, end sql.NullTime
	err := row.Scan(&s.ID,
		&s.Trainer.ID, &s.Trainer.Username, &s.Trainer.FirstName, &s.Trainer.LastName, &s.Trainer.Role,
		&s.Member.ID, &s.Member.Username, &s.Member.FirstName, &s.Member.LastName, &s.Member.Role,
		&s.Type, &s.Status, &s.ScheduledDate, &start, &end, &s.Duration,
		&s.Price, &s.Notes, &s.Location, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TrainingSession{}, ErrSessionNotFound
	}
	if err != nil {
		return models.TrainingSession{}, fmt.Errorf("scan training session: %w", err)
	}
	s.StartTime = timePtr(start)
	s.EndTime = timePtr(end)
	return s, nil
}
