package client

import (
	"context"
	"fmt"
	"time"

	"gymstream/models"
)

// TrainingSessionsService calls the personal training endpoints.
type TrainingSessionsService struct {
	c *Client
}

// TrainingSessionData is the booking/update payload.
type TrainingSessionData struct {
	TrainerID     int64              `json:"trainerId,omitempty"`
	MemberID      int64              `json:"memberId,omitempty"`
	Type          models.SessionType `json:"type,omitempty"`
	ScheduledDate time.Time          `json:"scheduledDate,omitzero"`
	Duration      int                `json:"duration,omitempty"`
	Price         float64            `json:"price,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	Location      string             `json:"location,omitempty"`
}

func (s *TrainingSessionsService) List(ctx context.Context) ([]models.TrainingSession, error) {
	var sessions []models.TrainingSession
	if err := s.c.get(ctx, "/api/training-sessions", &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Book schedules a new training session.
func (s *TrainingSessionsService) Book(ctx context.Context, data TrainingSessionData) (models.TrainingSession, error) {
	var session models.TrainingSession
	if err := s.c.post(ctx, "/api/training-sessions", data, &session); err != nil {
		return models.TrainingSession{}, err
	}
	return session, nil
}

func (s *TrainingSessionsService) Get(ctx context.Context, id int64) (models.TrainingSession, error) {
	var session models.TrainingSession
	if err := s.c.get(ctx, fmt.Sprintf("/api/training-sessions/%d", id), &session); err != nil {
		return models.TrainingSession{}, err
	}
	return session, nil
}

func (s *TrainingSessionsService) Update(ctx context.Context, id int64, data TrainingSessionData) (models.TrainingSession, error) {
	var session models.TrainingSession
	if err := s.c.put(ctx, fmt.Sprintf("/api/training-sessions/%d", id), data, &session); err != nil {
		return models.TrainingSession{}, err
	}
	return session, nil
}

func (s *TrainingSessionsService) Delete(ctx context.Context, id int64) error {
	return s.c.delete(ctx, fmt.Sprintf("/api/training-sessions/%d", id))
}

func (s *TrainingSessionsService) ListByTrainer(ctx context.Context, trainerID int64) ([]models.TrainingSession, error) {
	var sessions []models.TrainingSession
	if err := s.c.get(ctx, fmt.Sprintf("/api/training-sessions/trainer/%d", trainerID), &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *TrainingSessionsService) ListByMember(ctx context.Context, memberID int64) ([]models.TrainingSession, error) {
	var sessions []models.TrainingSession
	if err := s.c.get(ctx, fmt.Sprintf("/api/training-sessions/member/%d", memberID), &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *TrainingSessionsService) ListByStatus(ctx context.Context, status models.SessionStatus) ([]models.TrainingSession, error) {
	var sessions []models.TrainingSession
	if err := s.c.get(ctx, "/api/training-sessions/status/"+string(status), &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *TrainingSessionsService) ListByType(ctx context.Context, t models.SessionType) ([]models.TrainingSession, error) {
	var sessions []models.TrainingSession
	if err := s.c.get(ctx, "/api/training-sessions/type/"+string(t), &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *TrainingSessionsService) ListUpcoming(ctx context.Context) ([]models.TrainingSession, error) {
	var sessions []models.TrainingSession
	if err := s.c.get(ctx, "/api/training-sessions/upcoming", &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *TrainingSessionsService) ListUpcomingByTrainer(ctx context.Context, trainerID int64) ([]models.TrainingSession, error) {
	var sessions []models.TrainingSession
	if err := s.c.get(ctx, fmt.Sprintf("/api/training-sessions/trainer/%d/upcoming", trainerID), &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *TrainingSessionsService) ListUpcomingByMember(ctx context.Context, memberID int64) ([]models.TrainingSession, error) {
	var sessions []models.TrainingSession
	if err := s.c.get(ctx, fmt.Sprintf("/api/training-sessions/member/%d/upcoming", memberID), &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *TrainingSessionsService) UpdateStatus(ctx context.Context, id int64, status models.SessionStatus) (models.TrainingSession, error) {
	body := map[string]models.SessionStatus{"status": status}
	var session models.TrainingSession
	if err := s.c.put(ctx, fmt.Sprintf("/api/training-sessions/%d/status", id), body, &session); err != nil {
		return models.TrainingSession{}, err
	}
	return session, nil
}

// Reschedule moves the session to newDate and marks it scheduled again.
func (s *TrainingSessionsService) Reschedule(ctx context.Context, id int64, newDate time.Time) (models.TrainingSession, error) {
	body := map[string]time.Time{"scheduledDate": newDate}
	var session models.TrainingSession
	if err := s.c.put(ctx, fmt.Sprintf("/api/training-sessions/%d/reschedule", id), body, &session); err != nil {
		return models.TrainingSession{}, err
	}
	return session, nil
}
