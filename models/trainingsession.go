package models

import "time"

// SessionType is the kind of one-on-one booking with a trainer.
type SessionType string

const (
	SessionPersonalTraining SessionType = "PERSONAL_TRAINING"
	SessionGroupTraining    SessionType = "GROUP_TRAINING"
	SessionConsultation     SessionType = "CONSULTATION"
	SessionAssessment       SessionType = "ASSESSMENT"
	SessionNutritionCounsel SessionType = "NUTRITION_COUNSELING"
)

// SessionStatus is the lifecycle state of a training session.
type SessionStatus string

const (
	SessionScheduled  SessionStatus = "SCHEDULED"
	SessionInProgress SessionStatus = "IN_PROGRESS"
	SessionCompleted  SessionStatus = "COMPLETED"
	SessionCancelled  SessionStatus = "CANCELLED"
	SessionNoShow     SessionStatus = "NO_SHOW"
)

// TrainingSession is a booked appointment between a trainer and a member.
type TrainingSession struct {
	ID            int64         `json:"id"`
	Trainer       UserRef       `json:"trainer"`
	Member        UserRef       `json:"member"`
	Type          SessionType   `json:"type"`
	Status        SessionStatus `json:"status"`
	ScheduledDate time.Time     `json:"scheduledDate"`
	StartTime     *time.Time    `json:"startTime,omitempty"`
	EndTime       *time.Time    `json:"endTime,omitempty"`
	Duration      int           `json:"duration"` // minutes
	Price         float64       `json:"price"`
	Notes         string        `json:"notes,omitempty"`
	Location      string        `json:"location,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// IsUpcoming reports whether the session is still ahead of now and scheduled.
func (s TrainingSession) IsUpcoming() bool {
	return s.Status == SessionScheduled && s.ScheduledDate.After(time.Now())
}
