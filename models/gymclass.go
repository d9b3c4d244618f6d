package models

import "time"

// ClassType is the discipline taught in a group class.
type ClassType string

const (
	ClassYoga             ClassType = "YOGA"
	ClassPilates          ClassType = "PILATES"
	ClassSpinning         ClassType = "SPINNING"
	ClassZumba            ClassType = "ZUMBA"
	ClassCrossfit         ClassType = "CROSSFIT"
	ClassStrengthTraining ClassType = "STRENGTH_TRAINING"
	ClassCardio           ClassType = "CARDIO"
	ClassStretching       ClassType = "STRETCHING"
)

// ClassStatus is the lifecycle state of a group class.
type ClassStatus string

const (
	ClassActive    ClassStatus = "ACTIVE"
	ClassInactive  ClassStatus = "INACTIVE"
	ClassCancelled ClassStatus = "CANCELLED"
	ClassFull      ClassStatus = "FULL"
)

// GymClass is a recurring group class led by a trainer.
// ScheduleDays is a comma-separated day list (MON,WED,FRI); StartTime and
// EndTime are clock times in HH:MM format.
type GymClass struct {
	ID                int64       `json:"id"`
	Name              string      `json:"name"`
	Description       string      `json:"description,omitempty"`
	Type              ClassType   `json:"type"`
	Status            ClassStatus `json:"status"`
	Trainer           UserRef     `json:"trainer"`
	StartTime         string      `json:"startTime"`
	EndTime           string      `json:"endTime"`
	Duration          int         `json:"duration"` // minutes
	MaxCapacity       int         `json:"maxCapacity"`
	CurrentEnrollment int         `json:"currentEnrollment"`
	Price             float64     `json:"price"`
	Location          string      `json:"location,omitempty"`
	ScheduleDays      string      `json:"scheduleDays,omitempty"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}
