package models

import "time"

// RegistrationStatus is the state of a member's spot in a class.
type RegistrationStatus string

const (
	RegistrationRegistered RegistrationStatus = "REGISTERED"
	RegistrationAttended   RegistrationStatus = "ATTENDED"
	RegistrationCancelled  RegistrationStatus = "CANCELLED"
	RegistrationNoShow     RegistrationStatus = "NO_SHOW"
)

// ClassRef is the slim class projection embedded in registrations.
type ClassRef struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      ClassType `json:"type"`
	StartTime string    `json:"startTime"`
	Location  string    `json:"location,omitempty"`
}

// ClassRegistration records a member signing up for a gym class.
type ClassRegistration struct {
	ID               int64              `json:"id"`
	Member           UserRef            `json:"member"`
	GymClass         ClassRef           `json:"gymClass"`
	Status           RegistrationStatus `json:"status"`
	RegistrationDate time.Time          `json:"registrationDate"`
	AttendanceDate   *time.Time         `json:"attendanceDate,omitempty"`
	Notes            string             `json:"notes,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

// IsActive reports whether the registration still counts toward enrollment.
func (r ClassRegistration) IsActive() bool {
	return r.Status == RegistrationRegistered || r.Status == RegistrationAttended
}
