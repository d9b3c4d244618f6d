package models

import "time"

// MembershipType is the tier of a membership plan.
type MembershipType string

const (
	MembershipBasic   MembershipType = "BASIC"
	MembershipPremium MembershipType = "PREMIUM"
	MembershipVIP     MembershipType = "VIP"
	MembershipStudent MembershipType = "STUDENT"
	MembershipSenior  MembershipType = "SENIOR"
)

// MembershipStatus is the lifecycle state of a membership.
type MembershipStatus string

const (
	MembershipActive    MembershipStatus = "ACTIVE"
	MembershipExpired   MembershipStatus = "EXPIRED"
	MembershipSuspended MembershipStatus = "SUSPENDED"
	MembershipCancelled MembershipStatus = "CANCELLED"
)

// Membership ties a user to a plan for a date range.
type Membership struct {
	ID          int64            `json:"id"`
	User        UserRef          `json:"user"`
	Type        MembershipType   `json:"type"`
	Status      MembershipStatus `json:"status"`
	Price       float64          `json:"price"`
	StartDate   time.Time        `json:"startDate"`
	EndDate     time.Time        `json:"endDate"`
	Description string           `json:"description,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// IsCurrent reports whether the membership is active and not past its end date.
func (m Membership) IsCurrent() bool {
	return m.Status == MembershipActive && time.Now().Before(m.EndDate)
}
