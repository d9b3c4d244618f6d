package models

import "time"

// Role identifies what a user is allowed to do. Stored as the bare name
// (ADMIN); the wire format for authority lists adds the ROLE_ prefix.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleStaff   Role = "STAFF"
	RoleTrainer Role = "TRAINER"
	RoleMember  Role = "MEMBER"
)

// RolePrefix is prepended to role names in authority lists and token claims.
const RolePrefix = "ROLE_"

// Authority returns the prefixed wire form of the role, e.g. ROLE_ADMIN.
func (r Role) Authority() string {
	return RolePrefix + string(r)
}

// ParseSignupRole maps the lowercase role names accepted at signup to a Role.
// Unknown values fall back to MEMBER.
func ParseSignupRole(s string) Role {
	switch s {
	case "admin":
		return RoleAdmin
	case "trainer":
		return RoleTrainer
	case "staff":
		return RoleStaff
	default:
		return RoleMember
	}
}

// ValidRole reports whether s is one of the known role names.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleStaff, RoleTrainer, RoleMember:
		return true
	}
	return false
}

// User is an account that can sign in. Every member, trainer, staffer and
// admin is a row in the same table; Role decides what they can reach.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	PasswordHash string    `json:"-"` // bcrypt hash, never serialized
	Role         Role      `json:"role"`
	Enabled      bool      `json:"enabled"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FullName returns the display name for the user.
func (u User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	return u.FirstName + " " + u.LastName
}

// UserRef is the slim user projection embedded in entities that reference a
// user (memberships, payments, sessions). Keeps list payloads small and
// never leaks credentials.
type UserRef struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
}

// Ref returns the embeddable projection of the user.
func (u User) Ref() UserRef {
	return UserRef{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}
