package auth

import (
	"net/http"

	"gymstream/models"
)

// ContextKey is the type used for context keys
type ContextKey string

const (
	// ContextKeyUserID is the key for the authenticated user's ID in the context
	ContextKeyUserID ContextKey = "userID"
	// ContextKeyUsername is the key for the authenticated username in the context
	ContextKeyUsername ContextKey = "username"
	// ContextKeyRole is the key for the authenticated user's role in the context
	ContextKeyRole ContextKey = "role"
)

// GetUserID retrieves the authenticated user's ID from the request context.
func GetUserID(r *http.Request) int64 {
	if id, ok := r.Context().Value(ContextKeyUserID).(int64); ok {
		return id
	}
	return 0
}

// GetUsername retrieves the authenticated username from the request context.
func GetUsername(r *http.Request) string {
	if name, ok := r.Context().Value(ContextKeyUsername).(string); ok {
		return name
	}
	return ""
}

// GetRole retrieves the authenticated user's role from the request context.
func GetRole(r *http.Request) models.Role {
	if role, ok := r.Context().Value(ContextKeyRole).(models.Role); ok {
		return role
	}
	return ""
}

// HasRole checks if the authenticated user has one of the given roles.
func HasRole(r *http.Request, roles ...models.Role) bool {
	current := GetRole(r)
	for _, role := range roles {
		if current == role {
			return true
		}
	}
	return false
}
