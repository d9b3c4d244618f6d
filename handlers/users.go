package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"gymstream/api"
	"gymstream/internal/database"
	"gymstream/models"
)

// UsersHandler handles user management endpoints.
type UsersHandler struct {
	users *database.UserRepository
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(users *database.UserRepository) *UsersHandler {
	return &UsersHandler{users: users}
}

// List returns all users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Trainers returns all users with the TRAINER role.
func (h *UsersHandler) Trainers(w http.ResponseWriter, r *http.Request) {
	trainers, err := h.users.ListByRole(models.RoleTrainer)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list trainers")
		return
	}
	writeJSON(w, http.StatusOK, trainers)
}

// Get returns a single user by ID.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	user, err := h.users.GetByID(id)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateUserRequest represents the fields an update may change.
type UpdateUserRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	Enabled   *bool  `json:"enabled"`
}

// Update changes a user's profile fields.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	user, err := h.users.GetByID(id)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "user not found")
		return
	}

	var req UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Role != "" {
		if !models.ValidRole(req.Role) {
			writeMessage(w, http.StatusBadRequest, "invalid role")
			return
		}
		user.Role = models.Role(req.Role)
	}
	if req.Enabled != nil {
		user.Enabled = *req.Enabled
	}

	if err := h.users.Update(&user); err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to update user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Delete removes a user.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	switch err := h.users.Delete(id); err {
	case nil:
	case database.ErrUserNotFound:
		writeMessage(w, http.StatusNotFound, "user not found")
		return
	default:
		writeMessage(w, http.StatusInternalServerError, "failed to delete user")
		return
	}
	writeMessage(w, http.StatusOK, "user deleted")
}

// RegisterRoutes mounts the user endpoints on an authenticated router.
func (h *UsersHandler) RegisterRoutes(r *mux.Router) {
	staff := []models.Role{models.RoleAdmin, models.RoleStaff}
	r.HandleFunc("/users", api.RequireRolesFunc(h.List, staff...)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/users/trainers", h.Trainers).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/users/{id:[0-9]+}", h.Get).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/users/{id:[0-9]+}", api.RequireRolesFunc(h.Update, staff...)).Methods(http.MethodPut, http.MethodOptions)
	r.HandleFunc("/users/{id:[0-9]+}", api.RequireRolesFunc(h.Delete, models.RoleAdmin)).Methods(http.MethodDelete, http.MethodOptions)
}
