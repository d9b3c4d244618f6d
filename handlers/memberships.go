package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"gymstream/api"
	"gymstream/internal/database"
	"gymstream/models"
)

// MembershipsHandler handles membership plan endpoints.
type MembershipsHandler struct {
	memberships *database.MembershipRepository
}

// NewMembershipsHandler creates a new memberships handler.
func NewMembershipsHandler(memberships *database.MembershipRepository) *MembershipsHandler {
	return &MembershipsHandler{memberships: memberships}
}

// MembershipRequest represents the create/update membership body.
type MembershipRequest struct {
	UserID      int64                   `json:"userId"`
	Type        models.MembershipType   `json:"type"`
	Status      models.MembershipStatus `json:"status"`
	Price       float64                 `json:"price"`
	StartDate   time.Time               `json:"startDate"`
	EndDate     time.Time               `json:"endDate"`
	Description string                  `json:"description"`
}

// List returns all memberships.
func (h *MembershipsHandler) List(w http.ResponseWriter, r *http.Request) {
	memberships, err := h.memberships.List()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list memberships")
		return
	}
	writeJSON(w, http.StatusOK, memberships)
}

// Create adds a membership for a user.
func (h *MembershipsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req MembershipRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.UserID == 0 || req.Type == "" || req.EndDate.IsZero() {
		writeMessage(w, http.StatusBadRequest, "userId, type and endDate are required")
		return
	}

	m := models.Membership{
		User:        models.UserRef{ID: req.UserID},
		Type:        req.Type,
		Status:      req.Status,
		Price:       req.Price,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
	}
	if m.StartDate.IsZero() {
		m.StartDate = time.Now().UTC()
	}
	if err := h.memberships.Create(&m); err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to create membership")
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// Get returns a single membership by ID.
func (h *MembershipsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	m, err := h.memberships.GetByID(id)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "membership not found")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Update changes a membership's plan fields.
func (h *MembershipsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	m, err := h.memberships.GetByID(id)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "membership not found")
		return
	}

	var req MembershipRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Type != "" {
		m.Type = req.Type
	}
	if req.Price != 0 {
		m.Price = req.Price
	}
	if !req.StartDate.IsZero() {
		m.StartDate = req.StartDate
	}
	if !req.EndDate.IsZero() {
		m.EndDate = req.EndDate
	}
	if req.Description != "" {
		m.Description = req.Description
	}

	if err := h.memberships.Update(&m); err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to update membership")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Delete removes a membership.
func (h *MembershipsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	switch err := h.memberships.Delete(id); err {
	case nil:
	case database.ErrMembershipNotFound:
		writeMessage(w, http.StatusNotFound, "membership not found")
		return
	default:
		writeMessage(w, http.StatusInternalServerError, "failed to delete membership")
		return
	}
	writeMessage(w, http.StatusOK, "membership deleted")
}

// ListByUser returns all memberships belonging to a user.
func (h *MembershipsHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	memberships, err := h.memberships.ListByUser(userID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list memberships")
		return
	}
	writeJSON(w, http.StatusOK, memberships)
}

// ActiveByUser returns the user's current active membership.
func (h *MembershipsHandler) ActiveByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	m, err := h.memberships.GetActiveByUser(userID)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "no active membership")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// CheckActive reports whether the user holds an active membership.
func (h *MembershipsHandler) CheckActive(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	has, err := h.memberships.HasActive(userID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to check membership")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"hasActiveMembership": has})
}

// ListByStatus returns memberships in the given status.
func (h *MembershipsHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	status := models.MembershipStatus(mux.Vars(r)["status"])
	memberships, err := h.memberships.ListByStatus(status)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list memberships")
		return
	}
	writeJSON(w, http.StatusOK, memberships)
}

// ListExpiring returns active memberships ending within ?days (default 30).
func (h *MembershipsHandler) ListExpiring(w http.ResponseWriter, r *http.Request) {
	days := 30
	if s := r.URL.Query().Get("days"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeMessage(w, http.StatusBadRequest, "invalid days")
			return
		}
		days = n
	}
	now := time.Now().UTC()
	memberships, err := h.memberships.ListExpiring(now, now.AddDate(0, 0, days))
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list memberships")
		return
	}
	writeJSON(w, http.StatusOK, memberships)
}

// ListExpired returns memberships past their end date still marked active.
func (h *MembershipsHandler) ListExpired(w http.ResponseWriter, r *http.Request) {
	memberships, err := h.memberships.ListExpired()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list memberships")
		return
	}
	writeJSON(w, http.StatusOK, memberships)
}

// CountActive returns the number of active memberships.
func (h *MembershipsHandler) CountActive(w http.ResponseWriter, r *http.Request) {
	count, err := h.memberships.CountActive()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to count memberships")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

// UpdateStatus changes a membership's status.
func (h *MembershipsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Status models.MembershipStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := h.memberships.UpdateStatus(id, req.Status)
	switch err {
	case nil:
	case database.ErrMembershipNotFound:
		writeMessage(w, http.StatusNotFound, "membership not found")
		return
	default:
		writeMessage(w, http.StatusInternalServerError, "failed to update membership")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Renew extends a membership to a new end date and re-activates it.
func (h *MembershipsHandler) Renew(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		EndDate time.Time `json:"endDate"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.EndDate.IsZero() {
		writeMessage(w, http.StatusBadRequest, "endDate is required")
		return
	}

	m, err := h.memberships.Renew(id, req.EndDate)
	switch err {
	case nil:
	case database.ErrMembershipNotFound:
		writeMessage(w, http.StatusNotFound, "membership not found")
		return
	default:
		writeMessage(w, http.StatusInternalServerError, "failed to renew membership")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// RegisterRoutes mounts the membership endpoints on an authenticated router.
func (h *MembershipsHandler) RegisterRoutes(r *mux.Router) {
	staff := []models.Role{models.RoleAdmin, models.RoleStaff}
	r.HandleFunc("/memberships", h.List).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/memberships", api.RequireRolesFunc(h.Create, staff...)).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/memberships/expiring", h.ListExpiring).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/memberships/expired", h.ListExpired).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/memberships/count/active", h.CountActive).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/memberships/status/{status}", h.ListByStatus).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/memberships/user/{userId:[0-9]+}", h.ListByUser).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/memberships/user/{userId:[0-9]+}/active", h.ActiveByUser).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/memberships/user/{userId:[0-9]+}/check", h.CheckActive).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/memberships/{id:[0-9]+}", h.Get).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/memberships/{id:[0-9]+}", api.RequireRolesFunc(h.Update, staff...)).Methods(http.MethodPut, http.MethodOptions)
	r.HandleFunc("/memberships/{id:[0-9]+}", api.RequireRolesFunc(h.Delete, models.RoleAdmin)).Methods(http.MethodDelete, http.MethodOptions)
	r.HandleFunc("/memberships/{id:[0-9]+}/status", api.RequireRolesFunc(h.UpdateStatus, staff...)).Methods(http.MethodPut, http.MethodOptions)
	r.HandleFunc("/memberships/{id:[0-9]+}/renew", api.RequireRolesFunc(h.Renew, staff...)).Methods(http.MethodPut, http.MethodOptions)
}
