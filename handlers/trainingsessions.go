package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gymstream/api"
	"gymstream/internal/database"
	"gymstream/models"
)

// TrainingSessionsHandler handles trainer appointment endpoints.
type TrainingSessionsHandler struct {
	sessions *database.TrainingSessionRepository
}

// NewTrainingSessionsHandler creates a new training sessions handler.
func NewTrainingSessionsHandler(sessions *database.TrainingSessionRepository) *TrainingSessionsHandler {
	return &TrainingSessionsHandler{sessions: sessions}
}

// TrainingSessionRequest represents the create/update session body.
type TrainingSessionRequest struct {
	TrainerID     int64              `json:"trainerId"`
	MemberID      int64              `json:"memberId"`
	Type          models.SessionType `json:"type"`
	ScheduledDate time.Time          `json:"scheduledDate"`
	Duration      int                `json:"duration"`
	Price         float64            `json:"price"`
	Notes         string             `json:"notes"`
	Location      string             `json:"location"`
}

// List returns all training sessions.
func (h *TrainingSessionsHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessions.List()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// Create books a training session.
func (h *TrainingSessionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TrainingSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.TrainerID == 0 || req.MemberID == 0 || req.Type == "" || req.ScheduledDate.IsZero() {
		writeMessage(w, http.StatusBadRequest, "trainerId, memberId, type and scheduledDate are required")
		return
	}

	s := models.TrainingSession{
		Trainer:       models.UserRef{ID: req.TrainerID},
		Member:        models.UserRef{ID: req.MemberID},
		Type:          req.Type,
		ScheduledDate: req.ScheduledDate,
		Duration:      req.Duration,
		Price:         req.Price,
		Notes:         req.Notes,
		Location:      req.Location,
	}
	if err := h.sessions.Create(&s); err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

// Get returns a single training session by ID.
func (h *TrainingSessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	s, err := h.sessions.GetByID(id)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// Update changes a session's booking details.
func (h *TrainingSessionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	s, err := h.sessions.GetByID(id)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "session not found")
		return
	}

	var req TrainingSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.TrainerID != 0 {
		s.Trainer = models.UserRef{ID: req.TrainerID}
	}
	if req.MemberID != 0 {
		s.Member = models.UserRef{ID: req.MemberID}
	}
	if req.Type != "" {
		s.Type = req.Type
	}
	if !req.ScheduledDate.IsZero() {
		s.ScheduledDate = req.ScheduledDate
	}
	if req.Duration != 0 {
		s.Duration = req.Duration
	}
	if req.Price != 0 {
		s.Price = req.Price
	}
	if req.Notes != "" {
		s.Notes = req.Notes
	}
	if req.Location != "" {
		s.Location = req.Location
	}

	if err := h.sessions.Update(&s); err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to update session")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// Delete removes a training session.
func (h *TrainingSessionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	switch err := h.sessions.Delete(id); err {
	case nil:
	case database.ErrSessionNotFound:
		writeMessage(w, http.StatusNotFound, "session not found")
		return
	default:
		writeMessage(w, http.StatusInternalServerError, "failed to delete session")
		return
	}
	writeMessage(w, http.StatusOK, "session deleted")
}

// ListByTrainer returns the trainer's sessions.
func (h *TrainingSessionsHandler) ListByTrainer(w http.ResponseWriter, r *http.Request) {
	trainerID, ok := pathID(w, r, "trainerId")
	if !ok {
		return
	}
	sessions, err := h.sessions.ListByTrainer(trainerID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// ListByMember returns the member's sessions.
func (h *TrainingSessionsHandler) ListByMember(w http.ResponseWriter, r *http.Request) {
	memberID, ok := pathID(w, r, "memberId")
	if !ok {
		return
	}
	sessions, err := h.sessions.ListByMember(memberID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// ListByStatus returns sessions in the given status.
func (h *TrainingSessionsHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessions.ListByStatus(models.SessionStatus(mux.Vars(r)["status"]))
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// ListByType returns sessions of the given coaching type.
func (h *TrainingSessionsHandler) ListByType(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessions.ListByType(models.SessionType(mux.Vars(r)["type"]))
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// ListUpcoming returns scheduled sessions ahead of now.
func (h *TrainingSessionsHandler) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessions.ListUpcoming()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// ListUpcomingByTrainer returns the trainer's upcoming sessions.
func (h *TrainingSessionsHandler) ListUpcomingByTrainer(w http.ResponseWriter, r *http.Request) {
	trainerID, ok := pathID(w, r, "trainerId")
	if !ok {
		return
	}
	sessions, err := h.sessions.ListUpcomingByTrainer(trainerID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// ListUpcomingByMember returns the member's upcoming sessions.
func (h *TrainingSessionsHandler) ListUpcomingByMember(w http.ResponseWriter, r *http.Request) {
	memberID, ok := pathID(w, r, "memberId")
	if !ok {
		return
	}
	sessions, err := h.sessions.ListUpcomingByMember(memberID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// UpdateStatus changes a session's lifecycle status.
func (h *TrainingSessionsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Status models.SessionStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	s, err := h.sessions.UpdateStatus(id, req.Status)
	switch err {
	case nil:
	case database.ErrSessionNotFound:
		writeMessage(w, http.StatusNotFound, "session not found")
		return
	default:
		writeMessage(w, http.StatusInternalServerError, "failed to update session")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// Reschedule moves a session to a new date and resets it to SCHEDULED.
func (h *TrainingSessionsHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		ScheduledDate time.Time `json:"scheduledDate"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ScheduledDate.IsZero() {
		writeMessage(w, http.StatusBadRequest, "scheduledDate is required")
		return
	}
	s, err := h.sessions.Reschedule(id, req.ScheduledDate)
	switch err {
	case nil:
	case database.ErrSessionNotFound:
		writeMessage(w, http.StatusNotFound, "session not found")
		return
	default:
		writeMessage(w, http.StatusInternalServerError, "failed to reschedule session")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// RegisterRoutes mounts the training session endpoints on an authenticated router.
func (h *TrainingSessionsHandler) RegisterRoutes(r *mux.Router) {
	staffTrainer := []models.Role{models.RoleAdmin, models.RoleStaff, models.RoleTrainer}
	r.HandleFunc("/training-sessions", h.List).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/training-sessions", h.Create).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/training-sessions/upcoming", h.ListUpcoming).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/training-sessions/status/{status}", h.ListByStatus).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/training-sessions/type/{type}", h.ListByType).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/training-sessions/trainer/{trainerId:[0-9]+}", h.ListByTrainer).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/training-sessions/trainer/{trainerId:[0-9]+}/upcoming", h.ListUpcomingByTrainer).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/training-sessions/member/{memberId:[0-9]+}", h.ListByMember).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/training-sessions/member/{memberId:[0-9]+}/upcoming", h.ListUpcomingByMember).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/training-sessions/{id:[0-9]+}", h.Get).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/training-sessions/{id:[0-9]+}", h.Update).Methods(http.MethodPut, http.MethodOptions)
	r.HandleFunc("/training-sessions/{id:[0-9]+}", api.RequireRolesFunc(h.Delete, staffTrainer...)).Methods(http.MethodDelete, http.MethodOptions)
	r.HandleFunc("/training-sessions/{id:[0-9]+}/status", api.RequireRolesFunc(h.UpdateStatus, staffTrainer...)).Methods(http.MethodPut, http.MethodOptions)
	r.HandleFunc("/training-sessions/{id:[0-9]+}/reschedule", h.Reschedule).Methods(http.MethodPut, http.MethodOptions)
}
