package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"gymstream/api"
	"gymstream/internal/database"
	"gymstream/models"
)

// ClassRegistrationsHandler handles class signup endpoints. It keeps the
// class enrollment counter in step with registration changes.
type ClassRegistrationsHandler struct {
	registrations *database.ClassRegistrationRepository
	classes       *database.GymClassRepository
	logger        *slog.Logger
}

// NewClassRegistrationsHandler creates a new class registrations handler.
func NewClassRegistrationsHandler(registrations *database.ClassRegistrationRepository, classes *database.GymClassRepository, logger *slog.Logger) *ClassRegistrationsHandler {
	return &ClassRegistrationsHandler{registrations: registrations, classes: classes, logger: logger}
}

// RegisterRequest represents the class signup body.
type RegisterRequest struct {
	MemberID int64  `json:"memberId"`
	ClassID  int64  `json:"classId"`
	Notes    string `json:"notes"`
}

// List returns all registrations.
func (h *ClassRegistrationsHandler) List(w http.ResponseWriter, r *http.Request) {
	regs, err := h.registrations.List()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list registrations")
		return
	}
	writeJSON(w, http.StatusOK, regs)
}

// Create signs a member up for a class, taking one enrollment spot.
func (h *ClassRegistrationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.MemberID == 0 || req.ClassID == 0 {
		writeMessage(w, http.StatusBadRequest, "memberId and classId are required")
		return
	}

	// Take the enrollment spot first so a full class rejects the signup.
	if _, err := h.classes.IncrementEnrollment(req.ClassID); err != nil {
		switch err {
		case database.ErrClassFull:
			writeMessage(w, http.StatusConflict, "class is full")
		case database.ErrClassNotFound:
			writeMessage(w, http.StatusNotFound, "class not found")
		default:
			writeMessage(w, http.StatusInternalServerError, "failed to register")
		}
		return
	}

	reg, err := h.registrations.Register(req.MemberID, req.ClassID, req.Notes)
	if err != nil {
		// Give the spot back.
		if _, derr := h.classes.DecrementEnrollment(req.ClassID); derr != nil {
			h.logger.Error("failed to release enrollment spot", "classID", req.ClassID, "error", derr)
		}
		switch err {
		case database.ErrAlreadyRegistered:
			writeMessage(w, http.StatusConflict, "member is already registered for this class")
		default:
			writeMessage(w, http.StatusInternalServerError, "failed to register")
		}
		return
	}
	writeJSON(w, http.StatusCreated, reg)
}

// Get returns a single registration by ID.
func (h *ClassRegistrationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	reg, err := h.registrations.GetByID(id)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "registration not found")
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

// ListByMember returns a member's registrations.
func (h *ClassRegistrationsHandler) ListByMember(w http.ResponseWriter, r *http.Request) {
	memberID, ok := pathID(w, r, "memberId")
	if !ok {
		return
	}
	regs, err := h.registrations.ListByMember(memberID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list registrations")
		return
	}
	writeJSON(w, http.StatusOK, regs)
}

// ListByClass returns a class's registrations.
func (h *ClassRegistrationsHandler) ListByClass(w http.ResponseWriter, r *http.Request) {
	classID, ok := pathID(w, r, "classId")
	if !ok {
		return
	}
	regs, err := h.registrations.ListByClass(classID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list registrations")
		return
	}
	writeJSON(w, http.StatusOK, regs)
}

// ListUpcomingByMember returns a member's still-registered signups, the
// classes they are yet to attend.
func (h *ClassRegistrationsHandler) ListUpcomingByMember(w http.ResponseWriter, r *http.Request) {
	memberID, ok := pathID(w, r, "memberId")
	if !ok {
		return
	}
	regs, err := h.registrations.ListByMemberAndStatus(memberID, models.RegistrationRegistered)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list registrations")
		return
	}
	writeJSON(w, http.StatusOK, regs)
}

// ListByClassAndStatus returns a class's registrations in the given status.
func (h *ClassRegistrationsHandler) ListByClassAndStatus(w http.ResponseWriter, r *http.Request) {
	classID, ok := pathID(w, r, "classId")
	if !ok {
		return
	}
	status := models.RegistrationStatus(mux.Vars(r)["status"])
	regs, err := h.registrations.ListByClassAndStatus(classID, status)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list registrations")
		return
	}
	writeJSON(w, http.StatusOK, regs)
}

// CountByClass returns the number of active registrations for a class.
func (h *ClassRegistrationsHandler) CountByClass(w http.ResponseWriter, r *http.Request) {
	classID, ok := pathID(w, r, "classId")
	if !ok {
		return
	}
	count, err := h.registrations.CountActiveByClass(classID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to count registrations")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

// MarkAttendance marks the member as having attended the class.
func (h *ClassRegistrationsHandler) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	reg, err := h.registrations.MarkAttendance(id)
	switch err {
	case nil:
	case database.ErrRegistrationNotFound:
		writeMessage(w, http.StatusNotFound, "registration not found")
		return
	default:
		writeMessage(w, http.StatusInternalServerError, "failed to mark attendance")
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

// MarkNoShow marks the member as absent.
func (h *ClassRegistrationsHandler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	reg, err := h.registrations.MarkNoShow(id)
	switch err {
	case nil:
	case database.ErrRegistrationNotFound:
		writeMessage(w, http.StatusNotFound, "registration not found")
		return
	default:
		writeMessage(w, http.StatusInternalServerError, "failed to mark no-show")
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

// Cancel cancels a registration and frees the enrollment spot.
func (h *ClassRegistrationsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	reg, err := h.registrations.GetByID(id)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "registration not found")
		return
	}
	if reg.Status == models.RegistrationCancelled {
		writeMessage(w, http.StatusConflict, "registration is already cancelled")
		return
	}

	cancelled, err := h.registrations.Cancel(id)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to cancel registration")
		return
	}
	if _, err := h.classes.DecrementEnrollment(reg.GymClass.ID); err != nil && err != database.ErrClassEmpty {
		h.logger.Error("failed to release enrollment spot", "classID", reg.GymClass.ID, "error", err)
	}
	writeJSON(w, http.StatusOK, cancelled)
}

// Delete removes a registration record.
func (h *ClassRegistrationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	switch err := h.registrations.Delete(id); err {
	case nil:
	case database.ErrRegistrationNotFound:
		writeMessage(w, http.StatusNotFound, "registration not found")
		return
	default:
		writeMessage(w, http.StatusInternalServerError, "failed to delete registration")
		return
	}
	writeMessage(w, http.StatusOK, "registration deleted")
}

// RegisterRoutes mounts the class registration endpoints on an authenticated router.
func (h *ClassRegistrationsHandler) RegisterRoutes(r *mux.Router) {
	staffTrainer := []models.Role{models.RoleAdmin, models.RoleStaff, models.RoleTrainer}
	r.HandleFunc("/class-registrations", h.List).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/class-registrations", h.Create).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/class-registrations/member/{memberId:[0-9]+}", h.ListByMember).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/class-registrations/member/{memberId:[0-9]+}/upcoming", h.ListUpcomingByMember).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/class-registrations/class/{classId:[0-9]+}", h.ListByClass).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/class-registrations/class/{classId:[0-9]+}/status/{status}", h.ListByClassAndStatus).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/class-registrations/class/{classId:[0-9]+}/count", h.CountByClass).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/class-registrations/{id:[0-9]+}", h.Get).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/class-registrations/{id:[0-9]+}/attend", api.RequireRolesFunc(h.MarkAttendance, staffTrainer...)).Methods(http.MethodPut, http.MethodOptions)
	r.HandleFunc("/class-registrations/{id:[0-9]+}/no-show", api.RequireRolesFunc(h.MarkNoShow, staffTrainer...)).Methods(http.MethodPut, http.MethodOptions)
	r.HandleFunc("/class-registrations/{id:[0-9]+}/cancel", h.Cancel).Methods(http.MethodPut, http.MethodOptions)
	r.HandleFunc("/class-registrations/{id:[0-9]+}", api.RequireRolesFunc(h.Delete, models.RoleAdmin)).Methods(http.MethodDelete, http.MethodOptions)
}
