package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"gymstream/api"
	"gymstream/internal/database"
	"gymstream/models"
)

// GymClassesHandler handles group class endpoints.
type GymClassesHandler struct {
	classes *database.GymClassRepository
}

// NewGymClassesHandler creates a new gym classes handler.
func NewGymClassesHandler(classes *database.GymClassRepository) *GymClassesHandler {
	return &GymClassesHandler{classes: classes}
}

// GymClassRequest represents the create/update class body.
type GymClassRequest struct {
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Type         models.ClassType   `json:"type"`
	Status       models.ClassStatus `json:"status"`
	TrainerID    int64              `json:"trainerId"`
	StartTime    string             `json:"startTime"`
	EndTime      string             `json:"endTime"`
	Duration     int                `json:"duration"`
	MaxCapacity  int                `json:"maxCapacity"`
	Price        float64            `json:"price"`
	Location     string             `json:"location"`
	ScheduleDays string             `json:"scheduleDays"`
}

// List returns all classes.
func (h *GymClassesHandler) List(w http.ResponseWriter, r *http.Request) {
	classes, err := h.classes.List()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list classes")
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

// Create adds a group class.
func (h *GymClassesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req GymClassRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" || req.Type == "" || req.TrainerID == 0 {
		writeMessage(w, http.StatusBadRequest, "name, type and trainerId are required")
		return
	}
	if req.MaxCapacity <= 0 {
		writeMessage(w, http.StatusBadRequest, "maxCapacity must be positive")
		return
	}

	c := models.GymClass{
		Name:         req.Name,
		Description:  req.Description,
		Type:         req.Type,
		Status:       req.Status,
		Trainer:      models.UserRef{ID: req.TrainerID},
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Duration:     req.Duration,
		MaxCapacity:  req.MaxCapacity,
		Price:        req.Price,
		Location:     req.Location,
		ScheduleDays: req.ScheduleDays,
	}
	if err := h.classes.Create(&c); err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to create class")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// Get returns a single class by ID.
func (h *GymClassesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	c, err := h.classes.GetByID(id)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "class not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Update changes a class's schedule and details.
func (h *GymClassesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	c, err := h.classes.GetByID(id)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "class not found")
		return
	}

	var req GymClassRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name != "" {
		c.Name = req.Name
	}
	if req.Description != "" {
		c.Description = req.Description
	}
	if req.Type != "" {
		c.Type = req.Type
	}
	if req.TrainerID != 0 {
		c.Trainer = models.UserRef{ID: req.TrainerID}
	}
	if req.StartTime != "" {
		c.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		c.EndTime = req.EndTime
	}
	if req.Duration != 0 {
		c.Duration = req.Duration
	}
	if req.MaxCapacity != 0 {
		c.MaxCapacity = req.MaxCapacity
	}
	if req.Price != 0 {
		c.Price = req.Price
	}
	if req.Location != "" {
		c.Location = req.Location
	}
	if req.ScheduleDays != "" {
		c.ScheduleDays = req.ScheduleDays
	}

	if err := h.classes.Update(&c); err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to update class")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Delete removes a class.
func (h *GymClassesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	switch err := h.classes.Delete(id); err {
	case nil:
	case database.ErrClassNotFound:
		writeMessage(w, http.StatusNotFound, "class not found")
		return
	default:
		writeMessage(w, http.StatusInternalServerError, "failed to delete class")
		return
	}
	writeMessage(w, http.StatusOK, "class deleted")
}

// ListAvailable returns active classes with open spots.
func (h *GymClassesHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	classes, err := h.classes.ListAvailable()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list classes")
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

// ListFull returns classes at capacity.
func (h *GymClassesHandler) ListFull(w http.ResponseWriter, r *http.Request) {
	classes, err := h.classes.ListFull()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list classes")
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

// CountActive returns the number of active classes.
func (h *GymClassesHandler) CountActive(w http.ResponseWriter, r *http.Request) {
	count, err := h.classes.CountActive()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to count classes")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

// ListByType returns classes of the given discipline.
func (h *GymClassesHandler) ListByType(w http.ResponseWriter, r *http.Request) {
	classes, err := h.classes.ListByType(models.ClassType(mux.Vars(r)["type"]))
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list classes")
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

// ListByStatus returns classes in the given status.
func (h *GymClassesHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	classes, err := h.classes.ListByStatus(models.ClassStatus(mux.Vars(r)["status"]))
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list classes")
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

// ListByTrainer returns classes led by the given trainer.
func (h *GymClassesHandler) ListByTrainer(w http.ResponseWriter, r *http.Request) {
	trainerID, ok := pathID(w, r, "trainerId")
	if !ok {
		return
	}
	classes, err := h.classes.ListByTrainer(trainerID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list classes")
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

// Search matches classes by name or description.
func (h *GymClassesHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		writeMessage(w, http.StatusBadRequest, "q is required")
		return
	}
	classes, err := h.classes.Search(term)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to search classes")
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

// UpdateStatus changes a class's lifecycle status.
func (h *GymClassesHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Status models.ClassStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.classes.UpdateStatus(id, req.Status)
	switch err {
	case nil:
	case database.ErrClassNotFound:
		writeMessage(w, http.StatusNotFound, "class not found")
		return
	default:
		writeMessage(w, http.StatusInternalServerError, "failed to update class")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// IncrementEnrollment takes one enrollment spot, for manual corrections.
// The registration flow moves the counter itself.
func (h *GymClassesHandler) IncrementEnrollment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	c, err := h.classes.IncrementEnrollment(id)
	switch err {
	case nil:
	case database.ErrClassFull:
		writeMessage(w, http.StatusConflict, "class is full")
		return
	case database.ErrClassNotFound:
		writeMessage(w, http.StatusNotFound, "class not found")
		return
	default:
		writeMessage(w, http.StatusInternalServerError, "failed to update enrollment")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DecrementEnrollment releases one enrollment spot, for manual corrections.
func (h *GymClassesHandler) DecrementEnrollment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	c, err := h.classes.DecrementEnrollment(id)
	switch err {
	case nil:
	case database.ErrClassEmpty:
		writeMessage(w, http.StatusConflict, "class has no enrollments")
		return
	case database.ErrClassNotFound:
		writeMessage(w, http.StatusNotFound, "class not found")
		return
	default:
		writeMessage(w, http.StatusInternalServerError, "failed to update enrollment")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// RegisterRoutes mounts the gym class endpoints on an authenticated router.
func (h *GymClassesHandler) RegisterRoutes(r *mux.Router) {
	staff := []models.Role{models.RoleAdmin, models.RoleStaff}
	r.HandleFunc("/gym-classes", h.List).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/gym-classes", api.RequireRolesFunc(h.Create, staff...)).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/gym-classes/available", h.ListAvailable).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/gym-classes/full", h.ListFull).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/gym-classes/count/active", h.CountActive).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/gym-classes/search", h.Search).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/gym-classes/type/{type}", h.ListByType).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/gym-classes/status/{status}", h.ListByStatus).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/gym-classes/trainer/{trainerId:[0-9]+}", h.ListByTrainer).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/gym-classes/{id:[0-9]+}", h.Get).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/gym-classes/{id:[0-9]+}", api.RequireRolesFunc(h.Update, staff...)).Methods(http.MethodPut, http.MethodOptions)
	r.HandleFunc("/gym-classes/{id:[0-9]+}", api.RequireRolesFunc(h.Delete, models.RoleAdmin)).Methods(http.MethodDelete, http.MethodOptions)
	r.HandleFunc("/gym-classes/{id:[0-9]+}/status", api.RequireRolesFunc(h.UpdateStatus, staff...)).Methods(http.MethodPut, http.MethodOptions)
	r.HandleFunc("/gym-classes/{id:[0-9]+}/enrollment/increment", api.RequireRolesFunc(h.IncrementEnrollment, staff...)).Methods(http.MethodPut, http.MethodOptions)
	r.HandleFunc("/gym-classes/{id:[0-9]+}/enrollment/decrement", api.RequireRolesFunc(h.DecrementEnrollment, staff...)).Methods(http.MethodPut, http.MethodOptions)
}
