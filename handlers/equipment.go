package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gymstream/api"
	"gymstream/internal/database"
	"gymstream/models"
)

// EquipmentHandler handles equipment inventory endpoints.
type EquipmentHandler struct {
	equipment *database.EquipmentRepository
}

// NewEquipmentHandler creates a new equipment handler.
func NewEquipmentHandler(equipment *database.EquipmentRepository) *EquipmentHandler {
	return &EquipmentHandler{equipment: equipment}
}

// List returns all equipment.
func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.equipment.List()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list equipment")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Create adds a piece of equipment.
func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var e models.Equipment
	if !decodeJSON(w, r, &e) {
		return
	}
	if e.Name == "" || e.Type == "" {
		writeMessage(w, http.StatusBadRequest, "name and type are required")
		return
	}
	if err := h.equipment.Create(&e); err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to create equipment")
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// Get returns a single piece of equipment by ID.
func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	e, err := h.equipment.GetByID(id)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "equipment not found")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// Update replaces the editable fields of a piece of equipment.
func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if _, err := h.equipment.GetByID(id); err != nil {
		writeMessage(w, http.StatusNotFound, "equipment not found")
		return
	}

	var e models.Equipment
	if !decodeJSON(w, r, &e) {
		return
	}
	e.ID = id
	if err := h.equipment.Update(&e); err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to update equipment")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// Delete removes a piece of equipment.
func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	switch err := h.equipment.Delete(id); err {
	case nil:
	case database.ErrEquipmentNotFound:
		writeMessage(w, http.StatusNotFound, "equipment not found")
		return
	default:
		writeMessage(w, http.StatusInternalServerError, "failed to delete equipment")
		return
	}
	writeMessage(w, http.StatusOK, "equipment deleted")
}

// ListByType returns equipment of the given type.
func (h *EquipmentHandler) ListByType(w http.ResponseWriter, r *http.Request) {
	items, err := h.equipment.ListByType(models.EquipmentType(mux.Vars(r)["type"]))
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list equipment")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// ListByStatus returns equipment in the given status.
func (h *EquipmentHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	items, err := h.equipment.ListByStatus(models.EquipmentStatus(mux.Vars(r)["status"]))
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list equipment")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// ListByLocation returns equipment placed at the given location.
func (h *EquipmentHandler) ListByLocation(w http.ResponseWriter, r *http.Request) {
	items, err := h.equipment.ListByLocation(mux.Vars(r)["location"])
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list equipment")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// ListNeedingMaintenance returns equipment due or under maintenance.
func (h *EquipmentHandler) ListNeedingMaintenance(w http.ResponseWriter, r *http.Request) {
	items, err := h.equipment.ListNeedingMaintenance()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list equipment")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Search matches equipment by name, description or serial number.
func (h *EquipmentHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		writeMessage(w, http.StatusBadRequest, "q is required")
		return
	}
	items, err := h.equipment.Search(term)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to search equipment")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// UpdateStatus changes a piece of equipment's operational status.
func (h *EquipmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Status models.EquipmentStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	e, err := h.equipment.UpdateStatus(id, req.Status)
	switch err {
	case nil:
	case database.ErrEquipmentNotFound:
		writeMessage(w, http.StatusNotFound, "equipment not found")
		return
	default:
		writeMessage(w, http.StatusInternalServerError, "failed to update equipment")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// ScheduleMaintenance sets the next maintenance date and flags the unit.
func (h *EquipmentHandler) ScheduleMaintenance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		NextMaintenanceDate time.Time `json:"nextMaintenanceDate"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.NextMaintenanceDate.IsZero() {
		writeMessage(w, http.StatusBadRequest, "nextMaintenanceDate is required")
		return
	}
	e, err := h.equipment.ScheduleMaintenance(id, req.NextMaintenanceDate)
	switch err {
	case nil:
	case database.ErrEquipmentNotFound:
		writeMessage(w, http.StatusNotFound, "equipment not found")
		return
	default:
		writeMessage(w, http.StatusInternalServerError, "failed to schedule maintenance")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// CompleteMaintenance stamps the maintenance as done and frees the unit.
func (h *EquipmentHandler) CompleteMaintenance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	e, err := h.equipment.CompleteMaintenance(id)
	switch err {
	case nil:
	case database.ErrEquipmentNotFound:
		writeMessage(w, http.StatusNotFound, "equipment not found")
		return
	default:
		writeMessage(w, http.StatusInternalServerError, "failed to complete maintenance")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// RegisterRoutes mounts the equipment endpoints on an authenticated router.
func (h *EquipmentHandler) RegisterRoutes(r *mux.Router) {
	staff := []models.Role{models.RoleAdmin, models.RoleStaff}
	r.HandleFunc("/equipment", h.List).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/equipment", api.RequireRolesFunc(h.Create, staff...)).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/equipment/search", h.Search).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/equipment/maintenance/needed", h.ListNeedingMaintenance).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/equipment/type/{type}", h.ListByType).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/equipment/status/{status}", h.ListByStatus).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/equipment/location/{location}", h.ListByLocation).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/equipment/{id:[0-9]+}", h.Get).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/equipment/{id:[0-9]+}", api.RequireRolesFunc(h.Update, staff...)).Methods(http.MethodPut, http.MethodOptions)
	r.HandleFunc("/equipment/{id:[0-9]+}", api.RequireRolesFunc(h.Delete, models.RoleAdmin)).Methods(http.MethodDelete, http.MethodOptions)
	r.HandleFunc("/equipment/{id:[0-9]+}/status", api.RequireRolesFunc(h.UpdateStatus, staff...)).Methods(http.MethodPut, http.MethodOptions)
	r.HandleFunc("/equipment/{id:[0-9]+}/maintenance/schedule", api.RequireRolesFunc(h.ScheduleMaintenance, staff...)).Methods(http.MethodPut, http.MethodOptions)
	r.HandleFunc("/equipment/{id:[0-9]+}/maintenance/complete", api.RequireRolesFunc(h.CompleteMaintenance, staff...)).Methods(http.MethodPut, http.MethodOptions)
}
