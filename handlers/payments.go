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

// PaymentsHandler handles billing endpoints.
type PaymentsHandler struct {
	payments *database.PaymentRepository
}

// NewPaymentsHandler creates a new payments handler.
func NewPaymentsHandler(payments *database.PaymentRepository) *PaymentsHandler {
	return &PaymentsHandler{payments: payments}
}

// PaymentRequest represents the create/update payment body.
type PaymentRequest struct {
	UserID      int64                `json:"userId"`
	Type        models.PaymentType   `json:"type"`
	Method      models.PaymentMethod `json:"method"`
	Amount      float64              `json:"amount"`
	Description string               `json:"description"`
	DueDate     *time.Time           `json:"dueDate"`
	Notes       string               `json:"notes"`
}

// List returns all payments.
func (h *PaymentsHandler) List(w http.ResponseWriter, r *http.Request) {
	payments, err := h.payments.List()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list payments")
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

// Create records a pending payment for a user.
func (h *PaymentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.UserID == 0 || req.Type == "" || req.Method == "" {
		writeMessage(w, http.StatusBadRequest, "userId, type and method are required")
		return
	}
	if req.Amount <= 0 {
		writeMessage(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	p := models.Payment{
		User:        models.UserRef{ID: req.UserID},
		Type:        req.Type,
		Method:      req.Method,
		Amount:      req.Amount,
		Description: req.Description,
		DueDate:     req.DueDate,
		Notes:       req.Notes,
	}
	if err := h.payments.Create(&p); err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to create payment")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// Get returns a single payment by ID.
func (h *PaymentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.payments.GetByID(id)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "payment not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Update changes a payment's billing details.
func (h *PaymentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.payments.GetByID(id)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "payment not found")
		return
	}

	var req PaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Type != "" {
		p.Type = req.Type
	}
	if req.Method != "" {
		p.Method = req.Method
	}
	if req.Amount != 0 {
		p.Amount = req.Amount
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.DueDate != nil {
		p.DueDate = req.DueDate
	}
	if req.Notes != "" {
		p.Notes = req.Notes
	}

	if err := h.payments.Update(&p); err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to update payment")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Delete removes a payment record.
func (h *PaymentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	switch err := h.payments.Delete(id); err {
	case nil:
	case database.ErrPaymentNotFound:
		writeMessage(w, http.StatusNotFound, "payment not found")
		return
	default:
		writeMessage(w, http.StatusInternalServerError, "failed to delete payment")
		return
	}
	writeMessage(w, http.StatusOK, "payment deleted")
}

// ListByUser returns a user's payments.
func (h *PaymentsHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	payments, err := h.payments.ListByUser(userID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list payments")
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

// ListByStatus returns payments in the given status.
func (h *PaymentsHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	payments, err := h.payments.ListByStatus(models.PaymentStatus(mux.Vars(r)["status"]))
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list payments")
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

// ListOverdue returns pending payments past their due date.
func (h *PaymentsHandler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	payments, err := h.payments.ListOverdue(time.Now().UTC())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list payments")
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

// ListByType returns payments of the given type.
func (h *PaymentsHandler) ListByType(w http.ResponseWriter, r *http.Request) {
	payments, err := h.payments.ListByType(models.PaymentType(mux.Vars(r)["type"]))
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list payments")
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

// ListByMethod returns payments made with the given method.
func (h *PaymentsHandler) ListByMethod(w http.ResponseWriter, r *http.Request) {
	payments, err := h.payments.ListByMethod(models.PaymentMethod(mux.Vars(r)["method"]))
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list payments")
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

// ListHighValue returns payments at or above the ?min amount (default 100).
func (h *PaymentsHandler) ListHighValue(w http.ResponseWriter, r *http.Request) {
	min := 100.0
	if v := r.URL.Query().Get("min"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed < 0 {
			writeMessage(w, http.StatusBadRequest, "min must be a non-negative number")
			return
		}
		min = parsed
	}
	payments, err := h.payments.ListHighValue(min)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to list payments")
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

// Revenue returns completed revenue between ?start and ?end (RFC 3339).
func (h *PaymentsHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "start must be an RFC 3339 timestamp")
		return
	}
	end, err := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "end must be an RFC 3339 timestamp")
		return
	}
	revenue, err := h.payments.RevenueByDateRange(start, end)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to total revenue")
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"revenue": revenue})
}

// TotalByUser returns the sum of a user's completed payments.
func (h *PaymentsHandler) TotalByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	total, err := h.payments.TotalByUser(userID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to total payments")
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"total": total})
}

// Process completes a pending payment.
func (h *PaymentsHandler) Process(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.payments.Process(id)
	switch err {
	case nil:
	case database.ErrPaymentNotFound:
		writeMessage(w, http.StatusNotFound, "payment not found")
		return
	case database.ErrPaymentNotPending:
		writeMessage(w, http.StatusConflict, "payment is not pending")
		return
	default:
		writeMessage(w, http.StatusInternalServerError, "failed to process payment")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Refund refunds a completed payment.
func (h *PaymentsHandler) Refund(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Notes string `json:"notes"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.payments.Refund(id, req.Notes)
	switch err {
	case nil:
	case database.ErrPaymentNotFound:
		writeMessage(w, http.StatusNotFound, "payment not found")
		return
	case database.ErrPaymentNotRefundable:
		writeMessage(w, http.StatusConflict, "only completed payments can be refunded")
		return
	default:
		writeMessage(w, http.StatusInternalServerError, "failed to refund payment")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Cancel cancels a pending payment.
func (h *PaymentsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.payments.Cancel(id)
	switch err {
	case nil:
	case database.ErrPaymentNotFound:
		writeMessage(w, http.StatusNotFound, "payment not found")
		return
	case database.ErrPaymentNotPending:
		writeMessage(w, http.StatusConflict, "payment is not pending")
		return
	default:
		writeMessage(w, http.StatusInternalServerError, "failed to cancel payment")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// RegisterRoutes mounts the payment endpoints on an authenticated router.
func (h *PaymentsHandler) RegisterRoutes(r *mux.Router) {
	staff := []models.Role{models.RoleAdmin, models.RoleStaff}
	r.HandleFunc("/payments", api.RequireRolesFunc(h.List, staff...)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/payments", api.RequireRolesFunc(h.Create, staff...)).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/payments/overdue", api.RequireRolesFunc(h.ListOverdue, staff...)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/payments/status/{status}", api.RequireRolesFunc(h.ListByStatus, staff...)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/payments/type/{type}", api.RequireRolesFunc(h.ListByType, staff...)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/payments/method/{method}", api.RequireRolesFunc(h.ListByMethod, staff...)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/payments/high-value", api.RequireRolesFunc(h.ListHighValue, staff...)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/payments/revenue", api.RequireRolesFunc(h.Revenue, staff...)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/payments/user/{userId:[0-9]+}", h.ListByUser).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/payments/user/{userId:[0-9]+}/total", h.TotalByUser).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/payments/{id:[0-9]+}", h.Get).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/payments/{id:[0-9]+}", api.RequireRolesFunc(h.Update, staff...)).Methods(http.MethodPut, http.MethodOptions)
	r.HandleFunc("/payments/{id:[0-9]+}", api.RequireRolesFunc(h.Delete, models.RoleAdmin)).Methods(http.MethodDelete, http.MethodOptions)
	r.HandleFunc("/payments/{id:[0-9]+}/process", api.RequireRolesFunc(h.Process, staff...)).Methods(http.MethodPut, http.MethodOptions)
	r.HandleFunc("/payments/{id:[0-9]+}/refund", api.RequireRolesFunc(h.Refund, staff...)).Methods(http.MethodPut, http.MethodOptions)
	r.HandleFunc("/payments/{id:[0-9]+}/cancel", api.RequireRolesFunc(h.Cancel, staff...)).Methods(http.MethodPut, http.MethodOptions)
}
