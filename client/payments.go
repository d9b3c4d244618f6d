package client

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"gymstream/models"
)

// PaymentsService calls the billing endpoints.
type PaymentsService struct {
	c *Client
}

// PaymentData is the create/update payment payload.
type PaymentData struct {
	UserID      int64                `json:"userId,omitempty"`
	Type        models.PaymentType   `json:"type,omitempty"`
	Method      models.PaymentMethod `json:"method,omitempty"`
	Amount      float64              `json:"amount,omitempty"`
	Description string               `json:"description,omitempty"`
	DueDate     *time.Time           `json:"dueDate,omitempty"`
	Notes       string               `json:"notes,omitempty"`
}

func (s *PaymentsService) List(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.c.get(ctx, "/api/payments", &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *PaymentsService) Create(ctx context.Context, data PaymentData) (models.Payment, error) {
	var p models.Payment
	if err := s.c.post(ctx, "/api/payments", data, &p); err != nil {
		return models.Payment{}, err
	}
	return p, nil
}

// CreateMembershipFee records a pending membership fee for the user.
func (s *PaymentsService) CreateMembershipFee(ctx context.Context, userID int64, amount float64, method models.PaymentMethod) (models.Payment, error) {
	return s.Create(ctx, PaymentData{
		UserID:      userID,
		Type:        models.PaymentMembershipFee,
		Method:      method,
		Amount:      amount,
		Description: "Membership fee",
	})
}

// CreateClassFee records a pending class fee for the user.
func (s *PaymentsService) CreateClassFee(ctx context.Context, userID int64, amount float64, method models.PaymentMethod) (models.Payment, error) {
	return s.Create(ctx, PaymentData{
		UserID:      userID,
		Type:        models.PaymentClassFee,
		Method:      method,
		Amount:      amount,
		Description: "Class fee",
	})
}

// CreateTrainingSessionFee records a pending personal training fee.
func (s *PaymentsService) CreateTrainingSessionFee(ctx context.Context, userID int64, amount float64, method models.PaymentMethod) (models.Payment, error) {
	return s.Create(ctx, PaymentData{
		UserID:      userID,
		Type:        models.PaymentTrainingSession,
		Method:      method,
		Amount:      amount,
		Description: "Training session fee",
	})
}

func (s *PaymentsService) Get(ctx context.Context, id int64) (models.Payment, error) {
	var p models.Payment
	if err := s.c.get(ctx, fmt.Sprintf("/api/payments/%d", id), &p); err != nil {
		return models.Payment{}, err
	}
	return p, nil
}

func (s *PaymentsService) Update(ctx context.Context, id int64, data PaymentData) (models.Payment, error) {
	var p models.Payment
	if err := s.c.put(ctx, fmt.Sprintf("/api/payments/%d", id), data, &p); err != nil {
		return models.Payment{}, err
	}
	return p, nil
}

func (s *PaymentsService) Delete(ctx context.Context, id int64) error {
	return s.c.delete(ctx, fmt.Sprintf("/api/payments/%d", id))
}

func (s *PaymentsService) ListByUser(ctx context.Context, userID int64) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.c.get(ctx, fmt.Sprintf("/api/payments/user/%d", userID), &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *PaymentsService) ListByStatus(ctx context.Context, status models.PaymentStatus) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.c.get(ctx, "/api/payments/status/"+string(status), &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *PaymentsService) ListByType(ctx context.Context, t models.PaymentType) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.c.get(ctx, "/api/payments/type/"+string(t), &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *PaymentsService) ListByMethod(ctx context.Context, method models.PaymentMethod) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.c.get(ctx, "/api/payments/method/"+string(method), &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// ListOverdue returns pending payments past their due date.
func (s *PaymentsService) ListOverdue(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.c.get(ctx, "/api/payments/overdue", &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// ListHighValue returns payments at or above min.
func (s *PaymentsService) ListHighValue(ctx context.Context, min float64) ([]models.Payment, error) {
	var payments []models.Payment
	query := url.Values{"min": {fmt.Sprintf("%g", min)}}
	if err := s.c.get(ctx, "/api/payments/high-value?"+query.Encode(), &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// TotalByUser returns the sum of the user's completed payments.
func (s *PaymentsService) TotalByUser(ctx context.Context, userID int64) (float64, error) {
	var resp struct {
		Total float64 `json:"total"`
	}
	if err := s.c.get(ctx, fmt.Sprintf("/api/payments/user/%d/total", userID), &resp); err != nil {
		return 0, err
	}
	return resp.Total, nil
}

// Revenue returns completed revenue in [start, end].
func (s *PaymentsService) Revenue(ctx context.Context, start, end time.Time) (float64, error) {
	query := url.Values{
		"start": {start.Format(time.RFC3339)},
		"end":   {end.Format(time.RFC3339)},
	}
	var resp struct {
		Revenue float64 `json:"revenue"`
	}
	if err := s.c.get(ctx, "/api/payments/revenue?"+query.Encode(), &resp); err != nil {
		return 0, err
	}
	return resp.Revenue, nil
}

// Process completes a pending payment.
func (s *PaymentsService) Process(ctx context.Context, id int64) (models.Payment, error) {
	var p models.Payment
	if err := s.c.put(ctx, fmt.Sprintf("/api/payments/%d/process", id), struct{}{}, &p); err != nil {
		return models.Payment{}, err
	}
	return p, nil
}

// Refund refunds a completed payment, recording notes on the payment.
func (s *PaymentsService) Refund(ctx context.Context, id int64, notes string) (models.Payment, error) {
	body := map[string]string{"notes": notes}
	var p models.Payment
	if err := s.c.put(ctx, fmt.Sprintf("/api/payments/%d/refund", id), body, &p); err != nil {
		return models.Payment{}, err
	}
	return p, nil
}

// Cancel voids a pending payment.
func (s *PaymentsService) Cancel(ctx context.Context, id int64) (models.Payment, error) {
	var p models.Payment
	if err := s.c.put(ctx, fmt.Sprintf("/api/payments/%d/cancel", id), struct{}{}, &p); err != nil {
		return models.Payment{}, err
	}
	return p, nil
}
