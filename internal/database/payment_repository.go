package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"gymstream/models"
)

var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentNotPending    = errors.New("payment is not pending")
	ErrPaymentNotRefundable = errors.New("only completed payments can be refunded")
)

const paymentSelect = `SELECT p.id, u.id, u.username, u.first_name, u.last_name, u.role,
	p.type, p.method, p.status, p.amount, p.description, p.transaction_id,
	p.payment_date, p.due_date, p.notes, p.created_at, p.updated_at
	FROM payments p JOIN users u ON u.id = p.user_id`

// PaymentRepository persists charges against user accounts.
type PaymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a payment repository on the given connection.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts a payment for p.User.ID, assigning a transaction ID, and
// reloads the stored row.
func (r *PaymentRepository) Create(p *models.Payment) error {
	if p.Status == "" {
		p.Status = models.PaymentPending
	}
	if p.TransactionID == "" {
		p.TransactionID = NewTransactionID()
	}
	now := time.Now().UTC()
	res, err := r.db.Exec(`INSERT INTO payments (user_id, type, method, status, amount, description, transaction_id,
		payment_date, due_date, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.User.ID, p.Type, p.Method, p.Status, p.Amount, p.Description, p.TransactionID,
		nullTime(p.PaymentDate), nullTime(p.DueDate), p.Notes, now, now)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetByID(id)
	if err != nil {
		return err
	}
	*p = stored
	return nil
}

// GetByID returns the payment with the given ID.
func (r *PaymentRepository) GetByID(id int64) (models.Payment, error) {
	row := r.db.QueryRow(paymentSelect+" WHERE p.id = ?", id)
	return scanPayment(row)
}

// List returns all payments.
func (r *PaymentRepository) List() ([]models.Payment, error) {
	return r.query(paymentSelect + " ORDER BY p.created_at, p.id")
}

// ListByUser returns a user's payments.
func (r *PaymentRepository) ListByUser(userID int64) ([]models.Payment, error) {
	return r.query(paymentSelect+" WHERE p.user_id = ? ORDER BY p.created_at, p.id", userID)
}

// ListByStatus returns payments in the given status.
func (r *PaymentRepository) ListByStatus(status models.PaymentStatus) ([]models.Payment, error) {
	return r.query(paymentSelect+" WHERE p.status = ? ORDER BY p.created_at, p.id", status)
}

// ListByType returns payments of the given type.
func (r *PaymentRepository) ListByType(t models.PaymentType) ([]models.Payment, error) {
	return r.query(paymentSelect+" WHERE p.type = ? ORDER BY p.created_at, p.id", t)
}

// ListByMethod returns payments made with the given method.
func (r *PaymentRepository) ListByMethod(method models.PaymentMethod) ([]models.Payment, error) {
	return r.query(paymentSelect+" WHERE p.method = ? ORDER BY p.created_at, p.id", method)
}

// ListCompletedByUser returns a user's completed payments.
func (r *PaymentRepository) ListCompletedByUser(userID int64) ([]models.Payment, error) {
	return r.query(paymentSelect+" WHERE p.user_id = ? AND p.status = ? ORDER BY p.payment_date, p.id",
		userID, models.PaymentCompleted)
}

// ListByDateRange returns payments created inside the window.
func (r *PaymentRepository) ListByDateRange(start, end time.Time) ([]models.Payment, error) {
	return r.query(paymentSelect+" WHERE p.created_at BETWEEN ? AND ? ORDER BY p.created_at, p.id", start, end)
}

// ListByUserAndDateRange returns a user's payments created inside the window.
func (r *PaymentRepository) ListByUserAndDateRange(userID int64, start, end time.Time) ([]models.Payment, error) {
	return r.query(paymentSelect+" WHERE p.user_id = ? AND p.created_at BETWEEN ? AND ? ORDER BY p.created_at, p.id",
		userID, start, end)
}

// ListOverdue returns pending payments due before the given date.
func (r *PaymentRepository) ListOverdue(asOf time.Time) ([]models.Payment, error) {
	return r.query(paymentSelect+` WHERE p.status = ? AND p.due_date IS NOT NULL AND p.due_date < ?
		ORDER BY p.due_date, p.id`, models.PaymentPending, asOf)
}

// ListHighValue returns payments at or above the given amount.
func (r *PaymentRepository) ListHighValue(minAmount float64) ([]models.Payment, error) {
	return r.query(paymentSelect+" WHERE p.amount >= ? ORDER BY p.amount DESC, p.id", minAmount)
}

// TotalByUser returns the sum of a user's completed payments.
func (r *PaymentRepository) TotalByUser(userID int64) (float64, error) {
	var total sql.NullFloat64
	err := r.db.QueryRow("SELECT SUM(amount) FROM payments WHERE user_id = ? AND status = ?",
		userID, models.PaymentCompleted).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum payments: %w", err)
	}
	return total.Float64, nil
}

// RevenueByDateRange returns the sum of completed payments in the window.
func (r *PaymentRepository) RevenueByDateRange(start, end time.Time) (float64, error) {
	var total sql.NullFloat64
	err := r.db.QueryRow("SELECT SUM(amount) FROM payments WHERE status = ? AND payment_date BETWEEN ? AND ?",
		models.PaymentCompleted, start, end).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum payments: %w", err)
	}
	return total.Float64, nil
}

// CountByStatus returns the number of payments in the given status.
func (r *PaymentRepository) CountByStatus(status models.PaymentStatus) (int64, error) {
	var n int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM payments WHERE status = ?", status).Scan(&n); err != nil {
		return 0, fmt.Errorf("count payments: %w", err)
	}
	return n, nil
}

// Update persists changes to type, method, amount, description, due date and
// notes, and reloads the stored row.
func (r *PaymentRepository) Update(p *models.Payment) error {
	res, err := r.db.Exec(`UPDATE payments SET type = ?, method = ?, amount = ?, description = ?, due_date = ?,
		notes = ?, updated_at = ? WHERE id = ?`,
		p.Type, p.Method, p.Amount, p.Description, nullTime(p.DueDate), p.Notes, time.Now().UTC(), p.ID)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if err := requireRow(res, ErrPaymentNotFound); err != nil {
		return err
	}
	stored, err := r.GetByID(p.ID)
	if err != nil {
		return err
	}
	*p = stored
	return nil
}

// UpdateStatus changes the payment status, stamping the payment date when a
// payment completes.
func (r *PaymentRepository) UpdateStatus(id int64, status models.PaymentStatus) (models.Payment, error) {
	now := time.Now().UTC()
	var res sql.Result
	var err error
	if status == models.PaymentCompleted {
		res, err = r.db.Exec("UPDATE payments SET status = ?, payment_date = ?, updated_at = ? WHERE id = ?",
			status, now, now, id)
	} else {
		res, err = r.db.Exec("UPDATE payments SET status = ?, updated_at = ? WHERE id = ?", status, now, id)
	}
	if err != nil {
		return models.Payment{}, fmt.Errorf("update payment status: %w", err)
	}
	if err := requireRow(res, ErrPaymentNotFound); err != nil {
		return models.Payment{}, err
	}
	return r.GetByID(id)
}

// Process completes a pending payment.
func (r *PaymentRepository) Process(id int64) (models.Payment, error) {
	p, err := r.GetByID(id)
	if err != nil {
		return models.Payment{}, err
	}
	if p.Status != models.PaymentPending {
		return models.Payment{}, ErrPaymentNotPending
	}
	return r.UpdateStatus(id, models.PaymentCompleted)
}

// Refund refunds a completed payment, recording the reason in notes.
func (r *PaymentRepository) Refund(id int64, notes string) (models.Payment, error) {
	p, err := r.GetByID(id)
	if err != nil {
		return models.Payment{}, err
	}
	if p.Status != models.PaymentCompleted {
		return models.Payment{}, ErrPaymentNotRefundable
	}
	res, err := r.db.Exec("UPDATE payments SET status = ?, notes = ?, updated_at = ? WHERE id = ?",
		models.PaymentRefunded, notes, time.Now().UTC(), id)
	if err != nil {
		return models.Payment{}, fmt.Errorf("refund payment: %w", err)
	}
	if err := requireRow(res, ErrPaymentNotFound); err != nil {
		return models.Payment{}, err
	}
	return r.GetByID(id)
}

// Cancel cancels a pending payment.
func (r *PaymentRepository) Cancel(id int64) (models.Payment, error) {
	p, err := r.GetByID(id)
	if err != nil {
		return models.Payment{}, err
	}
	if p.Status != models.PaymentPending {
		return models.Payment{}, ErrPaymentNotPending
	}
	return r.UpdateStatus(id, models.PaymentCancelled)
}

// Delete removes a payment.
func (r *PaymentRepository) Delete(id int64) error {
	res, err := r.db.Exec("DELETE FROM payments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return requireRow(res, ErrPaymentNotFound)
}

// NewTransactionID generates a short human-readable transaction reference.
func NewTransactionID() string {
	return "TXN-" + strings.ToUpper(uuid.NewString()[:8])
}

func (r *PaymentRepository) query(query string, args ...any) ([]models.Payment, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func scanPayment(row rowScanner) (models.Payment, error) {
	var p models.Payment
	var paid, due sql.NullTime
	err := row.Scan(&p.ID, &p.User.ID, &p.User.Username, &p.User.FirstName, &p.User.LastName, &p.User.Role,
		&p.Type, &p.Method, &p.Status, &p.Amount, &p.Description, &p.TransactionID,
		&paid, &due, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payment{}, ErrPaymentNotFound
	}
	if err != nil {
		return models.Payment{}, fmt.Errorf("scan payment: %w", err)
	}
	p.PaymentDate = timePtr(paid)
	p.DueDate = timePtr(due)
	return p, nil
}
