package database

import (
	"strings"
	"testing"
	"time"

	"gymstream/models"
)

func createTestPayment(t *testing.T, repo *PaymentRepository, user models.User, amount float64) models.Payment {
	t.Helper()
	p := models.Payment{
		User:        user.Ref(),
		Type:        models.PaymentMembershipFee,
		Method:      models.PaymentCreditCard,
		Amount:      amount,
		Description: "monthly membership",
	}
	if err := repo.Create(&p); err != nil {
		t.Fatalf("failed to create payment: %v", err)
	}
	return p
}

func TestPaymentCreate_AssignsTransactionID(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db.Connection())
	repo := NewPaymentRepository(db.Connection())

	alice := createTestUser(t, users, "alice", models.RoleMember)
	p := createTestPayment(t, repo, alice, 29.99)

	if p.Status != models.PaymentPending {
		t.Errorf("expected status PENDING, got %q", p.Status)
	}
	if !strings.HasPrefix(p.TransactionID, "TXN-") {
		t.Errorf("expected TXN- prefix, got %q", p.TransactionID)
	}
	if len(p.TransactionID) != len("TXN-")+8 {
		t.Errorf("expected 8-char suffix, got %q", p.TransactionID)
	}
	if p.TransactionID != strings.ToUpper(p.TransactionID) {
		t.Errorf("expected uppercase transaction ID, got %q", p.TransactionID)
	}
	if p.User.Username != "alice" {
		t.Errorf("expected embedded user 'alice', got %q", p.User.Username)
	}
}

func TestPaymentProcess(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db.Connection())
	repo := NewPaymentRepository(db.Connection())

	alice := createTestUser(t, users, "alice", models.RoleMember)
	p := createTestPayment(t, repo, alice, 29.99)

	got, err := repo.Process(p.ID)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if got.Status != models.PaymentCompleted {
		t.Errorf("expected status COMPLETED, got %q", got.Status)
	}
	if got.PaymentDate == nil {
		t.Error("expected payment date to be stamped on completion")
	}

	// Processing twice is rejected.
	if _, err := repo.Process(p.ID); err != ErrPaymentNotPending {
		t.Errorf("expected ErrPaymentNotPending, got %v", err)
	}
}

func TestPaymentRefund(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db.Connection())
	repo := NewPaymentRepository(db.Connection())

	alice := createTestUser(t, users, "alice", models.RoleMember)
	p := createTestPayment(t, repo, alice, 29.99)

	// Pending payments cannot be refunded.
	if _, err := repo.Refund(p.ID, "duplicate charge"); err != ErrPaymentNotRefundable {
		t.Errorf("expected ErrPaymentNotRefundable, got %v", err)
	}

	if _, err := repo.Process(p.ID); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	got, err := repo.Refund(p.ID, "duplicate charge")
	if err != nil {
		t.Fatalf("Refund failed: %v", err)
	}
	if got.Status != models.PaymentRefunded {
		t.Errorf("expected status REFUNDED, got %q", got.Status)
	}
	if got.Notes != "duplicate charge" {
		t.Errorf("expected refund notes, got %q", got.Notes)
	}
}

func TestPaymentCancel(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db.Connection())
	repo := NewPaymentRepository(db.Connection())

	alice := createTestUser(t, users, "alice", models.RoleMember)
	p := createTestPayment(t, repo, alice, 29.99)

	got, err := repo.Cancel(p.ID)
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if got.Status != models.PaymentCancelled {
		t.Errorf("expected status CANCELLED, got %q", got.Status)
	}

	// Cancelled payments cannot be processed or re-cancelled.
	if _, err := repo.Process(p.ID); err != ErrPaymentNotPending {
		t.Errorf("expected ErrPaymentNotPending, got %v", err)
	}
	if _, err := repo.Cancel(p.ID); err != ErrPaymentNotPending {
		t.Errorf("expected ErrPaymentNotPending, got %v", err)
	}
}

func TestPaymentTotalByUser(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db.Connection())
	repo := NewPaymentRepository(db.Connection())

	alice := createTestUser(t, users, "alice", models.RoleMember)

	p1 := createTestPayment(t, repo, alice, 10)
	p2 := createTestPayment(t, repo, alice, 25)
	createTestPayment(t, repo, alice, 100) // stays pending

	for _, id := range []int64{p1.ID, p2.ID} {
		if _, err := repo.Process(id); err != nil {
			t.Fatalf("Process failed: %v", err)
		}
	}

	total, err := repo.TotalByUser(alice.ID)
	if err != nil {
		t.Fatalf("TotalByUser failed: %v", err)
	}
	if total != 35 {
		t.Errorf("expected total 35, got %v", total)
	}
}

func TestPaymentTotalByUser_NoPayments(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db.Connection())
	repo := NewPaymentRepository(db.Connection())

	alice := createTestUser(t, users, "alice", models.RoleMember)
	total, err := repo.TotalByUser(alice.ID)
	if err != nil {
		t.Fatalf("TotalByUser failed: %v", err)
	}
	if total != 0 {
		t.Errorf("expected total 0, got %v", total)
	}
}

func TestPaymentListOverdue(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db.Connection())
	repo := NewPaymentRepository(db.Connection())

	alice := createTestUser(t, users, "alice", models.RoleMember)
	now := time.Now().UTC()

	past := now.AddDate(0, 0, -3)
	future := now.AddDate(0, 0, 3)

	overdue := models.Payment{
		User: alice.Ref(), Type: models.PaymentClassFee, Method: models.PaymentCash,
		Amount: 15, DueDate: &past,
	}
	if err := repo.Create(&overdue); err != nil {
		t.Fatalf("failed to create payment: %v", err)
	}
	notDue := models.Payment{
		User: alice.Ref(), Type: models.PaymentClassFee, Method: models.PaymentCash,
		Amount: 15, DueDate: &future,
	}
	if err := repo.Create(&notDue); err != nil {
		t.Fatalf("failed to create payment: %v", err)
	}

	got, err := repo.ListOverdue(now)
	if err != nil {
		t.Fatalf("ListOverdue failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 overdue payment, got %d", len(got))
	}
	if got[0].ID != overdue.ID {
		t.Errorf("expected payment %d, got %d", overdue.ID, got[0].ID)
	}
}

func TestPaymentCountByStatus(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db.Connection())
	repo := NewPaymentRepository(db.Connection())

	alice := createTestUser(t, users, "alice", models.RoleMember)
	p := createTestPayment(t, repo, alice, 20)
	createTestPayment(t, repo, alice, 30)

	if _, err := repo.Process(p.ID); err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	pending, err := repo.CountByStatus(models.PaymentPending)
	if err != nil {
		t.Fatalf("CountByStatus failed: %v", err)
	}
	if pending != 1 {
		t.Errorf("expected 1 pending payment, got %d", pending)
	}
	completed, err := repo.CountByStatus(models.PaymentCompleted)
	if err != nil {
		t.Fatalf("CountByStatus failed: %v", err)
	}
	if completed != 1 {
		t.Errorf("expected 1 completed payment, got %d", completed)
	}
}
