package database

import (
	"sync"
	"testing"

	"gymstream/models"
)

func createTestClass(t *testing.T, repo *GymClassRepository, trainer models.User, maxCapacity int) models.GymClass {
	t.Helper()
	c := models.GymClass{
		Name:         "Morning Yoga",
		Type:         models.ClassYoga,
		Status:       models.ClassActive,
		Trainer:      trainer.Ref(),
		StartTime:    "07:00",
		EndTime:      "08:00",
		Duration:     60,
		MaxCapacity:  maxCapacity,
		Price:        12.50,
		Location:     "Studio A",
		ScheduleDays: "MON,WED,FRI",
	}
	if err := repo.Create(&c); err != nil {
		t.Fatalf("failed to create class: %v", err)
	}
	return c
}

func TestGymClassEnrollment_CapacityGuards(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db.Connection())
	repo := NewGymClassRepository(db.Connection())

	trainer := createTestUser(t, users, "trainer", models.RoleTrainer)
	c := createTestClass(t, repo, trainer, 2)

	got, err := repo.IncrementEnrollment(c.ID)
	if err != nil {
		t.Fatalf("IncrementEnrollment failed: %v", err)
	}
	if got.CurrentEnrollment != 1 {
		t.Errorf("expected enrollment 1, got %d", got.CurrentEnrollment)
	}

	got, err = repo.IncrementEnrollment(c.ID)
	if err != nil {
		t.Fatalf("IncrementEnrollment failed: %v", err)
	}
	if got.CurrentEnrollment != 2 {
		t.Errorf("expected enrollment 2, got %d", got.CurrentEnrollment)
	}
	if got.Status != models.ClassFull {
		t.Errorf("expected status FULL at capacity, got %q", got.Status)
	}

	if _, err := repo.IncrementEnrollment(c.ID); err != ErrClassFull {
		t.Errorf("expected ErrClassFull, got %v", err)
	}

	got, err = repo.DecrementEnrollment(c.ID)
	if err != nil {
		t.Fatalf("DecrementEnrollment failed: %v", err)
	}
	if got.Status != models.ClassActive {
		t.Errorf("expected status ACTIVE after a spot frees up, got %q", got.Status)
	}
}

func TestGymClassIncrementEnrollment_Concurrent(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db.Connection())
	repo := NewGymClassRepository(db.Connection())

	trainer := createTestUser(t, users, "trainer", models.RoleTrainer)
	c := createTestClass(t, repo, trainer, 1)

	const workers = 16
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.IncrementEnrollment(c.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	won := 0
	for err := range errs {
		switch err {
		case nil:
			won++
		case ErrClassFull:
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if won != 1 {
		t.Errorf("expected exactly 1 successful enrollment, got %d", won)
	}

	got, err := repo.GetByID(c.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.CurrentEnrollment != 1 {
		t.Errorf("expected enrollment 1, got %d", got.CurrentEnrollment)
	}
	if got.Status != models.ClassFull {
		t.Errorf("expected status FULL, got %q", got.Status)
	}
}

func TestGymClassDecrementEnrollment_Empty(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db.Connection())
	repo := NewGymClassRepository(db.Connection())

	trainer := createTestUser(t, users, "trainer", models.RoleTrainer)
	c := createTestClass(t, repo, trainer, 10)

	if _, err := repo.DecrementEnrollment(c.ID); err != ErrClassEmpty {
		t.Errorf("expected ErrClassEmpty, got %v", err)
	}
}

func TestGymClassListAvailable(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db.Connection())
	repo := NewGymClassRepository(db.Connection())

	trainer := createTestUser(t, users, "trainer", models.RoleTrainer)
	open := createTestClass(t, repo, trainer, 2)
	full := createTestClass(t, repo, trainer, 1)
	if _, err := repo.IncrementEnrollment(full.ID); err != nil {
		t.Fatalf("IncrementEnrollment failed: %v", err)
	}

	available, err := repo.ListAvailable()
	if err != nil {
		t.Fatalf("ListAvailable failed: %v", err)
	}
	if len(available) != 1 {
		t.Fatalf("expected 1 available class, got %d", len(available))
	}
	if available[0].ID != open.ID {
		t.Errorf("expected class %d, got %d", open.ID, available[0].ID)
	}
}

func TestClassRegistration_Lifecycle(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db.Connection())
	classes := NewGymClassRepository(db.Connection())
	repo := NewClassRegistrationRepository(db.Connection())

	trainer := createTestUser(t, users, "trainer", models.RoleTrainer)
	member := createTestUser(t, users, "member", models.RoleMember)
	c := createTestClass(t, classes, trainer, 10)

	reg, err := repo.Register(member.ID, c.ID, "first visit")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if reg.Status != models.RegistrationRegistered {
		t.Errorf("expected status REGISTERED, got %q", reg.Status)
	}
	if reg.GymClass.Name != "Morning Yoga" {
		t.Errorf("expected embedded class name, got %q", reg.GymClass.Name)
	}
	if reg.Member.Username != "member" {
		t.Errorf("expected embedded member, got %q", reg.Member.Username)
	}

	// Double registration is rejected.
	if _, err := repo.Register(member.ID, c.ID, ""); err != ErrAlreadyRegistered {
		t.Errorf("expected ErrAlreadyRegistered, got %v", err)
	}

	attended, err := repo.MarkAttendance(reg.ID)
	if err != nil {
		t.Fatalf("MarkAttendance failed: %v", err)
	}
	if attended.Status != models.RegistrationAttended {
		t.Errorf("expected status ATTENDED, got %q", attended.Status)
	}
	if attended.AttendanceDate == nil {
		t.Error("expected attendance date to be stamped")
	}

	count, err := repo.CountAttendedByMember(member.ID)
	if err != nil {
		t.Fatalf("CountAttendedByMember failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 attended class, got %d", count)
	}
}

func TestClassRegistrationCancel(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db.Connection())
	classes := NewGymClassRepository(db.Connection())
	repo := NewClassRegistrationRepository(db.Connection())

	trainer := createTestUser(t, users, "trainer", models.RoleTrainer)
	member := createTestUser(t, users, "member", models.RoleMember)
	c := createTestClass(t, classes, trainer, 10)

	reg, err := repo.Register(member.ID, c.ID, "")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	cancelled, err := repo.Cancel(reg.ID)
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if cancelled.Status != models.RegistrationCancelled {
		t.Errorf("expected status CANCELLED, got %q", cancelled.Status)
	}

	count, err := repo.CountActiveByClass(c.ID)
	if err != nil {
		t.Fatalf("CountActiveByClass failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 active registrations, got %d", count)
	}
}
