package client

import (
	"context"
	"fmt"

	"gymstream/models"
)

// ClassRegistrationsService calls the class signup endpoints.
type ClassRegistrationsService struct {
	c *Client
}

func (s *ClassRegistrationsService) List(ctx context.Context) ([]models.ClassRegistration, error) {
	var regs []models.ClassRegistration
	if err := s.c.get(ctx, "/api/class-registrations", &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

// Register signs a member up for a class. The backend rejects full classes
// and duplicate signups with a conflict.
func (s *ClassRegistrationsService) Register(ctx context.Context, memberID, classID int64, notes string) (models.ClassRegistration, error) {
	body := struct {
		MemberID int64  `json:"memberId"`
		ClassID  int64  `json:"classId"`
		Notes    string `json:"notes,omitempty"`
	}{MemberID: memberID, ClassID: classID, Notes: notes}

	var reg models.ClassRegistration
	if err := s.c.post(ctx, "/api/class-registrations", body, &reg); err != nil {
		return models.ClassRegistration{}, err
	}
	return reg, nil
}

func (s *ClassRegistrationsService) Get(ctx context.Context, id int64) (models.ClassRegistration, error) {
	var reg models.ClassRegistration
	if err := s.c.get(ctx, fmt.Sprintf("/api/class-registrations/%d", id), &reg); err != nil {
		return models.ClassRegistration{}, err
	}
	return reg, nil
}

func (s *ClassRegistrationsService) ListByMember(ctx context.Context, memberID int64) ([]models.ClassRegistration, error) {
	var regs []models.ClassRegistration
	if err := s.c.get(ctx, fmt.Sprintf("/api/class-registrations/member/%d", memberID), &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

// ListUpcomingByMember returns the member's still-registered signups.
func (s *ClassRegistrationsService) ListUpcomingByMember(ctx context.Context, memberID int64) ([]models.ClassRegistration, error) {
	var regs []models.ClassRegistration
	if err := s.c.get(ctx, fmt.Sprintf("/api/class-registrations/member/%d/upcoming", memberID), &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

func (s *ClassRegistrationsService) ListByClass(ctx context.Context, classID int64) ([]models.ClassRegistration, error) {
	var regs []models.ClassRegistration
	if err := s.c.get(ctx, fmt.Sprintf("/api/class-registrations/class/%d", classID), &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

func (s *ClassRegistrationsService) ListByClassAndStatus(ctx context.Context, classID int64, status models.RegistrationStatus) ([]models.ClassRegistration, error) {
	var regs []models.ClassRegistration
	if err := s.c.get(ctx, fmt.Sprintf("/api/class-registrations/class/%d/status/%s", classID, status), &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

// CountByClass returns the number of active registrations for a class.
func (s *ClassRegistrationsService) CountByClass(ctx context.Context, classID int64) (int64, error) {
	var resp struct {
		Count int64 `json:"count"`
	}
	if err := s.c.get(ctx, fmt.Sprintf("/api/class-registrations/class/%d/count", classID), &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// Cancel withdraws the registration and releases the enrollment spot.
func (s *ClassRegistrationsService) Cancel(ctx context.Context, id int64) (models.ClassRegistration, error) {
	var reg models.ClassRegistration
	if err := s.c.put(ctx, fmt.Sprintf("/api/class-registrations/%d/cancel", id), struct{}{}, &reg); err != nil {
		return models.ClassRegistration{}, err
	}
	return reg, nil
}

func (s *ClassRegistrationsService) MarkAttendance(ctx context.Context, id int64) (models.ClassRegistration, error) {
	var reg models.ClassRegistration
	if err := s.c.put(ctx, fmt.Sprintf("/api/class-registrations/%d/attend", id), struct{}{}, &reg); err != nil {
		return models.ClassRegistration{}, err
	}
	return reg, nil
}

func (s *ClassRegistrationsService) MarkNoShow(ctx context.Context, id int64) (models.ClassRegistration, error) {
	var reg models.ClassRegistration
	if err := s.c.put(ctx, fmt.Sprintf("/api/class-registrations/%d/no-show", id), struct{}{}, &reg); err != nil {
		return models.ClassRegistration{}, err
	}
	return reg, nil
}

func (s *ClassRegistrationsService) Delete(ctx context.Context, id int64) error {
	return s.c.delete(ctx, fmt.Sprintf("/api/class-registrations/%d", id))
}
