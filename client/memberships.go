package client

import (
	"context"
	"fmt"
	"time"

	"gymstream/models"
)

// MembershipsService calls the membership endpoints.
type MembershipsService struct {
	c *Client
}

// MembershipData is the create/update membership payload.
type MembershipData struct {
	UserID      int64                   `json:"userId,omitempty"`
	Type        models.MembershipType   `json:"type,omitempty"`
	Status      models.MembershipStatus `json:"status,omitempty"`
	Price       float64                 `json:"price,omitempty"`
	StartDate   time.Time               `json:"startDate,omitzero"`
	EndDate     time.Time               `json:"endDate,omitzero"`
	Description string                  `json:"description,omitempty"`
}

func (s *MembershipsService) List(ctx context.Context) ([]models.Membership, error) {
	var memberships []models.Membership
	if err := s.c.get(ctx, "/api/memberships", &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

func (s *MembershipsService) Create(ctx context.Context, data MembershipData) (models.Membership, error) {
	var m models.Membership
	if err := s.c.post(ctx, "/api/memberships", data, &m); err != nil {
		return models.Membership{}, err
	}
	return m, nil
}

func (s *MembershipsService) Get(ctx context.Context, id int64) (models.Membership, error) {
	var m models.Membership
	if err := s.c.get(ctx, fmt.Sprintf("/api/memberships/%d", id), &m); err != nil {
		return models.Membership{}, err
	}
	return m, nil
}

func (s *MembershipsService) Update(ctx context.Context, id int64, data MembershipData) (models.Membership, error) {
	var m models.Membership
	if err := s.c.put(ctx, fmt.Sprintf("/api/memberships/%d", id), data, &m); err != nil {
		return models.Membership{}, err
	}
	return m, nil
}

func (s *MembershipsService) Delete(ctx context.Context, id int64) error {
	return s.c.delete(ctx, fmt.Sprintf("/api/memberships/%d", id))
}

func (s *MembershipsService) ListByUser(ctx context.Context, userID int64) ([]models.Membership, error) {
	var memberships []models.Membership
	if err := s.c.get(ctx, fmt.Sprintf("/api/memberships/user/%d", userID), &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

func (s *MembershipsService) ActiveByUser(ctx context.Context, userID int64) (models.Membership, error) {
	var m models.Membership
	if err := s.c.get(ctx, fmt.Sprintf("/api/memberships/user/%d/active", userID), &m); err != nil {
		return models.Membership{}, err
	}
	return m, nil
}

// HasActive reports whether the user currently holds an active membership.
func (s *MembershipsService) HasActive(ctx context.Context, userID int64) (bool, error) {
	var resp struct {
		HasActiveMembership bool `json:"hasActiveMembership"`
	}
	if err := s.c.get(ctx, fmt.Sprintf("/api/memberships/user/%d/check", userID), &resp); err != nil {
		return false, err
	}
	return resp.HasActiveMembership, nil
}

func (s *MembershipsService) ListByStatus(ctx context.Context, status models.MembershipStatus) ([]models.Membership, error) {
	var memberships []models.Membership
	if err := s.c.get(ctx, "/api/memberships/status/"+string(status), &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

// ListExpiring returns active memberships ending within the next days days.
func (s *MembershipsService) ListExpiring(ctx context.Context, days int) ([]models.Membership, error) {
	var memberships []models.Membership
	if err := s.c.get(ctx, fmt.Sprintf("/api/memberships/expiring?days=%d", days), &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

func (s *MembershipsService) ListExpired(ctx context.Context) ([]models.Membership, error) {
	var memberships []models.Membership
	if err := s.c.get(ctx, "/api/memberships/expired", &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

func (s *MembershipsService) CountActive(ctx context.Context) (int64, error) {
	var resp struct {
		Count int64 `json:"count"`
	}
	if err := s.c.get(ctx, "/api/memberships/count/active", &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (s *MembershipsService) UpdateStatus(ctx context.Context, id int64, status models.MembershipStatus) (models.Membership, error) {
	body := map[string]models.MembershipStatus{"status": status}
	var m models.Membership
	if err := s.c.put(ctx, fmt.Sprintf("/api/memberships/%d/status", id), body, &m); err != nil {
		return models.Membership{}, err
	}
	return m, nil
}

// Renew extends the membership to newEnd and reactivates it.
func (s *MembershipsService) Renew(ctx context.Context, id int64, newEnd time.Time) (models.Membership, error) {
	body := map[string]time.Time{"endDate": newEnd}
	var m models.Membership
	if err := s.c.put(ctx, fmt.Sprintf("/api/memberships/%d/renew", id), body, &m); err != nil {
		return models.Membership{}, err
	}
	return m, nil
}
