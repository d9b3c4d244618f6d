package client

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"gymstream/models"
)

// EquipmentService calls the equipment inventory endpoints.
type EquipmentService struct {
	c *Client
}

func (s *EquipmentService) List(ctx context.Context) ([]models.Equipment, error) {
	var equipment []models.Equipment
	if err := s.c.get(ctx, "/api/equipment", &equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

func (s *EquipmentService) Create(ctx context.Context, e models.Equipment) (models.Equipment, error) {
	var created models.Equipment
	if err := s.c.post(ctx, "/api/equipment", e, &created); err != nil {
		return models.Equipment{}, err
	}
	return created, nil
}

func (s *EquipmentService) Get(ctx context.Context, id int64) (models.Equipment, error) {
	var e models.Equipment
	if err := s.c.get(ctx, fmt.Sprintf("/api/equipment/%d", id), &e); err != nil {
		return models.Equipment{}, err
	}
	return e, nil
}

func (s *EquipmentService) Update(ctx context.Context, id int64, e models.Equipment) (models.Equipment, error) {
	var updated models.Equipment
	if err := s.c.put(ctx, fmt.Sprintf("/api/equipment/%d", id), e, &updated); err != nil {
		return models.Equipment{}, err
	}
	return updated, nil
}

func (s *EquipmentService) Delete(ctx context.Context, id int64) error {
	return s.c.delete(ctx, fmt.Sprintf("/api/equipment/%d", id))
}

func (s *EquipmentService) ListByType(ctx context.Context, t models.EquipmentType) ([]models.Equipment, error) {
	var equipment []models.Equipment
	if err := s.c.get(ctx, "/api/equipment/type/"+string(t), &equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

func (s *EquipmentService) ListByStatus(ctx context.Context, status models.EquipmentStatus) ([]models.Equipment, error) {
	var equipment []models.Equipment
	if err := s.c.get(ctx, "/api/equipment/status/"+string(status), &equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

func (s *EquipmentService) ListByLocation(ctx context.Context, location string) ([]models.Equipment, error) {
	var equipment []models.Equipment
	if err := s.c.get(ctx, "/api/equipment/location/"+url.PathEscape(location), &equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

// ListNeedingMaintenance returns equipment whose next maintenance is due.
func (s *EquipmentService) ListNeedingMaintenance(ctx context.Context) ([]models.Equipment, error) {
	var equipment []models.Equipment
	if err := s.c.get(ctx, "/api/equipment/maintenance/needed", &equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

func (s *EquipmentService) Search(ctx context.Context, term string) ([]models.Equipment, error) {
	var equipment []models.Equipment
	if err := s.c.get(ctx, "/api/equipment/search?q="+url.QueryEscape(term), &equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

func (s *EquipmentService) UpdateStatus(ctx context.Context, id int64, status models.EquipmentStatus) (models.Equipment, error) {
	body := map[string]models.EquipmentStatus{"status": status}
	var e models.Equipment
	if err := s.c.put(ctx, fmt.Sprintf("/api/equipment/%d/status", id), body, &e); err != nil {
		return models.Equipment{}, err
	}
	return e, nil
}

// ScheduleMaintenance books the next maintenance date.
func (s *EquipmentService) ScheduleMaintenance(ctx context.Context, id int64, next time.Time) (models.Equipment, error) {
	body := map[string]time.Time{"nextMaintenanceDate": next}
	var e models.Equipment
	if err := s.c.put(ctx, fmt.Sprintf("/api/equipment/%d/maintenance/schedule", id), body, &e); err != nil {
		return models.Equipment{}, err
	}
	return e, nil
}

// CompleteMaintenance records the maintenance as done and makes the
// equipment available again.
func (s *EquipmentService) CompleteMaintenance(ctx context.Context, id int64) (models.Equipment, error) {
	var e models.Equipment
	if err := s.c.put(ctx, fmt.Sprintf("/api/equipment/%d/maintenance/complete", id), struct{}{}, &e); err != nil {
		return models.Equipment{}, err
	}
	return e, nil
}
