package client

import (
	"context"
	"fmt"
	"net/url"

	"gymstream/models"
)

// GymClassesService calls the class schedule endpoints.
type GymClassesService struct {
	c *Client
}

// GymClassData is the create/update class payload.
type GymClassData struct {
	Name         string             `json:"name,omitempty"`
	Description  string             `json:"description,omitempty"`
	Type         models.ClassType   `json:"type,omitempty"`
	Status       models.ClassStatus `json:"status,omitempty"`
	TrainerID    int64              `json:"trainerId,omitempty"`
	StartTime    string             `json:"startTime,omitempty"`
	EndTime      string             `json:"endTime,omitempty"`
	Duration     int                `json:"duration,omitempty"`
	MaxCapacity  int                `json:"maxCapacity,omitempty"`
	Price        float64            `json:"price,omitempty"`
	Location     string             `json:"location,omitempty"`
	ScheduleDays string             `json:"scheduleDays,omitempty"`
}

func (s *GymClassesService) List(ctx context.Context) ([]models.GymClass, error) {
	var classes []models.GymClass
	if err := s.c.get(ctx, "/api/gym-classes", &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

func (s *GymClassesService) Create(ctx context.Context, data GymClassData) (models.GymClass, error) {
	var class models.GymClass
	if err := s.c.post(ctx, "/api/gym-classes", data, &class); err != nil {
		return models.GymClass{}, err
	}
	return class, nil
}

func (s *GymClassesService) Get(ctx context.Context, id int64) (models.GymClass, error) {
	var class models.GymClass
	if err := s.c.get(ctx, fmt.Sprintf("/api/gym-classes/%d", id), &class); err != nil {
		return models.GymClass{}, err
	}
	return class, nil
}

func (s *GymClassesService) Update(ctx context.Context, id int64, data GymClassData) (models.GymClass, error) {
	var class models.GymClass
	if err := s.c.put(ctx, fmt.Sprintf("/api/gym-classes/%d", id), data, &class); err != nil {
		return models.GymClass{}, err
	}
	return class, nil
}

func (s *GymClassesService) Delete(ctx context.Context, id int64) error {
	return s.c.delete(ctx, fmt.Sprintf("/api/gym-classes/%d", id))
}

// ListAvailable returns active classes with open spots.
func (s *GymClassesService) ListAvailable(ctx context.Context) ([]models.GymClass, error) {
	var classes []models.GymClass
	if err := s.c.get(ctx, "/api/gym-classes/available", &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// ListFull returns classes at capacity.
func (s *GymClassesService) ListFull(ctx context.Context) ([]models.GymClass, error) {
	var classes []models.GymClass
	if err := s.c.get(ctx, "/api/gym-classes/full", &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

func (s *GymClassesService) CountActive(ctx context.Context) (int64, error) {
	var resp struct {
		Count int64 `json:"count"`
	}
	if err := s.c.get(ctx, "/api/gym-classes/count/active", &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (s *GymClassesService) Search(ctx context.Context, term string) ([]models.GymClass, error) {
	var classes []models.GymClass
	if err := s.c.get(ctx, "/api/gym-classes/search?q="+url.QueryEscape(term), &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

func (s *GymClassesService) ListByType(ctx context.Context, t models.ClassType) ([]models.GymClass, error) {
	var classes []models.GymClass
	if err := s.c.get(ctx, "/api/gym-classes/type/"+string(t), &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

func (s *GymClassesService) ListByStatus(ctx context.Context, status models.ClassStatus) ([]models.GymClass, error) {
	var classes []models.GymClass
	if err := s.c.get(ctx, "/api/gym-classes/status/"+string(status), &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

func (s *GymClassesService) ListByTrainer(ctx context.Context, trainerID int64) ([]models.GymClass, error) {
	var classes []models.GymClass
	if err := s.c.get(ctx, fmt.Sprintf("/api/gym-classes/trainer/%d", trainerID), &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// IncrementEnrollment takes one enrollment spot, for manual corrections;
// registrations move the counter themselves.
func (s *GymClassesService) IncrementEnrollment(ctx context.Context, id int64) (models.GymClass, error) {
	var class models.GymClass
	if err := s.c.put(ctx, fmt.Sprintf("/api/gym-classes/%d/enrollment/increment", id), struct{}{}, &class); err != nil {
		return models.GymClass{}, err
	}
	return class, nil
}

// DecrementEnrollment releases one enrollment spot, for manual corrections.
func (s *GymClassesService) DecrementEnrollment(ctx context.Context, id int64) (models.GymClass, error) {
	var class models.GymClass
	if err := s.c.put(ctx, fmt.Sprintf("/api/gym-classes/%d/enrollment/decrement", id), struct{}{}, &class); err != nil {
		return models.GymClass{}, err
	}
	return class, nil
}

func (s *GymClassesService) UpdateStatus(ctx context.Context, id int64, status models.ClassStatus) (models.GymClass, error) {
	body := map[string]models.ClassStatus{"status": status}
	var class models.GymClass
	if err := s.c.put(ctx, fmt.Sprintf("/api/gym-classes/%d/status", id), body, &class); err != nil {
		return models.GymClass{}, err
	}
	return class, nil
}
