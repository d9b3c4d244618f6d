package client

import (
	"context"
	"fmt"

	"gymstream/models"
)

// UsersService calls the user management endpoints.
type UsersService struct {
	c *Client
}

// UserUpdate is a partial profile update; zero-valued fields are left alone.
type UserUpdate struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role,omitempty"`
	Enabled   *bool  `json:"enabled,omitempty"`
}

func (s *UsersService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.c.get(ctx, "/api/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UsersService) Trainers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.c.get(ctx, "/api/users/trainers", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UsersService) Get(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	if err := s.c.get(ctx, fmt.Sprintf("/api/users/%d", id), &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *UsersService) Update(ctx context.Context, id int64, update UserUpdate) (models.User, error) {
	var user models.User
	if err := s.c.put(ctx, fmt.Sprintf("/api/users/%d", id), update, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *UsersService) Delete(ctx context.Context, id int64) error {
	return s.c.delete(ctx, fmt.Sprintf("/api/users/%d", id))
}
