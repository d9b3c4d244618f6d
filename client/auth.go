package client

import (
	"context"
	"fmt"
)

// AuthService calls the authentication endpoints.
type AuthService struct {
	c *Client
}

// SigninResult is the backend's signin payload. AccessToken mirrors Token.
type SigninResult struct {
	Token       string   `json:"token"`
	AccessToken string   `json:"accessToken"`
	Type        string   `json:"type"`
	ID          int64    `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Role        string   `json:"role"`
	Roles       []string `json:"roles"`
}

// SignupData is the registration payload. Roles carries lowercase role
// names; the backend honors the first entry.
type SignupData struct {
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Roles     []string `json:"role"`
}

// Signin exchanges credentials for a token. It does not touch the session
// store; that is the session manager's job.
func (s *AuthService) Signin(ctx context.Context, username, password string) (SigninResult, error) {
	body := map[string]string{"username": username, "password": password}
	var result SigninResult
	if err := s.c.post(ctx, "/api/auth/signin", body, &result); err != nil {
		return SigninResult{}, err
	}
	return result, nil
}

// Signup registers a new account and returns the backend's message.
func (s *AuthService) Signup(ctx context.Context, data SignupData) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := s.c.post(ctx, "/api/auth/signup", data, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ResetPassword asks the backend for a temporary password for the user.
// Admin only; the password is returned exactly once.
func (s *AuthService) ResetPassword(ctx context.Context, userID int64) (string, error) {
	var resp struct {
		TemporaryPassword string `json:"temporaryPassword"`
	}
	if err := s.c.post(ctx, fmt.Sprintf("/api/users/%d/reset-password", userID), struct{}{}, &resp); err != nil {
		return "", err
	}
	return resp.TemporaryPassword, nil
}
