package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sethvargo/go-password/password"
	"golang.org/x/crypto/bcrypt"

	"gymstream/api"
	"gymstream/internal/auth"
	"gymstream/internal/database"
	"gymstream/models"
)

// Exact signup messages the frontend matches on.
const (
	msgUsernameTaken   = "Error: Username is already taken!"
	msgEmailInUse      = "Error: Email is already in use!"
	msgSignupSuccess   = "User registered successfully!"
	msgBadCredentials  = "Error: Invalid username or password"
	msgAccountDisabled = "Error: Account is disabled"
)

// AuthHandler handles signin and signup.
type AuthHandler struct {
	users  *database.UserRepository
	tokens *auth.TokenManager
	logger *slog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(users *database.UserRepository, tokens *auth.TokenManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, logger: logger}
}

// SigninRequest represents the signin request body.
type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SigninResponse represents the signin response. AccessToken duplicates
// Token under the wire name older clients consume.
type SigninResponse struct {
	Token       string      `json:"token"`
	AccessToken string      `json:"accessToken"`
	Type        string      `json:"type"`
	ID          int64       `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	Role        models.Role `json:"role"`
	Roles       []string    `json:"roles"`
}

// SignupRequest represents the signup request body. Role carries the
// lowercase role names requested at registration.
type SignupRequest struct {
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Role      []string `json:"role"`
}

// Signin authenticates a user and returns a signed access token.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.users.GetByUsername(req.Username)
	if err != nil {
		h.logger.Info("signin rejected", "username", req.Username, "reason", "unknown user")
		writeMessage(w, http.StatusUnauthorized, msgBadCredentials)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.logger.Info("signin rejected", "username", req.Username, "reason", "bad password")
		writeMessage(w, http.StatusUnauthorized, msgBadCredentials)
		return
	}
	if !user.Enabled {
		h.logger.Info("signin rejected", "username", req.Username, "reason", "disabled")
		writeMessage(w, http.StatusUnauthorized, msgAccountDisabled)
		return
	}

	token, _, err := h.tokens.Issue(user)
	if err != nil {
		h.logger.Error("failed to issue token", "username", req.Username, "error", err)
		writeMessage(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	h.logger.Info("signin", "username", user.Username, "role", user.Role)
	writeJSON(w, http.StatusOK, SigninResponse{
		Token:       token,
		AccessToken: token,
		Type:        "Bearer",
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Role:        user.Role,
		Roles:       []string{user.Role.Authority()},
	})
}

// Signup registers a new account. The first requested role wins; unknown
// role names fall back to MEMBER.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Error: Username, email and password are required")
		return
	}

	role := models.RoleMember
	if len(req.Role) > 0 {
		role = models.ParseSignupRole(req.Role[0])
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
		Role:         role,
		Enabled:      true,
	}
	switch err := h.users.Create(&user); err {
	case nil:
	case database.ErrUsernameExists:
		writeMessage(w, http.StatusBadRequest, msgUsernameTaken)
		return
	case database.ErrEmailExists:
		writeMessage(w, http.StatusBadRequest, msgEmailInUse)
		return
	default:
		h.logger.Error("signup failed", "username", req.Username, "error", err)
		writeMessage(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	h.logger.Info("signup", "username", user.Username, "role", user.Role)
	writeMessage(w, http.StatusOK, msgSignupSuccess)
}

// ResetPassword generates a temporary password for a user and returns it
// once. Route access is restricted to admins.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	temp, err := password.Generate(12, 4, 0, false, false)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to generate password")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(temp), bcrypt.DefaultCost)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	switch err := h.users.UpdatePassword(id, string(hash)); err {
	case nil:
	case database.ErrUserNotFound:
		writeMessage(w, http.StatusNotFound, "user not found")
		return
	default:
		writeMessage(w, http.StatusInternalServerError, "failed to reset password")
		return
	}

	h.logger.Info("password reset", "userID", id, "by", auth.GetUsername(r))
	writeJSON(w, http.StatusOK, map[string]string{"temporaryPassword": temp})
}

// RegisterRoutes mounts the public auth endpoints. signin should be wrapped
// in rate limiting by the caller before mounting.
func (h *AuthHandler) RegisterRoutes(r *mux.Router, signin http.HandlerFunc) {
	r.HandleFunc("/api/auth/signin", signin).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/api/auth/signup", h.Signup).Methods(http.MethodPost, http.MethodOptions)
}

// RegisterProtectedRoutes mounts the auth endpoints that require a token.
func (h *AuthHandler) RegisterProtectedRoutes(r *mux.Router) {
	r.HandleFunc("/users/{id:[0-9]+}/reset-password",
		api.RequireRolesFunc(h.ResetPassword, models.RoleAdmin)).Methods(http.MethodPost, http.MethodOptions)
}
