package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gymstream/models"
)

var (
	ErrSecretRequired = errors.New("signing secret not provided")
	ErrInvalidToken   = errors.New("invalid or expired token")
)

// Claims is the access-token payload. The subject is the username; Roles
// carries the prefixed authority list (ROLE_ADMIN) that clients consume.
type Claims struct {
	UserID int64    `json:"uid"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// PrimaryRole returns the bare role derived from the first authority entry.
func (c Claims) PrimaryRole() models.Role {
	if len(c.Roles) == 0 {
		return ""
	}
	role := c.Roles[0]
	if len(role) > len(models.RolePrefix) && role[:len(models.RolePrefix)] == models.RolePrefix {
		role = role[len(models.RolePrefix):]
	}
	return models.Role(role)
}

// TokenManager signs and validates HS256 access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a token manager with the given secret and lifetime.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrSecretRequired
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}, nil
}

// Issue creates a signed token for the user. The expiry claim is embedded in
// the token; clients may decode it for display but the server re-validates on
// every request.
func (m *TokenManager) Issue(user models.User) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(m.ttl)

	claims := Claims{
		UserID: user.ID,
		Roles:  []string{user.Role.Authority()},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse validates a token string and returns its claims.
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
