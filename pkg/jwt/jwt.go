package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"raja-digital/config"
)

var (
	ErrTokenExpired = errors.New("token kedaluwarsa")
	ErrTokenInvalid = errors.New("token tidak valid")
)

const issuer = "raja-digital"

// Claims session claims carried by the bearer token
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Shift  string `json:"shift"`
	Name   string `json:"name"`
	jwtv5.RegisteredClaims
}

// Identity fields stamped into a new token
type Identity struct {
	UserID string
	Email  string
	Role   string
	Shift  string
	Name   string
}

// Manager signs and verifies session tokens
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a Manager from auth config
func NewManager(cfg *config.AuthConfig) *Manager {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{secret: []byte(cfg.JWTSecret), ttl: ttl, now: time.Now}
}

// TTL token lifetime
func (m *Manager) TTL() time.Duration { return m.ttl }

// GenerateToken signs a token for id. Returns the token and its claims.
func (m *Manager) GenerateToken(id Identity) (string, *Claims, error) {
	now := m.now()
	claims := &Claims{
		UserID: id.UserID,
		Email:  id.Email,
		Role:   id.Role,
		Shift:  id.Shift,
		Name:   id.Name,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   id.UserID,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(m.ttl)),
			Issuer:    issuer,
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// ParseToken verifies the signature and expiry.
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	}, jwtv5.WithIssuer(issuer), jwtv5.WithTimeFunc(m.now))

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// Remaining time until the claims expire; zero if already expired.
func (c *Claims) Remaining(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	d := c.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
