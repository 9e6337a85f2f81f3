package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token fails signature or claim checks
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when a token is past its expiry
	ErrExpiredToken = errors.New("expired token")
)

// Claims is the JWT payload for SortMyAI access tokens.
// UserID is the opaque creator identifier threaded through every
// service call; nothing downstream depends on token internals.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Handle string `json:"handle,omitempty"`
}

// Manager issues and verifies HMAC-signed tokens
type Manager struct {
	secretKey        []byte
	expiresIn        time.Duration
	refreshExpiresIn time.Duration
}

// NewManager creates a new token manager
func NewManager(secret string, expiresIn, refreshExpiresIn time.Duration) *Manager {
	return &Manager{
		secretKey:        []byte(secret),
		expiresIn:        expiresIn,
		refreshExpiresIn: refreshExpiresIn,
	}
}

// TokenPair holds an access/refresh token pair
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// GenerateTokenPair creates an access and refresh token for a creator
func (m *Manager) GenerateTokenPair(userID, handle string) (*TokenPair, error) {
	access, err := m.generate(userID, handle, m.expiresIn)
	if err != nil {
		return nil, err
	}
	refresh, err := m.generate(userID, handle, m.refreshExpiresIn)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(m.expiresIn.Seconds()),
	}, nil
}

func (m *Manager) generate(userID, handle string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Handle: handle,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// VerifyToken parses and validates a token string
func (m *Manager) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
