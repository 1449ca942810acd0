package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// HostRole is the role claim carried by caller host tokens
const HostRole = "host"

// HostTokenService issues and validates the HS256 tokens that unlock draw and
// reset when the host lock is enabled.
type HostTokenService struct {
	secret    []byte
	expiresIn time.Duration
	now       func() time.Time
}

// NewHostTokenService creates a token service. expiresIn is in seconds.
func NewHostTokenService(secret string, expiresIn int) *HostTokenService {
	return &HostTokenService{
		secret:    []byte(secret),
		expiresIn: time.Duration(expiresIn) * time.Second,
		now:       time.Now,
	}
}

// ExpiresIn returns the token lifetime in seconds
func (s *HostTokenService) ExpiresIn() int {
	return int(s.expiresIn / time.Second)
}

// Generate signs a host token for subject
func (s *HostTokenService) Generate(subject string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": HostRole,
		"iat":  now.Unix(),
		"exp":  now.Add(s.expiresIn).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign host token: %w", err)
	}
	return signed, nil
}

// Parse validates tokenString and returns its claims. Expired tokens yield an
// error matching jwt.ErrTokenExpired.
func (s *HostTokenService) Parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if role, _ := claims["role"].(string); role != HostRole {
		return nil, errors.New("token is not a host token")
	}
	return claims, nil
}
