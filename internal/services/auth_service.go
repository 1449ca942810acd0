package services

import (
	"context"

	"github.com/ArowuTest/bingo-caller/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs host tokens
type TokenIssuer interface {
	Generate(subject string) (string, error)
	ExpiresIn() int
}

// AuthService defines the interface for host authentication
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

type authService struct {
	passwordHash []byte
	tokens       TokenIssuer
}

// NewAuthService creates a new AuthService implementation
func NewAuthService(passwordHash string, tokens TokenIssuer) AuthService {
	return &authService{
		passwordHash: []byte(passwordHash),
		tokens:       tokens,
	}
}

// Login checks the host password and issues a token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate("host")
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, ExpiresIn: s.tokens.ExpiresIn()}, nil
}
