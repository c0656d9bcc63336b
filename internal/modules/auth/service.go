package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/apperr"
	"hotelbooking/internal/repository"
)

// Service contains the register/login/logout rules
type Service struct {
	users  UserRepository
	tokens TokenService
}

func NewService(users UserRepository, tokens TokenService) *Service {
	return &Service{users: users, tokens: tokens}
}

func (s *Service) Register(ctx context.Context, req UserRequest) (*domain.User, error) {
	email := normalizeEmail(req.Email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperr.ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, u); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Login checks credentials and issues an access token.
func (s *Service) Login(ctx context.Context, req UserRequest) (string, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperr.ErrEmailNotRegistered
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := CheckPassword(req.Password, u.PasswordHash); err != nil {
		return "", apperr.ErrIncorrectPassword
	}

	token, err := s.tokens.GenerateToken(u.ID)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

// EnsureAnonymous fails when the caller already holds a still-valid token.
// Expired or broken tokens do not block a new login.
func (s *Service) EnsureAnonymous(rawToken string) error {
	if rawToken == "" {
		return nil
	}
	if _, err := s.tokens.ValidateToken(rawToken); err == nil {
		return apperr.ErrAlreadyAuthenticated
	}
	return nil
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.ErrIncorrectToken
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) Logout(rawToken string) error {
	if rawToken == "" {
		return apperr.ErrNotAuthenticated
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
