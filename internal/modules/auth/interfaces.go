package auth

import (
	"context"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/jwt"
)

// UserRepository is the subset of the user store the auth service uses.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type TokenService interface {
	GenerateToken(userID int64) (string, error)
	ValidateToken(token string) (*jwt.Claims, error)
}
