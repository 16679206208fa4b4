package auth

import (
	"context"

	"motofix/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// ProfileCreator seeds the dispatch-facing profile when a mechanic
// registers.
type ProfileCreator interface {
	CreateProfile(ctx context.Context, p *domain.MechanicProfile) error
}

type TokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}
