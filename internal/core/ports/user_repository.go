package ports

import (
	"context"

	"github.com/ynov-backend/accounts-api/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)
	DeleteByID(ctx context.Context, id string) error
}
