package ports

import (
	"context"

	"github.com/ynov-backend/accounts-api/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration time.
type RegisterInput struct {
	Username string
	Password string
	Role     string
	Name     string
	LastName string
}

type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	DeleteUser(ctx context.Context, targetID string, caller domain.Principal) error
}
