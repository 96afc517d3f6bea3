package ports

import (
	"context"

	"github.com/ynov-backend/accounts-api/internal/core/domain"
)

// UserCache is a short-lived lookaside cache for principal resolution.
// Get returns (nil, nil) on a miss. Entries never include password material.
type UserCache interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
	Invalidate(ctx context.Context, id string) error
}
