package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ynov-backend/accounts-api/internal/core/domain"
	"github.com/ynov-backend/accounts-api/internal/core/ports"
)

// AccountService implements the register / login / list / delete use cases.
// All failures are typed domain errors; the HTTP layer maps them to status
// codes in one place.
type AccountService struct {
	repo   ports.UserRepository
	tokens ports.TokenIssuer
	cache  ports.UserCache
	log    zerolog.Logger
}

func NewAccountService(repo ports.UserRepository, tokens ports.TokenIssuer, cache ports.UserCache, log zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, tokens: tokens, cache: cache, log: log}
}

// Register validates input, hashes the password, and inserts the user.
// Duplicate usernames fail with domain.ErrUserExists; the check here is
// best-effort and the unique index at the store backs it under races.
func (s *AccountService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}

	if existing, err := s.repo.FindByUsername(ctx, in.Username); err == nil && existing != nil {
		return nil, domain.ErrUserExists
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     in.Username,
		PasswordHash: hash,
		Role:         role,
		Name:         in.Name,
		LastName:     in.LastName,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login authenticates by username/password and issues a token on success.
// An unknown username and a wrong password are distinct error kinds; both
// surface as 401 upstream.
func (s *AccountService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidInput
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}

	if !CheckPassword(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("username", user.Username).Msg("user logged in")
	return token, user, nil
}

// ListUsers returns every account. The store already strips password hashes
// from the projection; admin gating happens in the middleware before this
// runs.
func (s *AccountService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListAll(ctx)
}

// DeleteUser removes the target account. Self-deletion is rejected before
// any ID-format or existence check, matching the route contract.
func (s *AccountService) DeleteUser(ctx context.Context, targetID string, caller domain.Principal) error {
	if targetID == caller.ID {
		return domain.ErrSelfDeletion
	}

	if err := s.repo.DeleteByID(ctx, targetID); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, targetID); err != nil {
			s.log.Warn().Err(err).Str("user_id", targetID).Msg("failed to invalidate cached principal")
		}
	}

	s.log.Info().Str("user_id", targetID).Str("deleted_by", caller.ID).Msg("user deleted")
	return nil
}
