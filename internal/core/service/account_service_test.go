package service

import (
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ynov-backend/accounts-api/internal/core/domain"
	"github.com/ynov-backend/accounts-api/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	created := cloneUser(user)
	created.ID = "id-" + strconv.Itoa(r.nextID)
	r.nextID++
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		view := *u
		view.PasswordHash = ""
		out = append(out, view)
	}
	return out, nil
}

func (r *stubUserRepo) DeleteByID(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubCache struct {
	invalidated []string
}

func (c *stubCache) Get(context.Context, string) (*domain.User, error) { return nil, nil }
func (c *stubCache) Set(context.Context, *domain.User) error           { return nil }
func (c *stubCache) Invalidate(_ context.Context, id string) error {
	c.invalidated = append(c.invalidated, id)
	return nil
}

func newTestService(repo ports.UserRepository, cache ports.UserCache) *AccountService {
	return NewAccountService(repo, NewTokenService("secret", time.Hour), cache, zerolog.Nop())
}

func TestAccountService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, nil)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Password: "pw1",
		Name:     "Alice",
		LastName: "Smith",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned ID")
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role %q, got %q", domain.RoleUser, user.Role)
	}
	if user.PasswordHash == "pw1" {
		t.Fatalf("password stored in plaintext")
	}
	if !CheckPassword("pw1", user.PasswordHash) {
		t.Fatalf("stored hash does not match password")
	}
	if user.CreatedAt.IsZero() {
		t.Fatalf("createdAt not set")
	}
}

func TestAccountService_Register_Validation(t *testing.T) {
	svc := newTestService(newStubUserRepo(), nil)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "", Password: "pw"}); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for empty username, got %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Password: ""}); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for empty password, got %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Password: "pw", Role: "superuser"}); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for bad role, got %v", err)
	}
}

// wrappingUserRepo wraps sentinel errors the way the store layer does with
// fmt.Errorf("...: %w", err).
type wrappingUserRepo struct {
	*stubUserRepo
}

func (r *wrappingUserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := r.stubUserRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return u, nil
}

func TestAccountService_Register_WrappedNotFound(t *testing.T) {
	svc := newTestService(&wrappingUserRepo{stubUserRepo: newStubUserRepo()}, nil)

	user, err := svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Password: "pw"})
	if err != nil {
		t.Fatalf("Register failed with wrapped not-found: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAccountService_Register_Duplicate(t *testing.T) {
	svc := newTestService(newStubUserRepo(), nil)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Password: "pw"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Password: "pw2"}); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAccountService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, nil)

	created, err := svc.Register(context.Background(), ports.RegisterInput{Username: "carol", Password: "s3cret", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.ID != created.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	p, err := NewTokenService("secret", time.Hour).Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if p.ID != created.ID || p.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", p)
	}
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	svc := newTestService(newStubUserRepo(), nil)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "dave", Password: "goodpass"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if token, _, err := svc.Login(context.Background(), "dave", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	} else if token != "" {
		t.Fatalf("token issued on failed login")
	}
}

func TestAccountService_Login_UnknownUser(t *testing.T) {
	svc := newTestService(newStubUserRepo(), nil)

	if _, _, err := svc.Login(context.Background(), "ghost", "pw"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAccountService_Login_Validation(t *testing.T) {
	svc := newTestService(newStubUserRepo(), nil)

	if _, _, err := svc.Login(context.Background(), "", "pw"); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "bob", ""); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAccountService_ListUsers_NoPasswords(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, nil)

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Password: "pw1"})
	_, _ = svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Password: "pw2"})

	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	for _, u := range users {
		if u.PasswordHash != "" {
			t.Fatalf("password hash leaked in list for %s", u.Username)
		}
	}
}

func TestAccountService_DeleteUser_Self(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(repo, nil)

	admin, _ := svc.Register(context.Background(), ports.RegisterInput{Username: "root", Password: "pw", Role: domain.RoleAdmin})

	// Self-deletion is rejected before any existence check, so it also fires
	// for a caller ID that matches a non-existent target.
	err := svc.DeleteUser(context.Background(), admin.ID, domain.Principal{ID: admin.ID, Role: domain.RoleAdmin})
	if err != domain.ErrSelfDeletion {
		t.Fatalf("expected ErrSelfDeletion, got %v", err)
	}

	err = svc.DeleteUser(context.Background(), "missing-id", domain.Principal{ID: "missing-id", Role: domain.RoleAdmin})
	if err != domain.ErrSelfDeletion {
		t.Fatalf("expected ErrSelfDeletion before existence check, got %v", err)
	}
}

func TestAccountService_DeleteUser_NotFound(t *testing.T) {
	svc := newTestService(newStubUserRepo(), nil)

	err := svc.DeleteUser(context.Background(), "missing-id", domain.Principal{ID: "id-99", Role: domain.RoleAdmin})
	if err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAccountService_DeleteUser_Success(t *testing.T) {
	repo := newStubUserRepo()
	cache := &stubCache{}
	svc := newTestService(repo, cache)

	target, _ := svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Password: "pw"})

	err := svc.DeleteUser(context.Background(), target.ID, domain.Principal{ID: "id-99", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), target.ID); err != domain.ErrUserNotFound {
		t.Fatalf("user still present after delete")
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != target.ID {
		t.Fatalf("cached principal not invalidated: %v", cache.invalidated)
	}
}
