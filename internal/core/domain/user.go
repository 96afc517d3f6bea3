package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrInvalidInput = errors.New("username and password are required")
var ErrInvalidCredentials = errors.New("incorrect password")
var ErrInvalidToken = errors.New("invalid token")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("username already exists")
var ErrInvalidUserID = errors.New("invalid user id")
var ErrForbidden = errors.New("access forbidden")
var ErrSelfDeletion = errors.New("you cannot delete your own account")

// User models an account in the system. PasswordHash never reaches JSON.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Name         string    `json:"name,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Principal is the authenticated caller identity, rebuilt per request from a
// verified token plus a store lookup. It is never persisted.
type Principal struct {
	ID   string
	Role string
}

// ValidRole reports whether role is one of the two recognized roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
