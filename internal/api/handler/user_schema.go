package handler

import "time"

// errorResponse documents the standard error envelope rendered on all
// 4xx/5xx responses by the central error handler.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin user"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Response types ---
// Owned by the transport layer; intentionally separate from domain types so
// the JSON contract is not coupled to internal changes.

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Name      string    `json:"name,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type registerResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type loginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

// listUsersResponse keeps the original service's response key.
type listUsersResponse struct {
	Utilisateurs []userResponse `json:"utilisateurs"`
}

type messageResponse struct {
	Message string `json:"message"`
}
