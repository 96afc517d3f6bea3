package handler

import (
	"github.com/ynov-backend/accounts-api/internal/core/domain"
	"github.com/ynov-backend/accounts-api/internal/core/ports"
)

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
		Name:     req.Name,
		LastName: req.LastName,
	}
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		Name:      u.Name,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt.UTC(),
	}
}

func toUserListResponse(users []domain.User) listUsersResponse {
	out := make([]userResponse, len(users))
	for i := range users {
		out[i] = toUserResponse(&users[i])
	}
	return listUsersResponse{Utilisateurs: out}
}
