package service

import (
	"context"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/dto"
)

type ProvisionService interface {
	Provision(ctx context.Context, userID domain.UserID, payload dto.ProfilePayload) (*dto.ProfileRef, error)
	RegisterWithProfile(ctx context.Context, r dto.RegisterRequest) (*dto.RegisterResponse, error)
}
