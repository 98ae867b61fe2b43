package service

import (
	"context"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/dto"
)

type TokenService interface {
	Issue(ctx context.Context, user *domain.User, ip, ua string) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string, ip, ua string) (*dto.TokenResponse, error)
	Revoke(ctx context.Context, refreshToken string) error
	RevokeAllForUser(ctx context.Context, userID domain.UserID) error
	ParseAccess(ctx context.Context, accessToken string) (*dto.Principal, error)
}
