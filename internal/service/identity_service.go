package service

import (
	"context"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/dto"
)

type IdentityService interface {
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error)
	Login(ctx context.Context, r dto.LoginRequest, ip, ua string) (*dto.LoginResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, userID domain.UserID, r dto.ChangePasswordRequest) error
	Me(ctx context.Context, userID domain.UserID) (*dto.LoginResponse, error)
}
