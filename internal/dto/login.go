package dto

import "collegeconnect/internal/domain"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the user's profile for its role, nil for admins or
// users whose profile has not been provisioned yet.
type LoginResponse struct {
	TokenResponse
	User    domain.User `json:"user"`
	Profile any         `json:"profile,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Principal is the authenticated caller derived from an access token.
type Principal struct {
	UserID    domain.UserID
	SessionID domain.SessionID
	Role      domain.Role
}
