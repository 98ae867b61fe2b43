package dto

import (
	"collegeconnect/internal/domain"

	"github.com/google/uuid"
)

// RegisterRequest creates a user and its role profile in one call. Profile
// must be the variant matching Role.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	Profile  ProfilePayload
}

type RegisterResponse struct {
	UserID    string      `json:"userId"`
	Role      domain.Role `json:"role"`
	ProfileID *uuid.UUID  `json:"profileId,omitempty"`
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserRequest is a partial update; nil fields are left untouched.
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}
