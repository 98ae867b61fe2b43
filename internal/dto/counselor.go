package dto

import (
	"collegeconnect/internal/domain"

	"github.com/google/uuid"
)

type CreateCounselorRequest struct {
	UserID uuid.UUID `json:"user" validate:"required"`
	CounselorPayload
}

// UpdateCounselorRequest cannot move a counselor to another user or college.
type UpdateCounselorRequest struct {
	Name           *string   `json:"name,omitempty"`
	Qualification  *string   `json:"qualification,omitempty"`
	Specialization *[]string `json:"specialization,omitempty"`
	ContactEmail   *string   `json:"contactEmail,omitempty"`
	ContactPhone   *string   `json:"contactPhone,omitempty"`
}

type CounselorView struct {
	domain.Counselor
	College *domain.CollegeRef `json:"collegeInfo,omitempty"`
	User    *domain.UserRef    `json:"user,omitempty"`
}

type CounselorListQuery struct {
	PageQuery
	CollegeID *uuid.UUID
	Status    string
}
