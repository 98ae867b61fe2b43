package dto

import (
	"collegeconnect/internal/domain"

	"github.com/google/uuid"
)

// ProfilePayload is one variant per role, each with its own required fields.
type ProfilePayload interface {
	Role() domain.Role
}

type StudentPayload struct {
	Name      string     `json:"name" validate:"required"`
	StudentID string     `json:"studentId" validate:"required"`
	PeerID    *uuid.UUID `json:"peer,omitempty"`
}

func (StudentPayload) Role() domain.Role { return domain.RoleStudent }

type CounselorPayload struct {
	Name           string    `json:"name" validate:"required"`
	CollegeID      uuid.UUID `json:"college" validate:"required"`
	Qualification  string    `json:"qualification,omitempty"`
	Specialization []string  `json:"specialization,omitempty"`
	ContactEmail   string    `json:"contactEmail,omitempty" validate:"omitempty,email"`
	ContactPhone   string    `json:"contactPhone,omitempty"`
}

func (CounselorPayload) Role() domain.Role { return domain.RoleCounselor }

type CollegeAdminPayload struct {
	Name                    string          `json:"name" validate:"required"`
	Designation             string          `json:"designation" validate:"required"`
	VerifiedCollegeDocument domain.Document `json:"-" validate:"document"`
	ProofOfDesignation      domain.Document `json:"-" validate:"document"`
}

func (CollegeAdminPayload) Role() domain.Role { return domain.RoleCollegeAdmin }

type PeerPayload struct {
	Name       string      `json:"name" validate:"required"`
	StudentIDs []uuid.UUID `json:"studentIds,omitempty"`
}

func (PeerPayload) Role() domain.Role { return domain.RolePeer }

// AdminPayload carries nothing; platform admins have no profile record.
type AdminPayload struct{}

func (AdminPayload) Role() domain.Role { return domain.RoleAdmin }

type ProfileRef struct {
	Role      domain.Role `json:"role"`
	ProfileID *uuid.UUID  `json:"profileId,omitempty"`
}
