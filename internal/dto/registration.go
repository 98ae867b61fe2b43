package dto

import (
	"time"

	"collegeconnect/internal/domain"

	"github.com/google/uuid"
)

type SubmitRegistrationRequest struct {
	CollegeName        string          `json:"collegeName" validate:"required"`
	CollegeType        string          `json:"collegeType" validate:"required"`
	CollegeDomain      string          `json:"collegeDomain" validate:"required,fqdn"`
	ApplicantName      string          `json:"applicantName" validate:"required"`
	Designation        string          `json:"designation" validate:"required"`
	Email              string          `json:"email" validate:"required,email"`
	Password           string          `json:"password" validate:"required,min=8"`
	ContactPhone       string          `json:"contactPhone,omitempty"`
	Website            string          `json:"website,omitempty" validate:"omitempty,url"`
	VerifiedDocument   domain.Document `json:"-" validate:"document"`
	ProofOfDesignation domain.Document `json:"-" validate:"document"`
}

type ApprovalResult struct {
	UserID         uuid.UUID `json:"userId"`
	CollegeID      uuid.UUID `json:"collegeId"`
	CollegeAdminID uuid.UUID `json:"collegeAdminId"`
	RegistrationID uuid.UUID `json:"registrationId"`
}

type RejectRequest struct {
	Reason string `json:"reason,omitempty"`
}

type RegistrationView struct {
	domain.CollegeRegistration
	VerifiedDocument   domain.DocumentMeta `json:"verifiedCollegeDocument"`
	ProofOfDesignation domain.DocumentMeta `json:"proofOfDesignation"`
}

func NewRegistrationView(r domain.CollegeRegistration) RegistrationView {
	return RegistrationView{
		CollegeRegistration: r,
		VerifiedDocument:    r.VerifiedDocument.Meta(),
		ProofOfDesignation:  r.ProofOfDesignation.Meta(),
	}
}

type RegistrationListQuery struct {
	PageQuery
	Status string
}

// RegistrationSummary is returned by Submit; it never echoes documents.
type RegistrationSummary struct {
	ID        uuid.UUID                 `json:"id"`
	Email     string                    `json:"email"`
	Status    domain.RegistrationStatus `json:"status"`
	CreatedAt time.Time                 `json:"createdAt"`
}
