package dto

import (
	"collegeconnect/internal/domain"

	"github.com/google/uuid"
)

type CreatePeerRequest struct {
	UserID uuid.UUID `json:"user" validate:"required"`
	PeerPayload
}

type AssignStudentsRequest struct {
	StudentIDs []uuid.UUID `json:"studentIds"`
}

type PeerView struct {
	domain.Peer
	Roster []domain.StudentRef `json:"roster"`
	User   *domain.UserRef     `json:"user,omitempty"`
}
