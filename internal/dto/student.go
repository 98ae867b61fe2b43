package dto

import (
	"collegeconnect/internal/domain"

	"github.com/google/uuid"
)

// UpdateStudentRequest leaves the peer link alone; reassignment goes through
// the peer roster so both sides stay in step.
type UpdateStudentRequest struct {
	Name      *string `json:"name,omitempty"`
	StudentID *string `json:"studentId,omitempty"`
}

type StudentView struct {
	domain.Student
	Peer *domain.PeerRef `json:"peerInfo,omitempty"`
	User *domain.UserRef `json:"user,omitempty"`
}

type StudentListQuery struct {
	PageQuery
	PeerID *uuid.UUID
	Search string
}
