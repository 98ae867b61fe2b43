package service

import (
	"context"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/dto"
)

type RegistrationService interface {
	Submit(ctx context.Context, r dto.SubmitRegistrationRequest) (*dto.RegistrationSummary, error)
	Approve(ctx context.Context, id domain.RegistrationID) (*dto.ApprovalResult, error)
	Reject(ctx context.Context, id domain.RegistrationID, reason string) (*dto.RegistrationView, error)
	SetPending(ctx context.Context, id domain.RegistrationID) (*dto.RegistrationView, error)
	Get(ctx context.Context, id domain.RegistrationID) (*dto.RegistrationView, error)
	List(ctx context.Context, q dto.RegistrationListQuery) (*dto.Page[dto.RegistrationView], error)
	Document(ctx context.Context, id domain.RegistrationID, kind string) (*domain.Document, error)
}
