package service

import (
	"context"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/dto"
)

type PeerService interface {
	Create(ctx context.Context, r dto.CreatePeerRequest) (*dto.PeerView, error)
	Assign(ctx context.Context, peerID domain.PeerID, studentIDs []domain.StudentID) (*dto.PeerView, error)
	Get(ctx context.Context, id domain.PeerID) (*dto.PeerView, error)
	List(ctx context.Context, q dto.PageQuery) (*dto.Page[dto.PeerView], error)
	Delete(ctx context.Context, id domain.PeerID) error
}
