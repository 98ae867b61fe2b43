package store

import (
	"context"

	"collegeconnect/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PeerStore struct{ db *gorm.DB }

func (s *Store) Peers() *PeerStore { return &PeerStore{db: s.DB} }

func (ps *PeerStore) Create(ctx context.Context, p *domain.Peer) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Students == nil {
		p.Students = datatypes.JSONSlice[uuid.UUID]{}
	}
	return translate(ps.db.WithContext(ctx).Create(p).Error)
}

func (ps *PeerStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Peer, error) {
	var p domain.Peer
	if err := ps.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (ps *PeerStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Peer, error) {
	var p domain.Peer
	if err := ps.db.WithContext(ctx).First(&p, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (ps *PeerStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Peer, error) {
	out := []domain.Peer{}
	if len(ids) == 0 {
		return out, nil
	}
	err := ps.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}

// SetRoster replaces the peer's student list.
func (ps *PeerStore) SetRoster(ctx context.Context, id uuid.UUID, students []uuid.UUID) error {
	roster := datatypes.JSONSlice[uuid.UUID](students)
	if roster == nil {
		roster = datatypes.JSONSlice[uuid.UUID]{}
	}
	return updateByID(ctx, ps.db, &domain.Peer{}, id, map[string]any{"student_ids": roster})
}

func (ps *PeerStore) List(ctx context.Context, opts ListOptions) ([]domain.Peer, int64, error) {
	return listPage[domain.Peer](ctx, ps.db.Model(&domain.Peer{}), opts)
}

func (ps *PeerStore) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return updateByID(ctx, ps.db, &domain.Peer{}, id, fields)
}

func (ps *PeerStore) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, ps.db, &domain.Peer{}, id)
}
