package store

import (
	"context"

	"collegeconnect/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CounselorStore struct{ db *gorm.DB }

func (s *Store) Counselors() *CounselorStore { return &CounselorStore{db: s.DB} }

type CounselorFilter struct {
	CollegeID *uuid.UUID
	Status    domain.ProfileStatus
}

func (cs *CounselorStore) Create(ctx context.Context, c *domain.Counselor) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return translate(cs.db.WithContext(ctx).Create(c).Error)
}

func (cs *CounselorStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Counselor, error) {
	var c domain.Counselor
	if err := cs.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (cs *CounselorStore) ExistsForUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	var n int64
	err := cs.db.WithContext(ctx).Model(&domain.Counselor{}).Where("user_id = ?", userID).Count(&n).Error
	return n > 0, err
}

func (cs *CounselorStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Counselor, error) {
	var c domain.Counselor
	if err := cs.db.WithContext(ctx).First(&c, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (cs *CounselorStore) CountByCollege(ctx context.Context, collegeID uuid.UUID) (int64, error) {
	var n int64
	err := cs.db.WithContext(ctx).Model(&domain.Counselor{}).Where("college_id = ?", collegeID).Count(&n).Error
	return n, err
}

func (cs *CounselorStore) List(ctx context.Context, f CounselorFilter, opts ListOptions) ([]domain.Counselor, int64, error) {
	q := cs.db.Model(&domain.Counselor{})
	if f.CollegeID != nil {
		q = q.Where("college_id = ?", *f.CollegeID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return listPage[domain.Counselor](ctx, q, opts)
}

func (cs *CounselorStore) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return updateByID(ctx, cs.db, &domain.Counselor{}, id, fields)
}

func (cs *CounselorStore) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, cs.db, &domain.Counselor{}, id)
}
