package store

import (
	"context"
	"strings"

	"collegeconnect/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentStore struct{ db *gorm.DB }

func (s *Store) Students() *StudentStore { return &StudentStore{db: s.DB} }

type StudentFilter struct {
	PeerID *uuid.UUID
	Search string
}

func (ss *StudentStore) Create(ctx context.Context, st *domain.Student) error {
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	st.StudentID = strings.TrimSpace(st.StudentID)
	return translate(ss.db.WithContext(ctx).Create(st).Error)
}

func (ss *StudentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	var st domain.Student
	if err := ss.db.WithContext(ctx).First(&st, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &st, nil
}

func (ss *StudentStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Student, error) {
	var st domain.Student
	if err := ss.db.WithContext(ctx).First(&st, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return &st, nil
}

// GetByIDs returns the students that exist among ids. Unknown ids are
// skipped without error.
func (ss *StudentStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Student, error) {
	out := []domain.Student{}
	if len(ids) == 0 {
		return out, nil
	}
	err := ss.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}

func (ss *StudentStore) StudentIDTaken(ctx context.Context, studentID string) (bool, error) {
	var n int64
	err := ss.db.WithContext(ctx).Model(&domain.Student{}).
		Where("student_id = ?", strings.TrimSpace(studentID)).
		Count(&n).Error
	return n > 0, err
}

// SetPeer points every student in ids at peer. A nil peer clears the link.
func (ss *StudentStore) SetPeer(ctx context.Context, ids []uuid.UUID, peer *uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return ss.db.WithContext(ctx).Model(&domain.Student{}).
		Where("id IN ?", ids).
		Update("peer_id", peer).Error
}

// ClearPeer unlinks every student currently pointing at peer.
func (ss *StudentStore) ClearPeer(ctx context.Context, peer uuid.UUID) (int64, error) {
	res := ss.db.WithContext(ctx).Model(&domain.Student{}).
		Where("peer_id = ?", peer).
		Update("peer_id", nil)
	return res.RowsAffected, res.Error
}

func (ss *StudentStore) List(ctx context.Context, f StudentFilter, opts ListOptions) ([]domain.Student, int64, error) {
	q := ss.db.Model(&domain.Student{})
	if f.PeerID != nil {
		q = q.Where("peer_id = ?", *f.PeerID)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(student_id) LIKE ?", like, like)
	}
	return listPage[domain.Student](ctx, q, opts)
}

func (ss *StudentStore) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return updateByID(ctx, ss.db, &domain.Student{}, id, fields)
}

func (ss *StudentStore) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, ss.db, &domain.Student{}, id)
}
