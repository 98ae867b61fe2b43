package store

import (
	"context"
	"time"

	"collegeconnect/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegistrationStore struct{ db *gorm.DB }

func (s *Store) Registrations() *RegistrationStore { return &RegistrationStore{db: s.DB} }

func (rs *RegistrationStore) Create(ctx context.Context, r *domain.CollegeRegistration) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.Email = NormalizeEmail(r.Email)
	return translate(rs.db.WithContext(ctx).Create(r).Error)
}

func (rs *RegistrationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.CollegeRegistration, error) {
	var r domain.CollegeRegistration
	if err := rs.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (rs *RegistrationStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := rs.db.WithContext(ctx).Model(&domain.CollegeRegistration{}).
		Where("email = ?", NormalizeEmail(email)).
		Count(&n).Error
	return n > 0, err
}

// SetStatus records a review decision. reason is kept only for rejections.
func (rs *RegistrationStore) SetStatus(ctx context.Context, id uuid.UUID, status domain.RegistrationStatus, reason string, at time.Time) error {
	fields := map[string]any{
		"status":           status,
		"rejection_reason": reason,
		"reviewed_at":      &at,
	}
	if status == domain.RegistrationPending {
		fields["reviewed_at"] = nil
	}
	return updateByID(ctx, rs.db, &domain.CollegeRegistration{}, id, fields)
}

// List omits document payloads, they are fetched one at a time.
func (rs *RegistrationStore) List(ctx context.Context, status domain.RegistrationStatus, opts ListOptions) ([]domain.CollegeRegistration, int64, error) {
	q := rs.db.Model(&domain.CollegeRegistration{}).
		Omit("verified_doc_data", "proof_doc_data")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return listPage[domain.CollegeRegistration](ctx, q, opts)
}
