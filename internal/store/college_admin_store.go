package store

import (
	"context"

	"collegeconnect/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CollegeAdminStore struct{ db *gorm.DB }

func (s *Store) CollegeAdmins() *CollegeAdminStore { return &CollegeAdminStore{db: s.DB} }

func (as *CollegeAdminStore) Create(ctx context.Context, a *domain.CollegeAdmin) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return translate(as.db.WithContext(ctx).Create(a).Error)
}

func (as *CollegeAdminStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.CollegeAdmin, error) {
	var a domain.CollegeAdmin
	if err := as.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (as *CollegeAdminStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.CollegeAdmin, error) {
	var a domain.CollegeAdmin
	if err := as.db.WithContext(ctx).First(&a, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (as *CollegeAdminStore) List(ctx context.Context, status domain.ProfileStatus, opts ListOptions) ([]domain.CollegeAdmin, int64, error) {
	q := as.db.Model(&domain.CollegeAdmin{}).Omit("verified_doc_data", "proof_doc_data")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return listPage[domain.CollegeAdmin](ctx, q, opts)
}

func (as *CollegeAdminStore) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return updateByID(ctx, as.db, &domain.CollegeAdmin{}, id, fields)
}

func (as *CollegeAdminStore) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, as.db, &domain.CollegeAdmin{}, id)
}
