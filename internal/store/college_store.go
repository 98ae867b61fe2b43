package store

import (
	"context"
	"strings"

	"collegeconnect/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CollegeStore struct{ db *gorm.DB }

func (s *Store) Colleges() *CollegeStore { return &CollegeStore{db: s.DB} }

type CollegeFilter struct {
	Status domain.ProfileStatus
	Type   domain.CollegeType
	Search string
}

func (cs *CollegeStore) Create(ctx context.Context, c *domain.College) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.Domain = strings.ToLower(strings.TrimSpace(c.Domain))
	return translate(cs.db.WithContext(ctx).Create(c).Error)
}

func (cs *CollegeStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.College, error) {
	var c domain.College
	if err := cs.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (cs *CollegeStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.College, error) {
	var c domain.College
	if err := cs.db.WithContext(ctx).First(&c, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (cs *CollegeStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := cs.db.WithContext(ctx).Model(&domain.College{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (cs *CollegeStore) List(ctx context.Context, f CollegeFilter, opts ListOptions) ([]domain.College, int64, error) {
	q := cs.db.Model(&domain.College{}).Omit("logo_data", "documents")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(domain) LIKE ?", like, like)
	}
	return listPage[domain.College](ctx, q, opts)
}

func (cs *CollegeStore) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return updateByID(ctx, cs.db, &domain.College{}, id, fields)
}

// AppendDocument adds doc to the college's document list.
func (cs *CollegeStore) AppendDocument(ctx context.Context, id uuid.UUID, doc domain.Document) error {
	c, err := cs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c.Documents = append(c.Documents, doc)
	return updateByID(ctx, cs.db, &domain.College{}, id, map[string]any{"documents": c.Documents})
}

func (cs *CollegeStore) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, cs.db, &domain.College{}, id)
}
