package store

import (
	"context"
	"strings"
	"time"

	"collegeconnect/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserStore struct{ db *gorm.DB }

func (s *Store) Users() *UserStore { return &UserStore{db: s.DB} }

type UserFilter struct {
	Role   domain.Role
	Active *bool
	Search string
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *UserStore) Create(ctx context.Context, usr *domain.User) error {
	if usr.ID == uuid.Nil {
		usr.ID = uuid.New()
	}
	usr.Email = NormalizeEmail(usr.Email)
	return translate(u.db.WithContext(ctx).Create(usr).Error)
}

func (u *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	if err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (u *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := u.db.WithContext(ctx).First(&user, "email = ?", NormalizeEmail(email)).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (u *UserStore) List(ctx context.Context, f UserFilter, opts ListOptions) ([]domain.User, int64, error) {
	q := u.db.Model(&domain.User{})
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.Active != nil {
		q = q.Where("is_active = ?", *f.Active)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	return listPage[domain.User](ctx, q, opts)
}

// Update applies a partial update. Password changes go through SetPassword.
func (u *UserStore) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if email, ok := fields["email"].(string); ok {
		fields["email"] = NormalizeEmail(email)
	}
	return updateByID(ctx, u.db, &domain.User{}, id, fields)
}

func (u *UserStore) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return updateByID(ctx, u.db, &domain.User{}, id, map[string]any{"is_active": active})
}

// SetPassword stores an already encoded password hash.
func (u *UserStore) SetPassword(ctx context.Context, id uuid.UUID, encoded string) error {
	return updateByID(ctx, u.db, &domain.User{}, id, map[string]any{"password": encoded})
}

func (u *UserStore) TouchLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return u.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}

func (u *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, u.db, &domain.User{}, id)
}

func updateByID(ctx context.Context, db *gorm.DB, model any, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	res := db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func deleteByID(ctx context.Context, db *gorm.DB, model any, id uuid.UUID) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
