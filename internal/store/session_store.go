package store

import (
	"context"
	"time"

	"collegeconnect/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionStore struct{ db *gorm.DB }

func (s *Store) Sessions() *SessionStore { return &SessionStore{s.DB} }

func (ss *SessionStore) Create(ctx context.Context, s *domain.Session) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.RefreshID == uuid.Nil {
		s.RefreshID = uuid.New()
	}
	return ss.db.WithContext(ctx).Create(s).Error
}

func (ss *SessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	var s domain.Session
	if err := ss.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (ss *SessionStore) GetByRefreshID(ctx context.Context, rid uuid.UUID) (*domain.Session, error) {
	var s domain.Session
	if err := ss.db.WithContext(ctx).First(&s, "refresh_id = ?", rid).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

// Rotate swaps the refresh id only if the caller still holds the current one,
// so two concurrent refreshes with the same token cannot both succeed.
func (ss *SessionStore) Rotate(ctx context.Context, id, oldRID, newRID uuid.UUID, expiresAt time.Time, ip, ua string) error {
	res := ss.db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("id = ? AND refresh_id = ? AND revoked_at IS NULL", id, oldRID).
		Updates(map[string]any{
			"refresh_id": newRID,
			"expires_at": expiresAt,
			"ip":         ip,
			"user_agent": ua,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (ss *SessionStore) Revoke(ctx context.Context, id uuid.UUID, at time.Time) error {
	return ss.db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", at).Error
}

func (ss *SessionStore) RevokeAllForUser(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error) {
	tx := ss.db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", at)
	return tx.RowsAffected, tx.Error
}

func (ss *SessionStore) DeleteForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	tx := ss.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.Session{})
	return tx.RowsAffected, tx.Error
}
