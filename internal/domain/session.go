package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session backs one refresh token. RefreshID is rotated on every refresh so
// a replayed refresh token no longer matches.
type Session struct {
	ID        SessionID  `gorm:"type:uuid;primaryKey" db:"id"`
	UserID    UserID     `gorm:"type:uuid;not null;index" db:"user_id"`
	RefreshID uuid.UUID  `gorm:"type:uuid;uniqueIndex:ux_sessions_refreshid" db:"refresh_id"`
	ExpiresAt time.Time  `gorm:"not null" db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
	CreatedAt time.Time  `gorm:"not null" db:"created_at"`
	IP        string     `gorm:"type:text" db:"ip"`
	UserAgent string     `gorm:"type:text" db:"user_agent"`
}

func (Session) TableName() string { return "sessions" }

func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
