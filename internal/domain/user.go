package domain

import (
	"time"

	"collegeconnect/internal/credential"

	"gorm.io/gorm"
)

type User struct {
	ID          UserID     `gorm:"type:uuid;primaryKey" db:"id" json:"id"`
	Name        string     `gorm:"type:text" db:"name" json:"name"`
	Email       string     `gorm:"type:citext;not null;uniqueIndex:ux_users_email" db:"email" json:"email"`
	Password    string     `gorm:"type:text;not null" db:"password" json:"-"`
	Role        Role       `gorm:"type:text;not null;index" db:"role" json:"role"`
	IsActive    bool       `gorm:"not null" db:"is_active" json:"isActive"`
	LastLoginAt *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"not null" db:"updated_at" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// BeforeSave hashes a plaintext password. Values that are already encoded
// (for example copied from an approved registration) are stored as is.
func (u *User) BeforeSave(tx *gorm.DB) error {
	return encodePassword(&u.Password)
}

func encodePassword(p *string) error {
	if *p == "" || credential.IsEncoded(*p) {
		return nil
	}
	enc, err := credential.Hash(*p)
	if err != nil {
		return err
	}
	*p = enc
	return nil
}
