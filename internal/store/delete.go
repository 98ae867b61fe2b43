package store

import (
	"context"
	"fmt"

	"collegeconnect/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeleteUser removes a user and its sessions. It refuses with a conflict
// while any profile still references the user, and returns the row counts
// it looked at, keyed by table label.
func (s *Store) DeleteUser(ctx context.Context, userID uuid.UUID) (map[string]int64, error) {
	counted := map[string]int64{}

	err := s.WithTx(ctx, func(tx *Store) error {
		db := tx.DB.WithContext(ctx)

		count := func(label string, query *gorm.DB) error {
			var total int64
			if err := query.Count(&total).Error; err != nil {
				return err
			}
			counted[label] = total
			return nil
		}

		if err := count("users", db.Model(&domain.User{}).Where("id = ?", userID)); err != nil {
			return err
		}
		if counted["users"] == 0 {
			return ErrRecordNotFound
		}
		profiles := []struct {
			label string
			model any
		}{
			{"students", &domain.Student{}},
			{"counselors", &domain.Counselor{}},
			{"collegeAdmins", &domain.CollegeAdmin{}},
			{"colleges", &domain.College{}},
			{"peers", &domain.Peer{}},
		}
		for _, p := range profiles {
			if err := count(p.label, db.Model(p.model).Where("user_id = ?", userID)); err != nil {
				return err
			}
			if counted[p.label] > 0 {
				return fmt.Errorf("%w: user still owns %s", domain.ErrConflict, p.label)
			}
		}
		if err := count("sessions", db.Model(&domain.Session{}).Where("user_id = ?", userID)); err != nil {
			return err
		}

		if err := db.Where("user_id = ?", userID).Delete(&domain.Session{}).Error; err != nil {
			return err
		}
		return db.Where("id = ?", userID).Delete(&domain.User{}).Error
	})

	return counted, err
}
