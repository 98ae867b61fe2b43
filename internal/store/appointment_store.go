package store

import (
	"context"
	"time"

	"collegeconnect/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStore struct{ db *gorm.DB }

func (s *Store) Appointments() *AppointmentStore { return &AppointmentStore{db: s.DB} }

type AppointmentFilter struct {
	StudentID   *uuid.UUID
	CounselorID *uuid.UUID
	CollegeID   *uuid.UUID
	Status      domain.AppointmentStatus
	// Date must already be normalized to its day.
	Date *time.Time
}

func (as *AppointmentStore) Create(ctx context.Context, a *domain.Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return translate(as.db.WithContext(ctx).Create(a).Error)
}

func (as *AppointmentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	var a domain.Appointment
	if err := as.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (as *AppointmentStore) List(ctx context.Context, f AppointmentFilter, opts ListOptions) ([]domain.Appointment, int64, error) {
	q := as.db.Model(&domain.Appointment{})
	if f.StudentID != nil {
		q = q.Where("student_id = ?", *f.StudentID)
	}
	if f.CounselorID != nil {
		q = q.Where("counselor_id = ?", *f.CounselorID)
	}
	if f.CollegeID != nil {
		q = q.Where("college_id = ?", *f.CollegeID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Date != nil {
		q = q.Where("date = ?", *f.Date)
	}
	if opts.Order == "" {
		opts.Order = "date ASC, created_at ASC"
	}
	return listPage[domain.Appointment](ctx, q, opts)
}

func (as *AppointmentStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus, notes *string) error {
	fields := map[string]any{"status": status}
	if notes != nil {
		fields["notes"] = *notes
	}
	return updateByID(ctx, as.db, &domain.Appointment{}, id, fields)
}

func (as *AppointmentStore) CountForStudent(ctx context.Context, studentID uuid.UUID) (int64, error) {
	var n int64
	err := as.db.WithContext(ctx).Model(&domain.Appointment{}).Where("student_id = ?", studentID).Count(&n).Error
	return n, err
}
