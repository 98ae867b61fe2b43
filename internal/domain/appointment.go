package domain

import "time"

// Appointment dates are stored at day granularity, see NormalizeDay.
type Appointment struct {
	ID          AppointmentID     `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID   StudentID         `gorm:"type:uuid;not null;index" json:"student"`
	CounselorID CounselorID       `gorm:"type:uuid;not null;index" json:"counselor"`
	CollegeID   CollegeID         `gorm:"type:uuid;not null;index" json:"college"`
	Date        time.Time         `gorm:"not null;index" json:"date"`
	Status      AppointmentStatus `gorm:"type:text;not null;index" json:"status"`
	ScheduledBy *UserID           `gorm:"type:uuid" json:"scheduledBy,omitempty"`
	Notes       string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time         `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time         `gorm:"not null" json:"updatedAt"`
}

func (Appointment) TableName() string { return "appointments" }
