package dto

import (
	"collegeconnect/internal/domain"

	"github.com/google/uuid"
)

type ScheduleAppointmentRequest struct {
	StudentID   string `json:"student"`
	CounselorID string `json:"counselor"`
	CollegeID   string `json:"college"`
	Date        string `json:"date"`
	Notes       string `json:"notes,omitempty"`
}

type UpdateAppointmentStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

type AppointmentListQuery struct {
	PageQuery
	StudentID   *uuid.UUID
	CounselorID *uuid.UUID
	CollegeID   *uuid.UUID
	Status      string
	Date        string
}

type AppointmentView struct {
	domain.Appointment
	Student   *domain.StudentRef   `json:"studentInfo,omitempty"`
	Counselor *domain.CounselorRef `json:"counselorInfo,omitempty"`
	College   *domain.CollegeRef   `json:"collegeInfo,omitempty"`
	Scheduler *domain.UserRef      `json:"scheduledByInfo,omitempty"`
}
