package service

import (
	"context"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/dto"
)

type AppointmentService interface {
	Schedule(ctx context.Context, r dto.ScheduleAppointmentRequest, actor *domain.UserID) (*dto.AppointmentView, error)
	UpdateStatus(ctx context.Context, id domain.AppointmentID, r dto.UpdateAppointmentStatusRequest) (*dto.AppointmentView, error)
	Get(ctx context.Context, id domain.AppointmentID) (*dto.AppointmentView, error)
	List(ctx context.Context, q dto.AppointmentListQuery) (*dto.Page[dto.AppointmentView], error)
}
