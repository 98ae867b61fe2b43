package service

import (
	"context"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/dto"
)

// The directory services expose the per-entity list/get/update/delete surface.

type UserService interface {
	Create(ctx context.Context, r dto.CreateUserRequest) (*domain.User, error)
	List(ctx context.Context, q dto.PageQuery, role string, search string) (*dto.Page[domain.User], error)
	Get(ctx context.Context, id domain.UserID) (*domain.User, error)
	Update(ctx context.Context, id domain.UserID, r dto.UpdateUserRequest) (*domain.User, error)
	ToggleStatus(ctx context.Context, id domain.UserID) (*domain.User, error)
	Delete(ctx context.Context, id domain.UserID) error
}

type CollegeService interface {
	List(ctx context.Context, q dto.CollegeListQuery) (*dto.Page[dto.CollegeView], error)
	Get(ctx context.Context, id domain.CollegeID) (*dto.CollegeView, error)
	Update(ctx context.Context, id domain.CollegeID, r dto.UpdateCollegeRequest) (*dto.CollegeView, error)
	Delete(ctx context.Context, id domain.CollegeID) error
	Logo(ctx context.Context, id domain.CollegeID) (*domain.Document, error)
	Document(ctx context.Context, id domain.CollegeID, index int) (*domain.Document, error)
}

type CollegeAdminService interface {
	List(ctx context.Context, q dto.PageQuery, status string) (*dto.Page[dto.CollegeAdminView], error)
	Get(ctx context.Context, id domain.CollegeAdminID) (*dto.CollegeAdminView, error)
	GetByUser(ctx context.Context, userID domain.UserID) (*dto.CollegeAdminView, error)
	Update(ctx context.Context, id domain.CollegeAdminID, r dto.UpdateCollegeAdminRequest) (*dto.CollegeAdminView, error)
	Delete(ctx context.Context, id domain.CollegeAdminID) error
	Proof(ctx context.Context, id domain.CollegeAdminID) (*domain.Document, error)
}

type CounselorService interface {
	Create(ctx context.Context, r dto.CreateCounselorRequest) (*dto.CounselorView, error)
	List(ctx context.Context, q dto.CounselorListQuery) (*dto.Page[dto.CounselorView], error)
	Get(ctx context.Context, id domain.CounselorID) (*dto.CounselorView, error)
	Update(ctx context.Context, id domain.CounselorID, r dto.UpdateCounselorRequest) (*dto.CounselorView, error)
	UpdateStatus(ctx context.Context, id domain.CounselorID, status string) (*dto.CounselorView, error)
	Delete(ctx context.Context, id domain.CounselorID) error
}

type StudentService interface {
	List(ctx context.Context, q dto.StudentListQuery) (*dto.Page[dto.StudentView], error)
	Get(ctx context.Context, id domain.StudentID) (*dto.StudentView, error)
	Update(ctx context.Context, id domain.StudentID, r dto.UpdateStudentRequest) (*dto.StudentView, error)
	Delete(ctx context.Context, id domain.StudentID) error
}
