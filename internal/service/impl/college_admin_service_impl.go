package impl

import (
	"context"
	"strings"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/dto"
	"collegeconnect/internal/store"
)

type CollegeAdminServiceImpl struct {
	store *store.Store
}

func NewCollegeAdminServiceImpl(st *store.Store) *CollegeAdminServiceImpl {
	return &CollegeAdminServiceImpl{store: st}
}

func (s *CollegeAdminServiceImpl) List(ctx context.Context, q dto.PageQuery, status string) (*dto.Page[dto.CollegeAdminView], error) {
	var st domain.ProfileStatus
	if strings.TrimSpace(status) != "" {
		parsed, err := domain.ParseProfileStatus(status)
		if err != nil {
			return nil, err
		}
		st = parsed
	}
	opts := store.ListOptions{Page: q.Page, Limit: q.Limit}.Normalize()
	admins, total, err := s.store.CollegeAdmins().List(ctx, st, opts)
	if err != nil {
		return nil, err
	}
	var set store.RefSet
	for i := range admins {
		set.User(&admins[i].UserID)
	}
	refs, err := s.store.Refs(ctx, set)
	if err != nil {
		return nil, err
	}
	views := make([]dto.CollegeAdminView, 0, len(admins))
	for _, a := range admins {
		views = append(views, collegeAdminView(a, refs))
	}
	page := dto.NewPage(views, total, opts.Page, opts.Limit)
	return &page, nil
}

func (s *CollegeAdminServiceImpl) Get(ctx context.Context, id domain.CollegeAdminID) (*dto.CollegeAdminView, error) {
	a, err := s.store.CollegeAdmins().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "college admin")
	}
	return s.view(ctx, a)
}

func (s *CollegeAdminServiceImpl) GetByUser(ctx context.Context, userID domain.UserID) (*dto.CollegeAdminView, error) {
	a, err := s.store.CollegeAdmins().GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFoundAs(err, "college admin")
	}
	return s.view(ctx, a)
}

func (s *CollegeAdminServiceImpl) Update(ctx context.Context, id domain.CollegeAdminID, r dto.UpdateCollegeAdminRequest) (*dto.CollegeAdminView, error) {
	fields := map[string]any{}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			return nil, invalid("name cannot be empty")
		}
		fields["name"] = name
	}
	if r.Designation != nil {
		d := strings.TrimSpace(*r.Designation)
		if d == "" {
			return nil, invalid("designation cannot be empty")
		}
		fields["designation"] = d
	}
	if r.Status != nil {
		status, err := domain.ParseProfileStatus(*r.Status)
		if err != nil {
			return nil, err
		}
		fields["status"] = status
	}
	if r.ProofOfDesignation != nil && !r.ProofOfDesignation.Empty() {
		fields["proof_doc_filename"] = r.ProofOfDesignation.Filename
		fields["proof_doc_content_type"] = r.ProofOfDesignation.ContentType
		fields["proof_doc_data"] = r.ProofOfDesignation.Data
	}
	if len(fields) > 0 {
		if err := s.store.CollegeAdmins().Update(ctx, id, fields); err != nil {
			return nil, notFoundAs(err, "college admin")
		}
	}
	return s.Get(ctx, id)
}

func (s *CollegeAdminServiceImpl) Delete(ctx context.Context, id domain.CollegeAdminID) error {
	return notFoundAs(s.store.CollegeAdmins().Delete(ctx, id), "college admin")
}

func (s *CollegeAdminServiceImpl) Proof(ctx context.Context, id domain.CollegeAdminID) (*domain.Document, error) {
	a, err := s.store.CollegeAdmins().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "college admin")
	}
	if a.ProofOfDesignation.Empty() {
		return nil, notFound("document")
	}
	return &a.ProofOfDesignation, nil
}

func (s *CollegeAdminServiceImpl) view(ctx context.Context, a *domain.CollegeAdmin) (*dto.CollegeAdminView, error) {
	var set store.RefSet
	set.User(&a.UserID)
	refs, err := s.store.Refs(ctx, set)
	if err != nil {
		return nil, err
	}
	v := collegeAdminView(*a, refs)
	return &v, nil
}

func collegeAdminView(a domain.CollegeAdmin, refs *store.Refs) dto.CollegeAdminView {
	v := dto.NewCollegeAdminView(a)
	if ref, ok := refs.Users[a.UserID]; ok {
		v.User = &ref
	}
	return v
}
