package impl

import (
	"context"
	"strings"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/dto"
	"collegeconnect/internal/store"
	"collegeconnect/internal/validation"

	"gorm.io/datatypes"
)

type CounselorServiceImpl struct {
	store *store.Store
}

func NewCounselorServiceImpl(st *store.Store) *CounselorServiceImpl {
	return &CounselorServiceImpl{store: st}
}

// Create attaches a counselor profile to an existing counselor user.
func (s *CounselorServiceImpl) Create(ctx context.Context, r dto.CreateCounselorRequest) (*dto.CounselorView, error) {
	if err := validation.Struct(r); err != nil {
		return nil, err
	}
	var counselor *domain.Counselor
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		user, err := tx.Users().GetByID(ctx, r.UserID)
		if err != nil {
			return notFoundAs(err, "user")
		}
		if user.Role != domain.RoleCounselor {
			return invalid("user %s has role %s, not counselor", user.ID, user.Role)
		}
		c, err := createCounselor(ctx, tx, user, r.CounselorPayload)
		counselor = c
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, counselor)
}

func (s *CounselorServiceImpl) List(ctx context.Context, q dto.CounselorListQuery) (*dto.Page[dto.CounselorView], error) {
	f := store.CounselorFilter{CollegeID: q.CollegeID}
	if strings.TrimSpace(q.Status) != "" {
		status, err := domain.ParseProfileStatus(q.Status)
		if err != nil {
			return nil, err
		}
		f.Status = status
	}
	opts := store.ListOptions{Page: q.Page, Limit: q.Limit}.Normalize()
	counselors, total, err := s.store.Counselors().List(ctx, f, opts)
	if err != nil {
		return nil, err
	}
	var set store.RefSet
	for i := range counselors {
		set.User(&counselors[i].UserID)
		set.College(counselors[i].CollegeID)
	}
	refs, err := s.store.Refs(ctx, set)
	if err != nil {
		return nil, err
	}
	views := make([]dto.CounselorView, 0, len(counselors))
	for _, c := range counselors {
		views = append(views, counselorView(c, refs))
	}
	page := dto.NewPage(views, total, opts.Page, opts.Limit)
	return &page, nil
}

func (s *CounselorServiceImpl) Get(ctx context.Context, id domain.CounselorID) (*dto.CounselorView, error) {
	c, err := s.store.Counselors().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "counselor")
	}
	return s.view(ctx, c)
}

func (s *CounselorServiceImpl) Update(ctx context.Context, id domain.CounselorID, r dto.UpdateCounselorRequest) (*dto.CounselorView, error) {
	fields := map[string]any{}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			return nil, invalid("name cannot be empty")
		}
		fields["name"] = name
	}
	if r.Qualification != nil {
		fields["qualification"] = strings.TrimSpace(*r.Qualification)
	}
	if r.Specialization != nil {
		fields["specialization"] = datatypes.JSONSlice[string](cleanList(*r.Specialization))
	}
	if r.ContactEmail != nil {
		fields["contact_email"] = store.NormalizeEmail(*r.ContactEmail)
	}
	if r.ContactPhone != nil {
		fields["contact_phone"] = strings.TrimSpace(*r.ContactPhone)
	}
	if len(fields) > 0 {
		if err := s.store.Counselors().Update(ctx, id, fields); err != nil {
			return nil, notFoundAs(err, "counselor")
		}
	}
	return s.Get(ctx, id)
}

func (s *CounselorServiceImpl) UpdateStatus(ctx context.Context, id domain.CounselorID, status string) (*dto.CounselorView, error) {
	st, err := domain.ParseProfileStatus(status)
	if err != nil {
		return nil, err
	}
	if err := s.store.Counselors().Update(ctx, id, map[string]any{"status": st}); err != nil {
		return nil, notFoundAs(err, "counselor")
	}
	return s.Get(ctx, id)
}

func (s *CounselorServiceImpl) Delete(ctx context.Context, id domain.CounselorID) error {
	return notFoundAs(s.store.Counselors().Delete(ctx, id), "counselor")
}

func (s *CounselorServiceImpl) view(ctx context.Context, c *domain.Counselor) (*dto.CounselorView, error) {
	var set store.RefSet
	set.User(&c.UserID)
	set.College(c.CollegeID)
	refs, err := s.store.Refs(ctx, set)
	if err != nil {
		return nil, err
	}
	v := counselorView(*c, refs)
	return &v, nil
}

func counselorView(c domain.Counselor, refs *store.Refs) dto.CounselorView {
	v := dto.CounselorView{Counselor: c}
	if ref, ok := refs.Colleges[c.CollegeID]; ok {
		v.College = &ref
	}
	if ref, ok := refs.Users[c.UserID]; ok {
		v.User = &ref
	}
	return v
}
