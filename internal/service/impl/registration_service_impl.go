package impl

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/dto"
	"collegeconnect/internal/events"
	"collegeconnect/internal/observability/metrics"
	"collegeconnect/internal/observability/middleware"
	"collegeconnect/internal/store"
	"collegeconnect/internal/validation"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Document kinds accepted by RegistrationServiceImpl.Document.
const (
	DocVerified = "verified"
	DocProof    = "proof"
)

type RegistrationServiceImpl struct {
	store *store.Store
	now   func() time.Time
}

func NewRegistrationServiceImpl(st *store.Store) *RegistrationServiceImpl {
	return &RegistrationServiceImpl{store: st, now: func() time.Time { return time.Now().UTC() }}
}

func (s *RegistrationServiceImpl) Submit(ctx context.Context, r dto.SubmitRegistrationRequest) (summary *dto.RegistrationSummary, err error) {
	defer func() {
		metrics.RegistrationsSubmittedTotal.WithLabelValues(metrics.Result(err)).Inc()
	}()
	if err := validation.Struct(r); err != nil {
		return nil, err
	}
	collegeType, err := domain.ParseCollegeType(r.CollegeType)
	if err != nil {
		return nil, err
	}
	email := store.NormalizeEmail(r.Email)
	exists, err := s.store.Registrations().ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, conflict("a registration for %s already exists", email)
	}

	reg := &domain.CollegeRegistration{
		ID:                 uuid.New(),
		CollegeName:        strings.TrimSpace(r.CollegeName),
		CollegeType:        collegeType,
		CollegeDomain:      strings.ToLower(strings.TrimSpace(r.CollegeDomain)),
		ApplicantName:      strings.TrimSpace(r.ApplicantName),
		Designation:        strings.TrimSpace(r.Designation),
		Email:              email,
		Password:           r.Password, // encoded by the model hook
		ContactPhone:       r.ContactPhone,
		Website:            r.Website,
		VerifiedDocument:   r.VerifiedDocument,
		ProofOfDesignation: r.ProofOfDesignation,
		Status:             domain.RegistrationPending,
	}
	if err := s.store.Registrations().Create(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, conflict("a registration for %s already exists", email)
		}
		return nil, err
	}
	events.Emit(ctx, events.RegistrationSubmitted{RegistrationID: reg.ID.String(), CollegeDomain: reg.CollegeDomain, At: s.now()})
	return &dto.RegistrationSummary{ID: reg.ID, Email: reg.Email, Status: reg.Status, CreatedAt: reg.CreatedAt}, nil
}

// Approve marks the registration Approved and then makes sure the user,
// college and college admin it describes exist, creating only what is
// missing. The status change is committed on its own, so a failed
// provisioning step leaves the registration Approved and a later Approve
// finishes the job.
func (s *RegistrationServiceImpl) Approve(ctx context.Context, id domain.RegistrationID) (res *dto.ApprovalResult, err error) {
	defer func() {
		metrics.RegistrationDecisionsTotal.WithLabelValues("approve", metrics.Result(err)).Inc()
	}()
	reg, err := s.store.Registrations().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "registration")
	}
	// An account of another role cannot take the college admin profile.
	// Refuse before the status changes so the application stays open.
	switch u, err := s.store.Users().GetByEmail(ctx, reg.Email); {
	case errors.Is(err, domain.ErrNotFound):
	case err != nil:
		return nil, err
	case u.Role != domain.RoleCollegeAdmin:
		return nil, conflict("%s belongs to a %s account", reg.Email, u.Role)
	}
	if reg.Status != domain.RegistrationApproved {
		if err := s.store.Registrations().SetStatus(ctx, id, domain.RegistrationApproved, "", s.now()); err != nil {
			return nil, err
		}
		reg.Status = domain.RegistrationApproved
	}

	err = s.store.WithTx(ctx, func(tx *store.Store) error {
		out, err := provisionApproval(ctx, tx, reg)
		res = out
		return err
	})
	if err != nil {
		slog.Error("approval provisioning failed", append([]any{"registration_id", id, "error", err}, middleware.LogAttrs(ctx)...)...)
		return nil, err
	}
	events.Emit(ctx, events.RegistrationDecided{
		RegistrationID: id.String(),
		Status:         string(domain.RegistrationApproved),
		CollegeID:      res.CollegeID.String(),
		At:             s.now(),
	})
	return res, nil
}

func provisionApproval(ctx context.Context, tx *store.Store, reg *domain.CollegeRegistration) (*dto.ApprovalResult, error) {
	user, err := tx.Users().GetByEmail(ctx, reg.Email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		user = &domain.User{
			ID:       uuid.New(),
			Name:     reg.ApplicantName,
			Email:    reg.Email,
			Password: reg.Password,
			Role:     domain.RoleCollegeAdmin,
			IsActive: true,
		}
		if err := tx.Users().Create(ctx, user); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	case user.Role != domain.RoleCollegeAdmin:
		return nil, conflict("%s belongs to a %s account", reg.Email, user.Role)
	}

	college, err := tx.Colleges().GetByUserID(ctx, user.ID)
	if errors.Is(err, domain.ErrNotFound) {
		college = &domain.College{
			ID:           uuid.New(),
			UserID:       user.ID,
			Name:         reg.CollegeName,
			Type:         reg.CollegeType,
			Domain:       reg.CollegeDomain,
			ContactEmail: reg.Email,
			ContactPhone: reg.ContactPhone,
			Website:      reg.Website,
			Documents:    datatypes.JSONSlice[domain.Document]{reg.VerifiedDocument},
			Status:       domain.StatusActive,
		}
		if err := tx.Colleges().Create(ctx, college); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, conflict("college domain %s is already registered", reg.CollegeDomain)
			}
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	admin, err := tx.CollegeAdmins().GetByUserID(ctx, user.ID)
	if errors.Is(err, domain.ErrNotFound) {
		admin = &domain.CollegeAdmin{
			ID:                 uuid.New(),
			UserID:             user.ID,
			Name:               reg.ApplicantName,
			Designation:        reg.Designation,
			VerifiedDocument:   reg.VerifiedDocument,
			ProofOfDesignation: reg.ProofOfDesignation,
			Status:             domain.StatusActive,
		}
		if err := tx.CollegeAdmins().Create(ctx, admin); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return &dto.ApprovalResult{
		UserID:         user.ID,
		CollegeID:      college.ID,
		CollegeAdminID: admin.ID,
		RegistrationID: reg.ID,
	}, nil
}

func (s *RegistrationServiceImpl) Reject(ctx context.Context, id domain.RegistrationID, reason string) (*dto.RegistrationView, error) {
	err := s.store.Registrations().SetStatus(ctx, id, domain.RegistrationRejected, strings.TrimSpace(reason), s.now())
	metrics.RegistrationDecisionsTotal.WithLabelValues("reject", metrics.Result(err)).Inc()
	if err != nil {
		return nil, notFoundAs(err, "registration")
	}
	events.Emit(ctx, events.RegistrationDecided{
		RegistrationID: id.String(),
		Status:         string(domain.RegistrationRejected),
		Reason:         strings.TrimSpace(reason),
		At:             s.now(),
	})
	return s.Get(ctx, id)
}

func (s *RegistrationServiceImpl) SetPending(ctx context.Context, id domain.RegistrationID) (*dto.RegistrationView, error) {
	err := s.store.Registrations().SetStatus(ctx, id, domain.RegistrationPending, "", s.now())
	metrics.RegistrationDecisionsTotal.WithLabelValues("reopen", metrics.Result(err)).Inc()
	if err != nil {
		return nil, notFoundAs(err, "registration")
	}
	events.Emit(ctx, events.RegistrationDecided{RegistrationID: id.String(), Status: string(domain.RegistrationPending), At: s.now()})
	return s.Get(ctx, id)
}

func (s *RegistrationServiceImpl) Get(ctx context.Context, id domain.RegistrationID) (*dto.RegistrationView, error) {
	reg, err := s.store.Registrations().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "registration")
	}
	v := dto.NewRegistrationView(*reg)
	return &v, nil
}

func (s *RegistrationServiceImpl) List(ctx context.Context, q dto.RegistrationListQuery) (*dto.Page[dto.RegistrationView], error) {
	var status domain.RegistrationStatus
	if strings.TrimSpace(q.Status) != "" {
		parsed, err := domain.ParseRegistrationStatus(q.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}
	opts := store.ListOptions{Page: q.Page, Limit: q.Limit}.Normalize()
	regs, total, err := s.store.Registrations().List(ctx, status, opts)
	if err != nil {
		return nil, err
	}
	views := make([]dto.RegistrationView, 0, len(regs))
	for _, r := range regs {
		views = append(views, dto.NewRegistrationView(r))
	}
	page := dto.NewPage(views, total, opts.Page, opts.Limit)
	return &page, nil
}

// Document returns one of the two uploaded documents, "verified" or "proof".
func (s *RegistrationServiceImpl) Document(ctx context.Context, id domain.RegistrationID, kind string) (*domain.Document, error) {
	reg, err := s.store.Registrations().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "registration")
	}
	var doc domain.Document
	switch strings.ToLower(kind) {
	case DocVerified, "verifiedcollegedocument":
		doc = reg.VerifiedDocument
	case DocProof, "proofofdesignation":
		doc = reg.ProofOfDesignation
	default:
		return nil, invalid("unknown document kind %q", kind)
	}
	if doc.Empty() {
		return nil, notFound("document")
	}
	return &doc, nil
}
