package impl

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/dto"
	"collegeconnect/internal/observability/metrics"
	"collegeconnect/internal/observability/middleware"
	"collegeconnect/internal/service"
	"collegeconnect/internal/store"
	"collegeconnect/internal/validation"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// compensateTimeout bounds the user delete that undoes a failed
// registration. It runs detached from the request context.
const compensateTimeout = 5 * time.Second

type ProvisionServiceImpl struct {
	store    *store.Store
	identity service.IdentityService
}

func NewProvisionServiceImpl(st *store.Store, identity service.IdentityService) *ProvisionServiceImpl {
	return &ProvisionServiceImpl{store: st, identity: identity}
}

// Provision creates the profile described by payload for an existing user.
// The payload variant must match the user's role.
func (p *ProvisionServiceImpl) Provision(ctx context.Context, userID domain.UserID, payload dto.ProfilePayload) (ref *dto.ProfileRef, err error) {
	if payload == nil {
		return nil, invalid("profile payload is required")
	}
	role := payload.Role()
	defer func() {
		metrics.ProfilesProvisionedTotal.WithLabelValues(string(role), metrics.Result(err)).Inc()
	}()
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}

	err = p.store.WithTx(ctx, func(tx *store.Store) error {
		user, err := tx.Users().GetByID(ctx, userID)
		if err != nil {
			return notFoundAs(err, "user")
		}
		if user.Role != role {
			return invalid("user %s has role %s, cannot hold a %s profile", user.ID, user.Role, role)
		}
		id, err := provisionProfile(ctx, tx, user, payload)
		if err != nil {
			return err
		}
		ref = &dto.ProfileRef{Role: role, ProfileID: id}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Info("profile provisioned", append([]any{"user_id", userID, "role", role}, middleware.LogAttrs(ctx)...)...)
	return ref, nil
}

// RegisterWithProfile creates the user and then its profile. If the profile
// cannot be created the new user is deleted again before the error returns.
func (p *ProvisionServiceImpl) RegisterWithProfile(ctx context.Context, r dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if !r.Role.Valid() {
		return nil, invalid("unknown role %q", r.Role)
	}
	payload := r.Profile
	if payload == nil && r.Role == domain.RoleAdmin {
		payload = dto.AdminPayload{}
	}
	if payload == nil || payload.Role() != r.Role {
		return nil, invalid("profile does not match role %s", r.Role)
	}
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(r.Name)
	if name == "" {
		name = profileName(payload)
	}
	user, err := p.identity.CreateUser(ctx, name, r.Email, r.Password, r.Role)
	if err != nil {
		return nil, err
	}

	ref, err := p.Provision(ctx, user.ID, payload)
	if err != nil {
		return nil, p.compensate(ctx, user.ID, err)
	}
	return &dto.RegisterResponse{UserID: user.ID.String(), Role: r.Role, ProfileID: ref.ProfileID}, nil
}

func (p *ProvisionServiceImpl) compensate(ctx context.Context, userID domain.UserID, cause error) error {
	metrics.CompensatingDeletesTotal.Inc()
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensateTimeout)
	defer cancel()
	if err := p.store.Users().Delete(dctx, userID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		slog.Error("compensating delete failed", append([]any{"user_id", userID, "error", err}, middleware.LogAttrs(ctx)...)...)
		return errors.Join(cause, err)
	}
	slog.Warn("removed user after failed provisioning", append([]any{"user_id", userID, "error", cause}, middleware.LogAttrs(ctx)...)...)
	return cause
}

// provisionProfile dispatches on the payload variant. tx must be a
// transaction store.
func provisionProfile(ctx context.Context, tx *store.Store, user *domain.User, payload dto.ProfilePayload) (*uuid.UUID, error) {
	switch v := payload.(type) {
	case dto.StudentPayload:
		s, err := createStudent(ctx, tx, user, v)
		if err != nil {
			return nil, err
		}
		return &s.ID, nil
	case dto.CounselorPayload:
		c, err := createCounselor(ctx, tx, user, v)
		if err != nil {
			return nil, err
		}
		return &c.ID, nil
	case dto.CollegeAdminPayload:
		a, err := createCollegeAdmin(ctx, tx, user, v)
		if err != nil {
			return nil, err
		}
		return &a.ID, nil
	case dto.PeerPayload:
		peer, err := createPeer(ctx, tx, user, v)
		if err != nil {
			return nil, err
		}
		return &peer.ID, nil
	case dto.AdminPayload:
		return nil, nil
	default:
		return nil, invalid("unsupported profile %T", payload)
	}
}

func createStudent(ctx context.Context, tx *store.Store, user *domain.User, v dto.StudentPayload) (*domain.Student, error) {
	taken, err := tx.Students().StudentIDTaken(ctx, v.StudentID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, conflict("student id %s is already in use", strings.TrimSpace(v.StudentID))
	}
	if _, err := tx.Students().GetByUserID(ctx, user.ID); err == nil {
		return nil, conflict("user %s already has a student profile", user.ID)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	s := &domain.Student{ID: uuid.New(), UserID: user.ID, Name: strings.TrimSpace(v.Name), StudentID: v.StudentID, PeerID: v.PeerID}
	if err := tx.Students().Create(ctx, s); err != nil {
		return nil, studentConflict(err)
	}
	if v.PeerID == nil {
		return s, nil
	}
	// The peer link is taken as given; when the peer exists its roster
	// gains the student too.
	peer, err := tx.Peers().GetByID(ctx, *v.PeerID)
	if errors.Is(err, domain.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	roster := append([]uuid.UUID(peer.Students), s.ID)
	if err := tx.Peers().SetRoster(ctx, peer.ID, roster); err != nil {
		return nil, err
	}
	return s, nil
}

func createCounselor(ctx context.Context, tx *store.Store, user *domain.User, v dto.CounselorPayload) (*domain.Counselor, error) {
	ok, err := tx.Colleges().Exists(ctx, v.CollegeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound("college")
	}
	dup, err := tx.Counselors().ExistsForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, conflict("user %s already has a counselor profile", user.ID)
	}

	c := &domain.Counselor{
		ID:             uuid.New(),
		UserID:         user.ID,
		Name:           strings.TrimSpace(v.Name),
		CollegeID:      v.CollegeID,
		Qualification:  v.Qualification,
		Specialization: datatypes.JSONSlice[string](cleanList(v.Specialization)),
		ContactEmail:   store.NormalizeEmail(v.ContactEmail),
		ContactPhone:   v.ContactPhone,
		Status:         domain.StatusActive,
	}
	if err := tx.Counselors().Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func createCollegeAdmin(ctx context.Context, tx *store.Store, user *domain.User, v dto.CollegeAdminPayload) (*domain.CollegeAdmin, error) {
	if _, err := tx.CollegeAdmins().GetByUserID(ctx, user.ID); err == nil {
		return nil, conflict("user %s already has a college admin profile", user.ID)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	a := &domain.CollegeAdmin{
		ID:                 uuid.New(),
		UserID:             user.ID,
		Name:               strings.TrimSpace(v.Name),
		Designation:        strings.TrimSpace(v.Designation),
		VerifiedDocument:   v.VerifiedCollegeDocument,
		ProofOfDesignation: v.ProofOfDesignation,
		Status:             domain.StatusActive,
	}
	if err := tx.CollegeAdmins().Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// studentConflict names the column behind a unique violation when the
// pre-check lost a race.
func studentConflict(err error) error {
	if errors.Is(err, domain.ErrConflict) {
		return conflict("student id or user already taken")
	}
	return err
}

func profileName(payload dto.ProfilePayload) string {
	switch v := payload.(type) {
	case dto.StudentPayload:
		return v.Name
	case dto.CounselorPayload:
		return v.Name
	case dto.CollegeAdminPayload:
		return v.Name
	case dto.PeerPayload:
		return v.Name
	}
	return ""
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
