package impl

import (
	"context"
	"testing"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/dto"
	"collegeconnect/internal/store"
	"collegeconnect/internal/store/storetest"

	"github.com/google/uuid"
)

type fixture struct {
	ctx       context.Context
	st        *store.Store
	identity  *IdentityServiceImpl
	provision *ProvisionServiceImpl
	peers     *PeerServiceImpl
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := storetest.New(t)
	identity := NewIdentityServiceImpl(st, NewPasswordServiceArgon2id(), nil)
	return &fixture{
		ctx:       context.Background(),
		st:        st,
		identity:  identity,
		provision: NewProvisionServiceImpl(st, identity),
		peers:     NewPeerServiceImpl(st),
	}
}

func (f *fixture) user(t *testing.T, role domain.Role) *domain.User {
	t.Helper()
	u, err := f.identity.CreateUser(f.ctx, string(role)+" user", uuid.NewString()[:8]+"@example.com", "password-123", role)
	if err != nil {
		t.Fatalf("create %s user: %v", role, err)
	}
	return u
}

func (f *fixture) student(t *testing.T, studentID string) *domain.Student {
	t.Helper()
	u := f.user(t, domain.RoleStudent)
	ref, err := f.provision.Provision(f.ctx, u.ID, dto.StudentPayload{Name: "Student " + studentID, StudentID: studentID})
	if err != nil {
		t.Fatalf("provision student %s: %v", studentID, err)
	}
	s, err := f.st.Students().GetByID(f.ctx, *ref.ProfileID)
	if err != nil {
		t.Fatalf("load student: %v", err)
	}
	return s
}

func (f *fixture) peer(t *testing.T) *domain.Peer {
	t.Helper()
	u := f.user(t, domain.RolePeer)
	ref, err := f.provision.Provision(f.ctx, u.ID, dto.PeerPayload{Name: "Peer"})
	if err != nil {
		t.Fatalf("provision peer: %v", err)
	}
	return f.reloadPeer(t, *ref.ProfileID)
}

func (f *fixture) reloadPeer(t *testing.T, id uuid.UUID) *domain.Peer {
	t.Helper()
	p, err := f.st.Peers().GetByID(f.ctx, id)
	if err != nil {
		t.Fatalf("load peer: %v", err)
	}
	return p
}

func (f *fixture) reloadStudent(t *testing.T, id uuid.UUID) *domain.Student {
	t.Helper()
	s, err := f.st.Students().GetByID(f.ctx, id)
	if err != nil {
		t.Fatalf("load student: %v", err)
	}
	return s
}

func (f *fixture) college(t *testing.T, host string) *domain.College {
	t.Helper()
	owner := f.user(t, domain.RoleCollegeAdmin)
	c := &domain.College{UserID: owner.ID, Name: host, Type: domain.CollegePrivate, Domain: host, Status: domain.StatusActive}
	if err := f.st.Colleges().Create(f.ctx, c); err != nil {
		t.Fatalf("create college %s: %v", host, err)
	}
	return c
}

func (f *fixture) counselor(t *testing.T, collegeID uuid.UUID) *domain.Counselor {
	t.Helper()
	u := f.user(t, domain.RoleCounselor)
	ref, err := f.provision.Provision(f.ctx, u.ID, dto.CounselorPayload{Name: "Counselor", CollegeID: collegeID})
	if err != nil {
		t.Fatalf("provision counselor: %v", err)
	}
	c, err := f.st.Counselors().GetByID(f.ctx, *ref.ProfileID)
	if err != nil {
		t.Fatalf("load counselor: %v", err)
	}
	return c
}

// checkPeerLinks fails unless every student's peer link and every peer's
// roster agree in both directions.
func (f *fixture) checkPeerLinks(t *testing.T) {
	t.Helper()
	var students []domain.Student
	if err := f.st.DB.Find(&students).Error; err != nil {
		t.Fatalf("load students: %v", err)
	}
	var peers []domain.Peer
	if err := f.st.DB.Find(&peers).Error; err != nil {
		t.Fatalf("load peers: %v", err)
	}
	for _, s := range students {
		for _, p := range peers {
			linked := s.PeerID != nil && *s.PeerID == p.ID
			if linked != p.HasStudent(s.ID) {
				t.Fatalf("student %s and peer %s disagree: student link=%v, roster=%v", s.ID, p.ID, linked, p.HasStudent(s.ID))
			}
		}
	}
}

func pdf(name string) domain.Document {
	return domain.Document{Filename: name + ".pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4 " + name)}
}

func count(t *testing.T, st *store.Store, model any) int64 {
	t.Helper()
	var n int64
	if err := st.DB.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	return n
}
