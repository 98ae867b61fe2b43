package impl

import (
	"errors"
	"slices"
	"testing"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/dto"

	"github.com/google/uuid"
)

func TestPeerAssignReplacesRoster(t *testing.T) {
	f := newFixture(t)
	p := f.peer(t)
	s1 := f.student(t, "S1")
	s2 := f.student(t, "S2")

	v, err := f.peers.Assign(f.ctx, p.ID, []uuid.UUID{s1.ID, s2.ID})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if !slices.Equal([]uuid.UUID(v.Students), []uuid.UUID{s1.ID, s2.ID}) || len(v.Roster) != 2 {
		t.Fatalf("unexpected roster: %+v", v.Students)
	}
	for _, s := range []*domain.Student{s1, s2} {
		got := f.reloadStudent(t, s.ID)
		if got.PeerID == nil || *got.PeerID != p.ID {
			t.Fatalf("student %s should point at peer %s", s.StudentID, p.ID)
		}
	}
	f.checkPeerLinks(t)

	if _, err := f.peers.Assign(f.ctx, p.ID, []uuid.UUID{s2.ID}); err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if got := f.reloadStudent(t, s1.ID); got.PeerID != nil {
		t.Fatalf("S1 should be unassigned, has peer %v", *got.PeerID)
	}
	if got := f.reloadStudent(t, s2.ID); got.PeerID == nil || *got.PeerID != p.ID {
		t.Fatalf("S2 should stay assigned")
	}
	if got := f.reloadPeer(t, p.ID); !slices.Equal([]uuid.UUID(got.Students), []uuid.UUID{s2.ID}) {
		t.Fatalf("roster should be [S2], got %v", got.Students)
	}
	f.checkPeerLinks(t)
}

func TestPeerAssignEmptyClearsEveryone(t *testing.T) {
	f := newFixture(t)
	p := f.peer(t)
	s1 := f.student(t, "S1")
	if _, err := f.peers.Assign(f.ctx, p.ID, []uuid.UUID{s1.ID}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := f.peers.Assign(f.ctx, p.ID, nil); err != nil {
		t.Fatalf("assign empty: %v", err)
	}
	if got := f.reloadPeer(t, p.ID); len(got.Students) != 0 {
		t.Fatalf("roster should be empty, got %v", got.Students)
	}
	if got := f.reloadStudent(t, s1.ID); got.PeerID != nil {
		t.Fatalf("student should be unassigned")
	}
	f.checkPeerLinks(t)
}

func TestPeerAssignDropsUnknownIDs(t *testing.T) {
	f := newFixture(t)
	p := f.peer(t)
	s1 := f.student(t, "S1")

	v, err := f.peers.Assign(f.ctx, p.ID, []uuid.UUID{uuid.New(), s1.ID, s1.ID, uuid.New()})
	if err != nil {
		t.Fatalf("unknown ids must not fail the call: %v", err)
	}
	if !slices.Equal([]uuid.UUID(v.Students), []uuid.UUID{s1.ID}) {
		t.Fatalf("expected only the known student, got %v", v.Students)
	}
	f.checkPeerLinks(t)
}

func TestPeerAssignMovesStudentBetweenPeers(t *testing.T) {
	f := newFixture(t)
	a := f.peer(t)
	b := f.peer(t)
	s1 := f.student(t, "S1")
	s2 := f.student(t, "S2")

	if _, err := f.peers.Assign(f.ctx, a.ID, []uuid.UUID{s1.ID, s2.ID}); err != nil {
		t.Fatalf("assign a: %v", err)
	}
	if _, err := f.peers.Assign(f.ctx, b.ID, []uuid.UUID{s2.ID}); err != nil {
		t.Fatalf("assign b: %v", err)
	}
	if got := f.reloadPeer(t, a.ID); !slices.Equal([]uuid.UUID(got.Students), []uuid.UUID{s1.ID}) {
		t.Fatalf("peer a should keep only S1, got %v", got.Students)
	}
	if got := f.reloadStudent(t, s2.ID); got.PeerID == nil || *got.PeerID != b.ID {
		t.Fatalf("S2 should now belong to peer b")
	}
	f.checkPeerLinks(t)
}

func TestPeerAssignUnknownPeer(t *testing.T) {
	f := newFixture(t)
	if _, err := f.peers.Assign(f.ctx, uuid.New(), nil); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPeerCreateWithInitialRoster(t *testing.T) {
	f := newFixture(t)
	s1 := f.student(t, "S1")
	u := f.user(t, domain.RolePeer)

	v, err := f.peers.Create(f.ctx, dto.CreatePeerRequest{UserID: u.ID, PeerPayload: dto.PeerPayload{Name: "Pat", StudentIDs: []uuid.UUID{s1.ID, uuid.New()}}})
	if err != nil {
		t.Fatalf("create peer: %v", err)
	}
	if !slices.Equal([]uuid.UUID(v.Students), []uuid.UUID{s1.ID}) || v.User == nil || v.User.ID != u.ID {
		t.Fatalf("unexpected peer view: %+v", v)
	}
	f.checkPeerLinks(t)

	if _, err := f.peers.Create(f.ctx, dto.CreatePeerRequest{UserID: u.ID, PeerPayload: dto.PeerPayload{Name: "Pat"}}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict for a second peer profile, got %v", err)
	}
	if _, err := f.peers.Create(f.ctx, dto.CreatePeerRequest{UserID: uuid.New(), PeerPayload: dto.PeerPayload{Name: "Ghost"}}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unknown user, got %v", err)
	}
}

func TestPeerDeleteUnlinksStudents(t *testing.T) {
	f := newFixture(t)
	p := f.peer(t)
	s1 := f.student(t, "S1")
	if _, err := f.peers.Assign(f.ctx, p.ID, []uuid.UUID{s1.ID}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := f.peers.Delete(f.ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := f.reloadStudent(t, s1.ID); got.PeerID != nil {
		t.Fatalf("student still points at deleted peer")
	}
	if err := f.peers.Delete(f.ctx, p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestPeerListResolvesRoster(t *testing.T) {
	f := newFixture(t)
	p := f.peer(t)
	s1 := f.student(t, "S1")
	if _, err := f.peers.Assign(f.ctx, p.ID, []uuid.UUID{s1.ID}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	page, err := f.peers.List(f.ctx, dto.PageQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if roster := page.Items[0].Roster; len(roster) != 1 || roster[0].StudentID != "S1" {
		t.Fatalf("roster not resolved: %+v", roster)
	}
}
