package impl

import (
	"context"
	"errors"
	"slices"
	"time"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/dto"
	"collegeconnect/internal/events"
	"collegeconnect/internal/observability/metrics"
	"collegeconnect/internal/store"
	"collegeconnect/internal/validation"

	"github.com/google/uuid"
)

type PeerServiceImpl struct {
	store *store.Store
}

func NewPeerServiceImpl(st *store.Store) *PeerServiceImpl {
	return &PeerServiceImpl{store: st}
}

func (p *PeerServiceImpl) Create(ctx context.Context, r dto.CreatePeerRequest) (*dto.PeerView, error) {
	if err := validation.Struct(r); err != nil {
		return nil, err
	}
	var peer *domain.Peer
	err := p.store.WithTx(ctx, func(tx *store.Store) error {
		user, err := tx.Users().GetByID(ctx, r.UserID)
		if err != nil {
			return notFoundAs(err, "user")
		}
		created, err := createPeer(ctx, tx, user, r.PeerPayload)
		peer = created
		return err
	})
	if err != nil {
		return nil, err
	}
	return p.view(ctx, peer)
}

// Assign replaces the peer's roster with the students in ids that exist.
func (p *PeerServiceImpl) Assign(ctx context.Context, peerID domain.PeerID, studentIDs []domain.StudentID) (*dto.PeerView, error) {
	var peer *domain.Peer
	err := p.store.WithTx(ctx, func(tx *store.Store) error {
		found, err := tx.Peers().GetByID(ctx, peerID)
		if err != nil {
			return notFoundAs(err, "peer")
		}
		if err := assignRoster(ctx, tx, found, studentIDs); err != nil {
			return err
		}
		peer = found
		return nil
	})
	metrics.PeerAssignmentsTotal.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		return nil, err
	}
	events.Emit(ctx, events.PeerRosterReplaced{PeerID: peer.ID.String(), Students: len(peer.Students), At: time.Now().UTC()})
	return p.view(ctx, peer)
}

func (p *PeerServiceImpl) Get(ctx context.Context, id domain.PeerID) (*dto.PeerView, error) {
	peer, err := p.store.Peers().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "peer")
	}
	return p.view(ctx, peer)
}

func (p *PeerServiceImpl) List(ctx context.Context, q dto.PageQuery) (*dto.Page[dto.PeerView], error) {
	opts := store.ListOptions{Page: q.Page, Limit: q.Limit}.Normalize()
	peers, total, err := p.store.Peers().List(ctx, opts)
	if err != nil {
		return nil, err
	}
	var set store.RefSet
	for i := range peers {
		set.User(&peers[i].UserID)
		set.Students = append(set.Students, peers[i].Students...)
	}
	refs, err := p.store.Refs(ctx, set)
	if err != nil {
		return nil, err
	}
	views := make([]dto.PeerView, 0, len(peers))
	for _, peer := range peers {
		views = append(views, peerView(peer, refs))
	}
	page := dto.NewPage(views, total, opts.Page, opts.Limit)
	return &page, nil
}

// Delete removes the peer and unlinks its students.
func (p *PeerServiceImpl) Delete(ctx context.Context, id domain.PeerID) error {
	return p.store.WithTx(ctx, func(tx *store.Store) error {
		if _, err := tx.Students().ClearPeer(ctx, id); err != nil {
			return err
		}
		return notFoundAs(tx.Peers().Delete(ctx, id), "peer")
	})
}

func (p *PeerServiceImpl) view(ctx context.Context, peer *domain.Peer) (*dto.PeerView, error) {
	var set store.RefSet
	set.User(&peer.UserID)
	set.Students = append(set.Students, peer.Students...)
	refs, err := p.store.Refs(ctx, set)
	if err != nil {
		return nil, err
	}
	v := peerView(*peer, refs)
	return &v, nil
}

func peerView(peer domain.Peer, refs *store.Refs) dto.PeerView {
	v := dto.PeerView{Peer: peer, Roster: make([]domain.StudentRef, 0, len(peer.Students))}
	for _, id := range peer.Students {
		if ref, ok := refs.Students[id]; ok {
			v.Roster = append(v.Roster, ref)
		}
	}
	if ref, ok := refs.Users[peer.UserID]; ok {
		v.User = &ref
	}
	return v
}

// createPeer stores a peer profile for user and hands the initial roster to
// assignRoster once the peer row exists. tx must be a transaction store.
func createPeer(ctx context.Context, tx *store.Store, user *domain.User, payload dto.PeerPayload) (*domain.Peer, error) {
	if user.Role != domain.RolePeer {
		return nil, invalid("user %s has role %s, not peer", user.ID, user.Role)
	}
	if _, err := tx.Peers().GetByUserID(ctx, user.ID); err == nil {
		return nil, conflict("user %s already has a peer profile", user.ID)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	peer := &domain.Peer{ID: uuid.New(), UserID: user.ID, Name: payload.Name}
	if err := tx.Peers().Create(ctx, peer); err != nil {
		return nil, err
	}
	if len(payload.StudentIDs) > 0 {
		if err := assignRoster(ctx, tx, peer, payload.StudentIDs); err != nil {
			return nil, err
		}
	}
	return peer, nil
}

// assignRoster makes ids (minus unknown students) the peer's whole roster.
// Students dropped from the roster are unlinked before anyone is linked, and
// students taken from another peer leave that peer's roster as well. On
// return peer.Students holds the new roster.
func assignRoster(ctx context.Context, tx *store.Store, peer *domain.Peer, ids []domain.StudentID) error {
	students, err := tx.Students().GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	// keep the caller's order, drop duplicates and unknown ids
	known := make(map[uuid.UUID]domain.Student, len(students))
	for _, s := range students {
		known[s.ID] = s
	}
	resolved := make([]uuid.UUID, 0, len(students))
	for _, id := range ids {
		if _, ok := known[id]; ok && !slices.Contains(resolved, id) {
			resolved = append(resolved, id)
		}
	}

	var dropped []uuid.UUID
	for _, id := range peer.Students {
		if !slices.Contains(resolved, id) {
			dropped = append(dropped, id)
		}
	}
	if err := tx.Students().SetPeer(ctx, dropped, nil); err != nil {
		return err
	}

	// detach from any other peer before linking here
	others := map[uuid.UUID][]uuid.UUID{}
	for _, id := range resolved {
		s := known[id]
		if s.PeerID != nil && *s.PeerID != peer.ID {
			others[*s.PeerID] = append(others[*s.PeerID], id)
		}
	}
	for otherID, moved := range others {
		other, err := tx.Peers().GetByID(ctx, otherID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		remaining := slices.DeleteFunc(slices.Clone([]uuid.UUID(other.Students)), func(id uuid.UUID) bool {
			return slices.Contains(moved, id)
		})
		if err := tx.Peers().SetRoster(ctx, other.ID, remaining); err != nil {
			return err
		}
	}

	peerID := peer.ID
	if err := tx.Students().SetPeer(ctx, resolved, &peerID); err != nil {
		return err
	}
	if err := tx.Peers().SetRoster(ctx, peer.ID, resolved); err != nil {
		return err
	}
	peer.Students = resolved
	return nil
}

// notFoundAs names the missing record in a not-found error and passes other
// errors through.
func notFoundAs(err error, what string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(what)
	}
	return err
}
