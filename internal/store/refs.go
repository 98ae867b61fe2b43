package store

import (
	"context"

	"collegeconnect/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RefSet collects ids to resolve in a single Refs call.
type RefSet struct {
	Users      []uuid.UUID
	Colleges   []uuid.UUID
	Students   []uuid.UUID
	Counselors []uuid.UUID
	Peers      []uuid.UUID
}

func (r *RefSet) User(id *uuid.UUID) {
	if id != nil && *id != uuid.Nil {
		r.Users = append(r.Users, *id)
	}
}

func (r *RefSet) College(id uuid.UUID)   { r.Colleges = append(r.Colleges, id) }
func (r *RefSet) Student(id uuid.UUID)   { r.Students = append(r.Students, id) }
func (r *RefSet) Counselor(id uuid.UUID) { r.Counselors = append(r.Counselors, id) }

func (r *RefSet) Peer(id *uuid.UUID) {
	if id != nil && *id != uuid.Nil {
		r.Peers = append(r.Peers, *id)
	}
}

// Refs holds summaries keyed by id. Missing keys mean the referenced row
// no longer exists.
type Refs struct {
	Users      map[uuid.UUID]domain.UserRef
	Colleges   map[uuid.UUID]domain.CollegeRef
	Students   map[uuid.UUID]domain.StudentRef
	Counselors map[uuid.UUID]domain.CounselorRef
	Peers      map[uuid.UUID]domain.PeerRef
}

// Refs resolves every id in set with one query per referenced table.
func (s *Store) Refs(ctx context.Context, set RefSet) (*Refs, error) {
	out := &Refs{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		m, err := loadRefs(ctx, s, &domain.User{}, "id, name, email, role", set.Users, func(r domain.UserRef) uuid.UUID { return r.ID })
		out.Users = m
		return err
	})
	g.Go(func() error {
		m, err := loadRefs(ctx, s, &domain.College{}, "id, name, domain", set.Colleges, func(r domain.CollegeRef) uuid.UUID { return r.ID })
		out.Colleges = m
		return err
	})
	g.Go(func() error {
		m, err := loadRefs(ctx, s, &domain.Student{}, "id, name, student_id", set.Students, func(r domain.StudentRef) uuid.UUID { return r.ID })
		out.Students = m
		return err
	})
	g.Go(func() error {
		m, err := loadRefs(ctx, s, &domain.Counselor{}, "id, name, college_id", set.Counselors, func(r domain.CounselorRef) uuid.UUID { return r.ID })
		out.Counselors = m
		return err
	})
	g.Go(func() error {
		m, err := loadRefs(ctx, s, &domain.Peer{}, "id, name", set.Peers, func(r domain.PeerRef) uuid.UUID { return r.ID })
		out.Peers = m
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func loadRefs[T any](ctx context.Context, s *Store, model any, columns string, ids []uuid.UUID, key func(T) uuid.UUID) (map[uuid.UUID]T, error) {
	out := make(map[uuid.UUID]T, len(ids))
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}
	var rows []T
	err := s.DB.WithContext(ctx).Model(model).Select(columns).Where("id IN ?", ids).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[key(r)] = r
	}
	return out, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
