package impl

import (
	"context"
	"errors"
	"slices"
	"strings"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/dto"
	"collegeconnect/internal/store"

	"github.com/google/uuid"
)

type StudentServiceImpl struct {
	store *store.Store
}

func NewStudentServiceImpl(st *store.Store) *StudentServiceImpl {
	return &StudentServiceImpl{store: st}
}

func (s *StudentServiceImpl) List(ctx context.Context, q dto.StudentListQuery) (*dto.Page[dto.StudentView], error) {
	opts := store.ListOptions{Page: q.Page, Limit: q.Limit}.Normalize()
	students, total, err := s.store.Students().List(ctx, store.StudentFilter{PeerID: q.PeerID, Search: q.Search}, opts)
	if err != nil {
		return nil, err
	}
	var set store.RefSet
	for i := range students {
		set.User(&students[i].UserID)
		set.Peer(students[i].PeerID)
	}
	refs, err := s.store.Refs(ctx, set)
	if err != nil {
		return nil, err
	}
	views := make([]dto.StudentView, 0, len(students))
	for _, st := range students {
		views = append(views, studentView(st, refs))
	}
	page := dto.NewPage(views, total, opts.Page, opts.Limit)
	return &page, nil
}

func (s *StudentServiceImpl) Get(ctx context.Context, id domain.StudentID) (*dto.StudentView, error) {
	st, err := s.store.Students().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "student")
	}
	var set store.RefSet
	set.User(&st.UserID)
	set.Peer(st.PeerID)
	refs, err := s.store.Refs(ctx, set)
	if err != nil {
		return nil, err
	}
	v := studentView(*st, refs)
	return &v, nil
}

func (s *StudentServiceImpl) Update(ctx context.Context, id domain.StudentID, r dto.UpdateStudentRequest) (*dto.StudentView, error) {
	fields := map[string]any{}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			return nil, invalid("name cannot be empty")
		}
		fields["name"] = name
	}
	if r.StudentID != nil {
		sid := strings.TrimSpace(*r.StudentID)
		if sid == "" {
			return nil, invalid("studentId cannot be empty")
		}
		fields["student_id"] = sid
	}
	if len(fields) > 0 {
		if err := s.store.Students().Update(ctx, id, fields); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, conflict("student id %s is already in use", fields["student_id"])
			}
			return nil, notFoundAs(err, "student")
		}
	}
	return s.Get(ctx, id)
}

// Delete removes the student and takes it off its peer's roster.
func (s *StudentServiceImpl) Delete(ctx context.Context, id domain.StudentID) error {
	return s.store.WithTx(ctx, func(tx *store.Store) error {
		st, err := tx.Students().GetByID(ctx, id)
		if err != nil {
			return notFoundAs(err, "student")
		}
		if st.PeerID != nil {
			peer, err := tx.Peers().GetByID(ctx, *st.PeerID)
			switch {
			case err == nil:
				roster := slices.DeleteFunc(slices.Clone([]uuid.UUID(peer.Students)), func(sid uuid.UUID) bool { return sid == id })
				if err := tx.Peers().SetRoster(ctx, peer.ID, roster); err != nil {
					return err
				}
			case !errors.Is(err, domain.ErrNotFound):
				return err
			}
		}
		return tx.Students().Delete(ctx, id)
	})
}

func studentView(st domain.Student, refs *store.Refs) dto.StudentView {
	v := dto.StudentView{Student: st}
	if st.PeerID != nil {
		if ref, ok := refs.Peers[*st.PeerID]; ok {
			v.Peer = &ref
		}
	}
	if ref, ok := refs.Users[st.UserID]; ok {
		v.User = &ref
	}
	return v
}
