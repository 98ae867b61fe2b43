package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"collegeconnect/internal/credential"
	"collegeconnect/internal/domain"
	"collegeconnect/internal/store"
	"collegeconnect/internal/store/storetest"

	"github.com/google/uuid"
)

func seedUser(t *testing.T, st *store.Store, email string, role domain.Role) *domain.User {
	t.Helper()
	u := &domain.User{Name: email, Email: email, Password: "plain-secret", Role: role, IsActive: true}
	if err := st.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func TestUserCreateHashesPasswordOnce(t *testing.T) {
	st := storetest.New(t)
	ctx := context.Background()

	u := seedUser(t, st, "Mixed.Case@Example.com", domain.RoleStudent)
	if u.Email != "mixed.case@example.com" {
		t.Fatalf("expected lowercased email, got %q", u.Email)
	}
	if !credential.IsEncoded(u.Password) {
		t.Fatalf("expected password to be hashed on create")
	}
	if _, ok := credential.Verify("plain-secret", u.Password); !ok {
		t.Fatalf("stored hash does not verify")
	}

	// Re-saving an encoded password must not hash it again.
	encoded := u.Password
	copyUser := &domain.User{Email: "copy@example.com", Password: encoded, Role: domain.RoleStudent, IsActive: true}
	if err := st.Users().Create(ctx, copyUser); err != nil {
		t.Fatalf("create copy: %v", err)
	}
	if copyUser.Password != encoded {
		t.Fatalf("encoded password was re-hashed")
	}

	got, err := st.Users().GetByEmail(ctx, "MIXED.CASE@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("expected %s, got %s", u.ID, got.ID)
	}
}

func TestDuplicateEmailIsConflict(t *testing.T) {
	st := storetest.New(t)
	seedUser(t, st, "dup@example.com", domain.RoleStudent)

	err := st.Users().Create(context.Background(), &domain.User{Email: "DUP@example.com", Password: "x", Role: domain.RoleStudent})
	if !errors.Is(err, store.ErrDuplicate) || !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected duplicate conflict, got %v", err)
	}
}

func TestGetMissingIsNotFound(t *testing.T) {
	st := storetest.New(t)
	_, err := st.Colleges().GetByID(context.Background(), uuid.New())
	if !errors.Is(err, store.ErrRecordNotFound) || !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := st.Students().Update(context.Background(), uuid.New(), map[string]any{"name": "x"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on update, got %v", err)
	}
}

func TestListPagination(t *testing.T) {
	st := storetest.New(t)
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		seedUser(t, st, fmt.Sprintf("user%d@example.com", i), domain.RoleStudent)
	}
	seedUser(t, st, "admin@example.com", domain.RoleAdmin)

	items, total, err := st.Users().List(ctx, store.UserFilter{Role: domain.RoleStudent}, store.ListOptions{Page: 2, Limit: 3})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 7 {
		t.Fatalf("expected total 7, got %d", total)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items on page 2, got %d", len(items))
	}

	items, _, err = st.Users().List(ctx, store.UserFilter{Role: domain.RoleStudent}, store.ListOptions{Page: 3, Limit: 3})
	if err != nil {
		t.Fatalf("list page 3: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item on last page, got %d", len(items))
	}
}

func TestDeleteUserRefusesWhileProfileExists(t *testing.T) {
	st := storetest.New(t)
	ctx := context.Background()
	u := seedUser(t, st, "s@example.com", domain.RoleStudent)
	s := &domain.Student{UserID: u.ID, Name: "S", StudentID: "S-1"}
	if err := st.Students().Create(ctx, s); err != nil {
		t.Fatalf("create student: %v", err)
	}

	if _, err := st.DeleteUser(ctx, u.ID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := st.Students().Delete(ctx, s.ID); err != nil {
		t.Fatalf("delete student: %v", err)
	}
	counts, err := st.DeleteUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if counts["users"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	if _, err := st.Users().GetByID(ctx, u.ID); !errors.Is(err, store.ErrRecordNotFound) {
		t.Fatalf("expected user to be gone, got %v", err)
	}
}

func TestRefsResolvesSummaries(t *testing.T) {
	st := storetest.New(t)
	ctx := context.Background()
	owner := seedUser(t, st, "owner@techu.edu", domain.RoleCollegeAdmin)
	college := &domain.College{UserID: owner.ID, Name: "Tech U", Type: domain.CollegePrivate, Domain: "techu.edu", Status: domain.StatusActive}
	if err := st.Colleges().Create(ctx, college); err != nil {
		t.Fatalf("create college: %v", err)
	}
	su := seedUser(t, st, "stu@techu.edu", domain.RoleStudent)
	student := &domain.Student{UserID: su.ID, Name: "Stu", StudentID: "T-1"}
	if err := st.Students().Create(ctx, student); err != nil {
		t.Fatalf("create student: %v", err)
	}

	var set store.RefSet
	set.User(&owner.ID)
	set.College(college.ID)
	set.Student(student.ID)
	set.Student(student.ID)
	set.Counselor(uuid.New())

	refs, err := st.Refs(ctx, set)
	if err != nil {
		t.Fatalf("refs: %v", err)
	}
	if refs.Users[owner.ID].Email != "owner@techu.edu" {
		t.Fatalf("unexpected user ref: %+v", refs.Users[owner.ID])
	}
	if refs.Colleges[college.ID].Domain != "techu.edu" {
		t.Fatalf("unexpected college ref: %+v", refs.Colleges[college.ID])
	}
	if refs.Students[student.ID].StudentID != "T-1" {
		t.Fatalf("unexpected student ref: %+v", refs.Students[student.ID])
	}
	if len(refs.Counselors) != 0 {
		t.Fatalf("unknown counselor should not resolve: %+v", refs.Counselors)
	}
}

func TestSessionRotateRequiresCurrentRefreshID(t *testing.T) {
	st := storetest.New(t)
	ctx := context.Background()
	u := seedUser(t, st, "sess@example.com", domain.RoleAdmin)

	sess := &domain.Session{UserID: u.ID, ExpiresAt: time.Now().UTC().Add(time.Hour)}
	if err := st.Sessions().Create(ctx, sess); err != nil {
		t.Fatalf("create session: %v", err)
	}
	oldRID := sess.RefreshID
	newRID := uuid.New()
	if err := st.Sessions().Rotate(ctx, sess.ID, oldRID, newRID, sess.ExpiresAt, "", ""); err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if err := st.Sessions().Rotate(ctx, sess.ID, oldRID, uuid.New(), sess.ExpiresAt, "", ""); !errors.Is(err, store.ErrRecordNotFound) {
		t.Fatalf("expected stale rotate to fail, got %v", err)
	}
	got, err := st.Sessions().GetByRefreshID(ctx, newRID)
	if err != nil || got.ID != sess.ID {
		t.Fatalf("expected session by new refresh id, got %v %v", got, err)
	}
}
