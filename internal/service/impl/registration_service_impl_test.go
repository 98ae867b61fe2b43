package impl

import (
	"errors"
	"testing"

	"collegeconnect/internal/credential"
	"collegeconnect/internal/domain"
	"collegeconnect/internal/dto"

	"github.com/google/uuid"
)

func techU() dto.SubmitRegistrationRequest {
	return dto.SubmitRegistrationRequest{
		CollegeName:        "Tech U",
		CollegeType:        "private",
		CollegeDomain:      "TechU.edu",
		ApplicantName:      "Ada Admin",
		Designation:        "Registrar",
		Email:              "A@TechU.edu",
		Password:           "correct-horse",
		VerifiedDocument:   pdf("charter"),
		ProofOfDesignation: pdf("letter"),
	}
}

func TestRegistrationSubmitCreatesPending(t *testing.T) {
	f := newFixture(t)
	svc := NewRegistrationServiceImpl(f.st)

	sum, err := svc.Submit(f.ctx, techU())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sum.Status != domain.RegistrationPending || sum.Email != "a@techu.edu" {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	reg, err := f.st.Registrations().GetByID(f.ctx, sum.ID)
	if err != nil {
		t.Fatalf("load registration: %v", err)
	}
	if reg.CollegeDomain != "techu.edu" || reg.CollegeType != domain.CollegePrivate {
		t.Fatalf("fields not normalized: %+v", reg)
	}
	if !credential.IsEncoded(reg.Password) {
		t.Fatalf("registration password stored in clear")
	}
}

func TestRegistrationSubmitDuplicateEmailConflicts(t *testing.T) {
	f := newFixture(t)
	svc := NewRegistrationServiceImpl(f.st)

	if _, err := svc.Submit(f.ctx, techU()); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	again := techU()
	again.Email = "a@techu.EDU"
	if _, err := svc.Submit(f.ctx, again); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegistrationSubmitRequiresFields(t *testing.T) {
	f := newFixture(t)
	svc := NewRegistrationServiceImpl(f.st)

	cases := map[string]func(r *dto.SubmitRegistrationRequest){
		"college name":   func(r *dto.SubmitRegistrationRequest) { r.CollegeName = "" },
		"college type":   func(r *dto.SubmitRegistrationRequest) { r.CollegeType = "" },
		"unknown type":   func(r *dto.SubmitRegistrationRequest) { r.CollegeType = "Imaginary" },
		"domain":         func(r *dto.SubmitRegistrationRequest) { r.CollegeDomain = "" },
		"applicant":      func(r *dto.SubmitRegistrationRequest) { r.ApplicantName = "" },
		"designation":    func(r *dto.SubmitRegistrationRequest) { r.Designation = "" },
		"email":          func(r *dto.SubmitRegistrationRequest) { r.Email = "" },
		"verified doc":   func(r *dto.SubmitRegistrationRequest) { r.VerifiedDocument = domain.Document{} },
		"proof document": func(r *dto.SubmitRegistrationRequest) { r.ProofOfDesignation = domain.Document{} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := techU()
			mutate(&r)
			if _, err := svc.Submit(f.ctx, r); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected invalid input, got %v", err)
			}
		})
	}
	if n := count(t, f.st, &domain.CollegeRegistration{}); n != 0 {
		t.Fatalf("expected no registrations, got %d", n)
	}
}

func TestRegistrationApproveProvisionsTripleOnce(t *testing.T) {
	f := newFixture(t)
	svc := NewRegistrationServiceImpl(f.st)

	sum, err := svc.Submit(f.ctx, techU())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	first, err := svc.Approve(f.ctx, sum.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if first.RegistrationID != sum.ID {
		t.Fatalf("registration id mismatch: %+v", first)
	}

	college, err := f.st.Colleges().GetByID(f.ctx, first.CollegeID)
	if err != nil {
		t.Fatalf("load college: %v", err)
	}
	if college.Domain != "techu.edu" || college.Status != domain.StatusActive || college.UserID != first.UserID {
		t.Fatalf("unexpected college: %+v", college)
	}
	if len(college.Documents) != 1 || college.Documents[0].Filename != "charter.pdf" {
		t.Fatalf("verified document not copied: %+v", college.Documents)
	}
	user, err := f.st.Users().GetByID(f.ctx, first.UserID)
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.Role != domain.RoleCollegeAdmin || user.Email != "a@techu.edu" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if _, ok := credential.Verify("correct-horse", user.Password); !ok {
		t.Fatalf("applicant password should log the new user in")
	}
	admin, err := f.st.CollegeAdmins().GetByID(f.ctx, first.CollegeAdminID)
	if err != nil {
		t.Fatalf("load college admin: %v", err)
	}
	if admin.UserID != user.ID || admin.Designation != "Registrar" || admin.ProofOfDesignation.Filename != "letter.pdf" {
		t.Fatalf("unexpected college admin: %+v", admin)
	}

	second, err := svc.Approve(f.ctx, sum.ID)
	if err != nil {
		t.Fatalf("second approve: %v", err)
	}
	if *second != *first {
		t.Fatalf("second approve returned %+v, want %+v", second, first)
	}
	for _, model := range []any{&domain.User{}, &domain.College{}, &domain.CollegeAdmin{}} {
		if n := count(t, f.st, model); n != 1 {
			t.Fatalf("expected exactly one %T, got %d", model, n)
		}
	}
	reg, _ := f.st.Registrations().GetByID(f.ctx, sum.ID)
	if reg.Status != domain.RegistrationApproved || reg.ReviewedAt == nil {
		t.Fatalf("registration not approved: %+v", reg)
	}
}

func TestRegistrationApproveReusesExistingUser(t *testing.T) {
	f := newFixture(t)
	svc := NewRegistrationServiceImpl(f.st)

	existing, err := f.identity.CreateUser(f.ctx, "Ada", "a@techu.edu", "another-secret", domain.RoleCollegeAdmin)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	sum, err := svc.Submit(f.ctx, techU())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	res, err := svc.Approve(f.ctx, sum.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if res.UserID != existing.ID {
		t.Fatalf("expected existing user %s to be reused, got %s", existing.ID, res.UserID)
	}
	if n := count(t, f.st, &domain.User{}); n != 1 {
		t.Fatalf("expected one user, got %d", n)
	}
}

func TestRegistrationApproveResumesAfterPartialFailure(t *testing.T) {
	f := newFixture(t)
	svc := NewRegistrationServiceImpl(f.st)

	blocker := f.college(t, "techu.edu")
	sum, err := svc.Submit(f.ctx, techU())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Approve(f.ctx, sum.ID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected domain conflict, got %v", err)
	}
	reg, _ := f.st.Registrations().GetByID(f.ctx, sum.ID)
	if reg.Status != domain.RegistrationApproved {
		t.Fatalf("status should stay Approved after a failed provisioning step, got %s", reg.Status)
	}
	if _, err := f.st.Users().GetByEmail(f.ctx, "a@techu.edu"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("failed provisioning should not leave a user behind, got %v", err)
	}

	if err := f.st.Colleges().Delete(f.ctx, blocker.ID); err != nil {
		t.Fatalf("delete blocker: %v", err)
	}
	res, err := svc.Approve(f.ctx, sum.ID)
	if err != nil {
		t.Fatalf("retry approve: %v", err)
	}
	if res.CollegeID == uuid.Nil || res.CollegeAdminID == uuid.Nil {
		t.Fatalf("incomplete approval result: %+v", res)
	}
}

func TestRegistrationApproveRejectsForeignRoleAccount(t *testing.T) {
	f := newFixture(t)
	svc := NewRegistrationServiceImpl(f.st)

	if _, err := f.identity.CreateUser(f.ctx, "Ada", "a@techu.edu", "another-secret", domain.RoleStudent); err != nil {
		t.Fatalf("create user: %v", err)
	}
	sum, err := svc.Submit(f.ctx, techU())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Approve(f.ctx, sum.ID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if n := count(t, f.st, &domain.College{}); n != 0 {
		t.Fatalf("no college should be created for a student account, got %d", n)
	}
	v, err := svc.Get(f.ctx, sum.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v.Status != domain.RegistrationPending {
		t.Fatalf("registration should stay pending, got %s", v.Status)
	}
}

func TestRegistrationRejectAndReopen(t *testing.T) {
	f := newFixture(t)
	svc := NewRegistrationServiceImpl(f.st)

	sum, err := svc.Submit(f.ctx, techU())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	v, err := svc.Reject(f.ctx, sum.ID, " incomplete paperwork ")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if v.Status != domain.RegistrationRejected || v.RejectionReason != "incomplete paperwork" {
		t.Fatalf("unexpected view after reject: %+v", v.CollegeRegistration)
	}
	if n := count(t, f.st, &domain.User{}); n != 0 {
		t.Fatalf("reject must not provision, found %d users", n)
	}

	v, err = svc.SetPending(f.ctx, sum.ID)
	if err != nil {
		t.Fatalf("set pending: %v", err)
	}
	if v.Status != domain.RegistrationPending || v.ReviewedAt != nil || v.RejectionReason != "" {
		t.Fatalf("unexpected view after reopen: %+v", v.CollegeRegistration)
	}

	if _, err := svc.Reject(f.ctx, uuid.New(), ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Approve(f.ctx, uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRegistrationListFiltersByStatus(t *testing.T) {
	f := newFixture(t)
	svc := NewRegistrationServiceImpl(f.st)

	var ids []uuid.UUID
	for _, host := range []string{"one.edu", "two.edu", "three.edu"} {
		r := techU()
		r.CollegeDomain = host
		r.Email = "admin@" + host
		sum, err := svc.Submit(f.ctx, r)
		if err != nil {
			t.Fatalf("submit %s: %v", host, err)
		}
		ids = append(ids, sum.ID)
	}
	if _, err := svc.Reject(f.ctx, ids[0], ""); err != nil {
		t.Fatalf("reject: %v", err)
	}

	pending, err := svc.List(f.ctx, dto.RegistrationListQuery{Status: "pending", PageQuery: dto.PageQuery{Page: 1, Limit: 1}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if pending.Total != 2 || pending.TotalPages != 2 || len(pending.Items) != 1 {
		t.Fatalf("unexpected page: total=%d pages=%d items=%d", pending.Total, pending.TotalPages, len(pending.Items))
	}
	if _, err := svc.List(f.ctx, dto.RegistrationListQuery{Status: "Maybe"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid status error, got %v", err)
	}
}

func TestRegistrationDocument(t *testing.T) {
	f := newFixture(t)
	svc := NewRegistrationServiceImpl(f.st)

	sum, err := svc.Submit(f.ctx, techU())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	doc, err := svc.Document(f.ctx, sum.ID, DocProof)
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if doc.Filename != "letter.pdf" || string(doc.Data) != "%PDF-1.4 letter" {
		t.Fatalf("document not returned verbatim: %+v", doc)
	}
	if _, err := svc.Document(f.ctx, sum.ID, "selfie"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid kind, got %v", err)
	}
}
