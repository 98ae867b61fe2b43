package impl

import (
	"context"
	"log/slog"
	"strings"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/dto"
	"collegeconnect/internal/observability/metrics"
	"collegeconnect/internal/observability/middleware"
	"collegeconnect/internal/store"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type AppointmentServiceImpl struct {
	store *store.Store
}

func NewAppointmentServiceImpl(st *store.Store) *AppointmentServiceImpl {
	return &AppointmentServiceImpl{store: st}
}

// Schedule validates the request and records a Pending appointment. The
// counselor must belong to the requested college.
func (a *AppointmentServiceImpl) Schedule(ctx context.Context, r dto.ScheduleAppointmentRequest, actor *domain.UserID) (view *dto.AppointmentView, err error) {
	defer func() {
		metrics.AppointmentsTotal.WithLabelValues("schedule", metrics.Result(err)).Inc()
	}()

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"student", r.StudentID},
		{"counselor", r.CounselorID},
		{"college", r.CollegeID},
		{"date", r.Date},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, invalid("%s required", strings.Join(missing, ", "))
	}
	studentID, err := parseID("student", r.StudentID)
	if err != nil {
		return nil, err
	}
	counselorID, err := parseID("counselor", r.CounselorID)
	if err != nil {
		return nil, err
	}
	collegeID, err := parseID("college", r.CollegeID)
	if err != nil {
		return nil, err
	}
	day, err := domain.ParseDay(r.Date)
	if err != nil {
		return nil, err
	}

	var (
		student   *domain.Student
		counselor *domain.Counselor
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := a.store.Students().GetByID(gctx, studentID)
		student = s
		return notFoundAs(err, "student")
	})
	g.Go(func() error {
		c, err := a.store.Counselors().GetByID(gctx, counselorID)
		counselor = c
		return notFoundAs(err, "counselor")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if counselor.CollegeID != collegeID {
		return nil, invalid("counselor does not belong to college")
	}

	appt := &domain.Appointment{
		ID:          uuid.New(),
		StudentID:   student.ID,
		CounselorID: counselor.ID,
		CollegeID:   collegeID,
		Date:        day,
		Status:      domain.AppointmentPending,
		ScheduledBy: actor,
		Notes:       strings.TrimSpace(r.Notes),
	}
	if err := a.store.Appointments().Create(ctx, appt); err != nil {
		return nil, err
	}
	slog.Info("appointment scheduled", append([]any{
		"appointment_id", appt.ID, "student_id", student.ID, "counselor_id", counselor.ID, "date", day.Format("2006-01-02"),
	}, middleware.LogAttrs(ctx)...)...)
	return a.view(ctx, appt)
}

// UpdateStatus sets any of the four statuses; there is no transition order.
func (a *AppointmentServiceImpl) UpdateStatus(ctx context.Context, id domain.AppointmentID, r dto.UpdateAppointmentStatusRequest) (view *dto.AppointmentView, err error) {
	defer func() {
		metrics.AppointmentsTotal.WithLabelValues("status", metrics.Result(err)).Inc()
	}()
	status, err := domain.ParseAppointmentStatus(r.Status)
	if err != nil {
		return nil, err
	}
	if err := a.store.Appointments().UpdateStatus(ctx, id, status, r.Notes); err != nil {
		return nil, notFoundAs(err, "appointment")
	}
	return a.Get(ctx, id)
}

func (a *AppointmentServiceImpl) Get(ctx context.Context, id domain.AppointmentID) (*dto.AppointmentView, error) {
	appt, err := a.store.Appointments().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "appointment")
	}
	return a.view(ctx, appt)
}

func (a *AppointmentServiceImpl) List(ctx context.Context, q dto.AppointmentListQuery) (*dto.Page[dto.AppointmentView], error) {
	f := store.AppointmentFilter{StudentID: q.StudentID, CounselorID: q.CounselorID, CollegeID: q.CollegeID}
	if strings.TrimSpace(q.Status) != "" {
		status, err := domain.ParseAppointmentStatus(q.Status)
		if err != nil {
			return nil, err
		}
		f.Status = status
	}
	if strings.TrimSpace(q.Date) != "" {
		day, err := domain.ParseDay(q.Date)
		if err != nil {
			return nil, err
		}
		f.Date = &day
	}
	opts := store.ListOptions{Page: q.Page, Limit: q.Limit}.Normalize()
	appts, total, err := a.store.Appointments().List(ctx, f, opts)
	if err != nil {
		return nil, err
	}

	var set store.RefSet
	for i := range appts {
		addAppointmentRefs(&set, &appts[i])
	}
	refs, err := a.store.Refs(ctx, set)
	if err != nil {
		return nil, err
	}
	views := make([]dto.AppointmentView, 0, len(appts))
	for _, appt := range appts {
		views = append(views, appointmentView(appt, refs))
	}
	page := dto.NewPage(views, total, opts.Page, opts.Limit)
	return &page, nil
}

func (a *AppointmentServiceImpl) view(ctx context.Context, appt *domain.Appointment) (*dto.AppointmentView, error) {
	var set store.RefSet
	addAppointmentRefs(&set, appt)
	refs, err := a.store.Refs(ctx, set)
	if err != nil {
		return nil, err
	}
	v := appointmentView(*appt, refs)
	return &v, nil
}

func addAppointmentRefs(set *store.RefSet, appt *domain.Appointment) {
	set.Student(appt.StudentID)
	set.Counselor(appt.CounselorID)
	set.College(appt.CollegeID)
	set.User(appt.ScheduledBy)
}

func appointmentView(appt domain.Appointment, refs *store.Refs) dto.AppointmentView {
	v := dto.AppointmentView{Appointment: appt}
	if ref, ok := refs.Students[appt.StudentID]; ok {
		v.Student = &ref
	}
	if ref, ok := refs.Counselors[appt.CounselorID]; ok {
		v.Counselor = &ref
	}
	if ref, ok := refs.Colleges[appt.CollegeID]; ok {
		v.College = &ref
	}
	if appt.ScheduledBy != nil {
		if ref, ok := refs.Users[*appt.ScheduledBy]; ok {
			v.Scheduler = &ref
		}
	}
	return v
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, invalid("%s must be a valid id", field)
	}
	return id, nil
}
