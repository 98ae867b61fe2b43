package http

import (
	"net/http"

	"collegeconnect/internal/dto"
)

// scheduleAppointment records the caller as the scheduler.
func (h *handler) scheduleAppointment(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())
	var req dto.ScheduleAppointmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	actor := p.UserID
	res, err := h.svc.Appointments.Schedule(r.Context(), req, &actor)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *handler) listAppointments(w http.ResponseWriter, r *http.Request) {
	q := dto.AppointmentListQuery{
		PageQuery: pageQuery(r),
		Status:    r.URL.Query().Get("status"),
		Date:      r.URL.Query().Get("date"),
	}
	var err error
	if q.StudentID, err = queryID(r, "student"); err != nil {
		writeError(w, r, err)
		return
	}
	if q.CounselorID, err = queryID(r, "counselor"); err != nil {
		writeError(w, r, err)
		return
	}
	if q.CollegeID, err = queryID(r, "college"); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.svc.Appointments.List(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) getAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.svc.Appointments.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) updateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req dto.UpdateAppointmentStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.svc.Appointments.UpdateStatus(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
