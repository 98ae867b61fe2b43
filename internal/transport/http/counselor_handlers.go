package http

import (
	"net/http"

	"collegeconnect/internal/dto"
)

func (h *handler) listCounselors(w http.ResponseWriter, r *http.Request) {
	collegeID, err := queryID(r, "college")
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.writeCounselors(w, r, dto.CounselorListQuery{
		PageQuery: pageQuery(r),
		CollegeID: collegeID,
		Status:    r.URL.Query().Get("status"),
	})
}

func (h *handler) listCounselorsByCollege(w http.ResponseWriter, r *http.Request) {
	collegeID, err := pathID(r, "collegeId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.writeCounselors(w, r, dto.CounselorListQuery{
		PageQuery: pageQuery(r),
		CollegeID: &collegeID,
		Status:    r.URL.Query().Get("status"),
	})
}

func (h *handler) writeCounselors(w http.ResponseWriter, r *http.Request, q dto.CounselorListQuery) {
	res, err := h.svc.Counselors.List(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) getCounselor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.svc.Counselors.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) createCounselor(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCounselorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.svc.Counselors.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *handler) updateCounselor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req dto.UpdateCounselorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.svc.Counselors.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type statusBody struct {
	Status string `json:"status"`
}

func (h *handler) updateCounselorStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body statusBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.svc.Counselors.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) deleteCounselor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Counselors.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
