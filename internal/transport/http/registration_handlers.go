package http

import (
	"net/http"

	"collegeconnect/internal/dto"

	"github.com/go-chi/chi/v5"
)

func (h *handler) submitRegistration(w http.ResponseWriter, r *http.Request) {
	p, err := readPayload(w, r, h.opts.MaxUploadBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req dto.SubmitRegistrationRequest
	if err := p.decode(&req); err != nil {
		writeError(w, r, err)
		return
	}
	req.VerifiedDocument = p.file("verifiedCollegeDocument")
	req.ProofOfDesignation = p.file("proofOfDesignation")
	res, err := h.svc.Registrations.Submit(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *handler) listRegistrations(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Registrations.List(r.Context(), dto.RegistrationListQuery{
		PageQuery: pageQuery(r),
		Status:    r.URL.Query().Get("status"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) getRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.svc.Registrations.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) approveRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.svc.Registrations.Approve(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) rejectRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req dto.RejectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.svc.Registrations.Reject(r.Context(), id, req.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) reopenRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.svc.Registrations.SetPending(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) registrationDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	doc, err := h.svc.Registrations.Document(r.Context(), id, chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	serveDocument(w, r, doc)
}
