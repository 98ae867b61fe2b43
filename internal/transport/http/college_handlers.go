package http

import (
	"net/http"
	"strconv"

	"collegeconnect/internal/dto"

	"github.com/go-chi/chi/v5"
)

func (h *handler) listColleges(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.svc.Colleges.List(r.Context(), dto.CollegeListQuery{
		PageQuery: pageQuery(r),
		Status:    q.Get("status"),
		Type:      q.Get("type"),
		Search:    q.Get("q"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) getCollege(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.svc.Colleges.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// updateCollege takes JSON, or multipart with a "logo" file and any number
// of "documents" files to append.
func (h *handler) updateCollege(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := readPayload(w, r, h.opts.MaxUploadBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req dto.UpdateCollegeRequest
	if err := p.decode(&req); err != nil {
		writeError(w, r, err)
		return
	}
	if logo := p.file("logo"); !logo.Empty() {
		req.Logo = &logo
	}
	req.AddDocuments = append(p.files["documents"], p.files["document"]...)
	res, err := h.svc.Colleges.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) deleteCollege(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Colleges.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) collegeLogo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	doc, err := h.svc.Colleges.Logo(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	serveDocument(w, r, doc)
}

func (h *handler) collegeDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, r, badRequest("document index must be a number"))
		return
	}
	doc, err := h.svc.Colleges.Document(r.Context(), id, index)
	if err != nil {
		writeError(w, r, err)
		return
	}
	serveDocument(w, r, doc)
}

func (h *handler) listCollegeAdmins(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.CollegeAdmins.List(r.Context(), pageQuery(r), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) getCollegeAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.svc.CollegeAdmins.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) getCollegeAdminByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.svc.CollegeAdmins.GetByUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) updateCollegeAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := readPayload(w, r, h.opts.MaxUploadBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req dto.UpdateCollegeAdminRequest
	if err := p.decode(&req); err != nil {
		writeError(w, r, err)
		return
	}
	if proof := p.file("proofOfDesignation"); !proof.Empty() {
		req.ProofOfDesignation = &proof
	}
	res, err := h.svc.CollegeAdmins.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) deleteCollegeAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.CollegeAdmins.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) collegeAdminProof(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	doc, err := h.svc.CollegeAdmins.Proof(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	serveDocument(w, r, doc)
}
