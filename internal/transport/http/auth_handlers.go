package http

import (
	"fmt"
	"net/http"
	"strings"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/dto"
)

type registerBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	UserType string `json:"userType"`
}

// register creates a user and its profile in one request. The profile
// fields sit next to the account fields, and college admin documents come
// in as multipart files.
func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	p, err := readPayload(w, r, h.opts.MaxUploadBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body registerBody
	if err := p.decode(&body); err != nil {
		writeError(w, r, err)
		return
	}
	rawRole := body.Role
	if strings.TrimSpace(rawRole) == "" {
		rawRole = body.UserType
	}
	role, err := domain.ParseRole(rawRole)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if role == domain.RoleAdmin {
		writeError(w, r, fmt.Errorf("%w: admin accounts cannot self-register", domain.ErrForbidden))
		return
	}
	profile, err := profilePayload(role, p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	// rosters only change through the peer routes
	if peer, ok := profile.(dto.PeerPayload); ok && len(peer.StudentIDs) > 0 {
		writeError(w, r, fmt.Errorf("%w: a peer cannot assign students while registering", domain.ErrForbidden))
		return
	}
	res, err := h.svc.Provision.RegisterWithProfile(r.Context(), dto.RegisterRequest{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
		Role:     role,
		Profile:  profile,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// profilePayload decodes the profile variant for role from p.
func profilePayload(role domain.Role, p payload) (dto.ProfilePayload, error) {
	var profile dto.ProfilePayload
	switch role {
	case domain.RoleStudent:
		v := dto.StudentPayload{}
		if err := p.decode(&v); err != nil {
			return nil, err
		}
		profile = v
	case domain.RoleCounselor:
		v := dto.CounselorPayload{}
		if err := p.decode(&v); err != nil {
			return nil, err
		}
		profile = v
	case domain.RolePeer:
		v := dto.PeerPayload{}
		if err := p.decode(&v); err != nil {
			return nil, err
		}
		profile = v
	case domain.RoleCollegeAdmin:
		v := dto.CollegeAdminPayload{}
		if err := p.decode(&v); err != nil {
			return nil, err
		}
		v.VerifiedCollegeDocument = p.file("verifiedCollegeDocument")
		v.ProofOfDesignation = p.file("proofOfDesignation")
		profile = v
	case domain.RoleAdmin:
		profile = dto.AdminPayload{}
	default:
		return nil, badRequest("unknown role %q", role)
	}
	return profile, nil
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.svc.Identity.Login(r.Context(), req, h.clientIP(r), r.UserAgent())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) refresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.svc.Tokens.Refresh(r.Context(), req.RefreshToken, h.clientIP(r), r.UserAgent())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Identity.Logout(r.Context(), req.RefreshToken); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) me(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())
	res, err := h.svc.Identity.Me(r.Context(), p.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) changePassword(w http.ResponseWriter, r *http.Request) {
	p, _ := principalFrom(r.Context())
	var req dto.ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Identity.ChangePassword(r.Context(), p.UserID, req); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
