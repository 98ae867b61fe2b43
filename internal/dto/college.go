package dto

import "collegeconnect/internal/domain"

type CollegeView struct {
	domain.College
	Logo      *domain.DocumentMeta  `json:"logo,omitempty"`
	Documents []domain.DocumentMeta `json:"documents"`
	Owner     *domain.UserRef       `json:"user,omitempty"`
}

func NewCollegeView(c domain.College) CollegeView {
	v := CollegeView{College: c, Documents: make([]domain.DocumentMeta, 0, len(c.Documents))}
	if !c.Logo.Empty() {
		meta := c.Logo.Meta()
		v.Logo = &meta
	}
	for _, d := range c.Documents {
		v.Documents = append(v.Documents, d.Meta())
	}
	return v
}

// UpdateCollegeRequest never carries the owning user; ownership is fixed.
type UpdateCollegeRequest struct {
	Name            *string           `json:"name,omitempty"`
	Type            *string           `json:"type,omitempty"`
	Domain          *string           `json:"domain,omitempty"`
	Code            *string           `json:"code,omitempty"`
	Address         *domain.Address   `json:"address,omitempty"`
	ContactEmail    *string           `json:"contactEmail,omitempty"`
	ContactPhone    *string           `json:"contactPhone,omitempty"`
	Website         *string           `json:"website,omitempty"`
	EstablishedYear *int              `json:"establishedYear,omitempty"`
	Status          *string           `json:"status,omitempty"`
	Logo            *domain.Document  `json:"-"`
	AddDocuments    []domain.Document `json:"-"`
}

type CollegeListQuery struct {
	PageQuery
	Status string
	Type   string
	Search string
}

type CollegeAdminView struct {
	domain.CollegeAdmin
	VerifiedDocument   domain.DocumentMeta `json:"verifiedCollegeDocument"`
	ProofOfDesignation domain.DocumentMeta `json:"proofOfDesignation"`
	User               *domain.UserRef     `json:"user,omitempty"`
}

func NewCollegeAdminView(a domain.CollegeAdmin) CollegeAdminView {
	return CollegeAdminView{
		CollegeAdmin:       a,
		VerifiedDocument:   a.VerifiedDocument.Meta(),
		ProofOfDesignation: a.ProofOfDesignation.Meta(),
	}
}

type UpdateCollegeAdminRequest struct {
	Name               *string          `json:"name,omitempty"`
	Designation        *string          `json:"designation,omitempty"`
	Status             *string          `json:"status,omitempty"`
	ProofOfDesignation *domain.Document `json:"-"`
}
