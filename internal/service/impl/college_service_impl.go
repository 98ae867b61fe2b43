package impl

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/dto"
	"collegeconnect/internal/observability/middleware"
	"collegeconnect/internal/store"
)

type CollegeServiceImpl struct {
	store *store.Store
}

func NewCollegeServiceImpl(st *store.Store) *CollegeServiceImpl {
	return &CollegeServiceImpl{store: st}
}

func (c *CollegeServiceImpl) List(ctx context.Context, q dto.CollegeListQuery) (*dto.Page[dto.CollegeView], error) {
	f := store.CollegeFilter{Search: q.Search}
	if strings.TrimSpace(q.Status) != "" {
		status, err := domain.ParseProfileStatus(q.Status)
		if err != nil {
			return nil, err
		}
		f.Status = status
	}
	if strings.TrimSpace(q.Type) != "" {
		t, err := domain.ParseCollegeType(q.Type)
		if err != nil {
			return nil, err
		}
		f.Type = t
	}
	opts := store.ListOptions{Page: q.Page, Limit: q.Limit}.Normalize()
	colleges, total, err := c.store.Colleges().List(ctx, f, opts)
	if err != nil {
		return nil, err
	}
	var set store.RefSet
	for i := range colleges {
		set.User(&colleges[i].UserID)
	}
	refs, err := c.store.Refs(ctx, set)
	if err != nil {
		return nil, err
	}
	views := make([]dto.CollegeView, 0, len(colleges))
	for _, college := range colleges {
		views = append(views, collegeView(college, refs))
	}
	page := dto.NewPage(views, total, opts.Page, opts.Limit)
	return &page, nil
}

func (c *CollegeServiceImpl) Get(ctx context.Context, id domain.CollegeID) (*dto.CollegeView, error) {
	college, err := c.store.Colleges().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "college")
	}
	var set store.RefSet
	set.User(&college.UserID)
	refs, err := c.store.Refs(ctx, set)
	if err != nil {
		return nil, err
	}
	v := collegeView(*college, refs)
	return &v, nil
}

// Update applies a partial update. The owning user cannot change.
func (c *CollegeServiceImpl) Update(ctx context.Context, id domain.CollegeID, r dto.UpdateCollegeRequest) (*dto.CollegeView, error) {
	fields, err := collegeFields(r)
	if err != nil {
		return nil, err
	}
	err = c.store.WithTx(ctx, func(tx *store.Store) error {
		if _, err := tx.Colleges().GetByID(ctx, id); err != nil {
			return notFoundAs(err, "college")
		}
		if err := tx.Colleges().Update(ctx, id, fields); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return conflict("college domain or code already in use")
			}
			return err
		}
		for _, doc := range r.AddDocuments {
			if doc.Empty() {
				continue
			}
			if err := tx.Colleges().AppendDocument(ctx, id, doc); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.Get(ctx, id)
}

func collegeFields(r dto.UpdateCollegeRequest) (map[string]any, error) {
	fields := map[string]any{}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			return nil, invalid("name cannot be empty")
		}
		fields["name"] = name
	}
	if r.Type != nil {
		t, err := domain.ParseCollegeType(*r.Type)
		if err != nil {
			return nil, err
		}
		fields["type"] = t
	}
	if r.Domain != nil {
		d := strings.ToLower(strings.TrimSpace(*r.Domain))
		if d == "" {
			return nil, invalid("domain cannot be empty")
		}
		fields["domain"] = d
	}
	if r.Code != nil {
		// an empty code clears it so the unique index ignores the row
		if code := strings.TrimSpace(*r.Code); code != "" {
			fields["code"] = code
		} else {
			fields["code"] = nil
		}
	}
	if r.Address != nil {
		fields["address_street"] = r.Address.Street
		fields["address_city"] = r.Address.City
		fields["address_state"] = r.Address.State
		fields["address_country"] = r.Address.Country
		fields["address_postal_code"] = r.Address.PostalCode
	}
	if r.ContactEmail != nil {
		fields["contact_email"] = store.NormalizeEmail(*r.ContactEmail)
	}
	if r.ContactPhone != nil {
		fields["contact_phone"] = strings.TrimSpace(*r.ContactPhone)
	}
	if r.Website != nil {
		fields["website"] = strings.TrimSpace(*r.Website)
	}
	if r.EstablishedYear != nil {
		fields["established_year"] = *r.EstablishedYear
	}
	if r.Status != nil {
		status, err := domain.ParseProfileStatus(*r.Status)
		if err != nil {
			return nil, err
		}
		fields["status"] = status
	}
	if r.Logo != nil && !r.Logo.Empty() {
		fields["logo_filename"] = r.Logo.Filename
		fields["logo_content_type"] = r.Logo.ContentType
		fields["logo_data"] = r.Logo.Data
	}
	return fields, nil
}

// Delete refuses while counselors still belong to the college.
func (c *CollegeServiceImpl) Delete(ctx context.Context, id domain.CollegeID) error {
	err := c.store.WithTx(ctx, func(tx *store.Store) error {
		n, err := tx.Counselors().CountByCollege(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return conflict("college still has %d counselors", n)
		}
		return notFoundAs(tx.Colleges().Delete(ctx, id), "college")
	})
	if err != nil {
		return err
	}
	slog.Info("college deleted", append([]any{"college_id", id}, middleware.LogAttrs(ctx)...)...)
	return nil
}

func (c *CollegeServiceImpl) Logo(ctx context.Context, id domain.CollegeID) (*domain.Document, error) {
	college, err := c.store.Colleges().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "college")
	}
	if college.Logo.Empty() {
		return nil, notFound("logo")
	}
	return &college.Logo, nil
}

func (c *CollegeServiceImpl) Document(ctx context.Context, id domain.CollegeID, index int) (*domain.Document, error) {
	college, err := c.store.Colleges().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "college")
	}
	if index < 0 || index >= len(college.Documents) {
		return nil, notFound("document")
	}
	doc := college.Documents[index]
	return &doc, nil
}

func collegeView(college domain.College, refs *store.Refs) dto.CollegeView {
	v := dto.NewCollegeView(college)
	if ref, ok := refs.Users[college.UserID]; ok {
		v.Owner = &ref
	}
	return v
}
