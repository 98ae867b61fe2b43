package impl

import (
	"context"
	"errors"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/dto"
	"collegeconnect/internal/store"
)

type storeProfiles struct {
	store *store.Store
}

// ProfileFor returns the profile record for the user's role. Users whose
// profile does not exist yet, and platform admins, get nil.
func (p storeProfiles) ProfileFor(ctx context.Context, user *domain.User) (any, error) {
	var (
		profile any
		err     error
	)
	switch user.Role {
	case domain.RoleStudent:
		profile, err = p.store.Students().GetByUserID(ctx, user.ID)
	case domain.RoleCounselor:
		profile, err = p.store.Counselors().GetByUserID(ctx, user.ID)
	case domain.RolePeer:
		profile, err = p.store.Peers().GetByUserID(ctx, user.ID)
	case domain.RoleCollegeAdmin:
		var admin *domain.CollegeAdmin
		admin, err = p.store.CollegeAdmins().GetByUserID(ctx, user.ID)
		if err == nil {
			profile = dto.NewCollegeAdminView(*admin)
		}
	default:
		return nil, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}
