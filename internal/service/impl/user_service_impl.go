package impl

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/dto"
	"collegeconnect/internal/observability/middleware"
	"collegeconnect/internal/service"
	"collegeconnect/internal/store"
)

type UserServiceImpl struct {
	store    *store.Store
	identity service.IdentityService
}

func NewUserServiceImpl(st *store.Store, identity service.IdentityService) *UserServiceImpl {
	return &UserServiceImpl{store: st, identity: identity}
}

func (u *UserServiceImpl) Create(ctx context.Context, r dto.CreateUserRequest) (*domain.User, error) {
	role, err := domain.ParseRole(r.Role)
	if err != nil {
		return nil, err
	}
	return u.identity.CreateUser(ctx, r.Name, r.Email, r.Password, role)
}

func (u *UserServiceImpl) List(ctx context.Context, q dto.PageQuery, role string, search string) (*dto.Page[domain.User], error) {
	f := store.UserFilter{Search: search}
	if strings.TrimSpace(role) != "" {
		parsed, err := domain.ParseRole(role)
		if err != nil {
			return nil, err
		}
		f.Role = parsed
	}
	opts := store.ListOptions{Page: q.Page, Limit: q.Limit}.Normalize()
	users, total, err := u.store.Users().List(ctx, f, opts)
	if err != nil {
		return nil, err
	}
	page := dto.NewPage(users, total, opts.Page, opts.Limit)
	return &page, nil
}

func (u *UserServiceImpl) Get(ctx context.Context, id domain.UserID) (*domain.User, error) {
	user, err := u.store.Users().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "user")
	}
	return user, nil
}

func (u *UserServiceImpl) Update(ctx context.Context, id domain.UserID, r dto.UpdateUserRequest) (*domain.User, error) {
	fields := map[string]any{}
	if r.Name != nil {
		fields["name"] = strings.TrimSpace(*r.Name)
	}
	if r.Email != nil {
		email := store.NormalizeEmail(*r.Email)
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, invalid("malformed email %q", *r.Email)
		}
		fields["email"] = email
	}
	if len(fields) == 0 {
		return u.Get(ctx, id)
	}
	if err := u.store.Users().Update(ctx, id, fields); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, conflict("email %s is already registered", fields["email"])
		}
		return nil, notFoundAs(err, "user")
	}
	return u.Get(ctx, id)
}

// ToggleStatus flips is_active. Deactivating also revokes live sessions.
func (u *UserServiceImpl) ToggleStatus(ctx context.Context, id domain.UserID) (*domain.User, error) {
	var user *domain.User
	err := u.store.WithTx(ctx, func(tx *store.Store) error {
		found, err := tx.Users().GetByID(ctx, id)
		if err != nil {
			return notFoundAs(err, "user")
		}
		found.IsActive = !found.IsActive
		if err := tx.Users().SetActive(ctx, id, found.IsActive); err != nil {
			return err
		}
		if !found.IsActive {
			if _, err := tx.Sessions().RevokeAllForUser(ctx, id, time.Now().UTC()); err != nil {
				return err
			}
		}
		user = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Info("user status changed", append([]any{"user_id", id, "active", user.IsActive}, middleware.LogAttrs(ctx)...)...)
	return user, nil
}

// Delete refuses while any profile still points at the user.
func (u *UserServiceImpl) Delete(ctx context.Context, id domain.UserID) error {
	counted, err := u.store.DeleteUser(ctx, id)
	if err != nil {
		return notFoundAs(err, "user")
	}
	slog.Info("user deleted", append([]any{"user_id", id, "sessions", counted["sessions"]}, middleware.LogAttrs(ctx)...)...)
	return nil
}
