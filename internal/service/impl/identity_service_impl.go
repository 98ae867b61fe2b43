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
	"collegeconnect/internal/events"
	"collegeconnect/internal/observability/metrics"
	"collegeconnect/internal/observability/middleware"
	"collegeconnect/internal/service"
	"collegeconnect/internal/store"

	"github.com/google/uuid"
)

type IdentityServiceImpl struct {
	Store           dataStore
	PasswordService service.PasswordService
	TService        service.TokenService
	Profiles        profileResolver
	now             func() time.Time
}

func NewIdentityServiceImpl(st *store.Store, passwordService service.PasswordService, tokenService service.TokenService) *IdentityServiceImpl {
	return &IdentityServiceImpl{
		Store:           gormStoreAdapter{store: st},
		PasswordService: passwordService,
		TService:        tokenService,
		Profiles:        storeProfiles{store: st},
		now:             func() time.Time { return time.Now().UTC() },
	}
}

type dataStore interface {
	WithTx(ctx context.Context, fn func(tx storeTx) error) error
}

type storeTx interface {
	Users() userStore
}

type userStore interface {
	Create(ctx context.Context, usr *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetPassword(ctx context.Context, id uuid.UUID, encoded string) error
	TouchLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// profileResolver loads the role profile shown next to the user on login.
type profileResolver interface {
	ProfileFor(ctx context.Context, user *domain.User) (any, error)
}

type gormStoreAdapter struct {
	store *store.Store
}

func (g gormStoreAdapter) WithTx(ctx context.Context, fn func(tx storeTx) error) error {
	if g.store == nil {
		return errors.New("nil store")
	}
	return g.store.WithTx(ctx, func(tx *store.Store) error {
		return fn(gormTxAdapter{tx: tx})
	})
}

type gormTxAdapter struct {
	tx *store.Store
}

func (g gormTxAdapter) Users() userStore { return g.tx.Users() }

func (a *IdentityServiceImpl) clock() time.Time {
	if a.now == nil {
		return time.Now().UTC()
	}
	return a.now()
}

func (a *IdentityServiceImpl) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrEmptyEmail
	}
	var user *domain.User
	err := a.Store.WithTx(ctx, func(tx storeTx) error {
		u, err := tx.Users().GetByEmail(ctx, store.NormalizeEmail(email))
		user = u
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser hashes password and stores a new active user. A duplicate email
// surfaces as a conflict.
func (a *IdentityServiceImpl) CreateUser(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	email = store.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrEmptyCredential
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, invalid("malformed email %q", email)
	}
	if !role.Valid() {
		return nil, invalid("unknown role %q", role)
	}
	encoded, err := a.PasswordService.Hash(password)
	if err != nil {
		return nil, err
	}

	now := a.clock()
	user := &domain.User{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Email:     email,
		Password:  encoded,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = a.Store.WithTx(ctx, func(tx storeTx) error {
		return tx.Users().Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, conflict("email %s is already registered", email)
		}
		return nil, err
	}
	events.Emit(ctx, events.UserRegistered{UserID: user.ID.String(), Email: user.Email, Role: string(role), At: a.clock()})
	return user, nil
}

func (a *IdentityServiceImpl) Login(ctx context.Context, r dto.LoginRequest, ip, ua string) (*dto.LoginResponse, error) {
	result := "success"
	defer func() {
		metrics.LoginsTotal.WithLabelValues(result).Inc()
	}()

	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		result = "invalid"
		return nil, ErrEmptyCredential
	}

	var user *domain.User
	err := a.Store.WithTx(ctx, func(tx storeTx) error {
		u, err := tx.Users().GetByEmail(ctx, store.NormalizeEmail(r.Email))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrInvalidCredentials
			}
			return err
		}

		rehashNeeded, ok := a.PasswordService.Verify(r.Password, u.Password)
		if !ok {
			return domain.ErrInvalidCredentials
		}
		if !u.IsActive {
			return domain.ErrUserDisabled
		}

		if rehashNeeded {
			encoded, err := a.PasswordService.Hash(r.Password)
			switch {
			case err == nil:
				if err := tx.Users().SetPassword(ctx, u.ID, encoded); err != nil {
					return err
				}
				u.Password = encoded
			case errors.Is(err, domain.ErrInvalidInput):
				// legacy password below the current policy; keep the old hash
				slog.Warn("skipped password rehash", "user_id", u.ID, "error", err)
			default:
				return err
			}
		}

		now := a.clock()
		if err := tx.Users().TouchLogin(ctx, u.ID, now); err != nil {
			return err
		}
		u.LastLoginAt = &now
		user = u
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			result = "invalid"
		case errors.Is(err, domain.ErrUserDisabled):
			result = "disabled"
		default:
			result = "error"
		}
		return nil, err
	}

	tokens, err := a.TService.Issue(ctx, user, ip, ua)
	if err != nil {
		result = "error"
		return nil, err
	}
	out := &dto.LoginResponse{TokenResponse: *tokens, User: *user}
	if a.Profiles != nil {
		profile, err := a.Profiles.ProfileFor(ctx, user)
		if err != nil {
			slog.Warn("profile lookup failed", append([]any{"user_id", user.ID, "error", err}, middleware.LogAttrs(ctx)...)...)
		}
		out.Profile = profile
	}
	return out, nil
}

func (a *IdentityServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return ErrInvalidToken
	}
	return a.TService.Revoke(ctx, refreshToken)
}

// ChangePassword replaces the password after checking the current one and
// ends every session of the user.
func (a *IdentityServiceImpl) ChangePassword(ctx context.Context, userID domain.UserID, r dto.ChangePasswordRequest) error {
	if r.CurrentPassword == "" || r.NewPassword == "" {
		return ErrEmptyCredential
	}
	encoded, err := a.PasswordService.Hash(r.NewPassword)
	if err != nil {
		return err
	}
	err = a.Store.WithTx(ctx, func(tx storeTx) error {
		u, err := tx.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if _, ok := a.PasswordService.Verify(r.CurrentPassword, u.Password); !ok {
			return domain.ErrInvalidCredentials
		}
		return tx.Users().SetPassword(ctx, u.ID, encoded)
	})
	if err != nil {
		return err
	}
	return a.TService.RevokeAllForUser(ctx, userID)
}

func (a *IdentityServiceImpl) Me(ctx context.Context, userID domain.UserID) (*dto.LoginResponse, error) {
	var user *domain.User
	err := a.Store.WithTx(ctx, func(tx storeTx) error {
		u, err := tx.Users().GetByID(ctx, userID)
		user = u
		return err
	})
	if err != nil {
		return nil, err
	}
	out := &dto.LoginResponse{User: *user}
	if a.Profiles != nil {
		profile, err := a.Profiles.ProfileFor(ctx, user)
		if err != nil {
			return nil, err
		}
		out.Profile = profile
	}
	return out, nil
}
