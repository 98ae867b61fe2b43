package impl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/dto"
	"collegeconnect/internal/events"
	"collegeconnect/internal/netutil"
	"collegeconnect/internal/observability/metrics"
	"collegeconnect/internal/observability/middleware"
	"collegeconnect/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ====== Config ======

type TokenConfig struct {
	Issuer     string        // e.g. "collegeconnect"
	Audience   string        // e.g. "collegeconnect-clients"
	AccessTTL  time.Duration // e.g. 15 * time.Minute
	RefreshTTL time.Duration // e.g. 30 * 24h
	SigningKey []byte        // HS256 secret
}

// ====== Claims ======

type AccessClaims struct {
	SID  string      `json:"sid"` // session id
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	SID                  string `json:"sid"` // session id
	jwt.RegisteredClaims        // jti == refresh_id
}

// ====== Service ======

type TokenServiceImpl struct {
	cfg   TokenConfig
	store *store.Store
	now   func() time.Time
}

func NewTokenServiceHS256(cfg TokenConfig, st *store.Store) *TokenServiceImpl {
	return &TokenServiceImpl{cfg: cfg, store: st, now: func() time.Time { return time.Now().UTC() }}
}

// Issue creates a Session row (with a fresh RefreshID) and returns access+refresh tokens.
func (t *TokenServiceImpl) Issue(ctx context.Context, user *domain.User, ip, ua string) (*dto.TokenResponse, error) {
	result := "success"
	defer func() {
		metrics.TokensIssuedTotal.WithLabelValues("issue", result).Inc()
	}()
	now := t.now()

	sess := &domain.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		RefreshID: uuid.New(),
		ExpiresAt: now.Add(t.cfg.RefreshTTL),
		CreatedAt: now,
		IP:        normalizeIP(ip),
		UserAgent: netutil.TruncateUserAgent(ua),
	}
	if err := t.store.Sessions().Create(ctx, sess); err != nil {
		result = "failure"
		return nil, err
	}

	tokens, err := t.mint(user.ID, user.Role, sess, now)
	if err != nil {
		result = "failure"
		return nil, err
	}

	slog.Info("issued tokens", append([]any{"session_id", sess.ID, "user_id", user.ID}, middleware.LogAttrs(ctx)...)...)
	return tokens, nil
}

// Refresh validates the refresh JWT, checks session state, rotates refresh id, and returns new tokens.
func (t *TokenServiceImpl) Refresh(ctx context.Context, refreshToken string, ip, ua string) (*dto.TokenResponse, error) {
	result := "success"
	defer func() {
		metrics.TokensIssuedTotal.WithLabelValues("refresh", result).Inc()
	}()
	now := t.now()

	sess, err := t.sessionForRefresh(ctx, refreshToken)
	if err != nil {
		result = "failure"
		return nil, err
	}
	if !sess.Active(now) {
		result = "failure"
		return nil, ErrSessionEnded
	}

	user, err := t.store.Users().GetByID(ctx, sess.UserID)
	if err != nil {
		result = "failure"
		return nil, ErrInvalidToken
	}
	if !user.IsActive {
		result = "failure"
		return nil, domain.ErrUserDisabled
	}

	newRID := uuid.New()
	newExp := now.Add(t.cfg.RefreshTTL)
	ip = normalizeIP(ip)
	ua = netutil.TruncateUserAgent(ua)
	if err := t.store.Sessions().Rotate(ctx, sess.ID, sess.RefreshID, newRID, newExp, ip, ua); err != nil {
		result = "failure"
		if errors.Is(err, store.ErrRecordNotFound) {
			// lost a race with another refresh of the same token
			return nil, ErrSessionEnded
		}
		return nil, err
	}
	sess.RefreshID = newRID
	sess.ExpiresAt = newExp

	tokens, err := t.mint(user.ID, user.Role, sess, now)
	if err != nil {
		result = "failure"
		return nil, err
	}

	slog.Info("refreshed tokens", append([]any{"session_id", sess.ID, "user_id", sess.UserID}, middleware.LogAttrs(ctx)...)...)
	return tokens, nil
}

// Revoke ends the session behind a refresh token. Revoking an already
// revoked session is not an error.
func (t *TokenServiceImpl) Revoke(ctx context.Context, refreshToken string) error {
	sess, err := t.sessionForRefresh(ctx, refreshToken)
	if err != nil {
		return err
	}
	if err := t.store.Sessions().Revoke(ctx, sess.ID, t.now()); err != nil {
		return err
	}
	events.Emit(ctx, events.SessionRevoked{SessionID: sess.ID.String(), UserID: sess.UserID.String(), At: t.now()})
	return nil
}

func (t *TokenServiceImpl) RevokeAllForUser(ctx context.Context, userID domain.UserID) error {
	n, err := t.store.Sessions().RevokeAllForUser(ctx, userID, t.now())
	if err != nil {
		return err
	}
	events.Emit(ctx, events.SessionsRevoked{UserID: userID.String(), Count: n, At: t.now()})
	return nil
}

// ParseAccess validates an access token and checks that its session is
// still live, so logout takes effect before the token expires.
func (t *TokenServiceImpl) ParseAccess(ctx context.Context, accessToken string) (*dto.Principal, error) {
	claims := &AccessClaims{}
	if err := t.parse(accessToken, claims); err != nil {
		return nil, ErrInvalidToken
	}
	// refresh tokens carry no role
	if !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}
	sid, err := uuid.Parse(claims.SID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	sess, err := t.store.Sessions().GetByID(ctx, sid)
	if err != nil || sess.UserID != userID || !sess.Active(t.now()) {
		return nil, ErrSessionEnded
	}
	return &dto.Principal{UserID: userID, SessionID: sid, Role: claims.Role}, nil
}

// ====== Helpers ======

func (t *TokenServiceImpl) mint(userID uuid.UUID, role domain.Role, sess *domain.Session, now time.Time) (*dto.TokenResponse, error) {
	access, err := t.signAccess(userID, role, sess, now)
	if err != nil {
		return nil, err
	}
	refresh, err := t.signRefresh(userID, sess, now)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(t.cfg.AccessTTL.Seconds()),
	}, nil
}

func (t *TokenServiceImpl) sessionForRefresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	claims := &RefreshClaims{}
	if err := t.parse(refreshToken, claims); err != nil {
		return nil, ErrInvalidToken
	}
	rid, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	sess, err := t.store.Sessions().GetByRefreshID(ctx, rid)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if sess.ID.String() != claims.SID {
		return nil, ErrInvalidToken
	}
	return sess, nil
}

func (t *TokenServiceImpl) signAccess(userID uuid.UUID, role domain.Role, sess *domain.Session, now time.Time) (string, error) {
	claims := AccessClaims{
		SID:  sess.ID.String(),
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.cfg.Issuer,
			Subject:   userID.String(),
			Audience:  jwt.ClaimStrings{t.cfg.Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(t.cfg.AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.cfg.SigningKey)
}

func (t *TokenServiceImpl) signRefresh(userID uuid.UUID, sess *domain.Session, now time.Time) (string, error) {
	claims := RefreshClaims{
		SID: sess.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.cfg.Issuer,
			Subject:   userID.String(),
			Audience:  jwt.ClaimStrings{t.cfg.Audience},
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        sess.RefreshID.String(), // binds the JWT to the session row
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.cfg.SigningKey)
}

func (t *TokenServiceImpl) parse(tokenStr string, claims jwt.Claims) error {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.cfg.Issuer),
		jwt.WithAudience(t.cfg.Audience),
		jwt.WithExpirationRequired(),
	)
	tok, err := parser.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return t.cfg.SigningKey, nil
	})
	if err != nil {
		return err
	}
	if !tok.Valid {
		return fmt.Errorf("token not valid")
	}
	return nil
}

func normalizeIP(ip string) string {
	if normalized, ok := netutil.NormalizeIP(ip); ok {
		return normalized
	}
	return ""
}
