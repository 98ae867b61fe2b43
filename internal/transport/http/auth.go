package http

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/dto"
	"collegeconnect/internal/service"
)

type principalKey struct{}

func principalFrom(ctx context.Context) (*dto.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*dto.Principal)
	return p, ok
}

// authenticate requires a live bearer access token and stores its principal
// in the request context.
func authenticate(tokens service.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			scheme, token, ok := strings.Cut(raw, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				writeError(w, r, fmt.Errorf("%w: missing bearer token", domain.ErrUnauthorized))
				return
			}
			p, err := tokens.ParseAccess(r.Context(), strings.TrimSpace(token))
			if err != nil {
				writeError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey{}, p)))
		})
	}
}

// requireRole must run after authenticate.
func requireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := principalFrom(r.Context())
			if !ok {
				writeError(w, r, domain.ErrUnauthorized)
				return
			}
			if !slices.Contains(roles, p.Role) {
				writeError(w, r, fmt.Errorf("%w: role %s may not access this resource", domain.ErrForbidden, p.Role))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
