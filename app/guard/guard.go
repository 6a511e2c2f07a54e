// Package guard gates privileged routes.
//
// Authenticate verifies the bearer token and attaches the Principal to the
// request context. RequireAdmin and RequireSelf run after Authenticate and
// narrow access further: the first checks the caller's stored role, the
// second checks that the caller is operating on their own data.
package guard

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mahimDev/bistro-boss-server/app/repositories"
	"github.com/mahimDev/bistro-boss-server/pkg/auth"
	"github.com/mahimDev/bistro-boss-server/pkg/logger"
	"github.com/mahimDev/bistro-boss-server/pkg/response"
)

// Principal is the authenticated identity attached to a request after
// successful token verification.
type Principal struct {
	Email string
	Name  string
}

type ctxKey struct{}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromCtx extracts the Principal placed by Authenticate.
func FromCtx(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok
}

// Guard bundles the middleware with the user store needed for role lookups.
type Guard struct {
	users repositories.UserStore
}

func New(users repositories.UserStore) *Guard {
	return &Guard{users: users}
}

// Authenticate rejects requests without a valid "Authorization: Bearer
// <token>" header. On success the decoded claims are attached to the
// request context as the Principal.
func (g *Guard) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			response.Unauthorized(w)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w)
			return
		}

		ctx := WithPrincipal(r.Context(), Principal{Email: claims.Email, Name: claims.Name})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin allows only principals whose stored user record carries the
// admin role. The role comes from the database, not the token, so a
// revoked admin loses access as soon as the record changes. Must run after
// Authenticate.
func (g *Guard) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := FromCtx(r.Context())
		if !ok {
			response.Unauthorized(w)
			return
		}

		user, err := g.users.FindByEmail(r.Context(), p.Email)
		if errors.Is(err, repositories.ErrNotFound) {
			response.Forbidden(w)
			return
		}
		if err != nil {
			logger.WithCtx(r.Context()).Error("admin lookup failed", "error", err)
			response.Error(w, http.StatusInternalServerError, "service unavailable")
			return
		}
		if !user.Role.IsAdmin() {
			response.Forbidden(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireSelf allows only requests whose {param} path value equals the
// principal's email. Comparison is exact-string: no case folding or
// normalization. Must run after Authenticate.
func (g *Guard) RequireSelf(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := FromCtx(r.Context())
			if !ok {
				response.Unauthorized(w)
				return
			}

			if chi.URLParam(r, param) != p.Email {
				response.Forbidden(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
