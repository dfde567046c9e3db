package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mcoot/ponto/internal/api/apierr"
	"github.com/mcoot/ponto/internal/services/token"
)

type contextKey string

const principalContextKey contextKey = "principal"

// Principal is the authenticated caller
type Principal struct {
	EmployeeID int64
	Admin      bool
}

// CanAccess reports whether the caller may act on the employee's own records
func (p *Principal) CanAccess(employeeID int64) bool {
	return p.Admin || p.EmployeeID == employeeID
}

// Auth creates authentication middleware. Requests without a valid bearer
// token are rejected with 401.
func Auth(tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := extractToken(r)
			if raw == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			claims, err := tokens.Validate(raw)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			id, err := claims.EmployeeID()
			if err != nil {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}
			ctx := context.WithValue(r.Context(), principalContextKey, &Principal{
				EmployeeID: id,
				Admin:      claims.Admin,
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects non-administrators with 403. Must run after Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := GetPrincipal(r.Context())
		if p == nil {
			apierr.WriteError(w, apierr.NewUnauthorizedError())
			return
		}
		if !p.Admin {
			apierr.WriteError(w, apierr.NewForbiddenError())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractToken extracts the bearer token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// GetPrincipal returns the authenticated caller from the request context
func GetPrincipal(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalContextKey).(*Principal)
	return p
}

// MustGetPrincipal returns the authenticated caller or panics
func MustGetPrincipal(ctx context.Context) *Principal {
	p := GetPrincipal(ctx)
	if p == nil {
		panic("no principal in context - auth middleware not applied?")
	}
	return p
}
