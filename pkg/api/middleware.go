package api

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const memberIDContextKey contextKey = "member_id"

// MemberIDFromContext returns the authenticated member id, if any
func MemberIDFromContext(ctx context.Context) (string, bool) {
	if val := ctx.Value(memberIDContextKey); val != nil {
		if id, ok := val.(string); ok && id != "" {
			return id, true
		}
	}
	return "", false
}

// AddMemberToContext extracts the member id from verified JWT claims and
// puts it on the request context. Requests without claims pass through
// untouched; route groups decide whether authentication is required.
func AddMemberToContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, _ := jwtauth.FromContext(r.Context())
			if claims == nil {
				next.ServeHTTP(w, r)
				return
			}

			if id, ok := claims["member_id"].(string); ok && id != "" {
				ctx := context.WithValue(r.Context(), memberIDContextKey, id)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}
