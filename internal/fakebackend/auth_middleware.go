package fakebackend

import (
	"context"
	"net/http"
	"strings"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyClaims stores the verified access token claims
	ContextKeyClaims ContextKey = "claims"
)

// RequireAuth validates the Bearer access token and stores its claims in the
// request context.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
				unauthorized(w, "Not authenticated")
				return
			}

			claims, err := s.tokens.Verify(token, accessToken)
			if err != nil {
				unauthorized(w, "Could not validate credentials")
				return
			}
			if _, err := s.repo.GetUser(claims.UserID); err != nil {
				unauthorized(w, "Could not validate credentials")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			next(w, r.WithContext(ctx))
		}
	}
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeDetail(w, http.StatusUnauthorized, detail)
}

func claimsFrom(r *http.Request) Claims {
	c, _ := r.Context().Value(ContextKeyClaims).(Claims)
	return c
}
