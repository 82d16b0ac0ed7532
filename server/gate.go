package server

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-session-auth/auth"
	"github.com/jrsteele09/go-session-auth/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyUser stores the authenticated user
const ContextKeyUser ContextKey = "user"

// UserFromContext extracts the authenticated user attached by the gate.
func UserFromContext(ctx context.Context) (*users.User, bool) {
	user, ok := ctx.Value(ContextKeyUser).(*users.User)
	return user, ok
}

// GateMiddleware intercepts every gated request and consults the active
// authenticator. Requests offering no credentials at all are rejected 401;
// requests whose credentials fail to resolve are rejected 403. Allowed
// requests carry the resolved identity in their context.
func (s *Server) GateMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decision, err := auth.Decide(s.authenticator, r, s.excludedPaths)
		if err != nil {
			// Hard failures (bad lookup keys, storage faults) fail closed.
			log.Err(err).Str("path", r.URL.Path).Msg("authentication decision failed")
			writeForbidden(w)
			return
		}

		if !decision.Authenticated {
			if decision.Reason == auth.ReasonNoCredentials {
				writeUnauthorized(w)
				return
			}
			writeForbidden(w)
			return
		}

		if decision.User != nil {
			r = r.WithContext(context.WithValue(r.Context(), ContextKeyUser, decision.User))
		}
		next(w, r)
	}
}
