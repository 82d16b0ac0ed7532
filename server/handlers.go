package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-session-auth/auth"
	interrors "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/users"
)

// Handlers for the gated API surface.

func (s *Server) StatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
	}
}

// UnauthorizedHandler exists to exercise the 401 error payload.
func (s *Server) UnauthorizedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeUnauthorized(w)
	}
}

// ForbiddenHandler exists to exercise the 403 error payload.
func (s *Server) ForbiddenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeForbidden(w)
	}
}

// MeHandler returns the identity the gate attached to the request.
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeForbidden(w)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeNotFound(w)
	}
}

// SessionLoginHandler authenticates form credentials and issues a session
// cookie backed by the active session store.
func (s *Server) SessionLoginHandler(sessionAuth *auth.SessionAuthenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.FormValue("email")
		password := r.FormValue("password")

		if email == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email missing"})
			return
		}
		if password == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "password missing"})
			return
		}

		user, err := s.userRepo.FindBy(users.Filter{users.FieldEmail: email})
		if err != nil {
			if interrors.Is(err, interrors.ErrNotFound) {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "no user found for this email"})
				return
			}
			log.Err(err).Msg("session login lookup failed")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
			return
		}

		if !user.CheckPasswordHash(password) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "wrong password"})
			return
		}

		sessionID, err := sessionAuth.Sessions().Create(r.Context(), user.ID)
		if err != nil || sessionID == "" {
			log.Err(err).Msg("session creation failed")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     s.config.GetSessionCookieName(),
			Value:    sessionID,
			Path:     "/",
			HttpOnly: true,
		})
		writeJSON(w, http.StatusOK, user)
	}
}

// SessionLogoutHandler destroys the session named by the request cookie.
func (s *Server) SessionLogoutHandler(sessionAuth *auth.SessionAuthenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := sessionAuth.SessionCookie(r)
		if sessionID == "" {
			writeNotFound(w)
			return
		}

		destroyed, err := sessionAuth.Sessions().Destroy(r.Context(), sessionID)
		if err != nil {
			log.Err(err).Msg("session destroy failed")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
			return
		}
		if !destroyed {
			writeNotFound(w)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{})
	}
}
