package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	interrors "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/users"
)

// Handlers for the standalone user-authentication service surface. Each
// route checks its own session cookie; the request gate does not apply.

func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Bienvenue"})
	}
}

// RegisterUserHandler handles POST /users.
func (s *Server) RegisterUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.FormValue("email")
		password := r.FormValue("password")

		if email == "" || password == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "email and password are required"})
			return
		}

		if _, err := s.accounts.RegisterUser(email, password); err != nil {
			if interrors.Is(err, interrors.ErrDuplicateEmail) {
				writeJSON(w, http.StatusBadRequest, map[string]string{"message": "email already registered"})
				return
			}
			log.Err(err).Msg("user registration failed")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"email": email, "message": "user created"})
	}
}

// LoginHandler handles POST /sessions.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.FormValue("email")
		password := r.FormValue("password")

		if !s.accounts.ValidLogin(email, password) {
			writeUnauthorized(w)
			return
		}

		sessionID, err := s.accounts.CreateSession(email)
		if err != nil || sessionID == "" {
			log.Err(err).Msg("session creation failed")
			writeUnauthorized(w)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     s.config.GetServiceCookieName(),
			Value:    sessionID,
			Path:     "/",
			HttpOnly: true,
		})
		writeJSON(w, http.StatusOK, map[string]string{"email": email, "message": "logged in"})
	}
}

// LogoutHandler handles DELETE /sessions.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := s.serviceUser(r)
		if user == nil {
			writeForbidden(w)
			return
		}

		if err := s.accounts.DestroySession(user.ID); err != nil {
			log.Err(err).Msg("session destroy failed")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
			return
		}
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// ProfileHandler handles GET /profile.
func (s *Server) ProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := s.serviceUser(r)
		if user == nil {
			writeForbidden(w)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"email": user.Email})
	}
}

// ResetPasswordTokenHandler handles POST /reset_password.
func (s *Server) ResetPasswordTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.FormValue("email")

		resetToken, err := s.accounts.ResetPasswordToken(email)
		if err != nil {
			writeForbidden(w)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"email": email, "reset_token": resetToken})
	}
}

// UpdatePasswordHandler handles PUT /reset_password.
func (s *Server) UpdatePasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.FormValue("email")
		resetToken := r.FormValue("reset_token")
		newPassword := r.FormValue("new_password")

		if err := s.accounts.UpdatePassword(resetToken, newPassword); err != nil {
			writeForbidden(w)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"email": email, "message": "Password updated"})
	}
}

// serviceUser resolves the user behind the service-surface session cookie.
func (s *Server) serviceUser(r *http.Request) *users.User {
	cookie, err := r.Cookie(s.config.GetServiceCookieName())
	if err != nil || cookie.Value == "" {
		return nil
	}
	return s.accounts.UserFromSessionID(cookie.Value)
}
