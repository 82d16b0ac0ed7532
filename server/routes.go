package server

import (
	"net/http"

	"github.com/jrsteele09/go-session-auth/auth"
)

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Standalone user-authentication service surface
	RouteIndex          = "/{$}"
	RouteUsers          = "/users"
	RouteSessions       = "/sessions"
	RouteProfile        = "/profile"
	RouteResetPassword  = "/reset_password"

	// Gated API surface
	RouteAPIStatus        = "/api/v1/status"
	RouteAPIUnauthorized  = "/api/v1/unauthorized"
	RouteAPIForbidden     = "/api/v1/forbidden"
	RouteAPIMe            = "/api/v1/users/me"
	RouteAPISessionLogin  = "/api/v1/auth_session/login"
	RouteAPISessionLogout = "/api/v1/auth_session/logout"
)

// defaultExcludedPaths lists the gated-surface routes reachable without
// authentication. Entries are compared slash-normalized; a trailing "*"
// marks a prefix match.
func defaultExcludedPaths() []string {
	return []string{
		RouteAPIStatus + "/",
		RouteAPIUnauthorized + "/",
		RouteAPIForbidden + "/",
		RouteAPISessionLogin + "/",
	}
}

func (s *Server) initRoutes() {
	// Standalone service surface handles its own authentication per route.
	s.RegisterRouteFunc("GET "+RouteIndex, s.IndexHandler())
	s.RegisterRouteFunc("POST "+RouteUsers, s.RegisterUserHandler())
	s.RegisterRouteFunc("POST "+RouteSessions, s.LoginHandler())
	s.RegisterRouteFunc("DELETE "+RouteSessions, s.LogoutHandler())
	s.RegisterRouteFunc("GET "+RouteProfile, s.ProfileHandler())
	s.RegisterRouteFunc("POST "+RouteResetPassword, s.ResetPasswordTokenHandler())
	s.RegisterRouteFunc("PUT "+RouteResetPassword, s.UpdatePasswordHandler())

	// Gated API surface: every route passes through the request gate.
	s.RegisterRouteFunc("GET "+RouteAPIStatus, s.gated(s.StatusHandler()))
	s.RegisterRouteFunc("GET "+RouteAPIUnauthorized, s.gated(s.UnauthorizedHandler()))
	s.RegisterRouteFunc("GET "+RouteAPIForbidden, s.gated(s.ForbiddenHandler()))
	s.RegisterRouteFunc("GET "+RouteAPIMe, s.gated(s.MeHandler()))

	// Session login/logout only exist when a session strategy is active.
	if sessionAuth, ok := s.authenticator.(*auth.SessionAuthenticator); ok {
		s.RegisterRouteFunc("POST "+RouteAPISessionLogin, s.gated(s.SessionLoginHandler(sessionAuth)))
		s.RegisterRouteFunc("DELETE "+RouteAPISessionLogout, s.gated(s.SessionLogoutHandler(sessionAuth)))
	}

	// Unmatched routes respond with the JSON not-found payload.
	s.mux.HandleFunc("/", s.NotFoundHandler())
}

func (s *Server) gated(handler http.HandlerFunc) http.HandlerFunc {
	return ChainMiddleware(handler, s.LoggingMiddleware, s.RecoverMiddleware, s.GateMiddleware)
}
