package server

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-session-auth/auth"
	"github.com/jrsteele09/go-session-auth/authsvc"
	"github.com/jrsteele09/go-session-auth/internal/config"
	"github.com/jrsteele09/go-session-auth/users"
)

type Server struct {
	env           string // Environment (e.g., "DEV", "production")
	mux           *http.ServeMux
	routes        []string
	config        config.Config
	authenticator auth.Authenticator
	accounts      *authsvc.Service
	userRepo      users.Repo
	excludedPaths []string
}

func New(cfg config.Config, authenticator auth.Authenticator, accounts *authsvc.Service, userRepo users.Repo) (*Server, error) {
	if authenticator == nil {
		return nil, errors.New("[Server New] authenticator is required")
	}
	if accounts == nil {
		return nil, errors.New("[Server New] accounts service is required")
	}
	if userRepo == nil {
		return nil, errors.New("[Server New] user repo is required")
	}

	s := &Server{
		mux:           http.NewServeMux(),
		config:        cfg,
		authenticator: authenticator,
		accounts:      accounts,
		userRepo:      userRepo,
		excludedPaths: defaultExcludedPaths(),
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Str("method", method).Str("path", path).Msg("route registered")
}
