package auth

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/go-session-auth/users"
)

// DefaultCookieName is the session cookie read by the gated API surface
// unless SESSION_NAME overrides it.
const DefaultCookieName = "_my_session_id"

// Authenticator decides whether a request is authenticated and resolves the
// acting identity. Implementations are swappable strategies selected once at
// startup, not an inheritance chain.
//
// CurrentUser recovers normal authentication failures (missing or malformed
// header, wrong password, unknown session) into a nil user with a nil error.
// errors.ErrSessionExpired is returned so the caller can distinguish the
// expired case in its decision; anything else is a hard failure.
type Authenticator interface {
	RequireAuth(path string, excludedPaths []string) bool
	AuthorizationHeader(r *http.Request) string
	SessionCookie(r *http.Request) string
	CurrentUser(r *http.Request) (*users.User, error)
}

// RequireAuth reports whether path needs authentication given the excluded
// paths. Matching is exact after trailing-slash normalization on both sides;
// an entry ending in "*" matches as a prefix. An empty path or an empty
// exclusion list always requires auth.
//
// The exact-match rule matters: "/api/v1/statusX" must not be excluded by
// the entry "/api/v1/status".
func RequireAuth(path string, excludedPaths []string) bool {
	if path == "" || len(excludedPaths) == 0 {
		return true
	}

	if !strings.HasSuffix(path, "/") {
		path += "/"
	}

	for _, excluded := range excludedPaths {
		if excluded == "" {
			continue
		}
		if strings.HasSuffix(excluded, "*") {
			if strings.HasPrefix(path, strings.TrimSuffix(excluded, "*")) {
				return false
			}
			continue
		}
		if !strings.HasSuffix(excluded, "/") {
			excluded += "/"
		}
		if path == excluded {
			return false
		}
	}
	return true
}

// base carries the request-extraction behaviour shared by every strategy.
type base struct {
	cookieName string
}

func newBase(cookieName string) base {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return base{cookieName: cookieName}
}

func (base) RequireAuth(path string, excludedPaths []string) bool {
	return RequireAuth(path, excludedPaths)
}

// AuthorizationHeader returns the raw Authorization header value, or ""
// when absent.
func (base) AuthorizationHeader(r *http.Request) string {
	if r == nil {
		return ""
	}
	return r.Header.Get("Authorization")
}

// SessionCookie returns the session cookie value, or "" when absent.
func (b base) SessionCookie(r *http.Request) string {
	if r == nil {
		return ""
	}
	cookie, err := r.Cookie(b.cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
