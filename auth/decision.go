package auth

import (
	"net/http"

	interrors "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/users"
)

// Reason classifies the outcome of an authentication decision
type Reason string

const (
	ReasonNoneRequired       Reason = "none_required"
	ReasonNoCredentials      Reason = "no_credentials"
	ReasonInvalidCredentials Reason = "invalid_credentials"
	ReasonExpired            Reason = "expired"
	ReasonOK                 Reason = "ok"
)

// Decision is the per-request authentication outcome. Decisions for
// concurrent requests are independent values and share no state.
type Decision struct {
	Authenticated bool
	User          *users.User
	Reason        Reason
}

// Decide runs the per-request state machine: exclusion check, credential
// presence check, then identity resolution. Normal failures come back as an
// unauthenticated Decision; only hard failures (bad lookup keys, storage
// faults) surface as errors.
func Decide(a Authenticator, r *http.Request, excludedPaths []string) (Decision, error) {
	if !a.RequireAuth(r.URL.Path, excludedPaths) {
		return Decision{Authenticated: true, Reason: ReasonNoneRequired}, nil
	}

	if a.AuthorizationHeader(r) == "" && a.SessionCookie(r) == "" {
		return Decision{Reason: ReasonNoCredentials}, nil
	}

	user, err := a.CurrentUser(r)
	if err != nil {
		if interrors.Is(err, interrors.ErrSessionExpired) {
			return Decision{Reason: ReasonExpired}, nil
		}
		return Decision{}, err
	}
	if user == nil {
		return Decision{Reason: ReasonInvalidCredentials}, nil
	}
	return Decision{Authenticated: true, User: user, Reason: ReasonOK}, nil
}
