package auth

import (
	"net/http"

	"github.com/pkg/errors"

	interrors "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/sessions"
	"github.com/jrsteele09/go-session-auth/users"
)

var _ Authenticator = (*SessionAuthenticator)(nil)

// SessionAuthenticator resolves identity from the session cookie via the
// session store. Expiration and persistence are properties of the injected
// store: a memstore with a duration gives the expiring variant, the Redis
// store gives the durable reload-on-read variant.
type SessionAuthenticator struct {
	base
	userRepo    users.Repo
	sessionRepo sessions.Repo
}

func NewSession(userRepo users.Repo, sessionRepo sessions.Repo, cookieName string) (*SessionAuthenticator, error) {
	if userRepo == nil {
		return nil, errors.New("[NewSession] user repo is required")
	}
	if sessionRepo == nil {
		return nil, errors.New("[NewSession] session repo is required")
	}
	return &SessionAuthenticator{
		base:        newBase(cookieName),
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}, nil
}

// Sessions exposes the backing store for login/logout handlers.
func (a *SessionAuthenticator) Sessions() sessions.Repo {
	return a.sessionRepo
}

func (a *SessionAuthenticator) CurrentUser(r *http.Request) (*users.User, error) {
	sessionID := a.SessionCookie(r)
	if sessionID == "" {
		return nil, nil
	}

	userID, err := a.sessionRepo.Resolve(r.Context(), sessionID)
	if err != nil {
		if interrors.Is(err, interrors.ErrSessionNotFound) {
			return nil, nil
		}
		if interrors.Is(err, interrors.ErrSessionExpired) {
			return nil, interrors.ErrSessionExpired
		}
		return nil, errors.Wrap(err, "[SessionAuthenticator.CurrentUser] Resolve")
	}

	user, err := a.userRepo.FindBy(users.Filter{users.FieldID: userID})
	if err != nil {
		if interrors.Is(err, interrors.ErrNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "[SessionAuthenticator.CurrentUser] FindBy")
	}
	return user, nil
}
