package auth

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	interrors "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/users"
)

const basicPrefix = "Basic "

var _ Authenticator = (*BasicAuthenticator)(nil)

// BasicAuthenticator resolves identity from an HTTP Basic Authorization
// header checked against the credential store.
type BasicAuthenticator struct {
	base
	userRepo users.Repo
}

func NewBasic(userRepo users.Repo, cookieName string) (*BasicAuthenticator, error) {
	if userRepo == nil {
		return nil, errors.New("[NewBasic] user repo is required")
	}
	return &BasicAuthenticator{base: newBase(cookieName), userRepo: userRepo}, nil
}

func (a *BasicAuthenticator) CurrentUser(r *http.Request) (*users.User, error) {
	email, password, ok := extractCredentials(a.AuthorizationHeader(r))
	if !ok {
		return nil, nil
	}

	user, err := a.userRepo.FindBy(users.Filter{users.FieldEmail: email})
	if err != nil {
		if interrors.Is(err, interrors.ErrNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "[BasicAuthenticator.CurrentUser] FindBy")
	}

	if !user.CheckPasswordHash(password) {
		return nil, nil
	}
	return user, nil
}

// extractCredentials pulls (email, password) out of a Basic Authorization
// header. The credential string is split on the first colon only, so
// passwords may contain colons. Any malformed input - wrong prefix, bad
// base64, no colon - yields ok=false, never an error.
func extractCredentials(header string) (email, password string, ok bool) {
	if !strings.HasPrefix(header, basicPrefix) {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, basicPrefix))
	if err != nil {
		return "", "", false
	}
	if len(decoded) == 0 {
		return "", "", false
	}

	email, password, found := strings.Cut(string(decoded), ":")
	if !found {
		return "", "", false
	}
	return email, password, true
}
