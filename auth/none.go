package auth

import (
	"net/http"

	"github.com/jrsteele09/go-session-auth/users"
)

var _ Authenticator = (*NoneAuthenticator)(nil)

// NoneAuthenticator never resolves an identity. It is the default strategy
// when no AUTH_TYPE is configured: every non-excluded path is rejected.
type NoneAuthenticator struct {
	base
}

func NewNone(cookieName string) *NoneAuthenticator {
	return &NoneAuthenticator{base: newBase(cookieName)}
}

func (*NoneAuthenticator) CurrentUser(*http.Request) (*users.User, error) {
	return nil, nil
}
