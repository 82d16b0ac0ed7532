package config

import "strconv"

// AuthConfig exposes the settings that drive authenticator selection and
// session behaviour.
type AuthConfig interface {
	// GetAuthType selects the authenticator strategy at startup. One of
	// "", "none", "basic_auth", "session_auth", "session_exp_auth",
	// "session_db_auth".
	GetAuthType() string

	// GetSessionCookieName is the cookie carrying the session identifier
	// on the gated API surface.
	GetSessionCookieName() string

	// GetSessionDuration is the session lifetime in seconds. Zero (or an
	// unparsable value) means sessions never expire.
	GetSessionDuration() int

	// GetServiceCookieName is the cookie used by the standalone
	// user-authentication service surface.
	GetServiceCookieName() string
}

type Auth struct{}

var _ AuthConfig = Auth{}

func (Auth) GetAuthType() string {
	return GetEnv("AUTH_TYPE", "")
}

func (Auth) GetSessionCookieName() string {
	return GetEnv("SESSION_NAME", "_my_session_id")
}

func (Auth) GetSessionDuration() int {
	seconds, err := strconv.Atoi(GetEnv("SESSION_DURATION", "0"))
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds
}

func (Auth) GetServiceCookieName() string {
	return GetEnv("AUTH_COOKIE_NAME", "session_id")
}
