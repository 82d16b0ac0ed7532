package server_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-session-auth/auth"
	"github.com/jrsteele09/go-session-auth/authsvc"
	"github.com/jrsteele09/go-session-auth/internal/config"
	"github.com/jrsteele09/go-session-auth/server"
	"github.com/jrsteele09/go-session-auth/sessions/memstore"
	"github.com/jrsteele09/go-session-auth/users"
	"github.com/jrsteele09/go-session-auth/users/inmemoryrepo"
)

type fixture struct {
	repo *inmemoryrepo.Repo
	srv  *server.Server
}

// newFixture builds a server around the given authenticator factory so each
// test picks its strategy while sharing one credential store.
func newFixture(t *testing.T, buildAuth func(repo users.Repo) auth.Authenticator) *fixture {
	t.Helper()

	repo := inmemoryrepo.New()
	accounts, err := authsvc.New(repo)
	require.NoError(t, err)

	srv, err := server.New(config.New(), buildAuth(repo), accounts, repo)
	require.NoError(t, err)

	return &fixture{repo: repo, srv: srv}
}

func noneAuth(users.Repo) auth.Authenticator {
	return auth.NewNone("")
}

func basicAuth(repo users.Repo) auth.Authenticator {
	authenticator, _ := auth.NewBasic(repo, "")
	return authenticator
}

func sessionAuth(repo users.Repo) auth.Authenticator {
	authenticator, _ := auth.NewSession(repo, memstore.New(0), "")
	return authenticator
}

func (f *fixture) do(t *testing.T, method, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var r *http.Request
	if form != nil {
		r = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	for _, cookie := range cookies {
		r.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	f.srv.ServeHTTP(rec, r)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	body := map[string]string{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func credentialsForm(email, password string) url.Values {
	return url.Values{"email": {email}, "password": {password}}
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	t.Fatalf("response carries no %q cookie", name)
	return nil
}

func TestWelcomeAndNotFound(t *testing.T) {
	f := newFixture(t, noneAuth)

	rec := f.do(t, "GET", "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Bienvenue", decodeBody(t, rec)["message"])

	rec = f.do(t, "GET", "/no/such/route", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Not found", decodeBody(t, rec)["error"])
}

func TestStandaloneServiceFlow(t *testing.T) {
	f := newFixture(t, noneAuth)

	// Register
	rec := f.do(t, "POST", "/users", credentialsForm("a@x.com", "secret"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "user created", decodeBody(t, rec)["message"])

	// Duplicate registration
	rec = f.do(t, "POST", "/users", credentialsForm("a@x.com", "secret"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "email already registered", decodeBody(t, rec)["message"])

	// Wrong password
	rec = f.do(t, "POST", "/sessions", credentialsForm("a@x.com", "wrong"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Unauthorized", decodeBody(t, rec)["error"])

	// Login
	rec = f.do(t, "POST", "/sessions", credentialsForm("a@x.com", "secret"))
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(t, rec, "session_id")
	require.NotEmpty(t, cookie.Value)

	// Profile with the session cookie
	rec = f.do(t, "GET", "/profile", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "a@x.com", decodeBody(t, rec)["email"])

	// Logout redirects home
	rec = f.do(t, "DELETE", "/sessions", nil, cookie)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))

	// The destroyed session no longer resolves
	rec = f.do(t, "GET", "/profile", nil, cookie)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "Forbidden", decodeBody(t, rec)["error"])
}

func TestStandaloneServiceRejections(t *testing.T) {
	f := newFixture(t, noneAuth)

	rec := f.do(t, "POST", "/users", url.Values{"email": {"a@x.com"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, "GET", "/profile", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, "DELETE", "/sessions", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestResetPasswordFlow(t *testing.T) {
	f := newFixture(t, noneAuth)

	rec := f.do(t, "POST", "/users", credentialsForm("a@x.com", "secret"))
	require.Equal(t, http.StatusOK, rec.Code)

	// Unknown email cannot request a token
	rec = f.do(t, "POST", "/reset_password", url.Values{"email": {"nobody@x.com"}})
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Request a token
	rec = f.do(t, "POST", "/reset_password", url.Values{"email": {"a@x.com"}})
	require.Equal(t, http.StatusOK, rec.Code)
	resetToken := decodeBody(t, rec)["reset_token"]
	require.NotEmpty(t, resetToken)

	// Update the password
	rec = f.do(t, "PUT", "/reset_password", url.Values{
		"email":        {"a@x.com"},
		"reset_token":  {resetToken},
		"new_password": {"NewSecret456"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Password updated", decodeBody(t, rec)["message"])

	// Old password fails, new one works
	rec = f.do(t, "POST", "/sessions", credentialsForm("a@x.com", "secret"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = f.do(t, "POST", "/sessions", credentialsForm("a@x.com", "NewSecret456"))
	require.Equal(t, http.StatusOK, rec.Code)

	// The consumed token is single-use
	rec = f.do(t, "PUT", "/reset_password", url.Values{
		"email":        {"a@x.com"},
		"reset_token":  {resetToken},
		"new_password": {"AnotherSecret789"},
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGateExcludedPaths(t *testing.T) {
	f := newFixture(t, noneAuth)

	rec := f.do(t, "GET", "/api/v1/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", decodeBody(t, rec)["status"])

	rec = f.do(t, "GET", "/api/v1/unauthorized", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, "GET", "/api/v1/forbidden", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGate401Versus403(t *testing.T) {
	f := newFixture(t, basicAuth)

	// No credentials offered at all
	rec := f.do(t, "GET", "/api/v1/users/me", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Unauthorized", decodeBody(t, rec)["error"])

	// Credentials offered but invalid
	r := httptest.NewRequest("GET", "/api/v1/users/me", nil)
	r.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("a@x.com:wrong")))
	rec = httptest.NewRecorder()
	f.srv.ServeHTTP(rec, r)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "Forbidden", decodeBody(t, rec)["error"])
}

func TestGateBasicAuth(t *testing.T) {
	f := newFixture(t, basicAuth)

	passwordHash, err := users.HashPassword("secret")
	require.NoError(t, err)
	_, err = f.repo.Add("a@x.com", passwordHash)
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/api/v1/users/me", nil)
	r.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("a@x.com:secret")))
	rec := httptest.NewRecorder()
	f.srv.ServeHTTP(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "a@x.com", decodeBody(t, rec)["email"])
}

func TestGateSessionAuthFlow(t *testing.T) {
	f := newFixture(t, sessionAuth)

	rec := f.do(t, "POST", "/users", credentialsForm("a@x.com", "secret"))
	require.Equal(t, http.StatusOK, rec.Code)

	// Field validation on the session login route
	rec = f.do(t, "POST", "/api/v1/auth_session/login", url.Values{"password": {"secret"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "email missing", decodeBody(t, rec)["error"])

	rec = f.do(t, "POST", "/api/v1/auth_session/login", url.Values{"email": {"a@x.com"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "password missing", decodeBody(t, rec)["error"])

	rec = f.do(t, "POST", "/api/v1/auth_session/login", credentialsForm("nobody@x.com", "secret"))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, "POST", "/api/v1/auth_session/login", credentialsForm("a@x.com", "wrong"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Login issues the configured session cookie
	rec = f.do(t, "POST", "/api/v1/auth_session/login", credentialsForm("a@x.com", "secret"))
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(t, rec, auth.DefaultCookieName)

	rec = f.do(t, "GET", "/api/v1/users/me", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "a@x.com", decodeBody(t, rec)["email"])

	// Logout destroys the session; the cookie stops resolving
	rec = f.do(t, "DELETE", "/api/v1/auth_session/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, "GET", "/api/v1/users/me", nil, cookie)
	require.Equal(t, http.StatusForbidden, rec.Code)
}
