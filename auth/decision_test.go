package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-session-auth/auth"
	"github.com/jrsteele09/go-session-auth/sessions/memstore"
)

var gateExcludedPaths = []string{"/api/v1/status/", "/api/v1/auth_session/login/"}

func TestDecideExcludedPath(t *testing.T) {
	authenticator := auth.NewNone("")
	r := requestWithHeader("")
	r.URL.Path = "/api/v1/status"

	decision, err := auth.Decide(authenticator, r, gateExcludedPaths)
	require.NoError(t, err)
	require.True(t, decision.Authenticated)
	require.Equal(t, auth.ReasonNoneRequired, decision.Reason)
	require.Nil(t, decision.User)
}

func TestDecideNoCredentials(t *testing.T) {
	authenticator := auth.NewNone("")

	decision, err := auth.Decide(authenticator, requestWithHeader(""), gateExcludedPaths)
	require.NoError(t, err)
	require.False(t, decision.Authenticated)
	require.Equal(t, auth.ReasonNoCredentials, decision.Reason)
}

func TestDecideInvalidCredentials(t *testing.T) {
	authenticator, _ := newBasicFixture(t)

	decision, err := auth.Decide(authenticator, requestWithHeader(basicHeader(testUserEmail+":wrong")), gateExcludedPaths)
	require.NoError(t, err)
	require.False(t, decision.Authenticated)
	require.Equal(t, auth.ReasonInvalidCredentials, decision.Reason)
}

func TestDecideOK(t *testing.T) {
	authenticator, _ := newBasicFixture(t)

	decision, err := auth.Decide(authenticator, requestWithHeader(basicHeader(testUserEmail+":"+testUserPassword)), gateExcludedPaths)
	require.NoError(t, err)
	require.True(t, decision.Authenticated)
	require.Equal(t, auth.ReasonOK, decision.Reason)
	require.NotNil(t, decision.User)
	require.Equal(t, testUserEmail, decision.User.Email)
}

func TestDecideExpiredSession(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	store := memstore.New(30*time.Second, memstore.WithNowTime(func() time.Time { return now }))
	f := newSessionFixture(t, store)

	sessionID, err := f.store.Create(context.Background(), f.userID)
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	decision, err := auth.Decide(f.authenticator, requestWithSessionCookie(sessionID), gateExcludedPaths)
	require.NoError(t, err)
	require.False(t, decision.Authenticated)
	require.Equal(t, auth.ReasonExpired, decision.Reason)
}

func TestDecisionsAreIndependent(t *testing.T) {
	authenticator, _ := newBasicFixture(t)

	good := requestWithHeader(basicHeader(testUserEmail + ":" + testUserPassword))
	bad := requestWithHeader(basicHeader(testUserEmail + ":wrong"))

	goodDecision, err := auth.Decide(authenticator, good, gateExcludedPaths)
	require.NoError(t, err)
	badDecision, err := auth.Decide(authenticator, bad, gateExcludedPaths)
	require.NoError(t, err)

	require.True(t, goodDecision.Authenticated)
	require.False(t, badDecision.Authenticated)
}
