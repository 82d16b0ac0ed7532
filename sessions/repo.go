package sessions

import "context"

// Repo is the session store contract. Expiration is lazy: it is evaluated
// on every Resolve call, never swept in the background, so an expired
// session is indistinguishable from a never-issued one to callers.
type Repo interface {
	// Create issues a new session for userID and returns its identifier.
	// An empty userID yields an empty identifier without error - callers
	// treat the absence as "not authenticated".
	Create(ctx context.Context, userID string) (string, error)

	// Resolve returns the user owning sessionID. Unknown identifiers fail
	// with errors.ErrSessionNotFound; identifiers past their lifetime fail
	// with errors.ErrSessionExpired and are removed.
	Resolve(ctx context.Context, sessionID string) (string, error)

	// Destroy removes sessionID and reports whether it existed.
	Destroy(ctx context.Context, sessionID string) (bool, error)
}
