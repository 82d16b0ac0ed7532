package sessions

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	interrors "github.com/jrsteele09/go-session-auth/internal/errors"
)

// Session maps an opaque identifier to a user. The identifier carries no
// embedded meaning; it is only a lookup key.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

const idLength = 32 // 256 bits of entropy

// NewID generates a cryptographically random, unguessable session
// identifier.
func NewID() (string, error) {
	bytes := make([]byte, idLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", interrors.Wrapf(err, "[sessions.NewID] rand.Read")
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
