package users

import (
	interrors "github.com/jrsteele09/go-session-auth/internal/errors"
)

// Field names accepted by Repo lookups and partial updates. Any other key
// fails fast with ErrInvalidFilter rather than being silently ignored - a
// typo'd lookup key is a programmer error, not an empty result.
const (
	FieldID           = "id"
	FieldEmail        = "email"
	FieldPasswordHash = "hashed_password"
	FieldSessionID    = "session_id"
	FieldResetToken   = "reset_token"
)

var lookupFields = map[string]bool{
	FieldID:         true,
	FieldEmail:      true,
	FieldSessionID:  true,
	FieldResetToken: true,
}

var updateFields = map[string]bool{
	FieldEmail:        true,
	FieldPasswordHash: true,
	FieldSessionID:    true,
	FieldResetToken:   true,
}

// Filter selects users by exact match on one or more fields (ANDed).
type Filter map[string]string

// Fields holds a partial update. Unlisted fields are left untouched;
// an empty string value clears the field.
type Fields map[string]string

// Validate checks that every filter key is a known lookup field.
func (f Filter) Validate() error {
	if len(f) == 0 {
		return interrors.ErrInvalidFilter
	}
	for key := range f {
		if !lookupFields[key] {
			return interrors.Wrapf(interrors.ErrInvalidFilter, "[Filter.Validate] %q", key)
		}
	}
	return nil
}

// Matches reports whether u satisfies every field of the filter.
func (f Filter) Matches(u *User) bool {
	for key, value := range f {
		switch key {
		case FieldID:
			if u.ID != value {
				return false
			}
		case FieldEmail:
			if u.Email != value {
				return false
			}
		case FieldSessionID:
			if u.SessionID == "" || u.SessionID != value {
				return false
			}
		case FieldResetToken:
			if u.ResetToken == "" || u.ResetToken != value {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Validate checks that every update key is a known mutable field.
func (f Fields) Validate() error {
	if len(f) == 0 {
		return interrors.ErrInvalidFilter
	}
	for key := range f {
		if !updateFields[key] {
			return interrors.Wrapf(interrors.ErrInvalidFilter, "[Fields.Validate] %q", key)
		}
	}
	return nil
}

// Apply writes the update onto u.
func (f Fields) Apply(u *User) {
	for key, value := range f {
		switch key {
		case FieldEmail:
			u.Email = value
		case FieldPasswordHash:
			u.PasswordHash = value
		case FieldSessionID:
			u.SessionID = value
		case FieldResetToken:
			u.ResetToken = value
		}
	}
}
