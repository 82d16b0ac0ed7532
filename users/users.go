package users

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           string    `json:"id,omitempty"`    // Unique identifier for the user
	Email        string    `json:"email,omitempty"` // User's email address
	PasswordHash string    `json:"-"`               // Hashed version of the user's password - never serialize
	SessionID    string    `json:"-"`               // Live session identifier (standalone service surface)
	ResetToken   string    `json:"-"`               // Single-use password reset token
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// HashPassword hashes a plaintext password with bcrypt. The salt is
// randomized per call, so hashing the same password twice produces
// different encoded hashes.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash reports whether password matches hash. A malformed
// hash is treated as a mismatch, never an error.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CheckPasswordHash is a method that checks a password against the user's hash
func (u *User) CheckPasswordHash(password string) bool {
	return CheckPasswordHash(password, u.PasswordHash)
}
