package entity

import "time"

// TokenType distinguishes single-use tokens stored in the tokens collection.
type TokenType string

const (
	TokenTypePasswordReset     TokenType = "password_reset"
	TokenTypeEmailVerification TokenType = "email_verification"
)

// Token is a hashed, verifier-addressed, expiring token mailed to a user.
type Token struct {
	ID        string
	UserID    string
	TokenType TokenType
	TokenHash string
	Verifier  string
	CreatedAt time.Time
	ExpiresAt time.Time
	Revoked   bool
}

// Usable reports whether the token is neither revoked nor expired at now.
func (t *Token) Usable(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}
