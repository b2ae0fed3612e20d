package contract

import "context"

// IHasher hashes passwords and single-use tokens.
type IHasher interface {
	HashPassword(password string) (string, error)
	ComparePasswordHash(password, hashedPassword string) error
	HashString(s string) string
	CheckHash(s, hash string) bool
}

// IEmailService delivers plain mail.
type IEmailService interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

type IUUIDGenerator interface {
	NewUUID() string
}

type IRandomGenerator interface {
	GenerateRandomToken(n int) (string, error)
}
