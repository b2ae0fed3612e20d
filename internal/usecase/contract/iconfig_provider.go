package usecasecontract

import "time"

// IConfigProvider exposes the settings usecases need.
type IConfigProvider interface {
	GetAppBaseURL() string
	GetSendActivationEmail() bool
	GetTokenExpiry() time.Duration
	GetPasswordResetTokenExpiry() time.Duration
	GetEmailVerificationTokenExpiry() time.Duration
	IsDevelopment() bool
}
