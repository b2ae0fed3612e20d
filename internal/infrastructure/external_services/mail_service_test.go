package external_services

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendEmailBuildsMessage(t *testing.T) {
	es := NewEmailService("smtp.example.com", "587", "user", "pass", "noreply@taketravel.com")

	var gotAddr string
	var gotTo []string
	var gotMsg []byte
	es.send = func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, msg
		return nil
	}

	err := es.SendEmail(context.Background(), "traveler@example.com", "Your password reset token", "reset here")
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"traveler@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Your password reset token\r\n")
	assert.Contains(t, string(gotMsg), "reset here")
}

func TestSendEmailWrapsTransportError(t *testing.T) {
	es := NewEmailService("smtp.example.com", "587", "user", "pass", "noreply@taketravel.com")
	boom := errors.New("connection refused")
	es.send = func(string, smtp.Auth, string, []string, []byte) error { return boom }

	err := es.SendEmail(context.Background(), "a@b.com", "s", "b")
	assert.ErrorIs(t, err, boom)
}

func TestSendEmailUnconfigured(t *testing.T) {
	es := NewEmailService("", "", "", "", "")
	assert.Error(t, es.SendEmail(context.Background(), "a@b.com", "s", "b"))
}
