package external_services

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/mikiasgoitom/TakeTravel/internal/domain/contract"
)

// EmailService sends plain text mail through an SMTP relay.
type EmailService struct {
	Host        string
	Port        string
	Username    string
	AppPassword string
	From        string
	send        func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmailService(host, port, username, appPassword, from string) *EmailService {
	return &EmailService{
		Host:        host,
		Port:        port,
		Username:    username,
		AppPassword: appPassword,
		From:        from,
		send:        smtp.SendMail,
	}
}

var _ contract.IEmailService = (*EmailService)(nil)

// Configured reports whether an SMTP host is set.
func (es *EmailService) Configured() bool {
	return es.Host != ""
}

func (es *EmailService) SendEmail(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !es.Configured() {
		return fmt.Errorf("email service is not configured")
	}
	msg := []byte(buildMessage(es.From, to, subject, body))
	auth := smtp.PlainAuth("", es.Username, es.AppPassword, es.Host)
	addr := fmt.Sprintf("%s:%s", es.Host, es.Port)
	if err := es.send(addr, auth, es.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) string {
	return fmt.Sprintf(
		"To: %s\r\n"+
			"From: TakeTravel <%s>\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/plain; charset=\"utf-8\"\r\n"+
			"\r\n"+
			"%s\r\n",
		to, from, subject, body,
	)
}
