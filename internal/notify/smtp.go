package notify

import (
	"context"
	"fmt"

	"roomdesk-backend/internal/logger"

	"gopkg.in/gomail.v2"
)

type smtpSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPNotifier delivers through a plain SMTP relay.
func NewSMTPNotifier(host string, port int, username, password, from, property string) Notifier {
	return &mailer{
		property: property,
		sender:   &smtpSender{host: host, port: port, username: username, password: password, from: from},
	}
}

func (s *smtpSender) send(ctx context.Context, m Message) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetAddressHeader("To", m.ToEmail, m.ToName)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Body)

	logger.ExternalServiceCall("smtp", "DialAndSend", "host", s.host, "to", m.ToEmail)
	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(msg); err != nil {
		logger.ExternalServiceResult("smtp", "DialAndSend", err)
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}
