package notify

import (
	"context"
	"fmt"

	"roomdesk-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridSender struct {
	apiKey    string
	fromEmail string
	fromName  string
}

// NewSendGridNotifier delivers through the SendGrid v3 API.
func NewSendGridNotifier(apiKey, fromEmail, fromName, property string) Notifier {
	return &mailer{
		property: property,
		sender:   &sendGridSender{apiKey: apiKey, fromEmail: fromEmail, fromName: fromName},
	}
}

func (s *sendGridSender) send(ctx context.Context, m Message) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(m.ToName, m.ToEmail)
	message := mail.NewSingleEmail(from, m.Subject, to, m.Body, "")

	logger.ExternalServiceCall("sendgrid", "Send", "to", m.ToEmail, "subject", m.Subject)
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "Send", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "Send", err)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "Send", nil, "status", response.StatusCode)
	return nil
}
