// internal/adapters/out/mail/sendgrid_client.go
package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
)

// EmailClient abstracts the concrete mail transport (SendGrid, SMTP, ...).
type EmailClient interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// SendGridClient implements EmailClient via the SendGrid API.
type SendGridClient struct {
	apiKey string
	log    *logrus.Entry
}

func NewSendGridClient(apiKey string, log *logrus.Logger) *SendGridClient {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SendGridClient{
		apiKey: apiKey,
		log:    log.WithField("component", "sendgrid"),
	}
}

func (c *SendGridClient) Send(_ context.Context, from, to, subject, body string) error {
	if c.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if from == "" {
		return fmt.Errorf("from address is empty")
	}
	if to == "" {
		return fmt.Errorf("to address is empty")
	}

	fromEmail := sgmail.NewEmail("Storefront", from)
	toEmail := sgmail.NewEmail("", to)

	plainTextContent := body
	htmlContent := fmt.Sprintf("<pre>%s</pre>", body)

	message := sgmail.NewSingleEmail(fromEmail, subject, toEmail, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(c.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		c.log.WithFields(logrus.Fields{"status": response.StatusCode, "body": response.Body}).
			Error("sendgrid send failed")
		return fmt.Errorf("sendgrid send failed: status=%d", response.StatusCode)
	}

	c.log.WithFields(logrus.Fields{"status": response.StatusCode, "to": to, "subject": subject}).
		Info("mail sent")
	return nil
}
