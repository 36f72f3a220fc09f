package notification

import (
	"context"
	"fmt"

	"rfq-intake/internal/common/config"
	"rfq-intake/internal/common/logger"
	"rfq-intake/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Sender delivers one rendered notification over the enabled channels. Email
// goes out for every entry with a known address; SMS only when the entry is
// high priority.
type Sender struct {
	cfg config.NotificationConfig
	ses SESService
	sns SNSService
	log logger.Logger
}

func NewSender(cfg config.NotificationConfig, sesClient SESService, snsClient SNSService, log logger.Logger) *Sender {
	return &Sender{cfg: cfg, ses: sesClient, sns: snsClient, log: log}
}

// Send delivers the entry to the given contact. It returns an error only when
// an enabled channel with a usable address fails; a recipient without any
// contact info is a no-op, not a failure.
func (s *Sender) Send(ctx context.Context, entry models.OutboxEntry, email, phone string) error {
	msg := render(entry)

	if s.cfg.Email.Enabled && email != "" {
		if err := s.sendEmail(ctx, email, msg.Subject, msg.Body); err != nil {
			return fmt.Errorf("send email: %w", err)
		}
	}

	if s.cfg.SMS.Enabled && phone != "" && entry.Priority == models.PriorityHigh {
		if err := s.sendSMS(ctx, phone, msg.Body); err != nil {
			return fmt.Errorf("send sms: %w", err)
		}
	}
	return nil
}

func (s *Sender) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := s.ses.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
				Html: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(s.cfg.Email.FromEmail),
	})
	return err
}

func (s *Sender) sendSMS(ctx context.Context, to, message string) error {
	_, err := s.sns.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	})
	return err
}
