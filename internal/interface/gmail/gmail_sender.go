package gmail

import (
	"context"
	"encoding/base64"
	"fmt"

	"bookcast-service/internal/domain/entity"
	"bookcast-service/internal/domain/repository"
	"bookcast-service/pkg/logger"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailSender delivers outbound email through the Gmail API
type GmailSender struct {
	gmailService *gmail.Service
	logger       logger.Logger
}

// NewGmailSender creates a new Gmail sender
func NewGmailSender(ctx context.Context, tokenSource oauth2.TokenSource, logger logger.Logger) (repository.MailRepository, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}

	return &GmailSender{
		gmailService: service,
		logger:       logger,
	}, nil
}

// Send delivers a single plain-text email
func (s *GmailSender) Send(ctx context.Context, email *entity.OutboundEmail) error {
	raw := buildMessage(email)

	msg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	_, err := s.gmailService.Users.Messages.Send("me", msg).Context(ctx).Do()
	if err != nil {
		s.logger.Error("Failed to send email",
			"to", email.To,
			"subject", email.Subject,
			"error", err)
		return fmt.Errorf("gmail send: %w", err)
	}

	s.logger.Info("Email sent", "to", email.To, "subject", email.Subject)
	return nil
}

// buildMessage assembles a minimal RFC 5322 plain-text message
func buildMessage(email *entity.OutboundEmail) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		email.From,
		email.To,
		email.Subject,
		email.Body,
	)
}
