package gmail

import (
	"context"
	"encoding/base64"
	"fmt"

	"checkin-service/internal/domain/entity"
	"checkin-service/internal/domain/repository"
	"checkin-service/pkg/logger"
	"checkin-service/templates"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Notifier sends reservation notifications through the Gmail API
type Notifier struct {
	gmailService *gmail.Service
	from         string
	to           string
	logger       logger.Logger
}

// NewNotifier creates a new Gmail notifier
func NewNotifier(ctx context.Context, tokenSource oauth2.TokenSource, from, to string, logger logger.Logger) (repository.NotificationRepository, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}

	return &Notifier{
		gmailService: service,
		from:         from,
		to:           to,
		logger:       logger,
	}, nil
}

// ReservationCreated sends the new-reservation email. Failures are the
// caller's to log; they never affect the ingested reservation.
func (n *Notifier) ReservationCreated(ctx context.Context, reservation *entity.Reservation) error {
	subject, body := templates.ReservationCreated(reservation)

	raw := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		n.from, n.to, subject, body)

	message := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	_, err := n.gmailService.Users.Messages.Send("me", message).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to send reservation email: %w", err)
	}

	n.logger.Info("Reservation email sent",
		"confirmationNumber", reservation.ConfirmationNumber,
		"to", n.to)

	return nil
}
