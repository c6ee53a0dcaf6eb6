package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aaravmahajanofficial/inventory-service/internal/logging"
	"github.com/aaravmahajanofficial/inventory-service/internal/models"
	repository "github.com/aaravmahajanofficial/inventory-service/internal/repositories"
	"github.com/google/uuid"
)

// Mailer is an outbound transport (SendGrid, Kafka).
type Mailer interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// NotificationService is the Notifier used by the item service. Each attempt
// is recorded in the notifications table before it is handed to the Mailer.
type NotificationService interface {
	Notifier
}

type notificationService struct {
	repo    repository.NotificationRepository
	mailer  Mailer
	channel models.NotificationChannel
}

func NewNotificationService(repo repository.NotificationRepository, mailer Mailer, channel models.NotificationChannel) NotificationService {
	return &notificationService{repo: repo, mailer: mailer, channel: channel}
}

// Send implements Notifier.
func (n *notificationService) Send(ctx context.Context, recipient, subject, body string) error {

	logger := logging.FromContext(ctx)

	notification := &models.Notification{
		ID:        uuid.New(),
		Channel:   n.channel,
		Recipient: recipient,
		Subject:   subject,
		Content:   body,
		Status:    models.StatusPending,
	}

	// Save to the database
	if err := n.repo.CreateNotification(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification record: %w", err)
	}

	if err := n.mailer.Send(ctx, recipient, subject, body); err != nil {

		if updateErr := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusFailed, err.Error()); updateErr != nil {
			logger.Warn("Failed to mark notification as failed", slog.String("notification_id", notification.ID.String()), slog.Any("error", updateErr))
		}

		return fmt.Errorf("failed to send notification: %w", err)
	}

	if err := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusSent, ""); err != nil {
		return fmt.Errorf("notification sent successfully but failed to update notification status: %w", err)
	}

	logger.Info("Notification sent", slog.String("notification_id", notification.ID.String()), slog.String("channel", string(n.channel)))

	return nil
}
