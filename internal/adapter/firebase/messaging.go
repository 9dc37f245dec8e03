package firebase

import (
	"context"
	"fmt"
	"log/slog"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/otcampus/campus-feeds/internal/domain"
)

// Notifier implements pipeline.Notifier on Firebase Cloud Messaging.
type Notifier struct {
	client *messaging.Client
	logger *slog.Logger
}

// NewNotifier creates the FCM-backed push notifier.
func NewNotifier(ctx context.Context, app *firebase.App, logger *slog.Logger) (*Notifier, error) {
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize messaging client: %w", err)
	}
	return &Notifier{client: client, logger: logger}, nil
}

// Send dispatches one notification to a topic. A nil return means FCM
// accepted the message, not that every device received it.
func (n *Notifier) Send(ctx context.Context, topic, title, body string, data map[string]string) error {
	id, err := n.client.Send(ctx, &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	})
	if err != nil {
		return domain.DispatchError(err)
	}
	n.logger.Debug("notification accepted", "topic", topic, "messageId", id)
	return nil
}
