// Package notify publishes application workflow notifications to RabbitMQ.
// Publishing is strictly best-effort: a broker failure is logged and never
// propagates into the request that triggered it.
package notify

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/rantai-skena/booking-api/internal/model"
	"github.com/rantai-skena/booking-api/internal/queue"
)

// Publisher implements handler.Notifier over RabbitMQ. A fresh connection is
// dialed per publish; the notification volume here (one message per apply or
// status change) does not justify connection management.
type Publisher struct {
	url string
}

// NewPublisher returns a Publisher for the given broker URL, or nil when the
// URL is empty so callers can treat the broker as disabled.
func NewPublisher(url string) *Publisher {
	if url == "" {
		return nil
	}
	return &Publisher{url: url}
}

// ApplicationSubmitted publishes to the application.submitted queue.
func (p *Publisher) ApplicationSubmitted(ctx context.Context, app model.Application) {
	p.publish(ctx, queue.SubmittedQueue, app)
}

// ApplicationStatusChanged publishes to the application.status_changed queue.
func (p *Publisher) ApplicationStatusChanged(ctx context.Context, app model.Application) {
	p.publish(ctx, queue.StatusChangedQueue, app)
}

func (p *Publisher) publish(ctx context.Context, queueName string, app model.Application) {
	n := queue.ApplicationNotification{
		ApplicationID: app.ID,
		EventID:       app.EventID,
		ArtistID:      app.ArtistID,
		Status:        app.Status,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	body, err := json.Marshal(n)
	if err != nil {
		logrus.WithError(err).Error("notify: marshal notification")
		return
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		logrus.WithError(err).Warn("notify: dial broker")
		return
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logrus.WithError(err).Warn("notify: open channel")
		return
	}
	defer func() { _ = ch.Close() }()

	// Durable queue, persistent message: notifications survive broker restarts.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		logrus.WithError(err).Warn("notify: declare queue")
		return
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		logrus.WithError(err).Warn("notify: publish")
	}
}
