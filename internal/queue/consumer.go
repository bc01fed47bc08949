package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// StartConsumer connects to RabbitMQ at url, declares both application
// queues (durable) and consumes them, appending each notification to
// logs/applications.log. It runs a reconnect loop with capped backoff and
// never returns under normal operation; processing errors are logged and
// the offending message rejected so the service keeps running.
func StartConsumer(url string) error {
	if url == "" {
		return errors.New("empty broker url")
	}
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			logrus.WithError(err).Warnf("consumer: dial failed; retrying in %s", backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(conn); err != nil {
			logrus.WithError(err).Warn("consumer: loop ended; reconnecting")
			_ = conn.Close()
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		logrus.WithError(err).Warn("consumer: set QoS failed")
	}

	deliveries := make(chan amqp.Delivery)
	// done releases the forwarding goroutines once this loop returns, so a
	// reconnect cycle does not leak a sender blocked on deliveries.
	done := make(chan struct{})
	defer close(done)
	for _, name := range []string{SubmittedQueue, StatusChangedQueue} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", name, err)
		}
		msgs, err := ch.Consume(name, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("queue consume %s: %w", name, err)
		}
		go func(in <-chan amqp.Delivery) {
			// RoutingKey equals the queue name on the default exchange.
			for d := range in {
				select {
				case deliveries <- d:
				case <-done:
					return
				}
			}
		}(msgs)
	}

	closed := make(chan *amqp.Error, 1)
	conn.NotifyClose(closed)
	for {
		select {
		case d := <-deliveries:
			if err := handleMessage(d.RoutingKey, d.Body); err != nil {
				logrus.WithError(err).Warn("consumer: handle message failed")
				_ = d.Nack(false, false) // drop, do not requeue into a tight loop
				continue
			}
			_ = d.Ack(false)
		case err := <-closed:
			return fmt.Errorf("connection closed: %v", err)
		}
	}
}

func handleMessage(kind string, body []byte) error {
	var n ApplicationNotification
	if err := json.Unmarshal(body, &n); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join("logs", "applications.log"),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] %s | application_id=%s | event_id=%s | artist_id=%s | status=%s\n",
		n.OccurredAt, kind, n.ApplicationID, n.EventID, n.ArtistID, n.Status)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
