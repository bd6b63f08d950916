package liveupdate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"logisticshub-service/pkg/logger"

	"github.com/rabbitmq/amqp091-go"
)

const (
	initialBackoff = 1 * time.Second
	maxBackoff     = 30 * time.Second
)

// Subscriber consumes live-update envelopes from an AMQP queue and hands
// each raw payload to a handler. After a transport error the subscription is
// re-established with exponential backoff.
type Subscriber struct {
	url    string
	queue  string
	logger logger.Logger
}

// NewSubscriber creates a new AMQP subscriber for the given broker URL and
// queue
func NewSubscriber(url, queue string, logger logger.Logger) *Subscriber {
	return &Subscriber{
		url:    url,
		queue:  queue,
		logger: logger,
	}
}

// Run blocks until ctx is cancelled, consuming messages and invoking
// handler for each delivery. Handler failures nack the message without
// requeueing; they never tear down the subscription.
func (s *Subscriber) Run(ctx context.Context, handler func([]byte) error) {
	backoff := initialBackoff

	for {
		started := time.Now()
		err := s.consume(ctx, handler)
		if err == nil {
			// context cancelled, clean shutdown
			return
		}

		// a connection that survived past the backoff window counts as
		// healthy, so the next retry starts fresh
		if time.Since(started) > maxBackoff {
			backoff = initialBackoff
		}

		s.logger.Error("live-update channel disconnected", "error", err, "retry_in", backoff.String())

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

// consume opens a connection, subscribes to the queue and processes
// deliveries until the context is cancelled or the transport fails
func (s *Subscriber) consume(ctx context.Context, handler func([]byte) error) error {
	conn, err := amqp091.Dial(s.url)
	if err != nil {
		return fmt.Errorf("failed to dial: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to create channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(
		s.queue, // queue name
		true,    // durable
		false,   // auto-delete
		false,   // exclusive
		false,   // no-wait
		nil,     // arguments
	); err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	msgs, err := ch.Consume(
		s.queue, // queue name
		"",      // consumer name (empty for auto-generation)
		false,   // auto-ack
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	s.logger.Info("subscribed to live-update queue", "queue", s.queue)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("stopping live-update consumption")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}

			if err := handler(msg.Body); err != nil {
				s.logger.Error("failed to process live update", "error", err)
				if nackErr := msg.Nack(false, false); nackErr != nil {
					s.logger.Error("failed to nack live update", "error", nackErr)
				}
				continue
			}

			if err := msg.Ack(false); err != nil {
				s.logger.Error("failed to ack live update", "error", err)
			}
		}
	}
}
