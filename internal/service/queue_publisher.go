// Package queue_publisher publishes domain events to RabbitMQ.  Handlers
// call it after a successful commit and log the returned error, so a
// broker outage never fails a request.  The publisher itself does not
// log.
package queue_publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/fyyur/internal/queue"
)

// dialTimeout bounds how long a create request waits on an unreachable
// broker.
const dialTimeout = time.Second

// Publisher sends listing events somewhere.
type Publisher interface {
	PublishListingCreated(ctx context.Context, event q.ListingCreatedEvent) error
}

// AMQPPublisher dials the broker for every publish.  Listings are
// created rarely enough that a long-lived channel is not worth its
// reconnect handling.
type AMQPPublisher struct {
	url string
}

// NewAMQPPublisher returns a publisher for the broker at url.
func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{url: url}
}

// PublishListingCreated publishes event to the listing.created queue as a
// persistent JSON message.
func (p *AMQPPublisher) PublishListingCreated(ctx context.Context, event q.ListingCreatedEvent) error {
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(dialTimeout),
	})
	if err != nil {
		return fmt.Errorf("rabbitmq: dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq: open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		q.ListingCreatedQueue, // name
		true,                  // durable
		false,                 // autoDelete
		false,                 // exclusive
		false,                 // noWait
		nil,                   // args
	); err != nil {
		return fmt.Errorf("rabbitmq: declare %s: %w", q.ListingCreatedQueue, err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event.Kind, err)
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",                    // default exchange
		q.ListingCreatedQueue, // routing key = queue name
		false,                 // mandatory
		false,                 // immediate
		pub,
	); err != nil {
		return fmt.Errorf("rabbitmq: publish: %w", err)
	}
	return nil
}

// NopPublisher drops every event.  It is used when the broker is
// disabled.
type NopPublisher struct{}

func (NopPublisher) PublishListingCreated(context.Context, q.ListingCreatedEvent) error { return nil }
