// Package queue contains the background consumer that listens to the
// listing.created queue and appends one line per event to an activity
// log file.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// DefaultActivityLog is where the consumer writes when no path is given.
var DefaultActivityLog = filepath.Join("logs", "activity.log")

// Consumer drains ListingCreatedQueue into an activity log.
type Consumer struct {
	url     string
	logPath string
	log     zerolog.Logger
}

// NewConsumer returns a consumer for the broker at url.  An empty
// logPath selects DefaultActivityLog.
func NewConsumer(url, logPath string, logger zerolog.Logger) *Consumer {
	if logPath == "" {
		logPath = DefaultActivityLog
	}
	return &Consumer{
		url:     url,
		logPath: logPath,
		log:     logger.With().Str("component", "activity-consumer").Logger(),
	}
}

// Run connects to RabbitMQ, declares the queue and consumes until ctx
// is cancelled.  Broker failures trigger a reconnect with exponential
// backoff capped at 30s; Run only returns once ctx is done.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn().Err(err).Dur("retry_in", backoff).Msg("failed to dial broker")
			if !sleep(ctx, backoff) {
				return nil
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return nil
		}
		c.log.Warn().Err(err).Msg("consume loop ended, reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return nil
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.log.Warn().Err(err).Msg("set QoS failed")
	}
	if _, err := ch.QueueDeclare(ListingCreatedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(ListingCreatedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.handleMessage(d.Body); err != nil {
				c.log.Error().Err(err).Msg("handle message failed")
				_ = d.Nack(false, false) // no requeue, avoids a poison loop
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handleMessage(body []byte) error {
	var ev ListingCreatedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	switch ev.Kind {
	case KindVenue, KindArtist, KindShow:
	default:
		return fmt.Errorf("unknown listing kind %q", ev.Kind)
	}
	if err := os.MkdirAll(filepath.Dir(c.logPath), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(c.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(formatLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// formatLine renders ev as a single human readable log line.
func formatLine(ev ListingCreatedEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s listed | id=%d | name=%q", ev.CreatedAt, strings.ToUpper(ev.Kind[:1])+ev.Kind[1:], ev.ID, ev.Name)
	if ev.Kind == KindShow {
		fmt.Fprintf(&b, " | artist_id=%d | venue_id=%d | start_time=%s", ev.ArtistID, ev.VenueID, ev.StartTime)
	}
	b.WriteByte('\n')
	return b.String()
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
