package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/avstrong/hotelserver/internal/booking"
	"github.com/avstrong/hotelserver/internal/logger"
)

const publishTimeout = 5 * time.Second

// Publisher sends booking events to a durable RabbitMQ queue. A connection
// is dialled per event and the whole exchange, from dial to publish, must
// finish within the publish timeout.
type Publisher struct {
	l       *logger.Logger
	url     string
	queue   string
	timeout time.Duration
}

// New returns a publisher. An empty url disables publishing.
func New(url, queue string, l *logger.Logger) *Publisher {
	return &Publisher{l: l, url: url, queue: queue, timeout: publishTimeout}
}

func (p *Publisher) Enabled() bool {
	return p.url != ""
}

func (p *Publisher) Publish(ctx context.Context, event *booking.Event) error {
	if !p.Enabled() {
		return nil
	}

	msg, err := message(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	// Closing the socket unblocks whichever broker call is in flight.
	sock := &socket{} //nolint:exhaustruct
	stop := context.AfterFunc(ctx, sock.close)

	defer stop()

	if err := p.publish(ctx, sock, event, msg); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", ctxErr, err)
		}

		return err
	}

	p.l.LogDebug("Published %s event %s to %s", event.Type, event.ID, p.queue)

	return nil
}

func (p *Publisher) publish(ctx context.Context, sock *socket, event *booking.Event, msg amqp.Publishing) error {
	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: sock.dial(p.timeout)}) //nolint:exhaustruct
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", p.queue, err)
	}

	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	return nil
}

// socket keeps the broker connection's net.Conn so it can be closed from
// another goroutine.
type socket struct {
	mu     sync.Mutex
	conn   net.Conn
	closed bool
}

func (s *socket) dial(timeout time.Duration) func(network, addr string) (net.Conn, error) {
	dial := amqp.DefaultDial(timeout)

	return func(network, addr string) (net.Conn, error) {
		conn, err := dial(network, addr)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		if s.closed {
			conn.Close()

			return nil, net.ErrClosed
		}

		s.conn = conn

		return conn, nil
	}
}

func (s *socket) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true

	if s.conn != nil {
		s.conn.Close()
	}
}

func message(event *booking.Event) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("encode event: %w", err)
	}

	//nolint:exhaustruct
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Type:         string(event.Type),
		Timestamp:    event.CreatedAt,
		Body:         body,
	}, nil
}
