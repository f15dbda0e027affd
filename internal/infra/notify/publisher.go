package notify

import (
	"context"
	"log/slog"

	"facility-reservation/internal/pkg/config"
	"facility-reservation/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeKind = "topic"

// Publisher delivers outbox messages to downstream consumers (mail workers,
// calendar sync, audit feeds).
type Publisher interface {
	Publish(ctx context.Context, topic string, body []byte) error
	Close() error
}

type AMQPPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewAMQPPublisher(cfg config.AMQPConfig) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, errs.Wrap(err, "amqp dial")
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errs.Wrap(err, "amqp channel")
	}

	if err := ch.ExchangeDeclare(cfg.Exchange, exchangeKind, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, errs.Wrap(err, "amqp exchange declare")
	}

	return &AMQPPublisher{conn: conn, channel: ch, exchange: cfg.Exchange}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, topic string, body []byte) error {
	err := p.channel.PublishWithContext(ctx,
		p.exchange,
		topic,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return errs.Wrap(err, "amqp publish")
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// LogPublisher stands in when no broker is configured, keeping the outbox
// draining in development and tests.
type LogPublisher struct{}

func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

func (p *LogPublisher) Publish(_ context.Context, topic string, body []byte) error {
	slog.Info("notification published", "topic", topic, "payload", string(body))
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}

// NewPublisher picks the AMQP publisher when a broker URL is configured and
// falls back to log-only delivery otherwise.
func NewPublisher(cfg config.AMQPConfig) (Publisher, error) {
	if cfg.URL == "" {
		return NewLogPublisher(), nil
	}
	return NewAMQPPublisher(cfg)
}
