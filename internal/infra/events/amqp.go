// Package events publishes reservation lifecycle facts to RabbitMQ for
// downstream consumers (notifications, analytics). Publishing is
// fire-and-forget: the reservation change has already committed.
package events

import (
	"context"
	"encoding/json"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"tablebook/internal/pkg/config"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase/commands"
)

type AMQPPublisher struct {
	channel  *amqp.Channel
	exchange string
}

func NewAMQPPublisher(cfg config.AMQPConfig) (*AMQPPublisher, func(), error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to connect to rabbitmq")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, errs.Wrap(err, "failed to open rabbitmq channel")
	}
	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, errs.Wrap(err, "failed to declare exchange")
	}

	cleanup := func() {
		_ = ch.Close()
		_ = conn.Close()
	}
	return &AMQPPublisher{channel: ch, exchange: cfg.Exchange}, cleanup, nil
}

func (p *AMQPPublisher) PublishReservationEvent(ctx context.Context, ev commands.ReservationEvent) {
	body, err := json.Marshal(ev)
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode reservation event", "error", err)
		return
	}

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		"reservation."+ev.Event,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			MessageId:   ev.ReservationID.String(),
			Timestamp:   ev.OccurredAt,
			Body:        body,
		},
	)
	if err != nil {
		slog.ErrorContext(ctx, "failed to publish reservation event",
			"event", ev.Event, "reservation_id", ev.ReservationID, "error", err)
	}
}

// NoopPublisher is wired when AMQP is not configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishReservationEvent(context.Context, commands.ReservationEvent) {}
