package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageKind — тип сообщения в очереди.
type MessageKind string

// Типы сообщений.
const (
	MessageKindWorkItem   MessageKind = "work.item"
	MessageKindWorkResult MessageKind = "work.result"
)

// Envelope — каноническое самоописывающее представление сообщения.
//
// Формат field-tagged (не позиционный): потребитель, написанный
// независимо от производителя, десериализует сообщение без общего
// кода. Payload хранится как json.RawMessage, поэтому цикл
// serialize → deserialize → serialize байт-в-байт воспроизводит
// каноническую форму неизменённых данных.
type Envelope struct {
	// ID — уникальный идентификатор сообщения.
	ID string `json:"id"`

	// Kind — тип сообщения.
	Kind MessageKind `json:"kind"`

	// Payload — полезная нагрузка (каноническая JSON-форма).
	Payload json.RawMessage `json:"payload"`

	// Timestamp — время создания.
	Timestamp time.Time `json:"timestamp"`
}

// NewEnvelope создаёт Envelope для payload.
func NewEnvelope(kind MessageKind, payload json.RawMessage) *Envelope {
	return &Envelope{
		ID:        uuid.New().String(),
		Kind:      kind,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// Publisher публикует сообщения в RabbitMQ.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger
}

// NewPublisher создаёт новый Publisher.
func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: logger,
	}
}

// Publish публикует envelope в указанный exchange с routing key.
func (p *Publisher) Publish(ctx context.Context, exchange Exchange, routingKey RoutingKey, env *Envelope) error {
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	return p.conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.PublishWithContext(
			ctx,
			string(exchange),   // exchange
			string(routingKey), // routing key
			false,
			false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent, // сообщение переживёт рестарт RabbitMQ
				MessageId:    env.ID,
				Timestamp:    env.Timestamp,
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish to %s/%s: %w", exchange, routingKey, err)
		}

		p.logger.Debug("published message",
			"exchange", exchange,
			"routing_key", routingKey,
			"message_id", env.ID,
			"kind", env.Kind,
		)

		return nil
	})
}
