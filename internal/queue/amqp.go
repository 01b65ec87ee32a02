package queue

import (
	"context"
	"log/slog"
	"time"

	"github.com/shaiso/Chimera/internal/domain"
	"github.com/shaiso/Chimera/internal/mq"
	"github.com/shaiso/Chimera/internal/telemetry"
)

// AMQP — durable очередь поверх RabbitMQ.
//
// Транспорт — канонический Envelope (internal/mq): field-tagged JSON,
// durable delivery, DLQ для некорректных сообщений.
type AMQP[T any] struct {
	publisher  *mq.Publisher
	stream     *mq.Stream
	exchange   mq.Exchange
	routingKey mq.RoutingKey
	kind       mq.MessageKind
	name       string
	logger     *slog.Logger
}

// newAMQP создаёт AMQP-очередь для одного типа сообщений.
func newAMQP[T any](conn *mq.Connection, logger *slog.Logger, exchange mq.Exchange, routingKey mq.RoutingKey, queueName mq.Queue, kind mq.MessageKind, prefetch int) *AMQP[T] {
	return &AMQP[T]{
		publisher:  mq.NewPublisher(conn, logger),
		stream:     mq.NewStream(conn, logger, mq.StreamConfig{Queue: queueName, Prefetch: prefetch}),
		exchange:   exchange,
		routingKey: routingKey,
		kind:       kind,
		name:       string(queueName),
		logger:     logger,
	}
}

// NewAMQPWorkQueue создаёт очередь work items (Planner → Worker).
func NewAMQPWorkQueue(conn *mq.Connection, logger *slog.Logger) *AMQP[*domain.WorkItem] {
	return newAMQP[*domain.WorkItem](conn, logger,
		mq.ExchangeWork, mq.RoutingKeyItems, mq.QueueWorkItems, mq.MessageKindWorkItem, 5)
}

// NewAMQPReviewQueue создаёт очередь результатов (Worker → Judge).
func NewAMQPReviewQueue(conn *mq.Connection, logger *slog.Logger) *AMQP[*domain.WorkResult] {
	return newAMQP[*domain.WorkResult](conn, logger,
		mq.ExchangeReview, mq.RoutingKeyResults, mq.QueueReviewResults, mq.MessageKindWorkResult, 5)
}

// Push публикует значение в хвост очереди.
func (q *AMQP[T]) Push(ctx context.Context, v T) error {
	payload, err := Encode(v)
	if err != nil {
		return err
	}

	return q.publisher.Publish(ctx, q.exchange, q.routingKey, mq.NewEnvelope(q.kind, payload))
}

// Pop снимает голову очереди, блокируясь не дольше timeout.
func (q *AMQP[T]) Pop(ctx context.Context, timeout time.Duration) (T, bool, error) {
	var zero T

	env, ok, err := q.stream.Pop(ctx, timeout)
	if err != nil || !ok {
		return zero, false, err
	}

	v, err := Decode[T](env.Payload)
	if err != nil {
		// Envelope разобрался, но payload не соответствует типу —
		// запись отбрасывается, цикл продолжается.
		q.logger.Error("dropping malformed queue payload",
			"queue", q.name,
			"message_id", env.ID,
			"error", err,
		)
		telemetry.MalformedPayloadsTotal.WithLabelValues(q.name).Inc()
		return zero, false, nil
	}

	return v, true, nil
}

// Len возвращает глубину очереди по данным брокера (advisory).
func (q *AMQP[T]) Len(ctx context.Context) (int, error) {
	return q.stream.Len(ctx)
}
