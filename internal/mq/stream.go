package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shaiso/Chimera/internal/telemetry"
)

// Stream потребляет сообщения из очереди RabbitMQ с pop-семантикой.
//
// В отличие от callback-consumer, Stream отдаёт сообщения по одному
// через Pop с ограниченным таймаутом: вызывающий цикл проверяет
// условие отмены на каждой границе таймаута.
//
// Некорректное сообщение не роняет потребляющий цикл: оно логируется
// и отправляется в DLQ (nack без requeue).
type Stream struct {
	conn     *Connection
	logger   *slog.Logger
	queue    Queue
	prefetch int

	mu         sync.Mutex
	deliveries <-chan amqp.Delivery
}

// StreamConfig — конфигурация Stream.
type StreamConfig struct {
	// Queue — имя очереди.
	Queue Queue

	// Prefetch — количество сообщений для предварительной загрузки.
	Prefetch int
}

// NewStream создаёт новый Stream.
func NewStream(conn *Connection, logger *slog.Logger, cfg StreamConfig) *Stream {
	prefetch := cfg.Prefetch
	if prefetch <= 0 {
		prefetch = 1
	}

	return &Stream{
		conn:     conn,
		logger:   logger,
		queue:    cfg.Queue,
		prefetch: prefetch,
	}
}

// Pop снимает и возвращает голову очереди, блокируясь не дольше timeout.
//
// Возвращает (nil, false, nil) при таймауте — это не ошибка, а сигнал
// вызывающему циклу перепроверить условие отмены. Сообщение
// подтверждается (ack) при успешной десериализации; повторная доставка
// после сбоя до ack даёт at-least-once семантику.
func (s *Stream) Pop(ctx context.Context, timeout time.Duration) (*Envelope, bool, error) {
	deliveries, err := s.ensureConsuming()
	if err != nil {
		return nil, false, err
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, false, ctx.Err()

		case <-timer.C:
			return nil, false, nil

		case raw, ok := <-deliveries:
			if !ok {
				// Канал закрыт (разрыв соединения) — подписка
				// будет восстановлена на следующем Pop.
				s.reset()
				return nil, false, nil
			}

			env, ok := s.decode(raw)
			if !ok {
				// Некорректное сообщение отброшено — ждём следующее
				// в рамках оставшегося таймаута.
				continue
			}
			return env, true, nil
		}
	}
}

// Len возвращает количество сообщений в очереди.
// Значение advisory: может устареть сразу после возврата.
func (s *Stream) Len(ctx context.Context) (int, error) {
	ch := s.conn.Channel()
	if ch == nil {
		return 0, fmt.Errorf("no channel available")
	}

	q, err := ch.QueueInspect(string(s.queue))
	if err != nil {
		return 0, fmt.Errorf("inspect queue %s: %w", s.queue, err)
	}
	return q.Messages, nil
}

// ensureConsuming настраивает подписку на очередь, если её ещё нет.
func (s *Stream) ensureConsuming() (<-chan amqp.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deliveries != nil {
		return s.deliveries, nil
	}

	ch := s.conn.Channel()
	if ch == nil {
		return nil, fmt.Errorf("no channel available")
	}

	if err := ch.Qos(s.prefetch, 0, false); err != nil {
		return nil, fmt.Errorf("set qos: %w", err)
	}

	deliveries, err := ch.Consume(
		string(s.queue), // queue
		"",              // consumer tag (auto-generated)
		false,           // auto-ack (мы ack вручную)
		false,           // exclusive
		false,           // no-local
		false,           // no-wait
		nil,             // args
	)
	if err != nil {
		return nil, fmt.Errorf("consume %s: %w", s.queue, err)
	}

	s.logger.Info("stream consuming", "queue", s.queue)

	s.deliveries = deliveries
	return deliveries, nil
}

// reset сбрасывает подписку после разрыва соединения.
func (s *Stream) reset() {
	s.mu.Lock()
	s.deliveries = nil
	s.mu.Unlock()
}

// decode разбирает сырое сообщение в Envelope.
// Некорректное тело — ack невозможен: nack без requeue (в DLQ).
func (s *Stream) decode(raw amqp.Delivery) (*Envelope, bool) {
	var env Envelope
	if err := json.Unmarshal(raw.Body, &env); err != nil {
		s.logger.Error("failed to unmarshal envelope",
			"queue", s.queue,
			"error", err,
			"body", string(raw.Body),
		)
		telemetry.MalformedPayloadsTotal.WithLabelValues(string(s.queue)).Inc()
		raw.Nack(false, false)
		return nil, false
	}

	raw.Ack(false)

	s.logger.Debug("received message",
		"queue", s.queue,
		"message_id", env.ID,
		"kind", env.Kind,
	)

	return &env, true
}
