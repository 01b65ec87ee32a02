package queue

import (
	"context"
	"log/slog"
	"time"

	"github.com/shaiso/Chimera/internal/telemetry"
)

// defaultCapacity — ёмкость буфера in-memory очереди.
const defaultCapacity = 1024

// Memory — очередь в памяти поверх буферизованного канала.
//
// Используется в тестах и в деградированном режиме, когда RabbitMQ
// недоступен (координатор продолжает работать внутри одного процесса).
// Значения проходят через тот же канонический кодек, что и AMQP-очередь:
// потребитель получает изолированную копию, а не живую ссылку.
type Memory[T any] struct {
	name   string
	ch     chan []byte
	logger *slog.Logger
}

// NewMemory создаёт in-memory очередь.
func NewMemory[T any](name string, logger *slog.Logger) *Memory[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Memory[T]{
		name:   name,
		ch:     make(chan []byte, defaultCapacity),
		logger: logger,
	}
}

// Push добавляет значение в хвост очереди.
func (q *Memory[T]) Push(ctx context.Context, v T) error {
	data, err := Encode(v)
	if err != nil {
		return err
	}

	select {
	case q.ch <- data:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pop снимает голову очереди, блокируясь не дольше timeout.
// Возвращает (zero, false, nil) при таймауте.
func (q *Memory[T]) Pop(ctx context.Context, timeout time.Duration) (T, bool, error) {
	var zero T

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()

	case <-timer.C:
		return zero, false, nil

	case data := <-q.ch:
		v, err := Decode[T](data)
		if err != nil {
			// Некорректная запись отбрасывается, цикл продолжается.
			q.logger.Error("dropping malformed queue entry",
				"queue", q.name,
				"error", err,
			)
			telemetry.MalformedPayloadsTotal.WithLabelValues(q.name).Inc()
			return zero, false, nil
		}
		return v, true, nil
	}
}

// Len возвращает текущую глубину очереди (advisory).
func (q *Memory[T]) Len(ctx context.Context) (int, error) {
	return len(q.ch), nil
}
