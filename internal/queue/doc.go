// Package queue содержит FIFO-очереди, соединяющие роли конвейера:
// WorkQueue (Planner → Worker) и ReviewQueue (Worker → Judge).
//
// Структура:
//   - queue.go  — контракт Queue и канонический кодек
//   - amqp.go   — durable реализация поверх RabbitMQ (internal/mq)
//   - memory.go — реализация в памяти (тесты, деградированный режим)
//
// Обе реализации используют один канонический wire-формат, поэтому
// производитель и потребитель не разделяют код.
package queue
