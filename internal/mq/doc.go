// Package mq предоставляет инфраструктуру для работы с RabbitMQ.
//
// Структура:
//   - connection.go — управление соединением с RabbitMQ (reconnect, graceful shutdown)
//   - topology.go   — объявление exchanges, queues, bindings
//   - publisher.go  — Envelope и публикация сообщений в очереди
//   - stream.go     — потребление сообщений с pop-семантикой
//
// Типы сообщений:
//   - work.item    — единица работы от планировщика воркерам
//   - work.result  — результат воркера для judging-цикла
//
// Exchanges:
//   - chimera.work    — work items (Planner → Worker)
//   - chimera.review  — work results (Worker → Judge)
//   - chimera.dlq     — dead letter queue
package mq
