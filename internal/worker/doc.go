// Package worker содержит выполнение work items.
//
// Структура:
//   - agent.go    — Agent: выполнение item, нормализация ошибок
//   - executor.go — контракт Executor и реестр по типу item
//   - *_executor.go — прототипы исполнителей (content, social, transaction)
//
// Agents stateless и эфемерны; несколько worker-циклов потребляют
// одну очередь конкурентно.
package worker
