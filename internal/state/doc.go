// Package state содержит общее координационное состояние роя
// и его хранилище с optimistic concurrency control.
//
// Структура:
//   - state.go — CoordinationState, каноническое хэширование, снимки
//   - store.go — Store: Snapshot / Commit (проверка-и-замена),
//     convenience-операции поверх цикла read-modify-commit
//
// Store — единственный источник истины. Все остальные компоненты
// работают только с глубокими копиями и коммитят изменения
// с ожидаемым хэшем версии.
package state
