// Package coordinator реализует конвейер planner → worker → judge.
//
// Coordinator запускает конкурентные циклы над двумя очередями:
// planning-цикл декомпозирует активные кампании в work items,
// пул worker-циклов исполняет их, judging-цикл выносит вердикты
// (одобрение, эскалация человеку или отказ). Все изменения общего
// состояния идут через state.Store с оптимистичной блокировкой.
//
// EscalationList держит запаркованные результаты до решения человека;
// у списка один писатель на запись, поэтому он защищён мьютексом,
// а не версионированием.
package coordinator
