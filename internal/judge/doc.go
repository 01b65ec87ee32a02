// Package judge содержит оценку результатов работы.
//
// Структура:
//   - judge.go    — контракт Evaluator и базовый ConfidenceJudge
//   - governor.go — BudgetGovernor: бюджетная политика для транзакций
//
// Judging-цикл координатора выбирает судью по форме результата:
// результаты с вложенной транзакцией идут через BudgetGovernor,
// остальные — через ConfidenceJudge.
package judge
