package worker

import "errors"

// Ошибки воркера.
var (
	// ErrUnknownItemKind — нет executor'а для данного типа work item.
	ErrUnknownItemKind = errors.New("unknown work item kind")

	// ErrEmptyGoal — item без цели не может быть выполнен.
	ErrEmptyGoal = errors.New("work item has empty goal")
)
