package worker

import (
	"context"
	"fmt"

	"github.com/shaiso/Chimera/internal/domain"
)

// Executor — внешний коллаборатор выполнения одного типа work item.
//
// Реализации-прототипы: ContentExecutor, SocialExecutor,
// TransactionExecutor. Продуктивные исполнители вызывают удалённые
// tools через protocol-клиент за пределами ядра.
type Executor interface {
	Execute(ctx context.Context, item *domain.WorkItem) (*ExecutionResult, error)
}

// ExecutionResult — результат выполнения work item.
type ExecutionResult struct {
	// Output — выходные данные выполнения.
	Output map[string]any

	// Confidence — уверенность исполнителя в результате, [0, 1].
	Confidence float64
}

// Registry — реестр executor'ов по типу work item.
type Registry struct {
	executors map[domain.WorkItemKind]Executor
}

// NewRegistry создаёт реестр с прототипами-исполнителями по умолчанию.
func NewRegistry() *Registry {
	r := &Registry{executors: make(map[domain.WorkItemKind]Executor)}
	r.Register(domain.KindGenerateContent, &ContentExecutor{})
	r.Register(domain.KindSocialAction, &SocialExecutor{})
	r.Register(domain.KindTransaction, NewTransactionExecutor())
	return r
}

// Register добавляет executor для типа work item.
func (r *Registry) Register(kind domain.WorkItemKind, executor Executor) {
	r.executors[kind] = executor
}

// Get возвращает executor для типа work item.
func (r *Registry) Get(kind domain.WorkItemKind) (Executor, error) {
	executor, ok := r.executors[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItemKind, kind)
	}
	return executor, nil
}
