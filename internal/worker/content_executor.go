package worker

import (
	"context"

	"github.com/google/uuid"

	"github.com/shaiso/Chimera/internal/domain"
)

// ContentExecutor — прототип исполнителя генерации контента.
//
// Симулирует вызов skill'а generate_image: продуктивная версия
// обращается к image-серверу через protocol-клиент.
type ContentExecutor struct{}

// Execute симулирует генерацию контента по цели item.
func (e *ContentExecutor) Execute(_ context.Context, item *domain.WorkItem) (*ExecutionResult, error) {
	if item.Context.Goal == "" {
		return nil, ErrEmptyGoal
	}

	return &ExecutionResult{
		Output: map[string]any{
			"skill":    "generate_image",
			"prompt":   item.Context.Goal,
			"asset_id": uuid.New().String(),
		},
		Confidence: 0.95,
	}, nil
}
