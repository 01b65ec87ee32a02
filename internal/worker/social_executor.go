package worker

import (
	"context"

	"github.com/google/uuid"

	"github.com/shaiso/Chimera/internal/domain"
)

// SocialExecutor — прототип исполнителя социальных действий.
//
// Симулирует вызов skill'а post_tweet.
type SocialExecutor struct{}

// Execute симулирует публикацию поста по цели item.
func (e *SocialExecutor) Execute(_ context.Context, item *domain.WorkItem) (*ExecutionResult, error) {
	if item.Context.Goal == "" {
		return nil, ErrEmptyGoal
	}

	return &ExecutionResult{
		Output: map[string]any{
			"skill":   "post_tweet",
			"content": item.Context.Goal,
			"post_id": uuid.New().String(),
		},
		Confidence: 0.95,
	}, nil
}
