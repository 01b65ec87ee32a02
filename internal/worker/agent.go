package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/Chimera/internal/domain"
)

// Agent выполняет work items. Stateless и эфемерный: вся история
// живёт в результатах, которые он отдаёт в review-очередь.
//
// Любая ошибка исполнителя нормализуется в WorkResult со статусом
// failed и не пробрасывается через границу worker-цикла.
type Agent struct {
	id       string
	registry *Registry
	logger   *slog.Logger
}

// NewAgent создаёт Agent. Пустой id генерируется автоматически.
func NewAgent(id string, registry *Registry, logger *slog.Logger) *Agent {
	if id == "" {
		id = "worker-" + uuid.New().String()
	}
	if registry == nil {
		registry = NewRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Agent{
		id:       id,
		registry: registry,
		logger:   logger.With("worker_id", id),
	}
}

// ID возвращает идентификатор агента.
func (a *Agent) ID() string {
	return a.id
}

// Run выполняет item и возвращает результат.
// Никогда не возвращает ошибку: сбой исполнителя становится
// результатом со статусом failed и нулевой уверенностью.
func (a *Agent) Run(ctx context.Context, item *domain.WorkItem) *domain.WorkResult {
	a.logger.Info("work item started",
		"work_item_id", item.ID,
		"kind", item.Kind,
		"campaign_id", item.CampaignID,
	)

	executor, err := a.registry.Get(item.Kind)
	if err != nil {
		return a.failed(item, err)
	}

	result, err := executor.Execute(ctx, item)
	if err != nil {
		return a.failed(item, err)
	}

	a.logger.Info("work item succeeded",
		"work_item_id", item.ID,
		"kind", item.Kind,
		"confidence", result.Confidence,
	)

	return &domain.WorkResult{
		WorkItemID:      item.ID,
		CampaignID:      item.CampaignID,
		WorkerID:        a.id,
		Output:          result.Output,
		ConfidenceScore: result.Confidence,
		Status:          domain.ResultStatusSuccess,
		Timestamp:       time.Now().UTC(),
	}
}

// failed нормализует ошибку исполнителя в failed-результат.
func (a *Agent) failed(item *domain.WorkItem, err error) *domain.WorkResult {
	a.logger.Warn("work item failed",
		"work_item_id", item.ID,
		"kind", item.Kind,
		"error", err,
	)

	return &domain.WorkResult{
		WorkItemID:      item.ID,
		CampaignID:      item.CampaignID,
		WorkerID:        a.id,
		Output:          map[string]any{"error": err.Error()},
		ConfidenceScore: 0,
		Status:          domain.ResultStatusFailed,
		Timestamp:       time.Now().UTC(),
	}
}
