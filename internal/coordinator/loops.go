package coordinator

import (
	"context"
	"errors"
	"time"

	"github.com/shaiso/Chimera/internal/domain"
	"github.com/shaiso/Chimera/internal/state"
	"github.com/shaiso/Chimera/internal/telemetry"
	"github.com/shaiso/Chimera/internal/worker"
)

// planLoop периодически декомпозирует активные кампании в work items.
// Каждая кампания декомпозируется ровно один раз: признак — PlannedAt.
func (c *Coordinator) planLoop(ctx context.Context) {
	ticker := time.NewTicker(c.planInterval)
	defer ticker.Stop()

	// Первый проход сразу, не дожидаясь тика.
	c.planPass(ctx)

	for {
		select {
		case <-ctx.Done():
			c.logger.Debug("plan loop stopped")
			return
		case <-ticker.C:
			c.planPass(ctx)
		}
	}
}

func (c *Coordinator) planPass(ctx context.Context) {
	snapshot, _ := c.store.Snapshot()

	for id, campaign := range snapshot.ActiveCampaigns {
		if !campaign.IsActive() || campaign.PlannedAt != nil {
			continue
		}
		c.planCampaign(ctx, id, campaign.Goal)
	}
}

// planCampaign декомпозирует одну кампанию и публикует её items.
// Ошибка декомпозиции трактуется как пустой план: кампания помечается
// спланированной, чтобы цикл не зациклился на ней.
func (c *Coordinator) planCampaign(ctx context.Context, campaignID, goal string) {
	log := telemetry.WithCampaignID(c.logger, campaignID)

	items, err := c.decomposer.Decompose(ctx, campaignID, goal)
	if err != nil {
		log.Error("campaign decomposition failed", "error", err)
		items = nil
	}

	published := 0
	for _, item := range items {
		if err := c.workQueue.Push(ctx, item); err != nil {
			log.Error("failed to publish work item",
				"item_id", item.ID, "error", err)
			continue
		}
		telemetry.WorkItemsPlannedTotal.WithLabelValues(string(item.Kind)).Inc()
		published++
	}

	now := time.Now().UTC()
	err = c.store.Update(ctx, actorID, func(st *state.CoordinationState) error {
		campaign, ok := st.ActiveCampaigns[campaignID]
		if !ok {
			return nil
		}
		campaign.PlannedAt = &now
		return nil
	})
	if err != nil {
		log.Error("failed to mark campaign planned", "error", err)
		return
	}

	log.Info("campaign planned", "items", published)
}

// workerLoop — один агент пула: забирает items из очереди работы,
// исполняет и публикует результаты в очередь ревью.
func (c *Coordinator) workerLoop(ctx context.Context, agent *worker.Agent) {
	log := telemetry.WithWorkerID(c.logger, agent.ID())

	if err := c.store.SetAgentState(ctx, agent.ID(), "ready", actorID); err != nil {
		log.Warn("failed to register agent", "error", err)
	}
	defer func() {
		detached := context.WithoutCancel(ctx)
		if err := c.store.SetAgentState(detached, agent.ID(), "stopped", actorID); err != nil {
			log.Warn("failed to deregister agent", "error", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Debug("worker loop stopped")
			return
		default:
		}

		item, ok, err := c.workQueue.Pop(ctx, c.popTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error("failed to pop work item", "error", err)
			continue
		}
		if !ok {
			continue
		}

		result := agent.Run(ctx, item)
		telemetry.ResultsTotal.WithLabelValues(string(result.Status)).Inc()

		if err := c.reviewQueue.Push(ctx, result); err != nil {
			log.Error("failed to publish work result",
				"item_id", item.ID, "error", err)
		}
	}
}

// judgeLoop забирает результаты из очереди ревью и выносит вердикты.
// Результаты с транзакцией проходят через губернатора бюджета,
// остальные — через базового судью.
func (c *Coordinator) judgeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			c.logger.Debug("judge loop stopped")
			return
		default:
		}

		result, ok, err := c.reviewQueue.Pop(ctx, c.popTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Error("failed to pop work result", "error", err)
			continue
		}
		if !ok {
			continue
		}

		c.judgeResult(ctx, result)
	}
}

func (c *Coordinator) judgeResult(ctx context.Context, result *domain.WorkResult) {
	log := telemetry.WithItemID(
		telemetry.WithCampaignID(c.logger, result.CampaignID),
		result.WorkItemID.String(),
	)

	evaluator := c.judge
	if result.Transaction() != nil {
		evaluator = c.governor
	}

	decision := evaluator.Evaluate(ctx, result)
	telemetry.VerdictsTotal.WithLabelValues(string(decision.Verdict)).Inc()

	if c.verdicts != nil {
		if err := c.verdicts.RecordVerdict(ctx, result, decision); err != nil {
			log.Warn("failed to record verdict", "error", err)
		}
	}

	switch decision.Verdict {
	case domain.VerdictApprove:
		log.Info("result approved", "reason", decision.Reason,
			"confidence", result.ConfidenceScore)
		c.commitApproval(ctx, result)
	case domain.VerdictEscalate:
		log.Info("result escalated", "reason", decision.Reason,
			"confidence", result.ConfidenceScore)
		c.escalations.Add(result)
	case domain.VerdictReject:
		log.Info("result rejected", "reason", decision.Reason,
			"confidence", result.ConfidenceScore)
		c.recordRejection(ctx, result)
	}
}

// commitApproval фиксирует одобрение в счётчиках кампании.
func (c *Coordinator) commitApproval(ctx context.Context, result *domain.WorkResult) {
	err := c.store.Update(ctx, actorID, func(st *state.CoordinationState) error {
		campaign, ok := st.ActiveCampaigns[result.CampaignID]
		if !ok {
			return nil
		}
		campaign.Approved++
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		c.logger.Error("failed to commit approval",
			"campaign_id", result.CampaignID, "error", err)
	}
}

// recordRejection фиксирует отказ в счётчиках кампании.
func (c *Coordinator) recordRejection(ctx context.Context, result *domain.WorkResult) {
	err := c.store.Update(ctx, actorID, func(st *state.CoordinationState) error {
		campaign, ok := st.ActiveCampaigns[result.CampaignID]
		if !ok {
			return nil
		}
		campaign.Rejected++
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		c.logger.Error("failed to record rejection",
			"campaign_id", result.CampaignID, "error", err)
	}
}
