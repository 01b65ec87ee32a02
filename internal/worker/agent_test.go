package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/shaiso/Chimera/internal/domain"
)

func TestAgent_Run_Success(t *testing.T) {
	agent := NewAgent("worker-1", nil, nil)
	item := domain.NewWorkItem("c1", domain.KindGenerateContent, domain.PriorityHigh, domain.WorkContext{
		Goal: "Visual for: launch",
	})

	result := agent.Run(context.Background(), item)

	if result.Status != domain.ResultStatusSuccess {
		t.Fatalf("status = %s, want %s", result.Status, domain.ResultStatusSuccess)
	}
	if result.WorkItemID != item.ID {
		t.Errorf("work_item_id = %s, want %s", result.WorkItemID, item.ID)
	}
	if result.CampaignID != "c1" {
		t.Errorf("campaign_id = %q, want c1", result.CampaignID)
	}
	if result.WorkerID != "worker-1" {
		t.Errorf("worker_id = %q, want worker-1", result.WorkerID)
	}
	if result.ConfidenceScore <= 0 || result.ConfidenceScore > 1 {
		t.Errorf("confidence = %g, want (0, 1]", result.ConfidenceScore)
	}
}

func TestAgent_Run_UnknownKind(t *testing.T) {
	agent := NewAgent("worker-1", nil, nil)
	item := domain.NewWorkItem("c1", domain.WorkItemKind("teleport"), domain.PriorityLow, domain.WorkContext{
		Goal: "g",
	})

	// Ошибка нормализуется в failed-результат, не возвращается
	result := agent.Run(context.Background(), item)

	if result.Status != domain.ResultStatusFailed {
		t.Fatalf("status = %s, want %s", result.Status, domain.ResultStatusFailed)
	}
	if result.ConfidenceScore != 0 {
		t.Errorf("failed result confidence = %g, want 0", result.ConfidenceScore)
	}
	if result.CampaignID != "c1" {
		t.Errorf("campaign_id must survive failure, got %q", result.CampaignID)
	}
	if _, ok := result.Output["error"]; !ok {
		t.Error("failed result must carry the error in output")
	}
}

func TestAgent_Run_EmptyGoal(t *testing.T) {
	agent := NewAgent("worker-1", nil, nil)
	item := domain.NewWorkItem("c1", domain.KindGenerateContent, domain.PriorityHigh, domain.WorkContext{})

	result := agent.Run(context.Background(), item)

	if result.Status != domain.ResultStatusFailed {
		t.Fatalf("status = %s, want %s", result.Status, domain.ResultStatusFailed)
	}
}

func TestAgent_GeneratedID(t *testing.T) {
	a := NewAgent("", nil, nil)
	b := NewAgent("", nil, nil)

	if a.ID() == "" {
		t.Fatal("empty id must be generated")
	}
	if a.ID() == b.ID() {
		t.Error("generated ids must be unique")
	}
}

func TestTransactionExecutor_Output(t *testing.T) {
	agent := NewAgent("worker-1", nil, nil)
	item := domain.NewWorkItem("c1", domain.KindTransaction, domain.PriorityHigh, domain.WorkContext{
		Goal: "tip the artist",
	})

	result := agent.Run(context.Background(), item)
	if result.Status != domain.ResultStatusSuccess {
		t.Fatalf("status = %s, want success", result.Status)
	}

	tx := result.Transaction()
	if tx == nil {
		t.Fatal("transaction executor result must carry a transaction record")
	}
	if tx.Currency != "USDC" {
		t.Errorf("currency = %s, want USDC", tx.Currency)
	}
	if tx.Amount <= 0 {
		t.Errorf("amount = %g, want positive", tx.Amount)
	}
	if tx.ToAddress == "" {
		t.Error("to_address must be set")
	}
}

func TestContentExecutor_NoTransaction(t *testing.T) {
	agent := NewAgent("worker-1", nil, nil)
	item := domain.NewWorkItem("c1", domain.KindGenerateContent, domain.PriorityHigh, domain.WorkContext{
		Goal: "Visual for: launch",
	})

	result := agent.Run(context.Background(), item)
	if tx := result.Transaction(); tx != nil {
		t.Errorf("content result must not carry a transaction, got %+v", tx)
	}
}

func TestRegistry_Get(t *testing.T) {
	registry := NewRegistry()

	for _, kind := range []domain.WorkItemKind{
		domain.KindGenerateContent,
		domain.KindSocialAction,
		domain.KindTransaction,
	} {
		if _, err := registry.Get(kind); err != nil {
			t.Errorf("registry must know %s: %v", kind, err)
		}
	}

	if _, err := registry.Get("unknown"); !errors.Is(err, ErrUnknownItemKind) {
		t.Errorf("expected ErrUnknownItemKind, got %v", err)
	}
}
