package planner

import (
	"context"
	"testing"

	"github.com/shaiso/Chimera/internal/domain"
)

func TestHeuristic_Decompose(t *testing.T) {
	h := NewHeuristic("tone: playful")

	items, err := h.Decompose(context.Background(), "c1", "launch week")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	visual, social := items[0], items[1]

	if visual.Kind != domain.KindGenerateContent {
		t.Errorf("first item kind = %s, want %s", visual.Kind, domain.KindGenerateContent)
	}
	if visual.Priority != domain.PriorityHigh {
		t.Errorf("first item priority = %s, want %s", visual.Priority, domain.PriorityHigh)
	}
	if visual.Context.Goal != "Visual for: launch week" {
		t.Errorf("first item goal = %q", visual.Context.Goal)
	}

	if social.Kind != domain.KindSocialAction {
		t.Errorf("second item kind = %s, want %s", social.Kind, domain.KindSocialAction)
	}
	if social.Priority != domain.PriorityMedium {
		t.Errorf("second item priority = %s, want %s", social.Priority, domain.PriorityMedium)
	}
	if social.Context.Goal != "Social post for: launch week" {
		t.Errorf("second item goal = %q", social.Context.Goal)
	}

	for _, item := range items {
		if item.CampaignID != "c1" {
			t.Errorf("campaign_id = %q, want c1", item.CampaignID)
		}
		if item.Status != domain.WorkItemStatusPending {
			t.Errorf("status = %s, want %s", item.Status, domain.WorkItemStatusPending)
		}
	}

	if len(visual.Context.Constraints) != 1 || visual.Context.Constraints[0] != "tone: playful" {
		t.Errorf("visual constraints = %v", visual.Context.Constraints)
	}

	if items[0].ID == items[1].ID {
		t.Error("item ids must be unique")
	}
}
