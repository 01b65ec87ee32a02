package state

import (
	"testing"
	"time"

	"github.com/shaiso/Chimera/internal/domain"
)

func TestComputeHash_Deterministic(t *testing.T) {
	st := NewCoordinationState()
	st.DailySpend["USDC"] = 12.5
	st.SpendLimits["USDC"] = 50
	st.AgentStates["worker-1"] = "ready"

	h1, err := st.ComputeHash()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h2, err := st.ComputeHash()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if h1 != h2 {
		t.Errorf("hash is not deterministic: %s != %s", h1, h2)
	}
}

func TestComputeHash_InsertionOrderIndependent(t *testing.T) {
	// Одинаковые поля, разный порядок вставки в карты
	a := NewCoordinationState()
	a.DailySpend["USDC"] = 10
	a.DailySpend["ETH"] = 0.5
	a.AgentStates["worker-1"] = "ready"
	a.AgentStates["worker-2"] = "stopped"

	b := NewCoordinationState()
	b.AgentStates["worker-2"] = "stopped"
	b.AgentStates["worker-1"] = "ready"
	b.DailySpend["ETH"] = 0.5
	b.DailySpend["USDC"] = 10

	ha, _ := a.ComputeHash()
	hb, _ := b.ComputeHash()

	if ha != hb {
		t.Errorf("equal states hash differently: %s != %s", ha, hb)
	}
}

func TestComputeHash_ExcludesVersion(t *testing.T) {
	st := NewCoordinationState()
	st.DailySpend["USDC"] = 5

	before, _ := st.ComputeHash()

	st.Version = StateVersion{
		Hash:      "deadbeef",
		Timestamp: time.Now(),
		UpdatedBy: "test",
	}
	after, _ := st.ComputeHash()

	if before != after {
		t.Error("version field must not affect the hash")
	}
}

func TestComputeHash_ChangesWithContent(t *testing.T) {
	st := NewCoordinationState()
	before, _ := st.ComputeHash()

	st.DailySpend["USDC"] = 1
	after, _ := st.ComputeHash()

	if before == after {
		t.Error("content change must change the hash")
	}
}

func TestClone_Isolated(t *testing.T) {
	st := NewCoordinationState()
	planned := time.Now().UTC()
	st.ActiveCampaigns["c1"] = &domain.Campaign{
		ID:        "c1",
		Goal:      "promote launch",
		Status:    domain.CampaignStatusActive,
		PlannedAt: &planned,
	}
	st.DailySpend["USDC"] = 10

	clone := st.Clone()
	clone.ActiveCampaigns["c1"].Goal = "changed"
	clone.ActiveCampaigns["c1"].PlannedAt = nil
	clone.DailySpend["USDC"] = 99
	clone.ActiveCampaigns["c2"] = &domain.Campaign{ID: "c2"}

	if st.ActiveCampaigns["c1"].Goal != "promote launch" {
		t.Error("clone mutation leaked into original campaign")
	}
	if st.ActiveCampaigns["c1"].PlannedAt == nil {
		t.Error("clone mutation leaked into original PlannedAt")
	}
	if st.DailySpend["USDC"] != 10 {
		t.Error("clone mutation leaked into original spend")
	}
	if _, ok := st.ActiveCampaigns["c2"]; ok {
		t.Error("clone insertion leaked into original")
	}
}

func TestCheckSpend(t *testing.T) {
	st := NewCoordinationState()
	st.DailySpend["USDC"] = 40
	st.SpendLimits["USDC"] = 50

	tests := []struct {
		name     string
		currency string
		amount   float64
		allowed  bool
	}{
		{"within limit", "USDC", 5, true},
		{"exactly at limit", "USDC", 10, true},
		{"over limit", "USDC", 10.01, false},
		{"no limit for currency", "ETH", 1000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, current := st.CheckSpend(tt.currency, tt.amount)
			if allowed != tt.allowed {
				t.Errorf("CheckSpend(%s, %g) = %v, want %v",
					tt.currency, tt.amount, allowed, tt.allowed)
			}
			if tt.currency == "USDC" && current != 40 {
				t.Errorf("current spend = %g, want 40", current)
			}
		})
	}
}
