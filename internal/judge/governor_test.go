package judge

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/shaiso/Chimera/internal/domain"
	"github.com/shaiso/Chimera/internal/state"
)

const validAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

func txResult(amount float64, toAddress string, confidence float64) *domain.WorkResult {
	return &domain.WorkResult{
		WorkItemID:      uuid.New(),
		WorkerID:        "worker-test",
		ConfidenceScore: confidence,
		Status:          domain.ResultStatusSuccess,
		Output: map[string]any{
			"transaction": map[string]any{
				"currency":   "USDC",
				"amount":     amount,
				"to_address": toAddress,
			},
		},
	}
}

func newGovernor(t *testing.T, spent, limit float64) (*BudgetGovernor, *state.Store) {
	t.Helper()
	ctx := context.Background()

	store := state.NewStore(state.Config{})
	if err := store.SetSpendLimit(ctx, "USDC", limit, "test"); err != nil {
		t.Fatalf("set limit: %v", err)
	}
	if spent > 0 {
		if err := store.ReserveSpend(ctx, "USDC", spent, "test"); err != nil {
			t.Fatalf("seed spend: %v", err)
		}
	}

	governor := NewBudgetGovernor(GovernorConfig{
		Store:                store,
		SuspiciousThresholds: map[string]float64{"USDC": 100},
	})
	return governor, store
}

func TestGovernor_NonTransactionDelegates(t *testing.T) {
	governor, _ := newGovernor(t, 0, 50)

	r := &domain.WorkResult{
		WorkItemID:      uuid.New(),
		ConfidenceScore: 0.95,
		Status:          domain.ResultStatusSuccess,
		Output:          map[string]any{"text": "a post"},
	}

	decision := governor.Evaluate(context.Background(), r)
	if decision.Verdict != domain.VerdictApprove {
		t.Errorf("verdict = %s, want %s", decision.Verdict, domain.VerdictApprove)
	}
}

func TestGovernor_RejectsOverLimit(t *testing.T) {
	// Потрачено 40 из 50; запрос на 20 превышает потолок
	governor, store := newGovernor(t, 40, 50)

	decision := governor.Evaluate(context.Background(), txResult(20, validAddress, 0.95))
	if decision.Verdict != domain.VerdictReject {
		t.Fatalf("verdict = %s, want %s", decision.Verdict, domain.VerdictReject)
	}
	if !strings.Contains(decision.Reason, "60") || !strings.Contains(decision.Reason, "50") {
		t.Errorf("reason must name attempted total and ceiling, got %q", decision.Reason)
	}

	// Отказ не резервирует расход
	_, current := store.CheckSpendLimit("USDC", 0)
	if current != 40 {
		t.Errorf("spend = %g, want 40", current)
	}
}

func TestGovernor_ApprovesAndReserves(t *testing.T) {
	governor, store := newGovernor(t, 40, 50)

	decision := governor.Evaluate(context.Background(), txResult(5, validAddress, 0.95))
	if decision.Verdict != domain.VerdictApprove {
		t.Fatalf("verdict = %s (%s), want %s", decision.Verdict, decision.Reason, domain.VerdictApprove)
	}

	_, current := store.CheckSpendLimit("USDC", 0)
	if current != 45 {
		t.Errorf("spend = %g, want 45 (approve must reserve)", current)
	}
}

func TestGovernor_EscalatesLargeAmount(t *testing.T) {
	// Порог подозрительности 100 при потолке 500
	governor, store := newGovernor(t, 0, 500)

	decision := governor.Evaluate(context.Background(), txResult(150, validAddress, 0.95))
	if decision.Verdict != domain.VerdictEscalate {
		t.Fatalf("verdict = %s, want %s", decision.Verdict, domain.VerdictEscalate)
	}
	if !strings.Contains(decision.Reason, "human review") {
		t.Errorf("reason must request human review, got %q", decision.Reason)
	}

	// Эскалация не резервирует расход
	_, current := store.CheckSpendLimit("USDC", 0)
	if current != 0 {
		t.Errorf("spend = %g, want 0", current)
	}
}

func TestGovernor_EscalatesSuspiciousRecipient(t *testing.T) {
	governor, _ := newGovernor(t, 0, 50)
	ctx := context.Background()

	tests := []struct {
		name    string
		address string
	}{
		{"empty address", ""},
		{"null-prefixed address", "0x0000000000000000000000000000000000000001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := governor.Evaluate(ctx, txResult(5, tt.address, 0.95))
			if decision.Verdict != domain.VerdictEscalate {
				t.Errorf("verdict = %s, want %s", decision.Verdict, domain.VerdictEscalate)
			}
		})
	}
}

func TestGovernor_AnomalyBeatsConfidence(t *testing.T) {
	// Аномалия приоритетнее высокого confidence, но потолок приоритетнее аномалии
	governor, _ := newGovernor(t, 0, 50)

	decision := governor.Evaluate(context.Background(), txResult(200, "", 0.99))
	if decision.Verdict != domain.VerdictReject {
		t.Errorf("over-limit check runs first: verdict = %s, want %s",
			decision.Verdict, domain.VerdictReject)
	}
}

func TestGovernor_LowConfidenceTransaction(t *testing.T) {
	governor, store := newGovernor(t, 0, 50)

	decision := governor.Evaluate(context.Background(), txResult(5, validAddress, 0.40))
	if decision.Verdict != domain.VerdictReject {
		t.Errorf("verdict = %s, want %s", decision.Verdict, domain.VerdictReject)
	}

	_, current := store.CheckSpendLimit("USDC", 0)
	if current != 0 {
		t.Errorf("rejected transaction must not reserve spend, got %g", current)
	}
}

func TestGovernor_ConcurrentApprovals_Conflict(t *testing.T) {
	// Два одобрения по одному базовому состоянию: одно резервирует,
	// второе обнаруживает конфликт и понижается до REJECT
	governor, store := newGovernor(t, 0, 50)
	ctx := context.Background()

	const attempts = 2
	var wg sync.WaitGroup
	decisions := make([]domain.Decision, attempts)

	var start sync.WaitGroup
	start.Add(1)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			start.Wait()
			decisions[i] = governor.Evaluate(ctx, txResult(10, validAddress, 0.95))
		}(i)
	}
	start.Done()
	wg.Wait()

	var approved, rejected int
	for _, d := range decisions {
		switch d.Verdict {
		case domain.VerdictApprove:
			approved++
		case domain.VerdictReject:
			rejected++
			if !strings.Contains(d.Reason, "conflict") {
				t.Errorf("downgraded reject must mention conflict, got %q", d.Reason)
			}
		default:
			t.Errorf("unexpected verdict %s", d.Verdict)
		}
	}

	// Оба могли сериализоваться без пересечения — тогда оба APPROVE
	// и расход удвоен; при пересечении ровно один APPROVE.
	_, current := store.CheckSpendLimit("USDC", 0)
	want := float64(approved) * 10
	if current != want {
		t.Errorf("spend = %g, want %g (one reservation per approval)", current, want)
	}
	if approved == 0 {
		t.Error("at least one evaluation must approve")
	}
}

func TestGovernor_SetSuspiciousThreshold(t *testing.T) {
	governor, _ := newGovernor(t, 0, 500)
	ctx := context.Background()

	// 150 > 100 — эскалация
	if d := governor.Evaluate(ctx, txResult(150, validAddress, 0.95)); d.Verdict != domain.VerdictEscalate {
		t.Fatalf("verdict = %s, want %s", d.Verdict, domain.VerdictEscalate)
	}

	// Поднимаем порог — та же сумма проходит
	governor.SetSuspiciousThreshold("USDC", 200)
	if d := governor.Evaluate(ctx, txResult(150, validAddress, 0.95)); d.Verdict != domain.VerdictApprove {
		t.Fatalf("after raising threshold: verdict = %s (%s), want %s",
			d.Verdict, d.Reason, domain.VerdictApprove)
	}
}
