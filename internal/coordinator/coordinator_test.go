package coordinator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/Chimera/internal/domain"
	"github.com/shaiso/Chimera/internal/queue"
	"github.com/shaiso/Chimera/internal/state"
)

// testCoordinator собирает координатор над in-memory очередями
// с короткими интервалами.
func testCoordinator(tb testing.TB, opts ...func(*Config)) (*Coordinator, *state.Store) {
	tb.Helper()

	store := state.NewStore(state.Config{})
	cfg := Config{
		Store:        store,
		WorkQueue:    queue.NewMemory[*domain.WorkItem]("work.items", nil),
		ReviewQueue:  queue.NewMemory[*domain.WorkResult]("review.results", nil),
		NumWorkers:   2,
		PlanInterval: 20 * time.Millisecond,
		PopTimeout:   20 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return New(cfg), store
}

// waitFor опрашивает условие до дедлайна.
func waitFor(tb testing.TB, timeout time.Duration, cond func() bool) bool {
	tb.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestCoordinator_EndToEnd(t *testing.T) {
	coord, store := testCoordinator(t)
	ctx := context.Background()

	if err := coord.StartCampaign(ctx, "c1", "launch week"); err != nil {
		t.Fatalf("start campaign: %v", err)
	}

	if err := coord.Start(ctx); err != nil {
		t.Fatalf("start coordinator: %v", err)
	}
	defer coord.Stop()

	// Эвристика даёт 2 item'а с высоким confidence — оба одобряются
	ok := waitFor(t, 5*time.Second, func() bool {
		st, _ := store.Snapshot()
		c := st.ActiveCampaigns["c1"]
		return c != nil && c.Approved == 2
	})
	if !ok {
		st, _ := store.Snapshot()
		t.Fatalf("pipeline did not approve both items: %+v", st.ActiveCampaigns["c1"])
	}

	st, _ := store.Snapshot()
	if st.ActiveCampaigns["c1"].PlannedAt == nil {
		t.Error("campaign must be marked planned")
	}
	if st.ActiveCampaigns["c1"].Rejected != 0 {
		t.Errorf("rejected = %d, want 0", st.ActiveCampaigns["c1"].Rejected)
	}
}

func TestCoordinator_PlansCampaignOnce(t *testing.T) {
	coord, store := testCoordinator(t)
	ctx := context.Background()

	if err := coord.StartCampaign(ctx, "c1", "launch week"); err != nil {
		t.Fatalf("start campaign: %v", err)
	}
	if err := coord.Start(ctx); err != nil {
		t.Fatalf("start coordinator: %v", err)
	}
	defer coord.Stop()

	waitFor(t, 5*time.Second, func() bool {
		st, _ := store.Snapshot()
		c := st.ActiveCampaigns["c1"]
		return c != nil && c.Approved == 2
	})

	// Несколько тиков planning-цикла спустя счётчики не растут:
	// кампания декомпозируется ровно один раз
	time.Sleep(100 * time.Millisecond)

	st, _ := store.Snapshot()
	if got := st.ActiveCampaigns["c1"].Approved; got != 2 {
		t.Errorf("approved = %d, want 2 (campaign planned more than once?)", got)
	}
}

func TestCoordinator_StartCampaign_Duplicate(t *testing.T) {
	coord, _ := testCoordinator(t)
	ctx := context.Background()

	if err := coord.StartCampaign(ctx, "c1", "goal"); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if err := coord.StartCampaign(ctx, "c1", "other goal"); !errors.Is(err, ErrCampaignExists) {
		t.Fatalf("expected ErrCampaignExists, got %v", err)
	}
}

func TestCoordinator_StartCampaign_AfterStop(t *testing.T) {
	coord, _ := testCoordinator(t)
	ctx := context.Background()

	if err := coord.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	coord.Stop()

	if !coord.IsStopped() {
		t.Fatal("coordinator must report stopped")
	}
	if err := coord.StartCampaign(ctx, "c1", "goal"); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

// escalateAll — судья, эскалирующий любой результат.
type escalateAll struct{}

func (escalateAll) Evaluate(_ context.Context, _ *domain.WorkResult) domain.Decision {
	return domain.Decision{Verdict: domain.VerdictEscalate, Reason: "needs review"}
}

func TestCoordinator_EscalationFlow(t *testing.T) {
	coord, store := testCoordinator(t, func(cfg *Config) {
		cfg.Judge = escalateAll{}
	})
	ctx := context.Background()

	if err := coord.StartCampaign(ctx, "c1", "launch week"); err != nil {
		t.Fatalf("start campaign: %v", err)
	}
	if err := coord.Start(ctx); err != nil {
		t.Fatalf("start coordinator: %v", err)
	}
	defer coord.Stop()

	// Оба результата паркуются в списке эскалаций
	ok := waitFor(t, 5*time.Second, func() bool {
		return len(coord.PendingEscalations()) == 2
	})
	if !ok {
		t.Fatalf("expected 2 pending escalations, got %d", len(coord.PendingEscalations()))
	}

	pending := coord.PendingEscalations()

	// Одобряем первую, отклоняем вторую
	if err := coord.ApproveEscalation(ctx, pending[0].WorkItemID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := coord.RejectEscalation(ctx, pending[1].WorkItemID); err != nil {
		t.Fatalf("reject: %v", err)
	}

	if n := len(coord.PendingEscalations()); n != 0 {
		t.Errorf("pending after decisions = %d, want 0", n)
	}

	st, _ := store.Snapshot()
	if st.ActiveCampaigns["c1"].Approved != 1 {
		t.Errorf("approved = %d, want 1", st.ActiveCampaigns["c1"].Approved)
	}
	if st.ActiveCampaigns["c1"].Rejected != 1 {
		t.Errorf("rejected = %d, want 1", st.ActiveCampaigns["c1"].Rejected)
	}

	// Повторное решение по тому же ID — ErrNotFound
	if err := coord.ApproveEscalation(ctx, pending[0].WorkItemID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double approve: expected ErrNotFound, got %v", err)
	}
	if err := coord.RejectEscalation(ctx, pending[1].WorkItemID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double reject: expected ErrNotFound, got %v", err)
	}
}

func TestCoordinator_ApproveEscalation_ReservesSpend(t *testing.T) {
	coord, store := testCoordinator(t)
	ctx := context.Background()

	entry := &domain.WorkResult{
		WorkItemID:      uuid.New(),
		CampaignID:      "c1",
		WorkerID:        "worker-1",
		ConfidenceScore: 0.80,
		Status:          domain.ResultStatusSuccess,
		Output: map[string]any{
			"transaction": map[string]any{
				"currency":   "USDC",
				"amount":     7.5,
				"to_address": "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
			},
		},
		Timestamp: time.Now().UTC(),
	}
	coord.escalations.Add(entry)

	if err := coord.ApproveEscalation(ctx, entry.WorkItemID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	st, _ := store.Snapshot()
	if st.DailySpend["USDC"] != 7.5 {
		t.Errorf("daily spend = %g, want 7.5 (human approval reserves spend)", st.DailySpend["USDC"])
	}
}

func TestEscalationList(t *testing.T) {
	list := NewEscalationList()

	a := &domain.WorkResult{WorkItemID: uuid.New()}
	b := &domain.WorkResult{WorkItemID: uuid.New()}

	list.Add(a)
	list.Add(b)
	list.Add(a) // повторная вставка игнорируется

	if list.Len() != 2 {
		t.Fatalf("len = %d, want 2", list.Len())
	}

	pending := list.Pending()
	if len(pending) != 2 || pending[0].WorkItemID != a.WorkItemID || pending[1].WorkItemID != b.WorkItemID {
		t.Fatal("pending must preserve insertion order")
	}

	got, err := list.Take(a.WorkItemID)
	if err != nil {
		t.Fatalf("take: %v", err)
	}
	if got.WorkItemID != a.WorkItemID {
		t.Errorf("take returned wrong entry")
	}

	if _, err := list.Take(a.WorkItemID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second take: expected ErrNotFound, got %v", err)
	}

	if list.Len() != 1 {
		t.Errorf("len after take = %d, want 1", list.Len())
	}
}
