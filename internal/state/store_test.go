package state

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shaiso/Chimera/internal/domain"
)

func TestStore_SnapshotCommit(t *testing.T) {
	ctx := context.Background()
	store := NewStore(Config{})

	snapshot, hash := store.Snapshot()
	snapshot.DailySpend["USDC"] = 10

	newHash, err := store.Commit(ctx, snapshot, hash, "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if newHash == hash {
		t.Error("commit must produce a new version hash")
	}

	committed, committedHash := store.Snapshot()
	if committed.DailySpend["USDC"] != 10 {
		t.Errorf("committed spend = %g, want 10", committed.DailySpend["USDC"])
	}
	if committedHash != newHash {
		t.Errorf("snapshot hash = %s, want %s", committedHash, newHash)
	}
	if committed.Version.UpdatedBy != "test" {
		t.Errorf("updated_by = %s, want test", committed.Version.UpdatedBy)
	}
}

func TestStore_CommitConflict(t *testing.T) {
	ctx := context.Background()
	store := NewStore(Config{})

	// Два актора читают один и тот же снимок
	first, firstHash := store.Snapshot()
	second, secondHash := store.Snapshot()

	first.DailySpend["USDC"] = 10
	if _, err := store.Commit(ctx, first, firstHash, "first"); err != nil {
		t.Fatalf("first commit failed: %v", err)
	}

	// Второй commit против устаревшего хэша должен конфликтовать
	second.DailySpend["USDC"] = 20
	_, err := store.Commit(ctx, second, secondHash, "second")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// Состояние осталось от победителя
	st, _ := store.Snapshot()
	if st.DailySpend["USDC"] != 10 {
		t.Errorf("spend = %g, want 10 (loser must not modify state)", st.DailySpend["USDC"])
	}
}

func TestStore_ConcurrentCommits_OneWinner(t *testing.T) {
	ctx := context.Background()
	store := NewStore(Config{})

	_, baseHash := store.Snapshot()

	const actors = 8
	var wg sync.WaitGroup
	results := make([]error, actors)

	for i := 0; i < actors; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snapshot, _ := store.Snapshot()
			snapshot.DailySpend["USDC"] += 1
			_, results[i] = store.Commit(ctx, snapshot, baseHash, "actor")
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if wins != 1 {
		t.Errorf("exactly one commit must win, got %d", wins)
	}
	if conflicts != actors-1 {
		t.Errorf("expected %d conflicts, got %d", actors-1, conflicts)
	}

	st, _ := store.Snapshot()
	if st.DailySpend["USDC"] != 1 {
		t.Errorf("spend = %g, want 1 (single winner)", st.DailySpend["USDC"])
	}
}

func TestStore_CommitInvalidCandidate(t *testing.T) {
	ctx := context.Background()
	store := NewStore(Config{})
	_, hash := store.Snapshot()

	if _, err := store.Commit(ctx, nil, hash, "test"); !errors.Is(err, ErrInvalidCandidate) {
		t.Errorf("nil candidate: expected ErrInvalidCandidate, got %v", err)
	}

	broken := &CoordinationState{}
	if _, err := store.Commit(ctx, broken, hash, "test"); !errors.Is(err, ErrInvalidCandidate) {
		t.Errorf("uninitialized maps: expected ErrInvalidCandidate, got %v", err)
	}
}

func TestStore_UpdateRetriesOnConflict(t *testing.T) {
	ctx := context.Background()
	store := NewStore(Config{})

	// Конкурирующие Update-циклы: каждый должен в итоге пройти
	const actors = 10
	var wg sync.WaitGroup
	for i := 0; i < actors; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.Update(ctx, "actor", func(st *CoordinationState) error {
				st.DailySpend["USDC"] += 1
				return nil
			})
			if err != nil && !errors.Is(err, ErrRetryExhausted) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	st, _ := store.Snapshot()
	if st.DailySpend["USDC"] > actors {
		t.Errorf("spend = %g, more increments than actors", st.DailySpend["USDC"])
	}
	if st.DailySpend["USDC"] == 0 {
		t.Error("no update succeeded")
	}
}

func TestStore_UpdateFnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore(Config{})

	wantErr := errors.New("validation failed")
	err := store.Update(ctx, "actor", func(st *CoordinationState) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected fn error to propagate, got %v", err)
	}
}

func TestStore_ReserveSpend_SingleShot(t *testing.T) {
	ctx := context.Background()
	store := NewStore(Config{})

	if err := store.ReserveSpend(ctx, "USDC", 5, "test"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	allowed, current := store.CheckSpendLimit("USDC", 1)
	if !allowed {
		t.Error("no limit configured, must be allowed")
	}
	if current != 5 {
		t.Errorf("current spend = %g, want 5", current)
	}
}

func TestStore_SetSpendLimit(t *testing.T) {
	ctx := context.Background()
	store := NewStore(Config{})

	if err := store.SetSpendLimit(ctx, "USDC", 50, "test"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.ReserveSpend(ctx, "USDC", 45, "test"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if allowed, _ := store.CheckSpendLimit("USDC", 10); allowed {
		t.Error("45+10 > 50, must not be allowed")
	}
	if allowed, _ := store.CheckSpendLimit("USDC", 5); !allowed {
		t.Error("45+5 = 50, must be allowed (boundary is inclusive)")
	}
}

func TestStore_AddCampaign(t *testing.T) {
	ctx := context.Background()
	store := NewStore(Config{})

	campaign := &domain.Campaign{ID: "c1", Goal: "launch", Status: domain.CampaignStatusActive}
	if err := store.AddCampaign(ctx, campaign, "test"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st, _ := store.Snapshot()
	got, ok := st.ActiveCampaigns["c1"]
	if !ok {
		t.Fatal("campaign not found in state")
	}
	if got.Goal != "launch" {
		t.Errorf("goal = %q, want %q", got.Goal, "launch")
	}
	if st.Version.UpdatedBy != "test" {
		t.Errorf("updated_by = %s, want test", st.Version.UpdatedBy)
	}
}

func TestStore_InitialState(t *testing.T) {
	initial := NewCoordinationState()
	initial.DailySpend["USDC"] = 33
	initial.ActiveCampaigns["c1"] = &domain.Campaign{ID: "c1", Goal: "restored"}

	store := NewStore(Config{Initial: initial})

	st, hash := store.Snapshot()
	if st.DailySpend["USDC"] != 33 {
		t.Errorf("restored spend = %g, want 33", st.DailySpend["USDC"])
	}
	if st.ActiveCampaigns["c1"].Goal != "restored" {
		t.Error("restored campaign missing")
	}
	if hash == "" {
		t.Error("restored state must be re-hashed")
	}

	// Изменение исходного состояния не должно влиять на Store
	initial.DailySpend["USDC"] = 0
	st2, _ := store.Snapshot()
	if st2.DailySpend["USDC"] != 33 {
		t.Error("store must own a copy of the initial state")
	}
}
