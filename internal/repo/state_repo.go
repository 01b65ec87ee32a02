package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/Chimera/internal/state"
)

// StateRepo — журнал закоммиченных снимков координационного состояния.
// Реализует state.Persister.
type StateRepo struct {
	pool *pgxpool.Pool
}

// NewStateRepo создаёт новый StateRepo.
func NewStateRepo(pool *pgxpool.Pool) *StateRepo {
	return &StateRepo{pool: pool}
}

// SaveState сохраняет закоммиченный снимок состояния.
// Снимки append-only: каждый commit — новая строка с хэшем версии.
func (r *StateRepo) SaveState(ctx context.Context, st *state.CoordinationState) error {
	payload, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	query := `
		INSERT INTO coordination_state (version_hash, payload, updated_by, committed_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (version_hash) DO NOTHING
	`
	_, err = r.pool.Exec(ctx, query,
		st.Version.Hash,
		payload,
		st.Version.UpdatedBy,
		st.Version.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert state snapshot: %w", err)
	}
	return nil
}

// LoadLatest возвращает последний сохранённый снимок состояния.
func (r *StateRepo) LoadLatest(ctx context.Context) (*state.CoordinationState, error) {
	query := `
		SELECT payload
		FROM coordination_state
		ORDER BY committed_at DESC
		LIMIT 1
	`
	var payload []byte
	err := r.pool.QueryRow(ctx, query).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load latest state: %w", err)
	}

	var st state.CoordinationState
	if err := json.Unmarshal(payload, &st); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}
	return &st, nil
}
