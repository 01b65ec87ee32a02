package state

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shaiso/Chimera/internal/domain"
	"github.com/shaiso/Chimera/internal/telemetry"
)

// defaultUpdateAttempts — число попыток цикла read-modify-commit
// в Update, прежде чем вернуть ErrRetryExhausted.
const defaultUpdateAttempts = 5

// Persister сохраняет закоммиченное состояние во внешнее хранилище.
// Реализуется repo.StateRepo. Store остаётся авторитетным источником;
// persister — это журнал для восстановления и аудита.
type Persister interface {
	SaveState(ctx context.Context, st *CoordinationState) error
}

// Store — единственный владелец канонического CoordinationState.
//
// Чтения не блокируют друг друга и возвращают глубокие копии.
// Единственная операция, требующая взаимного исключения, —
// атомарная проверка-и-замена в Commit.
type Store struct {
	mu    sync.RWMutex
	state *CoordinationState

	persist Persister
	logger  *slog.Logger
}

// Config — конфигурация Store.
type Config struct {
	// Persist — внешнее хранилище для закоммиченных состояний
	// (опционально; nil — только память).
	Persist Persister

	// Initial — состояние на момент старта, например последний
	// сохранённый снимок (опционально; nil — пустое состояние).
	Initial *CoordinationState

	// Logger — логгер (default: slog.Default()).
	Logger *slog.Logger
}

// NewStore создаёт Store. Начальное состояние версионируется заново:
// хэш восстановленного снимка пересчитывается на месте.
func NewStore(cfg Config) *Store {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	initial := NewCoordinationState()
	if cfg.Initial != nil {
		initial = cfg.Initial.Clone()
		if initial.ActiveCampaigns == nil {
			initial.ActiveCampaigns = make(map[string]*domain.Campaign)
		}
		if initial.DailySpend == nil {
			initial.DailySpend = make(map[string]float64)
		}
		if initial.SpendLimits == nil {
			initial.SpendLimits = make(map[string]float64)
		}
		if initial.AgentStates == nil {
			initial.AgentStates = make(map[string]string)
		}
	}
	hash, _ := initial.ComputeHash()
	initial.Version = StateVersion{
		Hash:      hash,
		Timestamp: time.Now().UTC(),
		UpdatedBy: "system",
	}

	return &Store{
		state:   initial,
		persist: cfg.Persist,
		logger:  logger,
	}
}

// Snapshot возвращает глубокую копию состояния и хэш на момент чтения.
// Без побочных эффектов; не блокируется другими снимками.
func (s *Store) Snapshot() (*CoordinationState, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone(), s.state.Version.Hash
}

// Commit атомарно сравнивает expectedHash с текущим хэшем и,
// при совпадении, делает candidate каноническим состоянием.
//
// При несовпадении возвращает ErrConflict, не меняя состояние:
// ни частичных записей, ни попыток слияния — вызывающий обязан
// повторить цикл со свежим снимком.
func (s *Store) Commit(ctx context.Context, candidate *CoordinationState, expectedHash, actorID string) (string, error) {
	if err := validateCandidate(candidate); err != nil {
		return "", err
	}

	newHash, err := candidate.ComputeHash()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCandidate, err)
	}

	s.mu.Lock()
	if s.state.Version.Hash != expectedHash {
		s.mu.Unlock()
		telemetry.StateConflictsTotal.Inc()
		return "", ErrConflict
	}

	committed := candidate.Clone()
	committed.Version = StateVersion{
		Hash:      newHash,
		Timestamp: time.Now().UTC(),
		UpdatedBy: actorID,
	}
	s.state = committed
	snapshot := committed.Clone()
	s.mu.Unlock()

	telemetry.StateCommitsTotal.Inc()

	if s.persist != nil {
		if err := s.persist.SaveState(ctx, snapshot); err != nil {
			s.logger.Error("failed to persist committed state",
				"version_hash", newHash,
				"updated_by", actorID,
				"error", err,
			)
		}
	}

	return newHash, nil
}

// Update выполняет цикл read-modify-commit с повтором при конфликте.
//
// fn получает снимок и модифицирует его на месте. При ErrConflict
// цикл повторяется со свежим снимком, до defaultUpdateAttempts раз.
func (s *Store) Update(ctx context.Context, actorID string, fn func(st *CoordinationState) error) error {
	for attempt := 0; attempt < defaultUpdateAttempts; attempt++ {
		snapshot, expectedHash := s.Snapshot()

		if err := fn(snapshot); err != nil {
			return err
		}

		_, err := s.Commit(ctx, snapshot, expectedHash, actorID)
		if err == nil {
			return nil
		}
		if err != ErrConflict {
			return err
		}
	}
	return ErrRetryExhausted
}

// AddCampaign добавляет кампанию в состояние.
func (s *Store) AddCampaign(ctx context.Context, campaign *domain.Campaign, actorID string) error {
	return s.Update(ctx, actorID, func(st *CoordinationState) error {
		st.ActiveCampaigns[campaign.ID] = campaign
		return nil
	})
}

// ReserveSpend добавляет amount к дневному расходу по валюте.
// Один цикл read-modify-commit без повтора: BudgetGovernor должен
// видеть конфликт, чтобы понизить вердикт.
func (s *Store) ReserveSpend(ctx context.Context, currency string, amount float64, actorID string) error {
	snapshot, expectedHash := s.Snapshot()
	snapshot.DailySpend[currency] += amount

	_, err := s.Commit(ctx, snapshot, expectedHash, actorID)
	return err
}

// CheckSpendLimit проверяет, не превысит ли транзакция дневной потолок.
// Чистое чтение, без commit. Возвращает (разрешено, текущий расход).
func (s *Store) CheckSpendLimit(currency string, amount float64) (bool, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CheckSpend(currency, amount)
}

// SetSpendLimit устанавливает дневной потолок для валюты.
// Действует со следующей оценки; уже оценённые результаты
// не пересматриваются.
func (s *Store) SetSpendLimit(ctx context.Context, currency string, ceiling float64, actorID string) error {
	return s.Update(ctx, actorID, func(st *CoordinationState) error {
		st.SpendLimits[currency] = ceiling
		return nil
	})
}

// SetAgentState записывает статус агента в состояние.
func (s *Store) SetAgentState(ctx context.Context, agentID, status, actorID string) error {
	return s.Update(ctx, actorID, func(st *CoordinationState) error {
		st.AgentStates[agentID] = status
		return nil
	})
}

// validateCandidate проверяет форму кандидата состояния.
func validateCandidate(candidate *CoordinationState) error {
	if candidate == nil {
		return fmt.Errorf("%w: nil state", ErrInvalidCandidate)
	}
	if candidate.ActiveCampaigns == nil || candidate.DailySpend == nil ||
		candidate.SpendLimits == nil || candidate.AgentStates == nil {
		return fmt.Errorf("%w: uninitialized maps", ErrInvalidCandidate)
	}
	return nil
}
