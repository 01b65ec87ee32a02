package judge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/shaiso/Chimera/internal/domain"
	"github.com/shaiso/Chimera/internal/state"
	"github.com/shaiso/Chimera/internal/telemetry"
)

// governorActorID — идентификатор губернатора в commit'ах состояния.
const governorActorID = "budget-governor"

// BudgetGovernor — судья для результатов с финансовой транзакцией.
//
// Оценка — упорядоченная последовательность guard-шагов:
//  1. Проверка дневного потолка расхода → REJECT при превышении.
//  2. Проверка аномалий (сумма выше порога, подозрительный
//     получатель) → ESCALATE; приоритетнее confidence-одобрения.
//  3. Делегирование базовому судье.
//  4. При APPROVE — атомарное резервирование расхода через commit
//     в Store. OCC-конфликт понижает вердикт до REJECT: APPROVE
//     никогда не возвращается без успешно зарезервированного расхода.
//
// Результаты без транзакции уходят напрямую базовому судье.
type BudgetGovernor struct {
	base   Evaluator
	store  *state.Store
	logger *slog.Logger

	// suspicious — порог "подозрительной" суммы по валютам.
	// Независим от жёсткого потолка; валюта без записи не проверяется.
	mu         sync.RWMutex
	suspicious map[string]float64
}

// GovernorConfig — конфигурация BudgetGovernor.
type GovernorConfig struct {
	// Base — базовый судья для делегирования (default: ConfidenceJudge).
	Base Evaluator

	// Store — хранилище состояния для проверок и резервирования.
	Store *state.Store

	// SuspiciousThresholds — начальные пороги подозрительных сумм.
	SuspiciousThresholds map[string]float64

	// Logger — логгер (default: slog.Default()).
	Logger *slog.Logger
}

// NewBudgetGovernor создаёт BudgetGovernor.
func NewBudgetGovernor(cfg GovernorConfig) *BudgetGovernor {
	base := cfg.Base
	if base == nil {
		base = NewConfidenceJudge()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	suspicious := make(map[string]float64, len(cfg.SuspiciousThresholds))
	for currency, threshold := range cfg.SuspiciousThresholds {
		suspicious[currency] = threshold
	}

	return &BudgetGovernor{
		base:       base,
		store:      cfg.Store,
		logger:     logger,
		suspicious: suspicious,
	}
}

// SetSuspiciousThreshold обновляет порог подозрительной суммы.
// Действует со следующей оценки.
func (g *BudgetGovernor) SetSuspiciousThreshold(currency string, threshold float64) {
	g.mu.Lock()
	g.suspicious[currency] = threshold
	g.mu.Unlock()

	g.logger.Info("suspicious threshold updated",
		"currency", currency,
		"threshold", threshold,
	)
}

// Evaluate оценивает результат с учётом бюджетной политики.
func (g *BudgetGovernor) Evaluate(ctx context.Context, result *domain.WorkResult) domain.Decision {
	tx := result.Transaction()
	if tx == nil {
		// Не транзакция — обычная оценка.
		return g.base.Evaluate(ctx, result)
	}

	// Снимок фиксируется до всех проверок: резервирование коммитится
	// против этого же хэша, поэтому конкурентное одобрение по тому же
	// базовому состоянию обнаруживается как конфликт.
	snapshot, expectedHash := g.store.Snapshot()

	// 1. Дневной потолок.
	if decision, exceeded := g.checkLimit(snapshot, tx); exceeded {
		return decision
	}

	// 2. Аномалии.
	if decision, flagged := g.checkAnomalies(tx); flagged {
		return decision
	}

	// 3. Базовая confidence-оценка.
	decision := g.base.Evaluate(ctx, result)
	if decision.Verdict != domain.VerdictApprove {
		return decision
	}

	// 4. Резервирование расхода перед возвратом APPROVE.
	return g.reserve(ctx, snapshot, expectedHash, tx, decision)
}

// checkLimit проверяет дневной потолок по снимку состояния.
func (g *BudgetGovernor) checkLimit(snapshot *state.CoordinationState, tx *domain.Transaction) (domain.Decision, bool) {
	allowed, currentSpend := snapshot.CheckSpend(tx.Currency, tx.Amount)
	if allowed {
		return domain.Decision{}, false
	}

	ceiling := snapshot.SpendLimits[tx.Currency]

	g.logger.Warn("transaction rejected: daily budget limit",
		"currency", tx.Currency,
		"current_spend", currentSpend,
		"requested", tx.Amount,
		"ceiling", ceiling,
	)

	return domain.Decision{
		Verdict: domain.VerdictReject,
		Reason: fmt.Sprintf(
			"transaction would exceed daily budget limit (%g > %g %s): current spend %g, requested %g",
			currentSpend+tx.Amount, ceiling, tx.Currency, currentSpend, tx.Amount,
		),
	}, true
}

// checkAnomalies выполняет все проверки аномалий и агрегирует причины.
func (g *BudgetGovernor) checkAnomalies(tx *domain.Transaction) (domain.Decision, bool) {
	var reasons []string

	g.mu.RLock()
	threshold, hasThreshold := g.suspicious[tx.Currency]
	g.mu.RUnlock()

	if hasThreshold && tx.Amount > threshold {
		reasons = append(reasons, fmt.Sprintf(
			"large transaction amount (%g %s > %g %s)",
			tx.Amount, tx.Currency, threshold, tx.Currency,
		))
	}

	if tx.ToAddress == "" || strings.HasPrefix(tx.ToAddress, "0x0000") {
		reasons = append(reasons, "suspicious or unknown recipient address")
	}

	if len(reasons) == 0 {
		return domain.Decision{}, false
	}

	g.logger.Warn("transaction escalated: suspicious pattern",
		"currency", tx.Currency,
		"amount", tx.Amount,
		"reasons", reasons,
	)

	return domain.Decision{
		Verdict: domain.VerdictEscalate,
		Reason: fmt.Sprintf(
			"suspicious transaction pattern detected: %s; requires human review",
			strings.Join(reasons, "; "),
		),
	}, true
}

// reserve атомарно резервирует расход. Конфликт понижает вердикт.
func (g *BudgetGovernor) reserve(ctx context.Context, snapshot *state.CoordinationState, expectedHash string, tx *domain.Transaction, approved domain.Decision) domain.Decision {
	snapshot.DailySpend[tx.Currency] += tx.Amount

	_, err := g.store.Commit(ctx, snapshot, expectedHash, governorActorID)
	if err != nil {
		if errors.Is(err, state.ErrConflict) {
			g.logger.Warn("budget reservation conflict, downgrading to reject",
				"currency", tx.Currency,
				"amount", tx.Amount,
			)
			return domain.Decision{
				Verdict: domain.VerdictReject,
				Reason:  "state conflict detected during budget reservation, retry",
			}
		}

		g.logger.Error("budget reservation failed", "error", err)
		return domain.Decision{
			Verdict: domain.VerdictReject,
			Reason:  fmt.Sprintf("budget reservation failed: %v", err),
		}
	}

	telemetry.DailySpend.WithLabelValues(tx.Currency).Set(snapshot.DailySpend[tx.Currency])

	g.logger.Info("transaction approved, spend reserved",
		"currency", tx.Currency,
		"amount", tx.Amount,
		"daily_spend", snapshot.DailySpend[tx.Currency],
	)

	return approved
}
