package judge

import (
	"context"

	"github.com/shaiso/Chimera/internal/domain"
)

// Пороги confidence-оценки. Границы включительны сверху.
const (
	// approveThreshold — от этого значения результат принимается.
	approveThreshold = 0.90

	// escalateThreshold — от этого значения (но ниже approveThreshold)
	// результат уходит человеку на решение.
	escalateThreshold = 0.70
)

// Evaluator оценивает результат работы и выносит вердикт.
//
// Два независимых варианта: ConfidenceJudge (обычные результаты)
// и BudgetGovernor (результаты с транзакцией). BudgetGovernor
// делегирует базовую оценку, а не наследует её.
type Evaluator interface {
	Evaluate(ctx context.Context, result *domain.WorkResult) domain.Decision
}

// ConfidenceJudge — базовый судья: вердикт по confidence score.
//
// Машина состояний результата:
//
//	PendingReview → APPROVE | ESCALATE | REJECT
//
// Все исходы терминальны; повторная оценка возможна только
// для нового WorkResult.
type ConfidenceJudge struct{}

// NewConfidenceJudge создаёт ConfidenceJudge.
func NewConfidenceJudge() *ConfidenceJudge {
	return &ConfidenceJudge{}
}

// Evaluate выносит вердикт по статусу и confidence score результата.
func (j *ConfidenceJudge) Evaluate(_ context.Context, result *domain.WorkResult) domain.Decision {
	if result.Failed() {
		return domain.Decision{
			Verdict: domain.VerdictReject,
			Reason:  "execution failed",
		}
	}

	switch {
	case result.ConfidenceScore >= approveThreshold:
		return domain.Decision{
			Verdict: domain.VerdictApprove,
			Reason:  "high confidence",
		}
	case result.ConfidenceScore >= escalateThreshold:
		return domain.Decision{
			Verdict: domain.VerdictEscalate,
			Reason:  "needs review",
		}
	default:
		return domain.Decision{
			Verdict: domain.VerdictReject,
			Reason:  "low confidence",
		}
	}
}
