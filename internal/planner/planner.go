package planner

import (
	"context"

	"github.com/shaiso/Chimera/internal/domain"
)

// Decomposer — внешний коллаборатор, превращающий цель кампании
// в список единиц работы.
//
// Ошибка декомпозиции не останавливает planning-цикл: она
// трактуется как ноль items и логируется вызывающей стороной.
type Decomposer interface {
	Decompose(ctx context.Context, campaignID, goal string) ([]*domain.WorkItem, error)
}

// Heuristic — детерминированная декомпозиция-прототип.
//
// Продуктивная декомпозиция делается LLM-коллаборатором за пределами
// ядра; Heuristic повторяет его контракт и служит fallback'ом:
// на каждую цель создаётся item генерации контента и item
// социального действия.
type Heuristic struct {
	// Constraints — ограничения персоны, прикрепляемые к items.
	Constraints []string
}

// NewHeuristic создаёт Heuristic с ограничениями персоны.
func NewHeuristic(constraints ...string) *Heuristic {
	return &Heuristic{Constraints: constraints}
}

// Decompose создаёт items для цели кампании.
func (p *Heuristic) Decompose(_ context.Context, campaignID, goal string) ([]*domain.WorkItem, error) {
	items := []*domain.WorkItem{
		domain.NewWorkItem(campaignID, domain.KindGenerateContent, domain.PriorityHigh, domain.WorkContext{
			Goal:        "Visual for: " + goal,
			Constraints: p.Constraints,
		}),
		domain.NewWorkItem(campaignID, domain.KindSocialAction, domain.PriorityMedium, domain.WorkContext{
			Goal: "Social post for: " + goal,
		}),
	}

	return items, nil
}
