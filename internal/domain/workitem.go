package domain

import (
	"time"

	"github.com/google/uuid"
)

// WorkItemKind — тип единицы работы.
type WorkItemKind string

const (
	// KindGenerateContent — генерация контента (изображение, текст).
	KindGenerateContent WorkItemKind = "generate_content"

	// KindSocialAction — действие в социальной сети (пост, ответ).
	KindSocialAction WorkItemKind = "social_action"

	// KindTransaction — финансовая транзакция (перевод средств).
	// Результаты таких items проходят через BudgetGovernor.
	KindTransaction WorkItemKind = "transaction"
)

// Priority — приоритет единицы работы.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// WorkContext — контекст выполнения: цель и ограничения.
type WorkContext struct {
	// Goal — текстовое описание цели item.
	Goal string `json:"goal"`

	// Constraints — ограничения персоны/стиля для исполнителя.
	Constraints []string `json:"constraints,omitempty"`

	// Resources — ссылки на ресурсы, доступные при выполнении.
	Resources []string `json:"resources,omitempty"`
}

// WorkItem — единица работы, созданная планировщиком.
//
// WorkItem неизменяем после постановки в очередь и потребляется ровно
// одним воркером. Доставка через очередь — at-least-once; ID служит
// ключом идемпотентности при повторной доставке.
type WorkItem struct {
	// ID — уникальный идентификатор item (и ключ дедупликации).
	ID uuid.UUID `json:"id"`

	// CampaignID — кампания, в рамках которой создан item.
	CampaignID string `json:"campaign_id,omitempty"`

	// Kind — тип работы.
	Kind WorkItemKind `json:"kind"`

	// Priority — приоритет (информационный, очередь строго FIFO).
	Priority Priority `json:"priority"`

	// Context — цель и ограничения.
	Context WorkContext `json:"context"`

	// Status — статус item на момент постановки в очередь.
	Status WorkItemStatus `json:"status"`

	// CreatedAt — время создания планировщиком.
	CreatedAt time.Time `json:"created_at"`
}

// NewWorkItem создаёт WorkItem в статусе PENDING.
func NewWorkItem(campaignID string, kind WorkItemKind, priority Priority, ctx WorkContext) *WorkItem {
	return &WorkItem{
		ID:         uuid.New(),
		CampaignID: campaignID,
		Kind:       kind,
		Priority:   priority,
		Context:    ctx,
		Status:     WorkItemStatusPending,
		CreatedAt:  time.Now().UTC(),
	}
}
