package domain

import "time"

// Campaign — запись кампании в общем координационном состоянии.
//
// Кампания — это высокоуровневая цель ("продвинуть летнюю коллекцию"),
// которую планировщик декомпозирует в WorkItems.
type Campaign struct {
	// ID — уникальный идентификатор кампании.
	ID string `json:"id"`

	// Goal — описание цели кампании.
	Goal string `json:"goal"`

	// Status — текущий статус.
	Status CampaignStatus `json:"status"`

	// CreatedAt — время создания.
	CreatedAt time.Time `json:"created_at"`

	// PlannedAt — время декомпозиции планировщиком.
	// Пустое значение означает, что items ещё не созданы;
	// планировщик декомпозирует каждую кампанию ровно один раз.
	PlannedAt *time.Time `json:"planned_at,omitempty"`

	// Approved — количество принятых результатов по кампании.
	Approved int `json:"approved"`

	// Rejected — количество отклонённых результатов по кампании.
	Rejected int `json:"rejected"`
}

// IsActive возвращает true, если кампания активна.
func (c *Campaign) IsActive() bool {
	return c.Status == CampaignStatusActive
}
