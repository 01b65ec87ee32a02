package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Chimera/internal/domain"
)

// Campaign DTOs

// StartCampaignRequest — запрос на запуск кампании.
type StartCampaignRequest struct {
	ID   string `json:"id,omitempty"`
	Goal string `json:"goal"`
}

// CampaignResponse — ответ с кампанией.
type CampaignResponse struct {
	ID        string     `json:"id"`
	Goal      string     `json:"goal"`
	Status    string     `json:"status"`
	Approved  int        `json:"approved"`
	Rejected  int        `json:"rejected"`
	PlannedAt *time.Time `json:"planned_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// CampaignFromDomain конвертирует domain.Campaign в CampaignResponse.
func CampaignFromDomain(c *domain.Campaign) CampaignResponse {
	if c == nil {
		return CampaignResponse{}
	}
	return CampaignResponse{
		ID:        c.ID,
		Goal:      c.Goal,
		Status:    string(c.Status),
		Approved:  c.Approved,
		Rejected:  c.Rejected,
		PlannedAt: c.PlannedAt,
		CreatedAt: c.CreatedAt,
	}
}

// Escalation DTOs

// EscalationResponse — результат, ожидающий решения человека.
type EscalationResponse struct {
	WorkItemID uuid.UUID      `json:"work_item_id"`
	CampaignID string         `json:"campaign_id"`
	WorkerID   string         `json:"worker_id"`
	Confidence float64        `json:"confidence"`
	Output     map[string]any `json:"output,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

// EscalationFromDomain конвертирует domain.WorkResult в EscalationResponse.
func EscalationFromDomain(r *domain.WorkResult) EscalationResponse {
	return EscalationResponse{
		WorkItemID: r.WorkItemID,
		CampaignID: r.CampaignID,
		WorkerID:   r.WorkerID,
		Confidence: r.ConfidenceScore,
		Output:     r.Output,
		Timestamp:  r.Timestamp,
	}
}

// Budget DTOs

// BudgetResponse — текущие расходы и лимиты по валютам.
type BudgetResponse struct {
	DailySpend  map[string]float64 `json:"daily_spend"`
	SpendLimits map[string]float64 `json:"spend_limits"`
}

// SetLimitRequest — запрос на установку дневного лимита.
type SetLimitRequest struct {
	Currency string  `json:"currency"`
	Limit    float64 `json:"limit"`
}

// Fleet DTOs

// FleetResponse — состояния агентов роя.
type FleetResponse struct {
	Agents map[string]string `json:"agents"`
}
