package domain

import (
	"time"

	"github.com/google/uuid"
)

// WorkResult — результат выполнения одного WorkItem.
//
// Создаётся ровно один раз одним воркером; после создания только читается.
// Ошибки исполнителя нормализуются в статус failed, а не пробрасываются.
type WorkResult struct {
	// WorkItemID — ссылка на исходный WorkItem.
	WorkItemID uuid.UUID `json:"work_item_id"`

	// CampaignID — кампания исходного item (копируется воркером).
	CampaignID string `json:"campaign_id,omitempty"`

	// WorkerID — идентификатор воркера, выполнившего item.
	WorkerID string `json:"worker_id"`

	// Output — непрозрачный результат выполнения.
	// Может содержать вложенную запись "transaction" (см. Transaction).
	Output map[string]any `json:"output,omitempty"`

	// ConfidenceScore — уверенность исполнителя в результате, [0, 1].
	ConfidenceScore float64 `json:"confidence_score"`

	// Status — success или failed.
	Status ResultStatus `json:"status"`

	// Timestamp — время создания результата.
	Timestamp time.Time `json:"timestamp"`
}

// Transaction — финансовая часть результата.
type Transaction struct {
	// Currency — валюта (USDC, ETH, ...).
	Currency string `json:"currency"`

	// Amount — сумма перевода.
	Amount float64 `json:"amount"`

	// ToAddress — адрес получателя.
	ToAddress string `json:"to_address"`
}

// Transaction извлекает вложенную транзакцию из Output.
// Возвращает nil, если результат не содержит транзакции —
// такие результаты оцениваются обычным судьёй, минуя BudgetGovernor.
func (r *WorkResult) Transaction() *Transaction {
	raw, ok := r.Output["transaction"]
	if !ok {
		return nil
	}

	fields, ok := raw.(map[string]any)
	if !ok || len(fields) == 0 {
		return nil
	}

	tx := &Transaction{Currency: "USDC"}

	if v, ok := fields["currency"].(string); ok && v != "" {
		tx.Currency = v
	}
	switch v := fields["amount"].(type) {
	case float64:
		tx.Amount = v
	case int:
		tx.Amount = float64(v)
	}
	if v, ok := fields["to_address"].(string); ok {
		tx.ToAddress = v
	}

	return tx
}

// Failed возвращает true, если выполнение завершилось ошибкой.
func (r *WorkResult) Failed() bool {
	return r.Status == ResultStatusFailed
}
