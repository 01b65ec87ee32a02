package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shaiso/Chimera/internal/domain"
)

// StateVersion — версионная метка координационного состояния.
//
// Изменяется только Store при успешном commit; компоненты никогда
// не модифицируют её напрямую.
type StateVersion struct {
	// Hash — детерминированный дайджест всех полей состояния,
	// кроме самой версии.
	Hash string `json:"hash"`

	// Timestamp — время последнего commit.
	Timestamp time.Time `json:"timestamp"`

	// UpdatedBy — идентификатор актора, выполнившего commit.
	UpdatedBy string `json:"updated_by"`
}

// CoordinationState — общее состояние роя.
//
// Управляется через Optimistic Concurrency Control (OCC):
// компоненты читают снимок, модифицируют локально и коммитят
// с ожидаемым хэшем версии. Если состояние изменилось — конфликт,
// и компонент повторяет цикл с новым снимком.
type CoordinationState struct {
	// ActiveCampaigns — кампании по ID.
	ActiveCampaigns map[string]*domain.Campaign `json:"active_campaigns"`

	// DailySpend — накопленный расход за день по валютам.
	DailySpend map[string]float64 `json:"daily_spend"`

	// SpendLimits — дневной потолок расхода по валютам.
	// Валюта без записи — без ограничения.
	SpendLimits map[string]float64 `json:"spend_limits"`

	// AgentStates — статусы агентов по ID.
	AgentStates map[string]string `json:"agent_states"`

	// Version — версионная метка. Исключается из хэша.
	Version StateVersion `json:"version"`
}

// NewCoordinationState создаёт пустое состояние с инициализированными картами.
func NewCoordinationState() *CoordinationState {
	return &CoordinationState{
		ActiveCampaigns: make(map[string]*domain.Campaign),
		DailySpend:      make(map[string]float64),
		SpendLimits:     make(map[string]float64),
		AgentStates:     make(map[string]string),
	}
}

// hashView — сериализуемое представление состояния без Version.
// encoding/json сортирует ключи карт, поэтому два состояния
// с одинаковыми полями хэшируются одинаково независимо от
// порядка вставки.
type hashView struct {
	ActiveCampaigns map[string]*domain.Campaign `json:"active_campaigns"`
	DailySpend      map[string]float64          `json:"daily_spend"`
	SpendLimits     map[string]float64          `json:"spend_limits"`
	AgentStates     map[string]string           `json:"agent_states"`
}

// ComputeHash вычисляет SHA-256 канонической сериализации состояния.
func (s *CoordinationState) ComputeHash() (string, error) {
	view := hashView{
		ActiveCampaigns: s.ActiveCampaigns,
		DailySpend:      s.DailySpend,
		SpendLimits:     s.SpendLimits,
		AgentStates:     s.AgentStates,
	}

	data, err := json.Marshal(view)
	if err != nil {
		return "", fmt.Errorf("marshal state: %w", err)
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Clone возвращает глубокую копию состояния.
// Снимки полностью изолированы от канонического состояния Store.
func (s *CoordinationState) Clone() *CoordinationState {
	c := &CoordinationState{
		ActiveCampaigns: make(map[string]*domain.Campaign, len(s.ActiveCampaigns)),
		DailySpend:      make(map[string]float64, len(s.DailySpend)),
		SpendLimits:     make(map[string]float64, len(s.SpendLimits)),
		AgentStates:     make(map[string]string, len(s.AgentStates)),
		Version:         s.Version,
	}

	for id, campaign := range s.ActiveCampaigns {
		cp := *campaign
		if campaign.PlannedAt != nil {
			t := *campaign.PlannedAt
			cp.PlannedAt = &t
		}
		c.ActiveCampaigns[id] = &cp
	}
	for currency, amount := range s.DailySpend {
		c.DailySpend[currency] = amount
	}
	for currency, limit := range s.SpendLimits {
		c.SpendLimits[currency] = limit
	}
	for agentID, status := range s.AgentStates {
		c.AgentStates[agentID] = status
	}

	return c
}

// CheckSpend проверяет, не превысит ли транзакция дневной потолок.
// Возвращает (разрешено, текущий расход).
func (s *CoordinationState) CheckSpend(currency string, amount float64) (bool, float64) {
	current := s.DailySpend[currency]

	limit, ok := s.SpendLimits[currency]
	if !ok {
		return true, current
	}

	if current+amount > limit {
		return false, current
	}
	return true, current
}
