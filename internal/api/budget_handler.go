package api

import (
	"encoding/json"
	"net/http"
)

// GetBudget возвращает текущие расходы и лимиты по валютам.
// GET /api/v1/budget
func (h *Handler) GetBudget(w http.ResponseWriter, r *http.Request) {
	snapshot, _ := h.store.Snapshot()

	Success(w, BudgetResponse{
		DailySpend:  snapshot.DailySpend,
		SpendLimits: snapshot.SpendLimits,
	})
}

// SetBudgetLimit устанавливает дневной лимит расходов для валюты.
// PUT /api/v1/budget/limits
func (h *Handler) SetBudgetLimit(w http.ResponseWriter, r *http.Request) {
	var req SetLimitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if req.Currency == "" {
		BadRequest(w, "currency is required")
		return
	}
	if req.Limit < 0 {
		BadRequest(w, "limit must be non-negative")
		return
	}

	if err := h.store.SetSpendLimit(r.Context(), req.Currency, req.Limit, "api"); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	snapshot, _ := h.store.Snapshot()
	Success(w, BudgetResponse{
		DailySpend:  snapshot.DailySpend,
		SpendLimits: snapshot.SpendLimits,
	})
}
