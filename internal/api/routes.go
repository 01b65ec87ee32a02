package api

import (
	"net/http"
)

// RegisterRoutes регистрирует все маршруты API.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Middleware chain
	chain := Chain(
		Recovery(h.logger),
		Logging(h.logger),
	)

	// Campaigns
	mux.Handle("GET /api/v1/campaigns", chain(http.HandlerFunc(h.ListCampaigns)))
	mux.Handle("POST /api/v1/campaigns", chain(http.HandlerFunc(h.StartCampaign)))
	mux.Handle("GET /api/v1/campaigns/{id}", chain(http.HandlerFunc(h.GetCampaign)))
	mux.Handle("GET /api/v1/campaigns/{id}/verdicts", chain(http.HandlerFunc(h.ListCampaignVerdicts)))

	// Escalations (human review)
	mux.Handle("GET /api/v1/escalations", chain(http.HandlerFunc(h.ListEscalations)))
	mux.Handle("POST /api/v1/escalations/{id}/approve", chain(http.HandlerFunc(h.ApproveEscalation)))
	mux.Handle("POST /api/v1/escalations/{id}/reject", chain(http.HandlerFunc(h.RejectEscalation)))

	// Budget
	mux.Handle("GET /api/v1/budget", chain(http.HandlerFunc(h.GetBudget)))
	mux.Handle("PUT /api/v1/budget/limits", chain(http.HandlerFunc(h.SetBudgetLimit)))

	// Fleet
	mux.Handle("GET /api/v1/fleet", chain(http.HandlerFunc(h.GetFleet)))
}
