package api

import (
	"net/http"
)

// GetFleet возвращает состояния агентов роя.
// GET /api/v1/fleet
func (h *Handler) GetFleet(w http.ResponseWriter, r *http.Request) {
	snapshot, _ := h.store.Snapshot()

	Success(w, FleetResponse{Agents: snapshot.AgentStates})
}
