package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/shaiso/Chimera/internal/coordinator"
)

// ListEscalations возвращает результаты, ожидающие решения человека.
// GET /api/v1/escalations
func (h *Handler) ListEscalations(w http.ResponseWriter, r *http.Request) {
	pending := h.coord.PendingEscalations()

	result := make([]EscalationResponse, len(pending))
	for i, entry := range pending {
		result[i] = EscalationFromDomain(entry)
	}

	List(w, result, len(result))
}

// ApproveEscalation принимает эскалированный результат.
// POST /api/v1/escalations/{id}/approve
func (h *Handler) ApproveEscalation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid escalation id")
		return
	}

	if err := h.coord.ApproveEscalation(r.Context(), id); err != nil {
		if errors.Is(err, coordinator.ErrNotFound) {
			NotFound(w, "escalation not found")
			return
		}
		InternalError(w, h.logger, err)
		return
	}

	NoContent(w)
}

// RejectEscalation отклоняет эскалированный результат.
// POST /api/v1/escalations/{id}/reject
func (h *Handler) RejectEscalation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid escalation id")
		return
	}

	if err := h.coord.RejectEscalation(r.Context(), id); err != nil {
		if errors.Is(err, coordinator.ErrNotFound) {
			NotFound(w, "escalation not found")
			return
		}
		InternalError(w, h.logger, err)
		return
	}

	NoContent(w)
}
