package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/google/uuid"
	"github.com/shaiso/Chimera/internal/coordinator"
)

// ListCampaigns возвращает список всех кампаний.
// GET /api/v1/campaigns
func (h *Handler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	snapshot, _ := h.store.Snapshot()

	result := make([]CampaignResponse, 0, len(snapshot.ActiveCampaigns))
	for _, c := range snapshot.ActiveCampaigns {
		result = append(result, CampaignFromDomain(c))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	List(w, result, len(result))
}

// StartCampaign запускает новую кампанию.
// POST /api/v1/campaigns
func (h *Handler) StartCampaign(w http.ResponseWriter, r *http.Request) {
	var req StartCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if req.Goal == "" {
		BadRequest(w, "goal is required")
		return
	}

	id := req.ID
	if id == "" {
		id = fmt.Sprintf("campaign-%s", uuid.New())
	}

	if err := h.coord.StartCampaign(r.Context(), id, req.Goal); err != nil {
		if errors.Is(err, coordinator.ErrCampaignExists) {
			Conflict(w, "campaign already exists")
			return
		}
		if errors.Is(err, coordinator.ErrStopped) {
			InvalidState(w, "coordinator is stopped")
			return
		}
		InternalError(w, h.logger, err)
		return
	}

	snapshot, _ := h.store.Snapshot()
	Created(w, CampaignFromDomain(snapshot.ActiveCampaigns[id]))
}

// GetCampaign возвращает кампанию по ID.
// GET /api/v1/campaigns/{id}
func (h *Handler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	snapshot, _ := h.store.Snapshot()
	campaign, ok := snapshot.ActiveCampaigns[id]
	if !ok {
		NotFound(w, "campaign not found")
		return
	}

	Success(w, CampaignFromDomain(campaign))
}

// ListCampaignVerdicts возвращает аудиторский журнал кампании.
// GET /api/v1/campaigns/{id}/verdicts
func (h *Handler) ListCampaignVerdicts(w http.ResponseWriter, r *http.Request) {
	if h.verdicts == nil {
		Error(w, http.StatusServiceUnavailable, ErrCodeInvalidState,
			"verdict audit log is not configured")
		return
	}

	id := r.PathValue("id")

	records, err := h.verdicts.ListByCampaign(r.Context(), id, 100)
	if HandleRepoError(w, h.logger, err, "campaign not found") {
		return
	}

	List(w, records, len(records))
}
