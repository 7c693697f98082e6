package httpadapter

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

const maxListLimit = 500

type startCampaignRequest struct {
	Brief       string `json:"brief"`
	AudienceRef string `json:"audience_ref"`
	Variants    int    `json:"variants"`
}

type variantResponse struct {
	Recipients     int                     `json:"recipients"`
	Content        *domain.Content         `json:"content,omitempty"`
	Deliverability *domain.CheckResult     `json:"deliverability,omitempty"`
	Sent           bool                    `json:"sent"`
	AttemptedAt    *time.Time              `json:"attempted_at,omitempty"`
	Succeeded      int                     `json:"succeeded"`
	Failed         int                     `json:"failed"`
	Metrics        *domain.MetricsSnapshot `json:"metrics,omitempty"`
}

// campaignResponse is the API view of a campaign. Per-recipient data is
// reduced to counts.
type campaignResponse struct {
	ID          string                           `json:"campaign_id"`
	Brief       string                           `json:"brief"`
	AudienceRef string                           `json:"audience_ref"`
	Stage       domain.Stage                     `json:"stage"`
	Variants    int                              `json:"variants"`
	Strategy    domain.Strategy                  `json:"strategy,omitempty"`
	Audience    int                              `json:"audience"`
	Groups      map[domain.Label]variantResponse `json:"groups"`
	Winner      domain.Label                     `json:"winner,omitempty"`
	Error       *domain.StateError               `json:"error,omitempty"`
	Version     int64                            `json:"version"`
	CreatedAt   time.Time                        `json:"created_at"`
	UpdatedAt   time.Time                        `json:"updated_at"`
}

func toCampaignResponse(st domain.CampaignState) campaignResponse {
	resp := campaignResponse{
		ID:          st.ID,
		Brief:       st.Brief,
		AudienceRef: st.AudienceRef,
		Stage:       st.Stage,
		Variants:    st.Variants,
		Strategy:    st.Strategy,
		Audience:    len(st.Recipients),
		Groups:      make(map[domain.Label]variantResponse, len(st.Groups)),
		Error:       st.Error,
		Version:     st.Version,
		CreatedAt:   st.CreatedAt,
		UpdatedAt:   st.UpdatedAt,
	}
	if st.Report != nil {
		resp.Winner = st.Report.Winner
	}
	for _, l := range st.PresentLabels() {
		v := variantResponse{Recipients: len(st.Groups[l])}
		if c, ok := st.Content[l]; ok {
			v.Content = &c
		}
		if d, ok := st.Deliverability[l]; ok {
			v.Deliverability = &d
		}
		if rec, ok := st.Dispatch[l]; ok {
			v.Sent = rec.Sent
			v.Succeeded = rec.Succeeded()
			v.Failed = rec.Failed()
			if !rec.AttemptedAt.IsZero() {
				at := rec.AttemptedAt
				v.AttemptedAt = &at
			}
		}
		if m, ok := st.Metrics[l]; ok {
			v.Metrics = &m
		}
		resp.Groups[l] = v
	}
	return resp
}

// handleStartCampaign creates a campaign and runs it up to the dispatch
// pause point. A failed pipeline step still returns the stored campaign.
func (h *Handler) handleStartCampaign(w http.ResponseWriter, r *http.Request) {
	var req startCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	st, err := h.svc.Start(r.Context(), port.StartRequest{
		Brief:       req.Brief,
		AudienceRef: req.AudienceRef,
		Variants:    req.Variants,
	})
	if err != nil {
		h.writeError(w, r, err, &st)
		return
	}
	h.writeJSON(w, http.StatusCreated, toCampaignResponse(st))
}

func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > maxListLimit {
			http.Error(w, "invalid 'limit'", http.StatusBadRequest)
			return
		}
		limit = n
	}
	list, err := h.svc.List(r.Context(), limit)
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	out := make([]campaignResponse, 0, len(list))
	for _, st := range list {
		out = append(out, toCampaignResponse(st))
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponse(st))
}

func (h *Handler) handleRetryCampaign(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Retry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err, &st)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponse(st))
}

// handleDispatchVariant sends one variant. Dispatching a variant that was
// already sent returns the current campaign without sending again.
func (h *Handler) handleDispatchVariant(w http.ResponseWriter, r *http.Request) {
	label, ok := domain.ParseLabel(chi.URLParam(r, "label"))
	if !ok {
		http.Error(w, "unknown variant", http.StatusBadRequest)
		return
	}
	st, err := h.svc.Dispatch(r.Context(), chi.URLParam(r, "id"), label)
	if err != nil {
		h.writeError(w, r, err, &st)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponse(st))
}

func (h *Handler) handleFinalizeCampaign(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Finalize(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err, &st)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponse(st))
}

// handleCampaignReport returns the report of a finalized campaign. Before
// finalization it answers 404 with the current stage.
func (h *Handler) handleCampaignReport(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	if st.Report == nil {
		h.writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "report not available",
			"stage": string(st.Stage),
		})
		return
	}
	h.writeJSON(w, http.StatusOK, st.Report)
}
