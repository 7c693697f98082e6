package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP exposing the campaign workflow and the provider webhook.
type Handler struct {
	svc    port.CampaignUseCase
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured. Cross origin
// requests are allowed from allowedOrigins; an empty list disables CORS.
func NewHandler(svc port.CampaignUseCase, logger *slog.Logger, allowedOrigins []string) *Handler {
	h := &Handler{svc: svc, logger: logger}
	r := chi.NewRouter()

	if len(allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		}))
	}

	r.Get("/healthz", h.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", h.handleStartCampaign)
			r.Get("/", h.handleListCampaigns)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handleGetCampaign)
				r.Post("/retry", h.handleRetryCampaign)
				r.Post("/variants/{label}/dispatch", h.handleDispatchVariant)
				r.Post("/finalize", h.handleFinalizeCampaign)
				r.Get("/report", h.handleCampaignReport)
			})
		})
		r.Post("/webhooks/provider", h.handleProviderWebhook)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusFor maps workflow errors to HTTP status codes.
func statusFor(err error) int {
	var (
		validation  *domain.ValidationError
		stage       *domain.StageError
		unavailable *domain.DispatchUnavailableError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidStage), errors.Is(err, domain.ErrVersionConflict),
		errors.Is(err, domain.ErrDispatchInProgress):
		return http.StatusConflict
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &stage):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

type errorResponse struct {
	Error    string            `json:"error"`
	Campaign *campaignResponse `json:"campaign,omitempty"`
}

// writeError reports err with its mapped status. When the use case
// returned a persisted state alongside the error it is included so that
// callers can see what was recorded.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, st *domain.CampaignState) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
	}
	resp := errorResponse{Error: err.Error()}
	if st != nil && st.ID != "" {
		c := toCampaignResponse(*st)
		resp.Campaign = &c
	}
	h.writeJSON(w, status, resp)
}
