package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"mesa-campaigns/internal/core/domain"
)

const maxWebhookBody = 4 << 20

// providerEvent is one entry of the provider's event webhook batch. The
// campaign and variant travel as custom arguments attached at send time.
type providerEvent struct {
	Event       string            `json:"event"`
	Email       string            `json:"email"`
	Timestamp   int64             `json:"timestamp"`
	MessageID   string            `json:"message_id"`
	SGMessageID string            `json:"sg_message_id"`
	CampaignID  string            `json:"campaign_id"`
	Variant     string            `json:"variant"`
	Reason      string            `json:"reason"`
	URL         string            `json:"url"`
	CustomArgs  map[string]string `json:"custom_args"`
}

var providerActions = map[string]domain.ActivityAction{
	"delivered":         domain.ActionDelivered,
	"open":              domain.ActionOpen,
	"click":             domain.ActionClick,
	"bounce":            domain.ActionBounce,
	"dropped":           domain.ActionBounce,
	"spamreport":        domain.ActionSpamReport,
	"unsubscribe":       domain.ActionUnsubscribe,
	"group_unsubscribe": domain.ActionUnsubscribe,
}

type webhookResponse struct {
	Accepted int `json:"accepted"`
	Ignored  int `json:"ignored"`
}

// handleProviderWebhook ingests a batch of provider events into the
// activity log. Event types that carry no engagement signal and events
// that cannot be tied to a campaign are ignored.
func (h *Handler) handleProviderWebhook(w http.ResponseWriter, r *http.Request) {
	var batch []providerEvent
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxWebhookBody)).Decode(&batch); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	events := make([]domain.ActivityEvent, 0, len(batch))
	for _, pe := range batch {
		e, ok := pe.toActivity()
		if !ok {
			h.logger.Debug("ignored provider event", slog.String("event", pe.Event))
			continue
		}
		events = append(events, e)
	}

	if err := h.svc.RecordProviderEvents(r.Context(), events); err != nil {
		h.writeError(w, r, err, nil)
		return
	}
	h.writeJSON(w, http.StatusOK, webhookResponse{Accepted: len(events), Ignored: len(batch) - len(events)})
}

func (pe providerEvent) toActivity() (domain.ActivityEvent, bool) {
	action, ok := providerActions[strings.ToLower(pe.Event)]
	if !ok {
		return domain.ActivityEvent{}, false
	}
	campaignID := firstNonEmpty(pe.CampaignID, pe.CustomArgs["campaign_id"])
	if campaignID == "" {
		return domain.ActivityEvent{}, false
	}

	messageID := pe.MessageID
	if messageID == "" && pe.SGMessageID != "" {
		// The provider suffixes its message ids with a filter id per event.
		messageID, _, _ = strings.Cut(pe.SGMessageID, ".")
	}

	e := domain.ActivityEvent{
		CampaignID: campaignID,
		Variant:    domain.Label(firstNonEmpty(pe.Variant, pe.CustomArgs["variant"])),
		Email:      firstNonEmpty(pe.CustomArgs["recipient_email"], pe.Email),
		MessageID:  messageID,
		Action:     action,
		Details:    firstNonEmpty(pe.Reason, pe.URL),
	}
	if pe.Timestamp > 0 {
		e.OccurredAt = time.Unix(pe.Timestamp, 0).UTC()
	}
	return e, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
