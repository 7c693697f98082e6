package domain

import "time"

// ActivityAction is the kind of recipient activity recorded in the log.
type ActivityAction string

const (
	ActionDelivered   ActivityAction = "delivered"
	ActionOpen        ActivityAction = "open"
	ActionClick       ActivityAction = "click"
	ActionBounce      ActivityAction = "bounce"
	ActionSpamReport  ActivityAction = "spamreport"
	ActionUnsubscribe ActivityAction = "unsubscribe"
)

// ActivitySource tells whether an event was reported by the mail provider
// or attributed locally from aggregate counters.
type ActivitySource string

const (
	SourceProvider   ActivitySource = "provider"
	SourceAttributed ActivitySource = "attributed"
)

// ActivityEvent is a record of recipient activity for one campaign variant.
type ActivityEvent struct {
	ID         int64          `json:"id,omitempty"`
	CampaignID string         `json:"campaign_id"`
	Variant    Label          `json:"variant"`
	Email      string         `json:"email"`
	MessageID  string         `json:"message_id,omitempty"`
	Action     ActivityAction `json:"action"`
	Source     ActivitySource `json:"source"`
	Details    string         `json:"details,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// ValidAction reports whether a is a known activity action.
func ValidAction(a ActivityAction) bool {
	switch a {
	case ActionDelivered, ActionOpen, ActionClick, ActionBounce, ActionSpamReport, ActionUnsubscribe:
		return true
	default:
		return false
	}
}
