package domain

import "time"

// ErrorKind classifies a per-recipient send failure.
type ErrorKind string

const (
	ErrorKindNone      ErrorKind = ""
	ErrorKindRetryable ErrorKind = "retryable"
	ErrorKindTerminal  ErrorKind = "terminal"
)

// RecipientOutcome is the result of the single send attempt made for one
// recipient of a dispatched group.
type RecipientOutcome struct {
	Recipient         Recipient `json:"recipient"`
	Success           bool      `json:"success"`
	ExternalMessageID string    `json:"external_message_id,omitempty"`
	ErrorKind         ErrorKind `json:"error_kind,omitempty"`
	Error             string    `json:"error,omitempty"`
}

// DispatchRecord is the aggregate result of dispatching one variant. Sent is
// only set once every recipient of the group has been attempted. ClaimedAt
// is stored before the first send and stays set until the record is
// committed or released.
type DispatchRecord struct {
	Sent        bool               `json:"sent"`
	ClaimedAt   *time.Time         `json:"claimed_at,omitempty"`
	AttemptedAt time.Time          `json:"attempted_at"`
	Outcomes    []RecipientOutcome `json:"per_recipient_outcomes"`
}

// InProgress reports whether sending was claimed but never committed.
func (r DispatchRecord) InProgress() bool {
	return r.ClaimedAt != nil && !r.Sent
}

// Succeeded returns the number of recipients accepted by the dispatcher.
func (r DispatchRecord) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Success {
			n++
		}
	}
	return n
}

// Failed returns the number of recipients whose send failed.
func (r DispatchRecord) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}

// MessageIDs returns the external message ids of successful sends.
func (r DispatchRecord) MessageIDs() []string {
	ids := make([]string, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		if o.Success && o.ExternalMessageID != "" {
			ids = append(ids, o.ExternalMessageID)
		}
	}
	return ids
}
