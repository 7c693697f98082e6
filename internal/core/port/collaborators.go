package port

import (
	"context"
	"errors"

	"mesa-campaigns/internal/core/domain"
)

var (
	// ErrDispatcherUnavailable marks a send failure that affects every
	// recipient, such as rejected credentials or a suspended account.
	ErrDispatcherUnavailable = errors.New("email dispatcher unavailable")
	// ErrProviderUnavailable marks a metrics provider that could not answer.
	ErrProviderUnavailable = errors.New("metrics provider unavailable")
)

// StrategyGenerator derives a campaign strategy from a free-text brief.
type StrategyGenerator interface {
	Generate(ctx context.Context, brief string) (domain.Strategy, error)
}

// SegmentationProvider selects the audience for a strategy from the data
// source identified by audienceRef. An empty result is not an error.
type SegmentationProvider interface {
	SelectAudience(ctx context.Context, strategy domain.Strategy, audienceRef string) ([]domain.Recipient, error)
}

// ContentGenerator produces the message for one variant.
type ContentGenerator interface {
	Generate(ctx context.Context, strategy domain.Strategy, label domain.Label) (domain.Content, error)
}

// OutboundEmail is a single message addressed to one recipient.
type OutboundEmail struct {
	CampaignID string
	Variant    domain.Label
	Recipient  domain.Recipient
	Content    domain.Content
}

// SendResult is the outcome of one send attempt.
type SendResult struct {
	Success   bool
	MessageID string
	ErrorKind domain.ErrorKind
	Error     string
}

// EmailDispatcher sends a single message. Per-recipient failures are
// reported through SendResult with a nil error; a non-nil error wrapping
// ErrDispatcherUnavailable means no recipient can be served.
type EmailDispatcher interface {
	Send(ctx context.Context, msg OutboundEmail) (SendResult, error)
}

// Counters are aggregate engagement counts reported by a metrics provider.
type Counters struct {
	Delivered    int64
	Opened       int64
	Clicked      int64
	Bounced      int64
	SpamReports  int64
	Unsubscribes int64
}

// MetricsProvider returns best-effort counters for the given external
// message ids. A nil result without error means no usable data yet.
type MetricsProvider interface {
	GetCounters(ctx context.Context, messageIDs []string) (*Counters, error)
}

// ActivityLog receives recipient activity events for audit. Campaign
// correctness never depends on it.
type ActivityLog interface {
	Record(ctx context.Context, events []domain.ActivityEvent) error
}
