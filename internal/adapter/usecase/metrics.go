package usecase

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

// EstimateRates are the probabilities used to estimate engagement when the
// metrics provider has no usable data.
type EstimateRates struct {
	Bounce     float64
	Open       float64
	Click      float64
	Conversion float64
}

// DefaultEstimateRates mirror typical campaign engagement.
var DefaultEstimateRates = EstimateRates{Bounce: 0.02, Open: 0.25, Click: 0.10, Conversion: 0.10}

// ReconcilerConfig tunes how long the reconciler waits for provider data.
type ReconcilerConfig struct {
	// Wait is the delay before the provider is queried, giving it time to
	// ingest delivery events.
	Wait time.Duration
	// Timeout bounds the provider query.
	Timeout time.Duration
	Rates   EstimateRates
}

// MetricsReconciler merges provider counters, or a local estimate when the
// provider cannot answer, into a campaign's per-variant metrics.
type MetricsReconciler struct {
	provider port.MetricsProvider
	activity port.ActivityLog
	cfg      ReconcilerConfig
	log      *slog.Logger
	now      func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewMetricsReconciler creates a reconciler. provider and activity may be
// nil, in which case every reconciliation is estimated and no attribution
// events are emitted.
func NewMetricsReconciler(provider port.MetricsProvider, activity port.ActivityLog, rnd *rand.Rand, cfg ReconcilerConfig, log *slog.Logger, now func() time.Time) *MetricsReconciler {
	return &MetricsReconciler{provider: provider, activity: activity, rnd: rnd, cfg: cfg, log: log, now: now}
}

// engagement is the per-recipient view of one reconciliation, used to
// attribute aggregate counters to individual recipients.
type engagement struct {
	outcome domain.RecipientOutcome
	bounced bool
	opened  bool
	clicked bool
}

// Reconcile observes label's metrics and merges them into st.Metrics. The
// merge never lowers a stored counter. Provider failures are logged and
// replaced by an estimate; Reconcile itself cannot fail.
func (r *MetricsReconciler) Reconcile(ctx context.Context, st *domain.CampaignState, label domain.Label) domain.MetricsSnapshot {
	record := st.Dispatch[label]
	sent := make([]domain.RecipientOutcome, 0, len(record.Outcomes))
	for _, o := range record.Outcomes {
		if o.Success {
			sent = append(sent, o)
		}
	}

	snap, detail, ok := r.fromProvider(ctx, st.ID, label, record.MessageIDs(), int64(len(sent)))
	var people []engagement
	if ok {
		people = r.attribute(sent, snap)
	} else {
		snap, people = r.estimate(sent)
		detail = "estimated"
	}

	if st.Metrics == nil {
		st.Metrics = map[domain.Label]domain.MetricsSnapshot{}
	}
	merged := st.Metrics[label].Merge(snap)
	st.Metrics[label] = merged

	r.log.Info("metrics reconciled",
		slog.String("campaign_id", st.ID),
		slog.String("variant", string(label)),
		slog.String("source", detail),
		slog.Int64("opened", merged.Opened),
		slog.Int64("clicked", merged.Clicked))

	r.record(ctx, st.ID, label, detail, people)
	return merged
}

func (r *MetricsReconciler) fromProvider(ctx context.Context, campaignID string, label domain.Label, ids []string, sent int64) (domain.MetricsSnapshot, string, bool) {
	if r.provider == nil || len(ids) == 0 {
		return domain.MetricsSnapshot{}, "", false
	}
	if r.cfg.Wait > 0 {
		t := time.NewTimer(r.cfg.Wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return domain.MetricsSnapshot{}, "", false
		case <-t.C:
		}
	}

	qctx := ctx
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		qctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}
	c, err := r.provider.GetCounters(qctx, ids)
	if err != nil {
		r.log.Warn("metrics provider unavailable, estimating",
			slog.String("campaign_id", campaignID),
			slog.String("variant", string(label)),
			slog.Any("error", err))
		return domain.MetricsSnapshot{}, "", false
	}
	if c == nil {
		return domain.MetricsSnapshot{}, "", false
	}

	snap := domain.MetricsSnapshot{
		Delivered:    c.Delivered,
		Opened:       c.Opened,
		Clicked:      c.Clicked,
		Bounced:      c.Bounced,
		SpamReports:  c.SpamReports,
		Unsubscribes: c.Unsubscribes,
	}
	if snap.Delivered == 0 && sent > 0 {
		snap.Delivered = max(sent-snap.Bounced, 0)
	}
	return snap, "provider", true
}

func (r *MetricsReconciler) estimate(sent []domain.RecipientOutcome) (domain.MetricsSnapshot, []engagement) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rates := r.cfg.Rates
	var snap domain.MetricsSnapshot
	people := make([]engagement, 0, len(sent))
	for _, o := range sent {
		e := engagement{outcome: o}
		if r.rnd.Float64() < rates.Bounce {
			e.bounced = true
			snap.Bounced++
			people = append(people, e)
			continue
		}
		snap.Delivered++
		if r.rnd.Float64() < rates.Open {
			e.opened = true
			snap.Opened++
			if r.rnd.Float64() < rates.Click {
				e.clicked = true
				snap.Clicked++
				if r.rnd.Float64() < rates.Conversion {
					snap.Converted++
				}
			}
		}
		people = append(people, e)
	}
	return snap, people
}

// attribute spreads aggregate provider counters over randomly chosen
// recipients. Clicks are attributed to a subset of the openers.
func (r *MetricsReconciler) attribute(sent []domain.RecipientOutcome, snap domain.MetricsSnapshot) []engagement {
	people := make([]engagement, len(sent))
	for i, o := range sent {
		people[i] = engagement{outcome: o}
	}

	r.mu.Lock()
	r.rnd.Shuffle(len(people), func(i, j int) { people[i], people[j] = people[j], people[i] })
	r.mu.Unlock()

	opened := min(int(snap.Opened), len(people))
	clicked := min(int(snap.Clicked), opened)
	for i := range opened {
		people[i].opened = true
		people[i].clicked = i < clicked
	}
	return people
}

func (r *MetricsReconciler) record(ctx context.Context, campaignID string, label domain.Label, detail string, people []engagement) {
	if r.activity == nil {
		return
	}
	at := r.now()
	var events []domain.ActivityEvent
	add := func(e engagement, action domain.ActivityAction) {
		events = append(events, domain.ActivityEvent{
			CampaignID: campaignID,
			Variant:    label,
			Email:      e.outcome.Recipient.Email,
			MessageID:  e.outcome.ExternalMessageID,
			Action:     action,
			Source:     domain.SourceAttributed,
			Details:    detail,
			OccurredAt: at,
		})
	}
	for _, e := range people {
		if e.bounced {
			add(e, domain.ActionBounce)
		}
		if e.opened {
			add(e, domain.ActionOpen)
		}
		if e.clicked {
			add(e, domain.ActionClick)
		}
	}
	if len(events) == 0 {
		return
	}
	if err := r.activity.Record(ctx, events); err != nil {
		r.log.Warn("failed to record attributed activity",
			slog.String("campaign_id", campaignID),
			slog.String("variant", string(label)),
			slog.Any("error", err))
	}
}
