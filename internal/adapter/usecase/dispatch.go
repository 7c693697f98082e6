package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

// DefaultDispatchWorkers bounds concurrent sends when no limit is configured.
const DefaultDispatchWorkers = 8

// DispatchCoordinator sends one variant's content to every recipient of its
// group exactly once and records a per-recipient outcome.
type DispatchCoordinator struct {
	dispatcher port.EmailDispatcher
	workers    int
	log        *slog.Logger
	now        func() time.Time
}

// NewDispatchCoordinator creates a coordinator fanning out over at most
// workers concurrent sends.
func NewDispatchCoordinator(dispatcher port.EmailDispatcher, workers int, log *slog.Logger, now func() time.Time) *DispatchCoordinator {
	if workers <= 0 {
		workers = DefaultDispatchWorkers
	}
	return &DispatchCoordinator{dispatcher: dispatcher, workers: workers, log: log, now: now}
}

// Validate checks that label can be dispatched from st: the variant needs a
// non-empty group and content.
func (d *DispatchCoordinator) Validate(st domain.CampaignState, label domain.Label) error {
	group, ok := st.Groups[label]
	if !ok {
		return &domain.ValidationError{Label: label, Reason: "no recipient group"}
	}
	if len(group) == 0 {
		return &domain.ValidationError{Label: label, Reason: "recipient group is empty"}
	}
	if content, ok := st.Content[label]; !ok || content.Empty() {
		return &domain.ValidationError{Label: label, Reason: "content is missing"}
	}
	return nil
}

// Dispatch sends the content of label to its group. A variant that is
// already sent is returned unchanged. The input state is never modified;
// the returned state carries the new dispatch record.
//
// Cancelling ctx does not stop a started dispatch: every recipient is
// attempted once the first send went out. A single recipient failure is
// recorded in its outcome and never stops the batch. If the dispatcher
// reports port.ErrDispatcherUnavailable, recipients not yet started are
// skipped and a *domain.DispatchUnavailableError is returned with the
// variant left unsent.
func (d *DispatchCoordinator) Dispatch(ctx context.Context, st domain.CampaignState, label domain.Label) (domain.CampaignState, error) {
	if err := d.Validate(st, label); err != nil {
		return st, err
	}
	if st.Dispatch[label].Sent {
		return st, nil
	}
	group := st.Groups[label]
	content := st.Content[label]

	sendCtx := context.WithoutCancel(ctx)
	attemptedAt := d.now()
	outcomes := make([]domain.RecipientOutcome, len(group))
	var attempted atomic.Int64

	// gctx is only cancelled when the dispatcher becomes unavailable
	g, gctx := errgroup.WithContext(sendCtx)
	g.SetLimit(d.workers)
	for i, rcpt := range group {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			attempted.Add(1)
			res, err := d.dispatcher.Send(sendCtx, port.OutboundEmail{
				CampaignID: st.ID,
				Variant:    label,
				Recipient:  rcpt,
				Content:    content,
			})
			outcomes[i] = outcomeOf(rcpt, res, err)
			if err != nil && errors.Is(err, port.ErrDispatcherUnavailable) {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		d.log.Error("dispatch unavailable",
			slog.String("campaign_id", st.ID),
			slog.String("variant", string(label)),
			slog.Int64("attempted", attempted.Load()),
			slog.Int("total", len(group)),
			slog.Any("error", err))
		return st, &domain.DispatchUnavailableError{Label: label, Err: err}
	}

	record := domain.DispatchRecord{
		Sent:        true,
		ClaimedAt:   st.Dispatch[label].ClaimedAt,
		AttemptedAt: attemptedAt,
		Outcomes:    outcomes,
	}
	out := st.Clone()
	out.Dispatch[label] = record

	d.log.Info("variant dispatched",
		slog.String("campaign_id", st.ID),
		slog.String("variant", string(label)),
		slog.Int("succeeded", record.Succeeded()),
		slog.Int("failed", record.Failed()))
	return out, nil
}

func outcomeOf(rcpt domain.Recipient, res port.SendResult, err error) domain.RecipientOutcome {
	if err != nil {
		kind := domain.ErrorKindRetryable
		if errors.Is(err, port.ErrDispatcherUnavailable) {
			kind = domain.ErrorKindTerminal
		}
		return domain.RecipientOutcome{Recipient: rcpt, ErrorKind: kind, Error: err.Error()}
	}
	if res.Success {
		return domain.RecipientOutcome{Recipient: rcpt, Success: true, ExternalMessageID: res.MessageID}
	}
	kind := res.ErrorKind
	if kind == domain.ErrorKindNone {
		kind = domain.ErrorKindTerminal
	}
	return domain.RecipientOutcome{Recipient: rcpt, ErrorKind: kind, Error: res.Error}
}
