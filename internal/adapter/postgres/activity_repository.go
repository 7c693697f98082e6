package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

// ActivityRepository stores recipient activity in the activity_events table
// and answers metrics queries from the provider reported rows.
type ActivityRepository struct {
	pool *pgxpool.Pool
}

var (
	_ port.ActivityLog     = (*ActivityRepository)(nil)
	_ port.MetricsProvider = (*ActivityRepository)(nil)
)

// NewActivityRepository returns a new repository instance.
func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

// Record inserts events in a single batch.
func (r *ActivityRepository) Record(ctx context.Context, events []domain.ActivityEvent) error {
	if len(events) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, e := range events {
		batch.Queue(`INSERT INTO activity_events (campaign_id, variant, email, message_id, action, source, details, occurred_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			e.CampaignID, e.Variant, e.Email, e.MessageID, e.Action, e.Source, e.Details, e.OccurredAt)
	}
	return r.pool.SendBatch(ctx, batch).Close()
}

// GetCounters counts distinct messages per provider reported action. It
// returns nil when no event matches yet.
func (r *ActivityRepository) GetCounters(ctx context.Context, messageIDs []string) (*port.Counters, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT action, count(DISTINCT message_id)
        FROM activity_events
        WHERE source = 'provider' AND message_id = ANY($1)
        GROUP BY action`, messageIDs)
	if err != nil {
		return nil, err
	}
	type actionCount struct {
		Action string
		Count  int64
	}
	counts, err := pgx.CollectRows(rows, pgx.RowToStructByPos[actionCount])
	if err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		return nil, nil
	}

	var c port.Counters
	for _, ac := range counts {
		switch domain.ActivityAction(ac.Action) {
		case domain.ActionDelivered:
			c.Delivered = ac.Count
		case domain.ActionOpen:
			c.Opened = ac.Count
		case domain.ActionClick:
			c.Clicked = ac.Count
		case domain.ActionBounce:
			c.Bounced = ac.Count
		case domain.ActionSpamReport:
			c.SpamReports = ac.Count
		case domain.ActionUnsubscribe:
			c.Unsubscribes = ac.Count
		}
	}
	return &c, nil
}
