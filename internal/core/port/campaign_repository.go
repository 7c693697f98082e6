package port

import (
	"context"

	"mesa-campaigns/internal/core/domain"
)

// CampaignRepository persists campaign state keyed by campaign id. It is an
// outbound port in hexagonal architecture. Implementations must reject a
// Save whose Version does not match the stored one with
// domain.ErrVersionConflict and bump Version on success.
type CampaignRepository interface {
	// Create stores a new campaign. Creating an existing id is an error.
	Create(ctx context.Context, st *domain.CampaignState) error
	// Get returns the campaign or domain.ErrNotFound.
	Get(ctx context.Context, id string) (domain.CampaignState, error)
	// Save replaces the stored campaign using optimistic concurrency.
	Save(ctx context.Context, st *domain.CampaignState) error
	// List returns up to limit campaigns, newest first.
	List(ctx context.Context, limit int) ([]domain.CampaignState, error)
}

// ResultsStore writes the per-campaign result documents read by external
// consumers.
type ResultsStore interface {
	SaveResults(ctx context.Context, campaignID string, res domain.ABTestResults) error
	SaveReport(ctx context.Context, report domain.Report) error
}

// Locker provides exclusive sections keyed by an arbitrary string. The
// returned unlock function must be called exactly once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
