package port

import (
	"context"

	"mesa-campaigns/internal/core/domain"
)

// CampaignUseCase defines the business operations exposed by the campaign
// workflow. It is the primary port used by the HTTP adapter.
type CampaignUseCase interface {
	// Start creates a campaign and runs the automatic pipeline up to the
	// dispatch pause point. On a step failure the persisted state is
	// returned together with a *domain.StageError.
	Start(ctx context.Context, req StartRequest) (domain.CampaignState, error)

	// Retry re-enters the failed step of a campaign in StageFailed.
	Retry(ctx context.Context, id string) (domain.CampaignState, error)

	// Dispatch sends one variant exactly once. Repeated calls for a sent
	// variant return the current state without sending. When the last
	// variant is sent the campaign is finalized automatically.
	Dispatch(ctx context.Context, id string, label domain.Label) (domain.CampaignState, error)

	// Finalize reconciles metrics and builds the report. It is a no-op on
	// a finalized campaign.
	Finalize(ctx context.Context, id string) (domain.CampaignState, error)

	// Get returns the current state of a campaign.
	Get(ctx context.Context, id string) (domain.CampaignState, error)

	// List returns recent campaigns.
	List(ctx context.Context, limit int) ([]domain.CampaignState, error)

	// RecordProviderEvents forwards provider webhook events to the
	// activity log.
	RecordProviderEvents(ctx context.Context, events []domain.ActivityEvent) error
}

// StartRequest carries the inputs of a new campaign run.
type StartRequest struct {
	Brief       string
	AudienceRef string
	// Variants is the number of experiment arms; zero uses the configured
	// default.
	Variants int
}
