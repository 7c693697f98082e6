package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa-campaigns/internal/core/domain"
)

func TestActivityStoreCounters(t *testing.T) {
	ctx := context.Background()
	s := NewActivityStore()

	c, err := s.GetCounters(ctx, []string{"m1"})
	require.NoError(t, err)
	assert.Nil(t, c)

	require.NoError(t, s.Record(ctx, []domain.ActivityEvent{
		{CampaignID: "c1", MessageID: "m1", Action: domain.ActionOpen, Source: domain.SourceProvider},
		{CampaignID: "c1", MessageID: "m1", Action: domain.ActionOpen, Source: domain.SourceProvider},
		{CampaignID: "c1", MessageID: "m2", Action: domain.ActionOpen, Source: domain.SourceProvider},
		{CampaignID: "c1", MessageID: "m2", Action: domain.ActionClick, Source: domain.SourceProvider},
		{CampaignID: "c1", MessageID: "m3", Action: domain.ActionBounce, Source: domain.SourceProvider},
		{CampaignID: "c1", MessageID: "m1", Action: domain.ActionClick, Source: domain.SourceAttributed},
		{CampaignID: "c2", MessageID: "other", Action: domain.ActionOpen, Source: domain.SourceProvider},
	}))

	c, err = s.GetCounters(ctx, []string{"m1", "m2", "m3"})
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, int64(2), c.Opened)
	assert.Equal(t, int64(1), c.Clicked)
	assert.Equal(t, int64(1), c.Bounced)
	assert.Zero(t, c.Delivered)

	events := s.Events("c1")
	require.Len(t, events, 6)
	assert.Equal(t, int64(1), events[0].ID)
}
