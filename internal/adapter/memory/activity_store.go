package memory

import (
	"context"
	"sync"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

// ActivityStore keeps activity events in memory. It serves both as the
// activity log and, from provider reported events, as the metrics provider.
type ActivityStore struct {
	mu     sync.RWMutex
	nextID int64
	events []domain.ActivityEvent
}

var (
	_ port.ActivityLog     = (*ActivityStore)(nil)
	_ port.MetricsProvider = (*ActivityStore)(nil)
)

// NewActivityStore returns an empty store.
func NewActivityStore() *ActivityStore {
	return &ActivityStore{}
}

// Record appends events, assigning ids.
func (s *ActivityStore) Record(_ context.Context, events []domain.ActivityEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range events {
		s.nextID++
		e.ID = s.nextID
		s.events = append(s.events, e)
	}
	return nil
}

// Events returns the events recorded for a campaign in insertion order.
func (s *ActivityStore) Events(campaignID string) []domain.ActivityEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.ActivityEvent
	for _, e := range s.events {
		if e.CampaignID == campaignID {
			out = append(out, e)
		}
	}
	return out
}

// GetCounters counts distinct messages per provider reported action. It
// returns nil when none of the messages has any event yet.
func (s *ActivityStore) GetCounters(_ context.Context, messageIDs []string) (*port.Counters, error) {
	wanted := make(map[string]struct{}, len(messageIDs))
	for _, id := range messageIDs {
		wanted[id] = struct{}{}
	}

	seen := make(map[domain.ActivityAction]map[string]struct{})
	s.mu.RLock()
	for _, e := range s.events {
		if e.Source != domain.SourceProvider {
			continue
		}
		if _, ok := wanted[e.MessageID]; !ok {
			continue
		}
		if seen[e.Action] == nil {
			seen[e.Action] = make(map[string]struct{})
		}
		seen[e.Action][e.MessageID] = struct{}{}
	}
	s.mu.RUnlock()

	if len(seen) == 0 {
		return nil, nil
	}
	count := func(a domain.ActivityAction) int64 { return int64(len(seen[a])) }
	return &port.Counters{
		Delivered:    count(domain.ActionDelivered),
		Opened:       count(domain.ActionOpen),
		Clicked:      count(domain.ActionClick),
		Bounced:      count(domain.ActionBounce),
		SpamReports:  count(domain.ActionSpamReport),
		Unsubscribes: count(domain.ActionUnsubscribe),
	}, nil
}
