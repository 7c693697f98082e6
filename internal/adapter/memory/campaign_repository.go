package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

// CampaignRepository implements port.CampaignRepository in process memory.
// It is used for local runs and tests; state does not survive a restart.
type CampaignRepository struct {
	mu        sync.RWMutex
	campaigns map[string]domain.CampaignState
}

var _ port.CampaignRepository = (*CampaignRepository)(nil)

// NewCampaignRepository returns an empty repository.
func NewCampaignRepository() *CampaignRepository {
	return &CampaignRepository{campaigns: make(map[string]domain.CampaignState)}
}

// Create stores a new campaign with version 1.
func (r *CampaignRepository) Create(_ context.Context, st *domain.CampaignState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.campaigns[st.ID]; ok {
		return fmt.Errorf("campaign %s already exists", st.ID)
	}
	st.Version = 1
	r.campaigns[st.ID] = st.Clone()
	return nil
}

// Get returns a copy of the stored campaign.
func (r *CampaignRepository) Get(_ context.Context, id string) (domain.CampaignState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.campaigns[id]
	if !ok {
		return domain.CampaignState{}, domain.ErrNotFound
	}
	return st.Clone(), nil
}

// Save replaces the stored campaign when st.Version matches and bumps it.
func (r *CampaignRepository) Save(_ context.Context, st *domain.CampaignState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.campaigns[st.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Version != st.Version {
		return fmt.Errorf("campaign %s at version %d, stored %d: %w", st.ID, st.Version, cur.Version, domain.ErrVersionConflict)
	}
	st.Version++
	r.campaigns[st.ID] = st.Clone()
	return nil
}

// List returns up to limit campaigns, newest first.
func (r *CampaignRepository) List(_ context.Context, limit int) ([]domain.CampaignState, error) {
	r.mu.RLock()
	out := make([]domain.CampaignState, 0, len(r.campaigns))
	for _, st := range r.campaigns {
		out = append(out, st.Clone())
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b domain.CampaignState) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
