package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"mesa-campaigns/internal/core/domain"
	"mesa-campaigns/internal/core/port"
)

const uniqueViolation = "23505"

// CampaignRepository implements port.CampaignRepository using pgxpool for
// PostgreSQL. The whole state is stored as JSONB next to a version column
// used for optimistic concurrency.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

var _ port.CampaignRepository = (*CampaignRepository)(nil)

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

// Create inserts a new campaign at version 1.
func (r *CampaignRepository) Create(ctx context.Context, st *domain.CampaignState) error {
	st.Version = 1
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode campaign: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO campaigns (id, stage, state, version, created_at, updated_at) VALUES ($1,$2,$3,$4,$5,$6)`,
		st.ID, st.Stage, data, st.Version, st.CreatedAt, st.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("campaign %s already exists", st.ID)
	}
	return err
}

// Get returns a campaign by id.
func (r *CampaignRepository) Get(ctx context.Context, id string) (domain.CampaignState, error) {
	var (
		data    []byte
		version int64
	)
	err := r.pool.QueryRow(ctx, `SELECT state, version FROM campaigns WHERE id = $1`, id).Scan(&data, &version)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CampaignState{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.CampaignState{}, err
	}
	return decodeState(data, version)
}

// Save updates the campaign when the stored version matches st.Version.
func (r *CampaignRepository) Save(ctx context.Context, st *domain.CampaignState) error {
	next := *st
	next.Version = st.Version + 1
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode campaign: %w", err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE campaigns SET stage = $2, state = $3, version = version + 1, updated_at = $4 WHERE id = $1 AND version = $5`,
		st.ID, st.Stage, data, st.UpdatedAt, st.Version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err = r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM campaigns WHERE id = $1)`, st.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return fmt.Errorf("campaign %s at version %d: %w", st.ID, st.Version, domain.ErrVersionConflict)
	}
	st.Version++
	return nil
}

// List returns up to limit campaigns ordered by creation time, newest first.
func (r *CampaignRepository) List(ctx context.Context, limit int) ([]domain.CampaignState, error) {
	rows, err := r.pool.Query(ctx, `SELECT state, version FROM campaigns ORDER BY created_at DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CampaignState, error) {
		var (
			data    []byte
			version int64
		)
		if err := row.Scan(&data, &version); err != nil {
			return domain.CampaignState{}, err
		}
		return decodeState(data, version)
	})
}

func decodeState(data []byte, version int64) (domain.CampaignState, error) {
	var st domain.CampaignState
	if err := json.Unmarshal(data, &st); err != nil {
		return domain.CampaignState{}, fmt.Errorf("decode campaign: %w", err)
	}
	if !st.Stage.Valid() {
		return domain.CampaignState{}, fmt.Errorf("decode campaign %s: unknown stage %q", st.ID, st.Stage)
	}
	st.Version = version
	st.InitMaps()
	return st, nil
}
