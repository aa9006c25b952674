package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/nomadly/itinerary-api/internal/models"
)

// FixedWindowRepository provides persistence for immovable time blocks.
type FixedWindowRepository struct {
	db *sqlx.DB
}

// NewFixedWindowRepository creates a new fixed window repository.
func NewFixedWindowRepository(db *sqlx.DB) *FixedWindowRepository {
	return &FixedWindowRepository{db: db}
}

const fixedWindowColumns = `id, day_id, title, start_at, end_at, location`

// Create stores a new fixed window.
func (r *FixedWindowRepository) Create(ctx context.Context, window *models.FixedWindow) error {
	if window.ID == "" {
		window.ID = uuid.NewString()
	}
	const query = `INSERT INTO fixed_windows (id, day_id, title, start_at, end_at, location)
		VALUES (:id, :day_id, :title, :start_at, :end_at, :location)`
	if _, err := r.db.NamedExecContext(ctx, query, window); err != nil {
		return fmt.Errorf("create fixed window: %w", err)
	}
	return nil
}

// ListByDay returns a day's fixed windows ordered by start.
func (r *FixedWindowRepository) ListByDay(ctx context.Context, dayID string) ([]models.FixedWindow, error) {
	query := fmt.Sprintf("SELECT %s FROM fixed_windows WHERE day_id = $1 ORDER BY start_at ASC", fixedWindowColumns)
	var windows []models.FixedWindow
	if err := r.db.SelectContext(ctx, &windows, query, dayID); err != nil {
		return nil, fmt.Errorf("list fixed windows: %w", err)
	}
	return windows, nil
}

// ListByDayIDs returns fixed windows for several days at once.
func (r *FixedWindowRepository) ListByDayIDs(ctx context.Context, dayIDs []string) ([]models.FixedWindow, error) {
	if len(dayIDs) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf("SELECT %s FROM fixed_windows WHERE day_id = ANY($1) ORDER BY start_at ASC", fixedWindowColumns)
	var windows []models.FixedWindow
	if err := r.db.SelectContext(ctx, &windows, query, pq.Array(dayIDs)); err != nil {
		return nil, fmt.Errorf("list fixed windows by days: %w", err)
	}
	return windows, nil
}

// Delete removes a fixed window by id.
func (r *FixedWindowRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM fixed_windows WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete fixed window: %w", err)
	}
	return nil
}
