package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/nomadly/itinerary-api/internal/models"
)

// AgendaRepository provides persistence for scheduled agenda items.
type AgendaRepository struct {
	db *sqlx.DB
}

// NewAgendaRepository creates a new agenda repository.
func NewAgendaRepository(db *sqlx.DB) *AgendaRepository {
	return &AgendaRepository{db: db}
}

const agendaColumns = `id, day_id, poi_id, start_at, end_at, mode, locked, created_at`

// ListByDay returns a day's items ordered by start time.
func (r *AgendaRepository) ListByDay(ctx context.Context, dayID string) ([]models.AgendaItem, error) {
	query := fmt.Sprintf("SELECT %s FROM agenda_items WHERE day_id = $1 ORDER BY start_at ASC", agendaColumns)
	var items []models.AgendaItem
	if err := r.db.SelectContext(ctx, &items, query, dayID); err != nil {
		return nil, fmt.Errorf("list agenda items: %w", err)
	}
	return items, nil
}

// ListByDayIDs returns items for several days at once, ordered by start time.
func (r *AgendaRepository) ListByDayIDs(ctx context.Context, dayIDs []string) ([]models.AgendaItem, error) {
	if len(dayIDs) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf("SELECT %s FROM agenda_items WHERE day_id = ANY($1) ORDER BY start_at ASC", agendaColumns)
	var items []models.AgendaItem
	if err := r.db.SelectContext(ctx, &items, query, pq.Array(dayIDs)); err != nil {
		return nil, fmt.Errorf("list agenda items by days: %w", err)
	}
	return items, nil
}

// FindByID loads a single item by id.
func (r *AgendaRepository) FindByID(ctx context.Context, id string) (*models.AgendaItem, error) {
	query := fmt.Sprintf("SELECT %s FROM agenda_items WHERE id = $1", agendaColumns)
	var item models.AgendaItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create stores a single item.
func (r *AgendaRepository) Create(ctx context.Context, item *models.AgendaItem) error {
	prepareAgendaItem(item)
	if _, err := r.db.NamedExecContext(ctx, agendaInsertQuery, item); err != nil {
		return fmt.Errorf("create agenda item: %w", err)
	}
	return nil
}

// BulkCreateWithTx inserts items using an existing transaction.
func (r *AgendaRepository) BulkCreateWithTx(ctx context.Context, tx *sqlx.Tx, items []models.AgendaItem) error {
	if tx == nil {
		return fmt.Errorf("nil transaction provided")
	}
	for i := range items {
		payload := items[i]
		prepareAgendaItem(&payload)
		if _, err := sqlx.NamedExecContext(ctx, tx, agendaInsertQuery, &payload); err != nil {
			return fmt.Errorf("bulk insert agenda item: %w", err)
		}
		items[i] = payload
	}
	return nil
}

// DeleteByDayIDsWithTx wipes all items of the given days inside a transaction.
// Regeneration is whole-day replacement, never an incremental patch.
func (r *AgendaRepository) DeleteByDayIDsWithTx(ctx context.Context, tx *sqlx.Tx, dayIDs []string) error {
	if tx == nil {
		return fmt.Errorf("nil transaction provided")
	}
	if len(dayIDs) == 0 {
		return nil
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM agenda_items WHERE day_id = ANY($1)`, pq.Array(dayIDs)); err != nil {
		return fmt.Errorf("delete agenda items by days: %w", err)
	}
	return nil
}

// Delete removes a single item by id.
func (r *AgendaRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM agenda_items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete agenda item: %w", err)
	}
	return nil
}

const agendaInsertQuery = `INSERT INTO agenda_items (id, day_id, poi_id, start_at, end_at, mode, locked, created_at)
	VALUES (:id, :day_id, :poi_id, :start_at, :end_at, :mode, :locked, :created_at)`

func prepareAgendaItem(item *models.AgendaItem) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
}
