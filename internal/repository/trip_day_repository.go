package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nomadly/itinerary-api/internal/models"
)

// TripDayRepository provides persistence for trip days.
type TripDayRepository struct {
	db *sqlx.DB
}

// NewTripDayRepository creates a new trip day repository.
func NewTripDayRepository(db *sqlx.DB) *TripDayRepository {
	return &TripDayRepository{db: db}
}

const tripDayColumns = `id, trip_id, date_local, city, area_focus, theme, created_at`

// BulkCreateWithTx inserts day rows using an existing transaction.
func (r *TripDayRepository) BulkCreateWithTx(ctx context.Context, tx *sqlx.Tx, days []models.TripDay) error {
	if tx == nil {
		return fmt.Errorf("nil transaction provided")
	}
	now := time.Now().UTC()
	for i := range days {
		payload := days[i]
		if payload.ID == "" {
			payload.ID = uuid.NewString()
		}
		if payload.CreatedAt.IsZero() {
			payload.CreatedAt = now
		}

		const query = `INSERT INTO trip_days (id, trip_id, date_local, city, area_focus, theme, created_at)
			VALUES (:id, :trip_id, :date_local, :city, :area_focus, :theme, :created_at)`
		if _, err := tx.NamedExecContext(ctx, query, &payload); err != nil {
			return fmt.Errorf("bulk insert trip day: %w", err)
		}
		days[i] = payload
	}
	return nil
}

// FindByID loads a day by id.
func (r *TripDayRepository) FindByID(ctx context.Context, id string) (*models.TripDay, error) {
	query := fmt.Sprintf("SELECT %s FROM trip_days WHERE id = $1", tripDayColumns)
	var day models.TripDay
	if err := r.db.GetContext(ctx, &day, query, id); err != nil {
		return nil, err
	}
	return &day, nil
}

// ListByTrip returns a trip's days ordered by local date.
func (r *TripDayRepository) ListByTrip(ctx context.Context, tripID string) ([]models.TripDay, error) {
	query := fmt.Sprintf("SELECT %s FROM trip_days WHERE trip_id = $1 ORDER BY date_local ASC", tripDayColumns)
	var days []models.TripDay
	if err := r.db.SelectContext(ctx, &days, query, tripID); err != nil {
		return nil, fmt.Errorf("list trip days: %w", err)
	}
	return days, nil
}

// Update modifies the editable day fields.
func (r *TripDayRepository) Update(ctx context.Context, day *models.TripDay) error {
	const query = `UPDATE trip_days SET city = :city, area_focus = :area_focus, theme = :theme WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, day); err != nil {
		return fmt.Errorf("update trip day: %w", err)
	}
	return nil
}
