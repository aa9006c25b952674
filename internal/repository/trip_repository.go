package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nomadly/itinerary-api/internal/models"
)

// TripRepository provides persistence for trips.
type TripRepository struct {
	db *sqlx.DB
}

// NewTripRepository creates a new trip repository.
func NewTripRepository(db *sqlx.DB) *TripRepository {
	return &TripRepository{db: db}
}

const tripColumns = `id, user_id, title, city, dest_tz, start_date, end_date, pace, day_start, day_end, budget, meal_plan, interests, cuisines, last_generated_at, created_at, updated_at`

// CreateWithTx stores a trip using an existing transaction.
func (r *TripRepository) CreateWithTx(ctx context.Context, tx *sqlx.Tx, trip *models.Trip) error {
	if tx == nil {
		return fmt.Errorf("nil transaction provided")
	}
	if trip.ID == "" {
		trip.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if trip.CreatedAt.IsZero() {
		trip.CreatedAt = now
	}
	trip.UpdatedAt = now

	const query = `INSERT INTO trips (id, user_id, title, city, dest_tz, start_date, end_date, pace, day_start, day_end, budget, meal_plan, interests, cuisines, last_generated_at, created_at, updated_at)
		VALUES (:id, :user_id, :title, :city, :dest_tz, :start_date, :end_date, :pace, :day_start, :day_end, :budget, :meal_plan, :interests, :cuisines, :last_generated_at, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, query, trip); err != nil {
		return fmt.Errorf("create trip: %w", err)
	}
	return nil
}

// FindByID loads a trip by id.
func (r *TripRepository) FindByID(ctx context.Context, id string) (*models.Trip, error) {
	query := fmt.Sprintf("SELECT %s FROM trips WHERE id = $1", tripColumns)
	var trip models.Trip
	if err := r.db.GetContext(ctx, &trip, query, id); err != nil {
		return nil, err
	}
	return &trip, nil
}

// ListByUser returns a user's trips ordered by start date.
func (r *TripRepository) ListByUser(ctx context.Context, userID string) ([]models.Trip, error) {
	query := fmt.Sprintf("SELECT %s FROM trips WHERE user_id = $1 ORDER BY start_date ASC, created_at ASC", tripColumns)
	var trips []models.Trip
	if err := r.db.SelectContext(ctx, &trips, query, userID); err != nil {
		return nil, fmt.Errorf("list trips by user: %w", err)
	}
	return trips, nil
}

// Update modifies a trip record.
func (r *TripRepository) Update(ctx context.Context, trip *models.Trip) error {
	trip.UpdatedAt = time.Now().UTC()
	const query = `UPDATE trips SET title = :title, city = :city, dest_tz = :dest_tz, pace = :pace, day_start = :day_start, day_end = :day_end, budget = :budget, meal_plan = :meal_plan, interests = :interests, cuisines = :cuisines, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, trip); err != nil {
		return fmt.Errorf("update trip: %w", err)
	}
	return nil
}

// TouchGeneratedAt stamps the last successful itinerary regeneration.
func (r *TripRepository) TouchGeneratedAt(ctx context.Context, id string, at time.Time) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE trips SET last_generated_at = $1, updated_at = $1 WHERE id = $2`, at.UTC(), id); err != nil {
		return fmt.Errorf("touch trip generated at: %w", err)
	}
	return nil
}

// Delete removes a trip; days, fixed windows and agenda items cascade.
func (r *TripRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}
	return nil
}
