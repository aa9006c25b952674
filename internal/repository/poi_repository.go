package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/nomadly/itinerary-api/internal/models"
)

// POIRepository provides read access to the POI catalog.
type POIRepository struct {
	db *sqlx.DB
}

// NewPOIRepository creates a new POI repository.
func NewPOIRepository(db *sqlx.DB) *POIRepository {
	return &POIRepository{db: db}
}

const poiColumns = `id, name, city, district, tags, mode, cuisine, price_band, iconic, popularity, estimated_duration, created_at`

// List returns catalog entries matching the filter, most popular first.
func (r *POIRepository) List(ctx context.Context, filter models.POIFilter) ([]models.POI, error) {
	base := "FROM pois WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.City != "" {
		conditions = append(conditions, fmt.Sprintf("city = $%d", len(args)+1))
		args = append(args, filter.City)
	}
	if filter.District != "" {
		conditions = append(conditions, fmt.Sprintf("district = $%d", len(args)+1))
		args = append(args, filter.District)
	}
	if filter.Tag != "" {
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(tags)", len(args)+1))
		args = append(args, filter.Tag)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 40
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY popularity DESC, name ASC LIMIT %d", poiColumns, base, limit)
	var pois []models.POI
	if err := r.db.SelectContext(ctx, &pois, query, args...); err != nil {
		return nil, fmt.Errorf("list pois: %w", err)
	}
	return pois, nil
}

// ListByMode returns activity-focused catalog entries for trips without a city.
func (r *POIRepository) ListByMode(ctx context.Context, mode string, limit int) ([]models.POI, error) {
	if limit <= 0 || limit > 100 {
		limit = 40
	}
	query := fmt.Sprintf("SELECT %s FROM pois WHERE mode = $1 ORDER BY popularity DESC, name ASC LIMIT %d", poiColumns, limit)
	var pois []models.POI
	if err := r.db.SelectContext(ctx, &pois, query, mode); err != nil {
		return nil, fmt.Errorf("list pois by mode: %w", err)
	}
	return pois, nil
}

// FindByID loads a catalog entry by id.
func (r *POIRepository) FindByID(ctx context.Context, id string) (*models.POI, error) {
	query := fmt.Sprintf("SELECT %s FROM pois WHERE id = $1", poiColumns)
	var poi models.POI
	if err := r.db.GetContext(ctx, &poi, query, id); err != nil {
		return nil, err
	}
	return &poi, nil
}

// ListByIDs loads catalog entries for the given ids.
func (r *POIRepository) ListByIDs(ctx context.Context, ids []string) ([]models.POI, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf("SELECT %s FROM pois WHERE id = ANY($1)", poiColumns)
	var pois []models.POI
	if err := r.db.SelectContext(ctx, &pois, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("list pois by ids: %w", err)
	}
	return pois, nil
}
