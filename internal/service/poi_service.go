package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nomadly/itinerary-api/internal/models"
	appErrors "github.com/nomadly/itinerary-api/pkg/errors"
)

type poiCatalog interface {
	List(ctx context.Context, filter models.POIFilter) ([]models.POI, error)
	FindByID(ctx context.Context, id string) (*models.POI, error)
}

type poiCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// POIService serves catalog lookups with a cache-aside Redis layer. Catalog
// content changes rarely, so a short TTL keeps readbacks cheap without an
// invalidation protocol.
type POIService struct {
	repo   poiCatalog
	cache  poiCache
	logger *zap.Logger
	ttl    time.Duration
}

// NewPOIService constructs a POIService instance.
func NewPOIService(repo poiCatalog, cache poiCache, logger *zap.Logger, ttl time.Duration) *POIService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &POIService{repo: repo, cache: cache, logger: logger, ttl: ttl}
}

// List returns catalog entries matching the filter, most popular first.
func (s *POIService) List(ctx context.Context, filter models.POIFilter) ([]models.POI, error) {
	key := cacheKey(filter)

	if s.cache != nil {
		var cached []models.POI
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("poi cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	pois, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list pois")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, pois, s.ttl); err != nil {
			s.logger.Warn("poi cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return pois, nil
}

// Get loads a single catalog entry.
func (s *POIService) Get(ctx context.Context, id string) (*models.POI, error) {
	poi, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "poi not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load poi")
	}
	return poi, nil
}

func cacheKey(filter models.POIFilter) string {
	return fmt.Sprintf("pois:%s:%s:%s:%d", filter.City, filter.District, filter.Tag, filter.Limit)
}
