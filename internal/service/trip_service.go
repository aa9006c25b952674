package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/nomadly/itinerary-api/internal/dto"
	"github.com/nomadly/itinerary-api/internal/models"
	"github.com/nomadly/itinerary-api/internal/planner"
	appErrors "github.com/nomadly/itinerary-api/pkg/errors"
)

type txBeginner interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

type tripRepository interface {
	CreateWithTx(ctx context.Context, tx *sqlx.Tx, trip *models.Trip) error
	FindByID(ctx context.Context, id string) (*models.Trip, error)
	ListByUser(ctx context.Context, userID string) ([]models.Trip, error)
	Update(ctx context.Context, trip *models.Trip) error
	Delete(ctx context.Context, id string) error
}

type tripDayRepository interface {
	BulkCreateWithTx(ctx context.Context, tx *sqlx.Tx, days []models.TripDay) error
	FindByID(ctx context.Context, id string) (*models.TripDay, error)
	ListByTrip(ctx context.Context, tripID string) ([]models.TripDay, error)
	Update(ctx context.Context, day *models.TripDay) error
}

type fixedWindowRepository interface {
	Create(ctx context.Context, window *models.FixedWindow) error
	ListByDay(ctx context.Context, dayID string) ([]models.FixedWindow, error)
	Delete(ctx context.Context, id string) error
}

// TripDefaults fills the fields a create request may omit.
type TripDefaults struct {
	DayStart string
	DayEnd   string
}

// TripService manages trips, their day rows and fixed windows.
type TripService struct {
	db        txBeginner
	trips     tripRepository
	days      tripDayRepository
	fixed     fixedWindowRepository
	validator *validator.Validate
	logger    *zap.Logger
	defaults  TripDefaults
}

// NewTripService constructs a TripService instance.
func NewTripService(db txBeginner, trips tripRepository, days tripDayRepository, fixed fixedWindowRepository, validate *validator.Validate, logger *zap.Logger, defaults TripDefaults) *TripService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if defaults.DayStart == "" {
		defaults.DayStart = "09:30"
	}
	if defaults.DayEnd == "" {
		defaults.DayEnd = "20:30"
	}
	return &TripService{db: db, trips: trips, days: days, fixed: fixed, validator: validate, logger: logger, defaults: defaults}
}

// Create stores a trip and materializes one day row per local calendar date,
// inclusive of both endpoints, inside a single transaction.
func (s *TripService) Create(ctx context.Context, userID string, req dto.CreateTripRequest) (*models.Trip, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid trip payload")
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid start date")
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid end date")
	}
	if endDate.Before(startDate) {
		return nil, appErrors.Clone(appErrors.ErrInvalidRange, "end date must not precede start date")
	}

	trip := &models.Trip{
		UserID:    userID,
		Title:     req.Title,
		City:      req.City,
		DestTz:    req.DestTz,
		StartDate: startDate,
		EndDate:   endDate,
		Pace:      req.Pace,
		DayStart:  req.DayStart,
		DayEnd:    req.DayEnd,
		Budget:    req.Budget,
		MealPlan:  req.MealPlan,
		Cuisines:  req.Cuisines,
	}
	s.applyDefaults(trip)
	if err := s.checkDayWindow(trip.DayStart, trip.DayEnd, trip.DestTz); err != nil {
		return nil, err
	}

	if len(req.Interests) > 0 {
		payload, err := json.Marshal(req.Interests)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid interests payload")
		}
		trip.Interests = payload
	}

	days := make([]models.TripDay, 0, int(endDate.Sub(startDate).Hours()/24)+1)
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		days = append(days, models.TripDay{DateLocal: d, City: trip.City})
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				s.logger.Warn("trip create rollback failed", zap.Error(rbErr))
			}
		}
	}()

	if err := s.trips.CreateWithTx(ctx, tx, trip); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create trip")
	}
	for i := range days {
		days[i].TripID = trip.ID
	}
	if err := s.days.BulkCreateWithTx(ctx, tx, days); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create trip days")
	}

	if err := tx.Commit(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit trip")
	}
	committed = true

	s.logger.Info("trip created", zap.String("trip_id", trip.ID), zap.Int("days", len(days)))
	return trip, nil
}

// List returns the user's trips.
func (s *TripService) List(ctx context.Context, userID string) ([]models.Trip, error) {
	trips, err := s.trips.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list trips")
	}
	return trips, nil
}

// Get loads a trip owned by the user.
func (s *TripService) Get(ctx context.Context, userID, tripID string) (*models.Trip, error) {
	return s.ownedTrip(ctx, userID, tripID)
}

// Update patches trip fields. Day window changes are re-validated against the
// trip's timezone before they are stored.
func (s *TripService) Update(ctx context.Context, userID, tripID string, req dto.UpdateTripRequest) (*models.Trip, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid trip payload")
	}

	trip, err := s.ownedTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		trip.Title = *req.Title
	}
	if req.City != nil {
		trip.City = *req.City
	}
	if req.DestTz != nil {
		trip.DestTz = *req.DestTz
	}
	if req.Pace != nil {
		trip.Pace = *req.Pace
	}
	if req.DayStart != nil {
		trip.DayStart = *req.DayStart
	}
	if req.DayEnd != nil {
		trip.DayEnd = *req.DayEnd
	}
	if req.Budget != nil {
		trip.Budget = *req.Budget
	}
	if req.MealPlan != nil {
		trip.MealPlan = *req.MealPlan
	}
	s.applyDefaults(trip)
	if err := s.checkDayWindow(trip.DayStart, trip.DayEnd, trip.DestTz); err != nil {
		return nil, err
	}

	if err := s.trips.Update(ctx, trip); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update trip")
	}
	return trip, nil
}

// Delete removes a trip owned by the user. Days, fixed windows and agenda
// items cascade at the database level.
func (s *TripService) Delete(ctx context.Context, userID, tripID string) error {
	if _, err := s.ownedTrip(ctx, userID, tripID); err != nil {
		return err
	}
	if err := s.trips.Delete(ctx, tripID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete trip")
	}
	return nil
}

// UpdateDay patches a single trip day.
func (s *TripService) UpdateDay(ctx context.Context, userID, dayID string, req dto.UpdateDayRequest) (*models.TripDay, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid day payload")
	}

	day, _, err := s.ownedDay(ctx, userID, dayID)
	if err != nil {
		return nil, err
	}

	if req.City != nil {
		day.City = *req.City
	}
	if req.AreaFocus != nil {
		day.AreaFocus = req.AreaFocus
	}
	if req.Theme != nil {
		day.Theme = *req.Theme
	}

	if err := s.days.Update(ctx, day); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update trip day")
	}
	return day, nil
}

// CreateFixedWindow pins an immovable block onto a day. The window must lie
// within a valid instant range; overlapping fixed windows are allowed and
// merge at free-segment time.
func (s *TripService) CreateFixedWindow(ctx context.Context, userID, dayID string, req dto.CreateFixedWindowRequest) (*models.FixedWindow, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid fixed window payload")
	}

	day, _, err := s.ownedDay(ctx, userID, dayID)
	if err != nil {
		return nil, err
	}

	startAt, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "startAt must be RFC 3339")
	}
	endAt, err := time.Parse(time.RFC3339, req.EndAt)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "endAt must be RFC 3339")
	}
	if !endAt.After(startAt) {
		return nil, appErrors.Clone(appErrors.ErrInvalidRange, "")
	}

	window := &models.FixedWindow{
		DayID:    day.ID,
		Title:    req.Title,
		StartAt:  startAt.UTC(),
		EndAt:    endAt.UTC(),
		Location: req.Location,
	}
	if err := s.fixed.Create(ctx, window); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create fixed window")
	}
	return window, nil
}

// ListFixedWindows returns a day's fixed windows.
func (s *TripService) ListFixedWindows(ctx context.Context, userID, dayID string) ([]models.FixedWindow, error) {
	day, _, err := s.ownedDay(ctx, userID, dayID)
	if err != nil {
		return nil, err
	}
	windows, err := s.fixed.ListByDay(ctx, day.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list fixed windows")
	}
	return windows, nil
}

// DeleteFixedWindow removes a fixed window from a day the user owns.
func (s *TripService) DeleteFixedWindow(ctx context.Context, userID, dayID, windowID string) error {
	day, _, err := s.ownedDay(ctx, userID, dayID)
	if err != nil {
		return err
	}

	windows, err := s.fixed.ListByDay(ctx, day.ID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list fixed windows")
	}
	for _, w := range windows {
		if w.ID == windowID {
			if err := s.fixed.Delete(ctx, windowID); err != nil {
				return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete fixed window")
			}
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "fixed window not found")
}

func (s *TripService) applyDefaults(trip *models.Trip) {
	if trip.DestTz == "" {
		trip.DestTz = "UTC"
	}
	if trip.Pace == "" {
		trip.Pace = models.PaceNormal
	}
	if trip.DayStart == "" {
		trip.DayStart = s.defaults.DayStart
	}
	if trip.DayEnd == "" {
		trip.DayEnd = s.defaults.DayEnd
	}
	if trip.Budget == "" {
		trip.Budget = models.BudgetMid
	}
	if trip.MealPlan == "" {
		trip.MealPlan = "standard"
	}
}

// checkDayWindow rejects malformed clock times, inverted windows and unknown
// timezones before they reach storage.
func (s *TripService) checkDayWindow(dayStart, dayEnd, tz string) error {
	if _, err := planner.ParseTimeOfDay(dayStart); err != nil {
		return err
	}
	if _, err := planner.ParseTimeOfDay(dayEnd); err != nil {
		return err
	}
	if !planner.IsRangeValid(dayStart, dayEnd) {
		return appErrors.Clone(appErrors.ErrInvalidRange, fmt.Sprintf("day end %s must be after day start %s", dayEnd, dayStart))
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInvalidTimezone.Code, appErrors.ErrInvalidTimezone.Status, fmt.Sprintf("unrecognized timezone %q", tz))
	}
	return nil
}

func (s *TripService) ownedTrip(ctx context.Context, userID, tripID string) (*models.Trip, error) {
	trip, err := s.trips.FindByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "trip not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load trip")
	}
	if trip.UserID != userID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "trip does not belong to user")
	}
	return trip, nil
}

func (s *TripService) ownedDay(ctx context.Context, userID, dayID string) (*models.TripDay, *models.Trip, error) {
	day, err := s.days.FindByID(ctx, dayID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "day not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load day")
	}
	trip, err := s.ownedTrip(ctx, userID, day.TripID)
	if err != nil {
		return nil, nil, err
	}
	return day, trip, nil
}
