package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/nomadly/itinerary-api/internal/dto"
	"github.com/nomadly/itinerary-api/internal/models"
	"github.com/nomadly/itinerary-api/internal/planner"
	"github.com/nomadly/itinerary-api/internal/recommender"
	appErrors "github.com/nomadly/itinerary-api/pkg/errors"
)

type itineraryTripReader interface {
	FindByID(ctx context.Context, id string) (*models.Trip, error)
	TouchGeneratedAt(ctx context.Context, id string, at time.Time) error
}

type itineraryDayReader interface {
	FindByID(ctx context.Context, id string) (*models.TripDay, error)
	ListByTrip(ctx context.Context, tripID string) ([]models.TripDay, error)
}

type itineraryPOIReader interface {
	List(ctx context.Context, filter models.POIFilter) ([]models.POI, error)
	ListByMode(ctx context.Context, mode string, limit int) ([]models.POI, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.POI, error)
}

type fixedWindowReader interface {
	ListByDay(ctx context.Context, dayID string) ([]models.FixedWindow, error)
	ListByDayIDs(ctx context.Context, dayIDs []string) ([]models.FixedWindow, error)
}

type agendaRepository interface {
	ListByDay(ctx context.Context, dayID string) ([]models.AgendaItem, error)
	ListByDayIDs(ctx context.Context, dayIDs []string) ([]models.AgendaItem, error)
	FindByID(ctx context.Context, id string) (*models.AgendaItem, error)
	Create(ctx context.Context, item *models.AgendaItem) error
	BulkCreateWithTx(ctx context.Context, tx *sqlx.Tx, items []models.AgendaItem) error
	DeleteByDayIDsWithTx(ctx context.Context, tx *sqlx.Tx, dayIDs []string) error
	Delete(ctx context.Context, id string) error
}

type plannerMetrics interface {
	ObserveRegeneration(items int)
	RecordProducerError()
	RecordConflict()
}

// PlannerSettings tunes the scheduling engine.
type PlannerSettings struct {
	DefaultDayStart string
	DefaultDayEnd   string
	VisitBuffer     time.Duration
	CandidateLimit  int
}

// ItineraryService turns trips into concrete day schedules. It resolves each
// day's bounds, subtracts fixed windows, asks the producer for a plan,
// validates the untrusted response and lays the surviving visits out into
// agenda rows.
type ItineraryService struct {
	db       txBeginner
	trips    itineraryTripReader
	days     itineraryDayReader
	pois     itineraryPOIReader
	fixed    fixedWindowReader
	agenda   agendaRepository
	producer recommender.Producer
	fallback recommender.Producer
	metrics  plannerMetrics
	logger   *zap.Logger
	settings PlannerSettings
}

// WithMetrics attaches planner instrumentation. A nil receiver-safe metrics
// sink keeps tests free of Prometheus plumbing.
func (s *ItineraryService) WithMetrics(metrics plannerMetrics) *ItineraryService {
	s.metrics = metrics
	return s
}

// NewItineraryService constructs an ItineraryService instance. The producer
// may be nil; scheduling then runs entirely on the fallback.
func NewItineraryService(db txBeginner, trips itineraryTripReader, days itineraryDayReader, pois itineraryPOIReader, fixed fixedWindowReader, agenda agendaRepository, producer recommender.Producer, logger *zap.Logger, settings PlannerSettings) *ItineraryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if settings.DefaultDayStart == "" {
		settings.DefaultDayStart = "09:30"
	}
	if settings.DefaultDayEnd == "" {
		settings.DefaultDayEnd = "20:30"
	}
	if settings.VisitBuffer <= 0 {
		settings.VisitBuffer = planner.DefaultVisitBuffer
	}
	if settings.CandidateLimit <= 0 {
		settings.CandidateLimit = 40
	}
	return &ItineraryService{
		db:       db,
		trips:    trips,
		days:     days,
		pois:     pois,
		fixed:    fixed,
		agenda:   agenda,
		producer: producer,
		fallback: recommender.NewHeuristic(settings.VisitBuffer),
		logger:   logger,
		settings: settings,
	}
}

// RegenerateTrip rebuilds the full schedule of a trip. Existing agenda rows
// for all of the trip's days are replaced in a single transaction: the caller
// never observes a half-regenerated trip. Each POI is scheduled at most once
// across the trip unless the candidate pool runs dry.
func (s *ItineraryService) RegenerateTrip(ctx context.Context, userID, tripID string) (*dto.GenerateResponse, error) {
	trip, err := s.ownedTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	days, err := s.days.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list trip days")
	}
	if len(days) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "trip has no days to schedule")
	}

	pool, err := s.candidatePool(ctx, trip)
	if err != nil {
		return nil, err
	}

	dayIDs := make([]string, 0, len(days))
	for _, day := range days {
		dayIDs = append(dayIDs, day.ID)
	}
	windows, err := s.fixed.ListByDayIDs(ctx, dayIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list fixed windows")
	}
	windowsByDay := make(map[string][]models.FixedWindow, len(days))
	for _, w := range windows {
		windowsByDay[w.DayID] = append(windowsByDay[w.DayID], w)
	}

	mode := s.modeFor(trip)
	interests := interestKeys(trip)
	used := make(map[string]struct{})
	items := make([]models.AgendaItem, 0, len(days)*trip.ItemCap())

	for i, day := range days {
		bounds, err := s.dayBounds(trip, &days[i])
		if err != nil {
			return nil, err
		}

		free := planner.ComputeFreeSegments(bounds, models.FixedIntervals(windowsByDay[day.ID]))
		if len(free) == 0 {
			// The day is fully committed; nothing to schedule.
			continue
		}

		candidates := planner.SelectCandidates(models.Candidates(pool), trip.City, day.AreaFocus)
		unused := make([]planner.Candidate, 0, len(candidates))
		for _, c := range candidates {
			if _, taken := used[c.ID]; !taken {
				unused = append(unused, c)
			}
		}
		if len(unused) == 0 {
			// Pool exhausted; repeating visits beats leaving days empty.
			unused = candidates
		}

		dayCtx := recommender.DayContext{
			Destination:  trip.City,
			DayNumber:    i + 1,
			Interests:    interests,
			Budget:       trip.Budget,
			MealPlan:     trip.MealPlan,
			Theme:        day.Theme,
			FreeSegments: free,
			MaxItems:     trip.ItemCap(),
		}

		raw := s.propose(ctx, dayCtx, unused)
		plan := planner.ValidatePlan(raw, candidateIDs(unused), trip.ItemCap())

		slots := planner.LayoutItems(plan, free[0].Start, s.settings.VisitBuffer)
		for _, slot := range slots {
			if slot.End.After(bounds.End) {
				// Stacking is monotonic, so everything after this overflows too.
				break
			}
			items = append(items, models.AgendaItem{
				DayID:   day.ID,
				PoiID:   slot.PoiID,
				StartAt: slot.Start,
				EndAt:   slot.End,
				Mode:    mode,
			})
			used[slot.PoiID] = struct{}{}
		}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				s.logger.Warn("regenerate rollback failed", zap.Error(rbErr))
			}
		}
	}()

	if err := s.agenda.DeleteByDayIDsWithTx(ctx, tx, dayIDs); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear previous schedule")
	}
	if err := s.agenda.BulkCreateWithTx(ctx, tx, items); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store schedule")
	}
	if err := tx.Commit(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit schedule")
	}
	committed = true

	if err := s.trips.TouchGeneratedAt(ctx, trip.ID, time.Now().UTC()); err != nil {
		// The schedule itself is committed; a stale stamp is tolerable.
		s.logger.Warn("failed to stamp regeneration time", zap.String("trip_id", trip.ID), zap.Error(err))
	}

	if s.metrics != nil {
		s.metrics.ObserveRegeneration(len(items))
	}
	s.logger.Info("trip regenerated",
		zap.String("trip_id", trip.ID),
		zap.Int("days", len(days)),
		zap.Int("items", len(items)))

	return &dto.GenerateResponse{
		TripID:    trip.ID,
		Days:      len(days),
		Items:     len(items),
		Reasoning: fmt.Sprintf("Scheduled %d visits across %d days.", len(items), len(days)),
	}, nil
}

// MaterializeDay lays a raw plan out on a single day and inserts the visits.
// The plan goes through the full validation pipeline first; any overlap with
// an existing agenda row rejects the whole plan.
func (s *ItineraryService) MaterializeDay(ctx context.Context, userID, dayID string, raw planner.RawPlan) ([]models.AgendaItem, error) {
	day, trip, err := s.ownedDay(ctx, userID, dayID)
	if err != nil {
		return nil, err
	}

	bounds, err := s.dayBounds(trip, day)
	if err != nil {
		return nil, err
	}

	pool, err := s.candidatePool(ctx, trip)
	if err != nil {
		return nil, err
	}
	candidates := planner.SelectCandidates(models.Candidates(pool), trip.City, day.AreaFocus)
	plan := planner.ValidatePlan(raw, candidateIDs(candidates), trip.ItemCap())

	existing, err := s.agenda.ListByDay(ctx, day.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list agenda items")
	}
	taken := models.AgendaIntervals(existing)

	mode := s.modeFor(trip)
	slots := planner.LayoutItems(plan, bounds.Start, s.settings.VisitBuffer)
	items := make([]models.AgendaItem, 0, len(slots))
	for _, slot := range slots {
		if slot.End.After(bounds.End) {
			if s.metrics != nil {
				s.metrics.RecordConflict()
			}
			return nil, appErrors.Clone(appErrors.ErrConflict, "plan does not fit inside the day window")
		}
		if planner.ConflictsAny(slot, taken) {
			if s.metrics != nil {
				s.metrics.RecordConflict()
			}
			return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("visit %s overlaps an existing agenda item", slot.PoiID))
		}
		items = append(items, models.AgendaItem{
			DayID:   day.ID,
			PoiID:   slot.PoiID,
			StartAt: slot.Start,
			EndAt:   slot.End,
			Mode:    mode,
		})
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				s.logger.Warn("materialize rollback failed", zap.Error(rbErr))
			}
		}
	}()

	if err := s.agenda.BulkCreateWithTx(ctx, tx, items); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store agenda items")
	}
	if err := tx.Commit(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit agenda items")
	}
	committed = true

	return items, nil
}

// CreateAgendaItem manually places a single visit. Overlap with anything
// already scheduled on the day is rejected.
func (s *ItineraryService) CreateAgendaItem(ctx context.Context, userID, dayID string, req dto.CreateAgendaItemRequest) (*models.AgendaItem, error) {
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

	pois, err := s.pois.ListByIDs(ctx, []string{req.PoiID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load poi")
	}
	if len(pois) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "poi not found")
	}

	existing, err := s.agenda.ListByDay(ctx, day.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list agenda items")
	}
	for _, other := range existing {
		if planner.Overlaps(startAt, endAt, other.StartAt, other.EndAt) {
			return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("overlaps agenda item %s", other.ID))
		}
	}

	item := &models.AgendaItem{
		DayID:   day.ID,
		PoiID:   req.PoiID,
		StartAt: startAt.UTC(),
		EndAt:   endAt.UTC(),
		Mode:    req.Mode,
		Locked:  req.Locked,
	}
	if err := s.agenda.Create(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create agenda item")
	}
	return item, nil
}

// DeleteAgendaItem removes a single scheduled visit.
func (s *ItineraryService) DeleteAgendaItem(ctx context.Context, userID, dayID, itemID string) error {
	day, _, err := s.ownedDay(ctx, userID, dayID)
	if err != nil {
		return err
	}

	item, err := s.agenda.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "agenda item not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load agenda item")
	}
	if item.DayID != day.ID {
		return appErrors.Clone(appErrors.ErrNotFound, "agenda item not found")
	}

	if err := s.agenda.Delete(ctx, itemID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete agenda item")
	}
	return nil
}

// GetItinerary reads the full day-by-day schedule back, resolving POI names
// and rendering clock times in the trip's timezone.
func (s *ItineraryService) GetItinerary(ctx context.Context, userID, tripID string) (*dto.ItineraryResponse, error) {
	trip, err := s.ownedTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	days, err := s.days.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list trip days")
	}

	dayIDs := make([]string, 0, len(days))
	for _, day := range days {
		dayIDs = append(dayIDs, day.ID)
	}
	items, err := s.agenda.ListByDayIDs(ctx, dayIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list agenda items")
	}

	poiByID, err := s.poiIndex(ctx, items)
	if err != nil {
		return nil, err
	}

	loc := time.UTC
	if trip.DestTz != "" {
		if parsed, err := time.LoadLocation(trip.DestTz); err == nil {
			loc = parsed
		}
	}

	itemsByDay := make(map[string][]models.AgendaItem, len(days))
	for _, item := range items {
		itemsByDay[item.DayID] = append(itemsByDay[item.DayID], item)
	}

	out := &dto.ItineraryResponse{Days: make([]dto.ItineraryDay, 0, len(days))}
	for _, day := range days {
		view := dto.ItineraryDay{ID: day.ID, DateLocal: day.DateLocal, Items: make([]dto.ItineraryItemView, 0, len(itemsByDay[day.ID]))}
		for _, item := range itemsByDay[day.ID] {
			poi, known := poiByID[item.PoiID]
			if !known {
				// Catalog entry removed since scheduling; keep the slot visible.
				poi = models.POI{ID: item.PoiID, Name: item.PoiID}
			}
			view.Items = append(view.Items, dto.ItineraryItemView{
				PoiID:           item.PoiID,
				PoiName:         poi.Name,
				DurationMinutes: int(item.EndAt.Sub(item.StartAt).Minutes()),
				IsMeal:          len(poi.Cuisine) > 0,
				Notes:           visitNotes(poi),
				StartTime:       item.StartAt.In(loc).Format("15:04"),
				EndTime:         item.EndAt.In(loc).Format("15:04"),
			})
		}
		out.Days = append(out.Days, view)
	}
	out.Reasoning = fmt.Sprintf("%d scheduled visits across %d days.", len(items), len(days))

	return out, nil
}

// ListDays returns every day of a trip with its fixed windows and agenda.
func (s *ItineraryService) ListDays(ctx context.Context, userID, tripID string) ([]dto.DayDetail, error) {
	if _, err := s.ownedTrip(ctx, userID, tripID); err != nil {
		return nil, err
	}

	days, err := s.days.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list trip days")
	}

	dayIDs := make([]string, 0, len(days))
	for _, day := range days {
		dayIDs = append(dayIDs, day.ID)
	}
	windows, err := s.fixed.ListByDayIDs(ctx, dayIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list fixed windows")
	}
	items, err := s.agenda.ListByDayIDs(ctx, dayIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list agenda items")
	}

	windowsByDay := make(map[string][]models.FixedWindow, len(days))
	for _, w := range windows {
		windowsByDay[w.DayID] = append(windowsByDay[w.DayID], w)
	}
	itemsByDay := make(map[string][]models.AgendaItem, len(days))
	for _, item := range items {
		itemsByDay[item.DayID] = append(itemsByDay[item.DayID], item)
	}

	out := make([]dto.DayDetail, 0, len(days))
	for _, day := range days {
		out = append(out, dto.DayDetail{
			Day:   day,
			Fixed: windowsByDay[day.ID],
			Items: itemsByDay[day.ID],
		})
	}
	return out, nil
}

// FreeSegments resolves a day's bounds and returns the schedulable gaps left
// by its fixed windows.
func (s *ItineraryService) FreeSegments(ctx context.Context, userID, dayID string) ([]planner.Interval, error) {
	day, trip, err := s.ownedDay(ctx, userID, dayID)
	if err != nil {
		return nil, err
	}
	bounds, err := s.dayBounds(trip, day)
	if err != nil {
		return nil, err
	}
	windows, err := s.fixed.ListByDay(ctx, day.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list fixed windows")
	}
	return planner.ComputeFreeSegments(bounds, models.FixedIntervals(windows)), nil
}

func (s *ItineraryService) propose(ctx context.Context, day recommender.DayContext, candidates []planner.Candidate) planner.RawPlan {
	if s.producer != nil {
		raw, err := s.producer.ProposeDay(ctx, day, candidates)
		if err == nil {
			return raw
		}
		if s.metrics != nil {
			s.metrics.RecordProducerError()
		}
		s.logger.Warn("producer failed, falling back to heuristic",
			zap.Int("day", day.DayNumber),
			zap.Error(err))
	}
	raw, err := s.fallback.ProposeDay(ctx, day, candidates)
	if err != nil {
		return planner.RawPlan{}
	}
	return raw
}

func (s *ItineraryService) candidatePool(ctx context.Context, trip *models.Trip) ([]models.POI, error) {
	var (
		pool []models.POI
		err  error
	)
	if trip.City != "" {
		pool, err = s.pois.List(ctx, models.POIFilter{City: trip.City, Limit: s.settings.CandidateLimit})
	} else {
		pool, err = s.pois.ListByMode(ctx, planner.ModeActivityFocused, s.settings.CandidateLimit)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load candidate pool")
	}
	return pool, nil
}

func (s *ItineraryService) dayBounds(trip *models.Trip, day *models.TripDay) (planner.DayWindow, error) {
	start := trip.DayStart
	if start == "" {
		start = s.settings.DefaultDayStart
	}
	end := trip.DayEnd
	if end == "" {
		end = s.settings.DefaultDayEnd
	}
	tz := trip.DestTz
	if tz == "" {
		tz = "UTC"
	}
	return planner.ResolveDayBounds(day.DateLocal, start, end, tz)
}

func (s *ItineraryService) modeFor(trip *models.Trip) string {
	if trip.City != "" {
		return planner.ModeLocationAware
	}
	return planner.ModeActivityFocused
}

func (s *ItineraryService) poiIndex(ctx context.Context, items []models.AgendaItem) (map[string]models.POI, error) {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.PoiID]; ok {
			continue
		}
		seen[item.PoiID] = struct{}{}
		ids = append(ids, item.PoiID)
	}

	pois, err := s.pois.ListByIDs(ctx, ids)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load pois")
	}
	index := make(map[string]models.POI, len(pois))
	for _, poi := range pois {
		index[poi.ID] = poi
	}
	return index, nil
}

func (s *ItineraryService) ownedTrip(ctx context.Context, userID, tripID string) (*models.Trip, error) {
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

func (s *ItineraryService) ownedDay(ctx context.Context, userID, dayID string) (*models.TripDay, *models.Trip, error) {
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

func candidateIDs(candidates []planner.Candidate) map[string]struct{} {
	ids := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		ids[c.ID] = struct{}{}
	}
	return ids
}

func interestKeys(trip *models.Trip) []string {
	if len(trip.Interests) == 0 {
		return nil
	}
	var weights map[string]float64
	if err := json.Unmarshal(trip.Interests, &weights); err != nil {
		return nil
	}
	keys := make([]string, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func visitNotes(poi models.POI) string {
	if poi.Iconic {
		return fmt.Sprintf("Visit %s (Iconic location)", poi.Name)
	}
	return fmt.Sprintf("Visit %s", poi.Name)
}
