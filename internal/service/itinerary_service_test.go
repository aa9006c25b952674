package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nomadly/itinerary-api/internal/dto"
	"github.com/nomadly/itinerary-api/internal/models"
	"github.com/nomadly/itinerary-api/internal/planner"
	"github.com/nomadly/itinerary-api/internal/recommender"
	appErrors "github.com/nomadly/itinerary-api/pkg/errors"
)

type mockTripReader struct {
	trips     map[string]models.Trip
	generated map[string]time.Time
}

func (m *mockTripReader) FindByID(ctx context.Context, id string) (*models.Trip, error) {
	if trip, ok := m.trips[id]; ok {
		return &trip, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTripReader) TouchGeneratedAt(ctx context.Context, id string, at time.Time) error {
	if m.generated == nil {
		m.generated = make(map[string]time.Time)
	}
	m.generated[id] = at
	return nil
}

type mockDayReader struct {
	days []models.TripDay
}

func (m *mockDayReader) FindByID(ctx context.Context, id string) (*models.TripDay, error) {
	for _, day := range m.days {
		if day.ID == id {
			d := day
			return &d, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockDayReader) ListByTrip(ctx context.Context, tripID string) ([]models.TripDay, error) {
	var out []models.TripDay
	for _, day := range m.days {
		if day.TripID == tripID {
			out = append(out, day)
		}
	}
	return out, nil
}

type mockPOIReader struct {
	pois []models.POI
}

func (m *mockPOIReader) List(ctx context.Context, filter models.POIFilter) ([]models.POI, error) {
	var out []models.POI
	for _, poi := range m.pois {
		if filter.City == "" || poi.City == filter.City {
			out = append(out, poi)
		}
	}
	return out, nil
}

func (m *mockPOIReader) ListByMode(ctx context.Context, mode string, limit int) ([]models.POI, error) {
	var out []models.POI
	for _, poi := range m.pois {
		if poi.Mode == mode {
			out = append(out, poi)
		}
	}
	return out, nil
}

func (m *mockPOIReader) ListByIDs(ctx context.Context, ids []string) ([]models.POI, error) {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []models.POI
	for _, poi := range m.pois {
		if _, ok := want[poi.ID]; ok {
			out = append(out, poi)
		}
	}
	return out, nil
}

type mockFixedReader struct {
	windows []models.FixedWindow
}

func (m *mockFixedReader) ListByDay(ctx context.Context, dayID string) ([]models.FixedWindow, error) {
	var out []models.FixedWindow
	for _, w := range m.windows {
		if w.DayID == dayID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *mockFixedReader) ListByDayIDs(ctx context.Context, dayIDs []string) ([]models.FixedWindow, error) {
	want := make(map[string]struct{}, len(dayIDs))
	for _, id := range dayIDs {
		want[id] = struct{}{}
	}
	var out []models.FixedWindow
	for _, w := range m.windows {
		if _, ok := want[w.DayID]; ok {
			out = append(out, w)
		}
	}
	return out, nil
}

type mockAgendaRepo struct {
	items       []models.AgendaItem
	deletedDays []string
	created     []models.AgendaItem
	nextID      int
}

func (m *mockAgendaRepo) ListByDay(ctx context.Context, dayID string) ([]models.AgendaItem, error) {
	var out []models.AgendaItem
	for _, item := range m.items {
		if item.DayID == dayID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockAgendaRepo) ListByDayIDs(ctx context.Context, dayIDs []string) ([]models.AgendaItem, error) {
	want := make(map[string]struct{}, len(dayIDs))
	for _, id := range dayIDs {
		want[id] = struct{}{}
	}
	var out []models.AgendaItem
	for _, item := range m.items {
		if _, ok := want[item.DayID]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockAgendaRepo) FindByID(ctx context.Context, id string) (*models.AgendaItem, error) {
	for _, item := range m.items {
		if item.ID == id {
			it := item
			return &it, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockAgendaRepo) Create(ctx context.Context, item *models.AgendaItem) error {
	m.nextID++
	item.ID = fmt.Sprintf("item-%d", m.nextID)
	m.items = append(m.items, *item)
	m.created = append(m.created, *item)
	return nil
}

func (m *mockAgendaRepo) BulkCreateWithTx(ctx context.Context, tx *sqlx.Tx, items []models.AgendaItem) error {
	for i := range items {
		m.nextID++
		items[i].ID = fmt.Sprintf("item-%d", m.nextID)
	}
	m.items = append(m.items, items...)
	m.created = append(m.created, items...)
	return nil
}

func (m *mockAgendaRepo) DeleteByDayIDsWithTx(ctx context.Context, tx *sqlx.Tx, dayIDs []string) error {
	m.deletedDays = append(m.deletedDays, dayIDs...)
	drop := make(map[string]struct{}, len(dayIDs))
	for _, id := range dayIDs {
		drop[id] = struct{}{}
	}
	var kept []models.AgendaItem
	for _, item := range m.items {
		if _, ok := drop[item.DayID]; !ok {
			kept = append(kept, item)
		}
	}
	m.items = kept
	return nil
}

func (m *mockAgendaRepo) Delete(ctx context.Context, id string) error {
	var kept []models.AgendaItem
	for _, item := range m.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	m.items = kept
	return nil
}

// stubProducer schedules the first n candidates for a fixed duration each.
type stubProducer struct {
	n       int
	minutes int
	err     error
}

func (p *stubProducer) ProposeDay(ctx context.Context, day recommender.DayContext, candidates []planner.Candidate) (planner.RawPlan, error) {
	if p.err != nil {
		return planner.RawPlan{}, p.err
	}
	plan := planner.RawPlan{Reasoning: "stubbed"}
	for i, c := range candidates {
		if i == p.n {
			break
		}
		plan.Items = append(plan.Items, planner.RawItem{PoiID: c.ID, DurationMinutes: p.minutes})
	}
	return plan, nil
}

type txProviderMock struct {
	db *sqlx.DB
}

func (t *txProviderMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return t.db.BeginTxx(ctx, opts)
}

func newTxProviderMock(t *testing.T) (*txProviderMock, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() { db.Close() })
	return &txProviderMock{db: sqlxdb}, mock
}

type itineraryFixture struct {
	service *ItineraryService
	agenda  *mockAgendaRepo
	trips   *mockTripReader
	mock    sqlmock.Sqlmock
}

func tokyoCatalog() []models.POI {
	return []models.POI{
		{ID: "poi-sensoji", Name: "Senso-ji", City: "Tokyo", District: "Asakusa", Mode: planner.ModeLocationAware, EstimatedDuration: 90},
		{ID: "poi-teamlab", Name: "TeamLab Planets", City: "Tokyo", District: "Toyosu", Mode: planner.ModeLocationAware, EstimatedDuration: 120},
		{ID: "poi-afuri", Name: "Afuri Ramen", City: "Tokyo", District: "Ebisu", Mode: planner.ModeLocationAware, Cuisine: []string{"ramen"}, EstimatedDuration: 60},
		{ID: "poi-meiji", Name: "Meiji Shrine", City: "Tokyo", District: "Shibuya", Mode: planner.ModeLocationAware, EstimatedDuration: 90},
		{ID: "poi-ueno", Name: "Ueno Park", City: "Tokyo", District: "Ueno", Mode: planner.ModeLocationAware, EstimatedDuration: 120},
		{ID: "poi-osaka", Name: "Dotonbori", City: "Osaka", District: "Namba", Mode: planner.ModeLocationAware, EstimatedDuration: 90},
	}
}

func newItineraryFixture(t *testing.T, producer recommender.Producer, fixed []models.FixedWindow, existing []models.AgendaItem) itineraryFixture {
	tx, mock := newTxProviderMock(t)
	agenda := &mockAgendaRepo{items: existing}

	trips := &mockTripReader{trips: map[string]models.Trip{
		"trip-1": {
			ID:        "trip-1",
			UserID:    "user-1",
			Title:     "Tokyo in spring",
			City:      "Tokyo",
			DestTz:    "Asia/Tokyo",
			StartDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
			Pace:      models.PaceNormal,
			DayStart:  "09:30",
			DayEnd:    "20:30",
		},
	}}
	days := &mockDayReader{days: []models.TripDay{
		{ID: "day-1", TripID: "trip-1", DateLocal: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "day-2", TripID: "trip-1", DateLocal: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)},
	}}

	svc := NewItineraryService(tx, trips, days, &mockPOIReader{pois: tokyoCatalog()}, &mockFixedReader{windows: fixed}, agenda, producer, zap.NewNop(), PlannerSettings{
		VisitBuffer:    30 * time.Minute,
		CandidateLimit: 40,
	})
	return itineraryFixture{service: svc, agenda: agenda, trips: trips, mock: mock}
}

func TestRegenerateTripReplacesSchedule(t *testing.T) {
	fx := newItineraryFixture(t, &stubProducer{n: 3, minutes: 60}, nil, []models.AgendaItem{
		{ID: "stale-1", DayID: "day-1", PoiID: "poi-ueno", StartAt: time.Now(), EndAt: time.Now().Add(time.Hour)},
	})
	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()

	resp, err := fx.service.RegenerateTrip(context.Background(), "user-1", "trip-1")
	require.NoError(t, err)
	assert.Equal(t, "trip-1", resp.TripID)
	assert.Equal(t, 2, resp.Days)
	// Three visits on day one; only two catalog entries remain unused for
	// day two.
	assert.Equal(t, 5, resp.Items)

	assert.ElementsMatch(t, []string{"day-1", "day-2"}, fx.agenda.deletedDays)
	assert.Len(t, fx.agenda.items, 5)
	assert.NotZero(t, fx.trips.generated["trip-1"], "regeneration time stamped")
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestRegenerateTripItemsStayInsideBounds(t *testing.T) {
	fx := newItineraryFixture(t, &stubProducer{n: 5, minutes: 240}, nil, nil)
	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()

	_, err := fx.service.RegenerateTrip(context.Background(), "user-1", "trip-1")
	require.NoError(t, err)

	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	for _, item := range fx.agenda.items {
		local := item.StartAt.In(loc)
		assert.False(t, local.Hour() < 9, "visit starts before the day opens")
		endLocal := item.EndAt.In(loc)
		assert.False(t, endLocal.Hour() > 20 || (endLocal.Hour() == 20 && endLocal.Minute() > 30),
			"visit %s runs past the day window", item.PoiID)
	}
}

func TestRegenerateTripDoesNotRepeatPOIs(t *testing.T) {
	fx := newItineraryFixture(t, &stubProducer{n: 2, minutes: 90}, nil, nil)
	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()

	_, err := fx.service.RegenerateTrip(context.Background(), "user-1", "trip-1")
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, item := range fx.agenda.items {
		seen[item.PoiID]++
	}
	for poiID, count := range seen {
		assert.Equal(t, 1, count, "poi %s scheduled more than once", poiID)
	}
}

func TestRegenerateTripSkipsFullyCommittedDay(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	fullDay := models.FixedWindow{
		ID:      "fw-1",
		DayID:   "day-1",
		Title:   "Conference",
		StartAt: time.Date(2025, 5, 1, 9, 0, 0, 0, loc).UTC(),
		EndAt:   time.Date(2025, 5, 1, 21, 0, 0, 0, loc).UTC(),
	}
	fx := newItineraryFixture(t, &stubProducer{n: 2, minutes: 90}, []models.FixedWindow{fullDay}, nil)
	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()

	_, err = fx.service.RegenerateTrip(context.Background(), "user-1", "trip-1")
	require.NoError(t, err)

	for _, item := range fx.agenda.items {
		assert.NotEqual(t, "day-1", item.DayID, "nothing should land on the blocked day")
	}
}

func TestRegenerateTripFallsBackWhenProducerFails(t *testing.T) {
	fx := newItineraryFixture(t, &stubProducer{err: fmt.Errorf("recommender down")}, nil, nil)
	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()

	resp, err := fx.service.RegenerateTrip(context.Background(), "user-1", "trip-1")
	require.NoError(t, err)
	assert.Greater(t, resp.Items, 0, "heuristic fallback should still fill the days")
}

func TestRegenerateTripForbiddenForOtherUser(t *testing.T) {
	fx := newItineraryFixture(t, &stubProducer{n: 2, minutes: 90}, nil, nil)

	_, err := fx.service.RegenerateTrip(context.Background(), "user-2", "trip-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestMaterializeDayInsertsValidatedPlan(t *testing.T) {
	fx := newItineraryFixture(t, nil, nil, nil)
	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()

	raw := planner.RawPlan{
		Items: []planner.RawItem{
			{PoiID: "poi-sensoji", DurationMinutes: 90},
			{PoiID: "poi-unknown", DurationMinutes: 60},
			{PoiID: "poi-afuri", DurationMinutes: 5, IsMeal: true},
		},
	}
	items, err := fx.service.MaterializeDay(context.Background(), "user-1", "day-1", raw)
	require.NoError(t, err)
	require.Len(t, items, 2, "unknown poi should be dropped")

	// 09:30 local anchor, 90 min visit, 30 min buffer, clamped 20 min meal.
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "09:30", items[0].StartAt.In(loc).Format("15:04"))
	assert.Equal(t, "11:00", items[0].EndAt.In(loc).Format("15:04"))
	assert.Equal(t, "11:30", items[1].StartAt.In(loc).Format("15:04"))
	assert.Equal(t, "11:50", items[1].EndAt.In(loc).Format("15:04"))
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestMaterializeDayRejectsOverlap(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	existing := []models.AgendaItem{{
		ID:      "item-existing",
		DayID:   "day-1",
		PoiID:   "poi-ueno",
		StartAt: time.Date(2025, 5, 1, 10, 0, 0, 0, loc).UTC(),
		EndAt:   time.Date(2025, 5, 1, 11, 0, 0, 0, loc).UTC(),
	}}
	fx := newItineraryFixture(t, nil, nil, existing)

	raw := planner.RawPlan{Items: []planner.RawItem{{PoiID: "poi-sensoji", DurationMinutes: 90}}}
	_, err = fx.service.MaterializeDay(context.Background(), "user-1", "day-1", raw)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, 409, appErr.Status)
	assert.Empty(t, fx.agenda.created, "no rows should be written on conflict")
}

func TestMaterializeDayRejectsOversizedPlan(t *testing.T) {
	fx := newItineraryFixture(t, nil, nil, nil)

	// Five 240 minute visits cannot fit an 11 hour day; pace caps at 5 so
	// nothing is truncated away first.
	var raw planner.RawPlan
	for _, id := range []string{"poi-sensoji", "poi-teamlab", "poi-afuri", "poi-meiji", "poi-ueno"} {
		raw.Items = append(raw.Items, planner.RawItem{PoiID: id, DurationMinutes: 240})
	}
	_, err := fx.service.MaterializeDay(context.Background(), "user-1", "day-1", raw)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestCreateAgendaItemConflict(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	existing := []models.AgendaItem{{
		ID:      "item-existing",
		DayID:   "day-1",
		PoiID:   "poi-ueno",
		StartAt: time.Date(2025, 5, 1, 10, 0, 0, 0, loc).UTC(),
		EndAt:   time.Date(2025, 5, 1, 11, 0, 0, 0, loc).UTC(),
	}}
	fx := newItineraryFixture(t, nil, nil, existing)

	_, err = fx.service.CreateAgendaItem(context.Background(), "user-1", "day-1", dto.CreateAgendaItemRequest{
		PoiID:   "poi-sensoji",
		StartAt: time.Date(2025, 5, 1, 10, 30, 0, 0, loc).Format(time.RFC3339),
		EndAt:   time.Date(2025, 5, 1, 12, 0, 0, 0, loc).Format(time.RFC3339),
		Mode:    planner.ModeLocationAware,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestCreateAgendaItemAdjacentAllowed(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	existing := []models.AgendaItem{{
		ID:      "item-existing",
		DayID:   "day-1",
		PoiID:   "poi-ueno",
		StartAt: time.Date(2025, 5, 1, 10, 0, 0, 0, loc).UTC(),
		EndAt:   time.Date(2025, 5, 1, 11, 0, 0, 0, loc).UTC(),
	}}
	fx := newItineraryFixture(t, nil, nil, existing)

	item, err := fx.service.CreateAgendaItem(context.Background(), "user-1", "day-1", dto.CreateAgendaItemRequest{
		PoiID:   "poi-sensoji",
		StartAt: time.Date(2025, 5, 1, 11, 0, 0, 0, loc).Format(time.RFC3339),
		EndAt:   time.Date(2025, 5, 1, 12, 0, 0, 0, loc).Format(time.RFC3339),
		Mode:    planner.ModeLocationAware,
	})
	require.NoError(t, err, "touching intervals do not overlap")
	assert.NotEmpty(t, item.ID)
}

func TestCreateAgendaItemInvertedRange(t *testing.T) {
	fx := newItineraryFixture(t, nil, nil, nil)

	_, err := fx.service.CreateAgendaItem(context.Background(), "user-1", "day-1", dto.CreateAgendaItemRequest{
		PoiID:   "poi-sensoji",
		StartAt: "2025-05-01T12:00:00+09:00",
		EndAt:   "2025-05-01T10:00:00+09:00",
		Mode:    planner.ModeLocationAware,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidRange.Code, appErrors.FromError(err).Code)
}

func TestGetItineraryRendersLocalTimes(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	existing := []models.AgendaItem{
		{
			ID:      "item-1",
			DayID:   "day-1",
			PoiID:   "poi-afuri",
			StartAt: time.Date(2025, 5, 1, 12, 0, 0, 0, loc).UTC(),
			EndAt:   time.Date(2025, 5, 1, 13, 0, 0, 0, loc).UTC(),
		},
	}
	fx := newItineraryFixture(t, nil, nil, existing)

	itinerary, err := fx.service.GetItinerary(context.Background(), "user-1", "trip-1")
	require.NoError(t, err)
	require.Len(t, itinerary.Days, 2)
	require.Len(t, itinerary.Days[0].Items, 1)

	item := itinerary.Days[0].Items[0]
	assert.Equal(t, "Afuri Ramen", item.PoiName)
	assert.Equal(t, "12:00", item.StartTime)
	assert.Equal(t, "13:00", item.EndTime)
	assert.Equal(t, 60, item.DurationMinutes)
	assert.True(t, item.IsMeal, "cuisine-tagged poi renders as a meal")
}

func TestDeleteAgendaItemWrongDay(t *testing.T) {
	existing := []models.AgendaItem{{ID: "item-1", DayID: "day-2", PoiID: "poi-ueno"}}
	fx := newItineraryFixture(t, nil, nil, existing)

	err := fx.service.DeleteAgendaItem(context.Background(), "user-1", "day-1", "item-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestFreeSegmentsSubtractsFixedWindows(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	lunch := models.FixedWindow{
		ID:      "fw-1",
		DayID:   "day-1",
		Title:   "Lunch reservation",
		StartAt: time.Date(2025, 5, 1, 12, 0, 0, 0, loc).UTC(),
		EndAt:   time.Date(2025, 5, 1, 13, 0, 0, 0, loc).UTC(),
	}
	fx := newItineraryFixture(t, nil, []models.FixedWindow{lunch}, nil)

	segments, err := fx.service.FreeSegments(context.Background(), "user-1", "day-1")
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, "09:30", segments[0].Start.In(loc).Format("15:04"))
	assert.Equal(t, "12:00", segments[0].End.In(loc).Format("15:04"))
	assert.Equal(t, "13:00", segments[1].Start.In(loc).Format("15:04"))
	assert.Equal(t, "20:30", segments[1].End.In(loc).Format("15:04"))
}
