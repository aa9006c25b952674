package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nomadly/itinerary-api/internal/dto"
	"github.com/nomadly/itinerary-api/internal/models"
	appErrors "github.com/nomadly/itinerary-api/pkg/errors"
)

type mockTripRepo struct {
	trips   map[string]models.Trip
	updated *models.Trip
	deleted []string
	nextID  int
}

func (m *mockTripRepo) CreateWithTx(ctx context.Context, tx *sqlx.Tx, trip *models.Trip) error {
	if m.trips == nil {
		m.trips = make(map[string]models.Trip)
	}
	m.nextID++
	trip.ID = "trip-created"
	m.trips[trip.ID] = *trip
	return nil
}

func (m *mockTripRepo) FindByID(ctx context.Context, id string) (*models.Trip, error) {
	if trip, ok := m.trips[id]; ok {
		return &trip, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTripRepo) ListByUser(ctx context.Context, userID string) ([]models.Trip, error) {
	var out []models.Trip
	for _, trip := range m.trips {
		if trip.UserID == userID {
			out = append(out, trip)
		}
	}
	return out, nil
}

func (m *mockTripRepo) Update(ctx context.Context, trip *models.Trip) error {
	m.updated = trip
	m.trips[trip.ID] = *trip
	return nil
}

func (m *mockTripRepo) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	delete(m.trips, id)
	return nil
}

type mockTripDayRepo struct {
	days    []models.TripDay
	updated *models.TripDay
}

func (m *mockTripDayRepo) BulkCreateWithTx(ctx context.Context, tx *sqlx.Tx, days []models.TripDay) error {
	m.days = append(m.days, days...)
	return nil
}

func (m *mockTripDayRepo) FindByID(ctx context.Context, id string) (*models.TripDay, error) {
	for _, day := range m.days {
		if day.ID == id {
			d := day
			return &d, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockTripDayRepo) ListByTrip(ctx context.Context, tripID string) ([]models.TripDay, error) {
	var out []models.TripDay
	for _, day := range m.days {
		if day.TripID == tripID {
			out = append(out, day)
		}
	}
	return out, nil
}

func (m *mockTripDayRepo) Update(ctx context.Context, day *models.TripDay) error {
	m.updated = day
	return nil
}

type mockFixedRepo struct {
	windows []models.FixedWindow
	deleted []string
}

func (m *mockFixedRepo) Create(ctx context.Context, window *models.FixedWindow) error {
	window.ID = "fw-created"
	m.windows = append(m.windows, *window)
	return nil
}

func (m *mockFixedRepo) ListByDay(ctx context.Context, dayID string) ([]models.FixedWindow, error) {
	var out []models.FixedWindow
	for _, w := range m.windows {
		if w.DayID == dayID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *mockFixedRepo) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func newTripServiceFixture(t *testing.T) (*TripService, *mockTripRepo, *mockTripDayRepo, *mockFixedRepo, sqlmock.Sqlmock) {
	tx, mock := newTxProviderMock(t)
	trips := &mockTripRepo{trips: map[string]models.Trip{}}
	days := &mockTripDayRepo{}
	fixed := &mockFixedRepo{}
	svc := NewTripService(tx, trips, days, fixed, nil, zap.NewNop(), TripDefaults{DayStart: "09:30", DayEnd: "20:30"})
	return svc, trips, days, fixed, mock
}

func TestTripCreateMaterializesDays(t *testing.T) {
	svc, trips, days, _, mock := newTripServiceFixture(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	trip, err := svc.Create(context.Background(), "user-1", dto.CreateTripRequest{
		Title:     "Tokyo in spring",
		City:      "Tokyo",
		DestTz:    "Asia/Tokyo",
		StartDate: "2025-05-01",
		EndDate:   "2025-05-04",
		Pace:      models.PaceRelax,
	})
	require.NoError(t, err)
	assert.Equal(t, "trip-created", trip.ID)
	assert.Equal(t, "09:30", trip.DayStart, "day window defaults applied")
	assert.Equal(t, "20:30", trip.DayEnd)

	// Inclusive date range: 1st through 4th is four days.
	require.Len(t, days.days, 4)
	for i, day := range days.days {
		assert.Equal(t, trip.ID, day.TripID)
		assert.Equal(t, time.Date(2025, 5, 1+i, 0, 0, 0, 0, time.UTC), day.DateLocal)
	}

	_, ok := trips.trips[trip.ID]
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripCreateRejectsInvertedDates(t *testing.T) {
	svc, _, _, _, _ := newTripServiceFixture(t)

	_, err := svc.Create(context.Background(), "user-1", dto.CreateTripRequest{
		Title:     "Backwards",
		StartDate: "2025-05-04",
		EndDate:   "2025-05-01",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidRange.Code, appErrors.FromError(err).Code)
}

func TestTripCreateRejectsUnknownTimezone(t *testing.T) {
	svc, _, _, _, _ := newTripServiceFixture(t)

	_, err := svc.Create(context.Background(), "user-1", dto.CreateTripRequest{
		Title:     "Nowhere",
		DestTz:    "Mars/Olympus_Mons",
		StartDate: "2025-05-01",
		EndDate:   "2025-05-02",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidTimezone.Code, appErrors.FromError(err).Code)
}

func TestTripCreateRejectsMalformedDayWindow(t *testing.T) {
	svc, _, _, _, _ := newTripServiceFixture(t)

	_, err := svc.Create(context.Background(), "user-1", dto.CreateTripRequest{
		Title:     "Odd hours",
		StartDate: "2025-05-01",
		EndDate:   "2025-05-02",
		DayStart:  "9h30",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidTime.Code, appErrors.FromError(err).Code)
}

func TestTripUpdateRejectsInvertedWindow(t *testing.T) {
	svc, trips, _, _, _ := newTripServiceFixture(t)
	trips.trips["trip-1"] = models.Trip{ID: "trip-1", UserID: "user-1", Title: "Tokyo", DestTz: "UTC", DayStart: "09:30", DayEnd: "20:30"}

	start := "21:00"
	_, err := svc.Update(context.Background(), "user-1", "trip-1", dto.UpdateTripRequest{DayStart: &start})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidRange.Code, appErrors.FromError(err).Code)
}

func TestTripGetForbiddenForOtherUser(t *testing.T) {
	svc, trips, _, _, _ := newTripServiceFixture(t)
	trips.trips["trip-1"] = models.Trip{ID: "trip-1", UserID: "user-1"}

	_, err := svc.Get(context.Background(), "user-2", "trip-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestCreateFixedWindowRejectsInvertedRange(t *testing.T) {
	svc, trips, days, _, _ := newTripServiceFixture(t)
	trips.trips["trip-1"] = models.Trip{ID: "trip-1", UserID: "user-1"}
	days.days = []models.TripDay{{ID: "day-1", TripID: "trip-1"}}

	_, err := svc.CreateFixedWindow(context.Background(), "user-1", "day-1", dto.CreateFixedWindowRequest{
		Title:   "Flight",
		StartAt: "2025-05-01T12:00:00Z",
		EndAt:   "2025-05-01T10:00:00Z",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidRange.Code, appErrors.FromError(err).Code)
}

func TestCreateFixedWindowStoresUTC(t *testing.T) {
	svc, trips, days, fixed, _ := newTripServiceFixture(t)
	trips.trips["trip-1"] = models.Trip{ID: "trip-1", UserID: "user-1"}
	days.days = []models.TripDay{{ID: "day-1", TripID: "trip-1"}}

	window, err := svc.CreateFixedWindow(context.Background(), "user-1", "day-1", dto.CreateFixedWindowRequest{
		Title:   "Flight",
		StartAt: "2025-05-01T12:00:00+09:00",
		EndAt:   "2025-05-01T14:00:00+09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, window.StartAt.Location())
	assert.Equal(t, 3, window.StartAt.Hour())
	require.Len(t, fixed.windows, 1)
}
