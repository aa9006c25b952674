package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/nomadly/itinerary-api/internal/models"
)

func newAgendaRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAgendaRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newAgendaRepoMock(t)
	defer cleanup()

	repo := NewAgendaRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO agenda_items")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	item := &models.AgendaItem{
		DayID:   "day-1",
		PoiID:   "poi-1",
		StartAt: time.Date(2025, 5, 1, 0, 30, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 5, 1, 2, 0, 0, 0, time.UTC),
		Mode:    "location_aware",
	}
	require.NoError(t, repo.Create(context.Background(), item))
	require.NotEmpty(t, item.ID)
	require.False(t, item.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAgendaRepositoryListByDay(t *testing.T) {
	db, mock, cleanup := newAgendaRepoMock(t)
	defer cleanup()

	repo := NewAgendaRepository(db)
	rows := sqlmock.NewRows([]string{"id", "day_id", "poi_id", "start_at", "end_at", "mode", "locked", "created_at"}).
		AddRow("item-1", "day-1", "poi-1", time.Now(), time.Now().Add(time.Hour), "location_aware", false, time.Now()).
		AddRow("item-2", "day-1", "poi-2", time.Now().Add(2*time.Hour), time.Now().Add(3*time.Hour), "location_aware", true, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, day_id, poi_id, start_at, end_at, mode, locked, created_at FROM agenda_items WHERE day_id = $1")).
		WithArgs("day-1").
		WillReturnRows(rows)

	items, err := repo.ListByDay(context.Background(), "day-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "item-1", items[0].ID)
	require.True(t, items[1].Locked)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAgendaRepositoryRegenerationReplacesInsideTx(t *testing.T) {
	db, mock, cleanup := newAgendaRepoMock(t)
	defer cleanup()

	repo := NewAgendaRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM agenda_items WHERE day_id = ANY($1)")).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO agenda_items")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO agenda_items")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTxx(context.Background(), nil)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteByDayIDsWithTx(context.Background(), tx, []string{"day-1", "day-2"}))
	items := []models.AgendaItem{
		{DayID: "day-1", PoiID: "poi-1", StartAt: time.Now(), EndAt: time.Now().Add(time.Hour), Mode: "location_aware"},
		{DayID: "day-2", PoiID: "poi-2", StartAt: time.Now(), EndAt: time.Now().Add(time.Hour), Mode: "location_aware"},
	}
	require.NoError(t, repo.BulkCreateWithTx(context.Background(), tx, items))
	require.NotEmpty(t, items[0].ID, "bulk insert assigns ids")
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAgendaRepositoryBulkCreateNilTx(t *testing.T) {
	db, _, cleanup := newAgendaRepoMock(t)
	defer cleanup()

	repo := NewAgendaRepository(db)
	require.Error(t, repo.BulkCreateWithTx(context.Background(), nil, nil))
	require.Error(t, repo.DeleteByDayIDsWithTx(context.Background(), nil, nil))
}
