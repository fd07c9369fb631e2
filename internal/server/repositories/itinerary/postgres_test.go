package itinerary

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/travelmate/internal/common"
	"github.com/dmitrijs2005/travelmate/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	title := "Arrival"
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+itinerary_days.*RETURNING\s+id,\s*created_at$`).
		WithArgs(int64(10), 1, "2025-04-01", title, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), now))

	d, err := repo.Create(context.Background(), &models.ItineraryDay{
		TripID: 10, DayNumber: 1, Date: models.MustDate("2025-04-01"), Title: &title,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), d.ID)
}

func TestListByTrip_Ordered(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"id", "trip_id", "day_number", "date", "title", "description", "created_at"}).
		AddRow(int64(5), int64(10), 1, "2025-04-01", "Arrival", nil, now).
		AddRow(int64(6), int64(10), 2, "2025-04-02", nil, "Shibuya", now)
	mock.ExpectQuery(`(?s)FROM\s+itinerary_days\s+WHERE\s+trip_id\s*=\s*\$1\s+ORDER\s+BY\s+day_number\s+ASC`).
		WithArgs(int64(10)).
		WillReturnRows(rows)

	got, err := repo.ListByTrip(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].DayNumber)
	assert.Nil(t, got[1].Title)
	assert.Equal(t, "Shibuya", *got[1].Description)
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+itinerary_days\s+WHERE\s+id`).
		WithArgs(int64(5), int64(11)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), 5, 11)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdateAndDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)^UPDATE\s+itinerary_days\s+SET`).
		WithArgs(int64(5), int64(10), 2, "2025-04-02", nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	_, err := repo.Update(context.Background(), &models.ItineraryDay{ID: 5, TripID: 10, DayNumber: 2, Date: models.MustDate("2025-04-02")})
	require.NoError(t, err)

	mock.ExpectExec(`^DELETE\s+FROM\s+itinerary_days`).
		WithArgs(int64(5), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), 5, 10), common.ErrorNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
