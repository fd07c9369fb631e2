package trips

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

var tripColumns = []string{"id", "user_id", "name", "destination", "start_date", "end_date", "budget", "description", "status", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func tokyo() *models.Trip {
	budget := 1500.0
	return &models.Trip{
		UserID:      1,
		Name:        "Tokyo",
		Destination: "Japan",
		StartDate:   models.MustDate("2025-04-01"),
		EndDate:     models.MustDate("2025-04-10"),
		Budget:      &budget,
		Status:      models.TripPlanning,
	}
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+trips\s*\(user_id,.*RETURNING\s+id,\s*created_at,\s*updated_at$`).
		WithArgs(int64(1), "Tokyo", "Japan", "2025-04-01", "2025-04-10", 1500.0, nil, "planning").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(10), now, now))

	got, err := repo.Create(context.Background(), tokyo())
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	start, _ := time.Parse(time.DateOnly, "2025-04-01")
	end, _ := time.Parse(time.DateOnly, "2025-04-10")
	rows := sqlmock.NewRows(tripColumns).
		AddRow(int64(11), int64(1), "Paris", "France", start, end, nil, nil, "ongoing", now, now).
		AddRow(int64(10), int64(1), "Tokyo", "Japan", start, end, "1500.00", "cherry blossoms", "planning", now, now)

	mock.ExpectQuery(`(?s)FROM\s+trips\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Paris", got[0].Name)
	assert.Nil(t, got[0].Budget)
	assert.Equal(t, models.TripOngoing, got[0].Status)
	require.NotNil(t, got[1].Budget)
	assert.Equal(t, 1500.0, *got[1].Budget)
	assert.Equal(t, 9, got[1].Days())
}

func TestListByUser_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+trips`).WithArgs(int64(2)).WillReturnRows(sqlmock.NewRows(tripColumns))

	got, err := repo.ListByUser(context.Background(), 2)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetForUser_OtherOwner(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)FROM\s+trips\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2$`).
		WithArgs(int64(10), int64(2)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetForUser(context.Background(), 10, 2)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)FROM\s+trips\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows(tripColumns).
			AddRow(int64(10), int64(1), "Tokyo", "Japan", "2025-04-01", "2025-04-10", nil, nil, "planning", now, now))

	got, err := repo.GetByID(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.UserID)
	assert.Equal(t, "2025-04-01", got.StartDate.String())
}

func TestUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	trip := tokyo()
	trip.ID = 10
	trip.Status = models.TripOngoing

	later := now.Add(time.Hour)
	mock.ExpectQuery(`(?s)^UPDATE\s+trips\s+SET.*WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`).
		WithArgs(int64(10), int64(1), "Tokyo", "Japan", "2025-04-01", "2025-04-10", 1500.0, nil, "ongoing").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(later))

	got, err := repo.Update(context.Background(), trip)
	require.NoError(t, err)
	assert.Equal(t, later, got.UpdatedAt)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`^DELETE\s+FROM\s+trips\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2$`).
		WithArgs(int64(10), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(context.Background(), 10, 1))

	mock.ExpectExec(`DELETE\s+FROM\s+trips`).
		WithArgs(int64(10), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), 10, 2), common.ErrorNotFound)
}
