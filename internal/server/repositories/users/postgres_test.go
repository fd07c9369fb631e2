package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/travelmate/internal/common"
	"github.com/dmitrijs2005/travelmate/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

var userColumns = []string{"id", "username", "email", "password_hash", "full_name", "profile_image", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	full := "Alice A."
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users\s*\(username,\s*email,\s*password_hash,\s*full_name\).*RETURNING\s+id,\s*created_at,\s*updated_at$`).
		WithArgs("alice", "alice@x.com", "hash", full).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(42), now, now))

	u, err := repo.Create(context.Background(), &models.User{Username: "alice", Email: "alice@x.com", PasswordHash: "hash", FullName: &full})
	require.NoError(t, err)
	assert.Equal(t, int64(42), u.ID)
	assert.Equal(t, now, u.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), &models.User{Username: "alice", Email: "alice@x.com", PasswordHash: "hash"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestGetByID_Found(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*username,.*FROM\s+users\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(int64(7), "alice", "alice@x.com", "hash", nil, "avatar.png", now, now))

	u, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.Nil(t, u.FullName)
	require.NotNil(t, u.ProfileImage)
	assert.Equal(t, "avatar.png", *u.ProfileImage)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+id`).
		WithArgs(int64(7)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 7)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)FROM\s+users\s+WHERE\s+email\s*=\s*\$1$`).
		WithArgs("alice@x.com").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(int64(7), "alice", "alice@x.com", "hash", nil, nil, now, now))

	u, err := repo.GetByEmail(context.Background(), "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
}

func TestGetByEmail_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+email`).
		WillReturnError(errors.New("db down"))

	_, err := repo.GetByEmail(context.Background(), "alice@x.com")
	assert.EqualError(t, err, "db error: db down")
}

func TestUpdate_PartialFields(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	name := "alice2"
	mock.ExpectQuery(`(?s)^UPDATE\s+users\s+SET\s+username\s*=\s*COALESCE\(\$2,\s*username\).*WHERE\s+id\s*=\s*\$1.*RETURNING`).
		WithArgs(int64(7), name, nil, nil).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(int64(7), "alice2", "alice@x.com", "hash", nil, nil, now, now))

	u, err := repo.Update(context.Background(), 7, models.ProfileUpdate{Username: &name})
	require.NoError(t, err)
	assert.Equal(t, "alice2", u.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_EmailTaken(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`UPDATE\s+users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	email := "bob@x.com"
	_, err := repo.Update(context.Background(), 7, models.ProfileUpdate{Email: &email})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}
