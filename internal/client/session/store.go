// Package session keeps the CLI's login between runs in a local SQLite file.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/travelmate/internal/client/migrations"
	"github.com/dmitrijs2005/travelmate/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/travelmate/internal/dbx"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// ErrNoSession is returned by Load when nobody is logged in.
var ErrNoSession = errors.New("not logged in")

const (
	keyServer   = "server_url"
	keyToken    = "token"
	keyUserID   = "user_id"
	keyUsername = "username"
	keyEmail    = "email"
)

// Session is what the CLI remembers after a successful login.
type Session struct {
	ServerURL string
	Token     string
	UserID    int64
	Username  string
	Email     string
}

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the session database at path and applies
// its migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate session db: %w", err)
	}
	return &Store{db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored session atomically.
func (s *Store) Save(ctx context.Context, sess Session) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		for k, v := range map[string]string{
			keyServer:   sess.ServerURL,
			keyToken:    sess.Token,
			keyUserID:   strconv.FormatInt(sess.UserID, 10),
			keyUsername: sess.Username,
			keyEmail:    sess.Email,
		} {
			if err := repo.Set(ctx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) Load(ctx context.Context) (*Session, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	token, ok, err := repo.Get(ctx, keyToken)
	if err != nil {
		return nil, err
	}
	if !ok || token == "" {
		return nil, ErrNoSession
	}

	sess := &Session{Token: token}
	for k, dst := range map[string]*string{
		keyServer:   &sess.ServerURL,
		keyUsername: &sess.Username,
		keyEmail:    &sess.Email,
	} {
		if *dst, _, err = repo.Get(ctx, k); err != nil {
			return nil, err
		}
	}

	id, _, err := repo.Get(ctx, keyUserID)
	if err != nil {
		return nil, err
	}
	if id != "" {
		if sess.UserID, err = strconv.ParseInt(id, 10, 64); err != nil {
			return nil, fmt.Errorf("corrupt session user id %q: %w", id, err)
		}
	}
	return sess, nil
}

// Clear forgets the session. It is not an error if none is stored.
func (s *Store) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Clear(ctx)
}
