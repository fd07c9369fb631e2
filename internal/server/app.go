// Package server wires the TravelMate components together and runs them
// until the process is asked to stop.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/travelmate/internal/logging"
	"github.com/dmitrijs2005/travelmate/internal/server/auth"
	"github.com/dmitrijs2005/travelmate/internal/server/config"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/travelmate/internal/server/rest"
	"github.com/dmitrijs2005/travelmate/internal/server/services"
	"github.com/dmitrijs2005/travelmate/internal/server/shared/db"
	"github.com/dmitrijs2005/travelmate/internal/server/storage"

	gs "github.com/dmitrijs2005/travelmate/internal/server/grpc"
)

const (
	uploadsPrefix  = "/uploads"
	healthInterval = 15 * time.Second
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	rest   *rest.Server
	health *gs.HealthServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	conn, manager, err := openRepositories(ctx, c)
	if err != nil {
		return nil, err
	}

	store, uploads, err := openStore(ctx, c)
	if err != nil {
		closeDB(conn)
		return nil, err
	}

	hasher := auth.NewPasswordHasher(c.BcryptCost)
	tokens := auth.NewTokenService([]byte(c.SecretKey), c.TokenLifetime)

	svc := rest.Services{
		Users:     services.NewUserService(conn, manager, hasher, tokens, logger),
		Trips:     services.NewTripService(conn, manager, store, logger),
		Expenses:  services.NewExpenseService(conn, manager, store, logger),
		Itinerary: services.NewItineraryService(conn, manager),
		Images:    services.NewImageService(conn, manager, store, logger),
		Comments:  services.NewCommentService(conn, manager),
	}
	gate := auth.NewGate(tokens, svc.Users, logger)

	app := &App{config: c, logger: logger, db: conn}
	app.rest = rest.NewServer(rest.Options{
		Address:        c.HTTPAddr,
		ClientURL:      c.ClientURL,
		MaxUploadBytes: c.MaxUploadBytes,
		Uploads:        uploads,
		UploadsPrefix:  uploadsPrefix,
	}, svc, gate, logger)

	if c.GRPCHealthAddr != "" {
		var pinger gs.Pinger
		if conn != nil {
			pinger = conn
		}
		app.health = gs.NewHealthServer(c.GRPCHealthAddr, logger, pinger, healthInterval)
	}

	return app, nil
}

func openRepositories(ctx context.Context, c *config.Config) (*sql.DB, repomanager.RepositoryManager, error) {
	if c.DatabaseDSN == config.MemoryDSN {
		return nil, repomanager.NewInMemoryRepositoryManager(), nil
	}

	conn, err := db.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, conn); err != nil {
		closeDB(conn)
		return nil, nil, fmt.Errorf("db migration error: %w", err)
	}
	return conn, m, nil
}

// openStore returns the object store and, for the local backend, the
// handler that serves its files.
func openStore(ctx context.Context, c *config.Config) (storage.ObjectStore, http.Handler, error) {
	switch c.StorageBackend {
	case config.StorageS3:
		s, err := storage.NewS3Store(ctx, storage.S3Config{
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			Bucket:       c.S3Bucket,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("storage init error: %w", err)
		}
		return s, nil, nil
	case config.StorageLocal, "":
		s, err := storage.NewLocalStore(c.UploadDir, uploadsPrefix)
		if err != nil {
			return nil, nil, fmt.Errorf("storage init error: %w", err)
		}
		return s, s.Handler(), nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}

func closeDB(conn *sql.DB) {
	if conn != nil {
		_ = conn.Close()
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run starts the servers and blocks until they have all stopped. A server
// that fails to start stops the others.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	start := func(name string, run func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := run(ctx); err != nil {
				app.logger.Error(ctx, name+" server failed", "error", err)
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				mu.Unlock()
				cancelFunc()
			}
		}()
	}

	start("http", app.rest.Run)
	if app.health != nil {
		start("grpc", app.health.Run)
	}

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("db close: %w", err))
		}
	}
	app.logger.Info(context.Background(), "App stopped")
	return errors.Join(errs...)
}
