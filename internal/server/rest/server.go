// Package rest is the HTTP/JSON interface of the TravelMate server.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/travelmate/internal/logging"
	"github.com/dmitrijs2005/travelmate/internal/server/auth"
	"github.com/dmitrijs2005/travelmate/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

// Services are the application services the handlers call into.
type Services struct {
	Users     *services.UserService
	Trips     *services.TripService
	Expenses  *services.ExpenseService
	Itinerary *services.ItineraryService
	Images    *services.ImageService
	Comments  *services.CommentService
}

// Options configure the HTTP server.
type Options struct {
	Address        string
	ClientURL      string
	MaxUploadBytes int64

	// Uploads serves stored objects under UploadsPrefix. Nil when objects
	// are fetched from elsewhere, e.g. presigned S3 URLs.
	Uploads       http.Handler
	UploadsPrefix string
}

type Server struct {
	address   string
	opts      Options
	svc       Services
	gate      *auth.Gate
	validator *requestValidator
	logger    logging.Logger
	handler   http.Handler
	now       func() time.Time
}

func NewServer(opts Options, svc Services, gate *auth.Gate, l logging.Logger) *Server {
	s := &Server{
		address:   opts.Address,
		opts:      opts,
		svc:       svc,
		gate:      gate,
		validator: newRequestValidator(),
		logger:    l.With("module", "rest_server"),
		now:       time.Now,
	}
	s.handler = s.routes()
	return s
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "HTTP shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
