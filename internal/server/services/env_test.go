package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/travelmate/internal/common"
	"github.com/dmitrijs2005/travelmate/internal/logging"
	"github.com/dmitrijs2005/travelmate/internal/netx"
	"github.com/dmitrijs2005/travelmate/internal/server/auth"
	"github.com/dmitrijs2005/travelmate/internal/server/models"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/travelmate/internal/server/storage"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	repos     *repomanager.InMemoryRepositoryManager
	store     *storage.LocalStore
	tokens    *auth.TokenService
	users     *UserService
	trips     *TripService
	expenses  *ExpenseService
	itinerary *ItineraryService
	images    *ImageService
	comments  *CommentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	m := repomanager.NewInMemoryRepositoryManager()
	store, err := storage.NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	log := logging.Discard()
	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour)
	return &testEnv{
		repos:     m,
		store:     store,
		tokens:    tokens,
		users:     NewUserService(nil, m, auth.NewPasswordHasher(bcrypt.MinCost), tokens, log),
		trips:     NewTripService(nil, m, store, log),
		expenses:  NewExpenseService(nil, m, store, log),
		itinerary: NewItineraryService(nil, m),
		images:    NewImageService(nil, m, store, log),
		comments:  NewCommentService(nil, m),
	}
}

func (e *testEnv) register(t *testing.T, name string) *models.User {
	t.Helper()
	u, err := e.users.Register(context.Background(), RegisterInput{
		Username: name,
		Email:    name + "@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) trip(t *testing.T, owner int64, budget *float64) *models.Trip {
	t.Helper()
	tr, err := e.trips.Create(context.Background(), owner, models.Trip{
		Name:        "Lisbon",
		Destination: "Portugal",
		StartDate:   models.MustDate("2025-06-01"),
		EndDate:     models.MustDate("2025-06-05"),
		Budget:      budget,
	})
	require.NoError(t, err)
	return tr
}

// upload builds an Upload typed after name's extension.
func upload(name, content string) *Upload {
	body := bytes.NewReader([]byte(content))
	return &Upload{ContentType: netx.ContentTypeOf(name), Size: int64(body.Len()), Body: body}
}

func ptr[T any](v T) *T { return &v }

// requireClientError asserts err is a ClientError over sentinel with msg.
func requireClientError(t *testing.T, err error, sentinel error, msg string) {
	t.Helper()
	require.Error(t, err)
	var ce *common.ClientError
	require.True(t, errors.As(err, &ce), "want ClientError, got %T: %v", err, err)
	require.ErrorIs(t, err, sentinel)
	require.Equal(t, msg, ce.Message)
}
