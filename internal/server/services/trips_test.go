package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/travelmate/internal/common"
	"github.com/dmitrijs2005/travelmate/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripService_CreateDefaults(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")

	tr, err := env.trips.Create(context.Background(), alice.ID, models.Trip{
		UserID:      12345,
		Name:        "Rome",
		Destination: "Italy",
		StartDate:   models.MustDate("2025-03-01"),
		EndDate:     models.MustDate("2025-03-04"),
	})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, tr.UserID)
	assert.Equal(t, models.TripPlanning, tr.Status)
}

func TestTripService_CreateRejectsReversedDates(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice")

	_, err := env.trips.Create(context.Background(), alice.ID, models.Trip{
		Name:        "Rome",
		Destination: "Italy",
		StartDate:   models.MustDate("2025-03-04"),
		EndDate:     models.MustDate("2025-03-04"),
	})
	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "end_date", ve.Fields[0].Field)
}

func TestTripService_ListAndGetWithTotals(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	tr := env.trip(t, alice.ID, ptr(1000.0))

	for _, amt := range []float64{100, 50.5} {
		_, err := env.expenses.Create(ctx, alice.ID, tr.ID, models.Expense{
			Amount: amt, Category: models.CategoryFood, Date: models.MustDate("2025-06-02"),
		}, nil)
		require.NoError(t, err)
	}

	list, err := env.trips.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.InDelta(t, 150.5, list[0].TotalExpenses, 1e-9)
	assert.Equal(t, 4, list[0].Days)
	assert.Len(t, list[0].Expenses, 2)

	d, err := env.trips.Get(ctx, tr.ID, alice.ID)
	require.NoError(t, err)
	assert.InDelta(t, 150.5, d.TotalExpenses, 1e-9)
	assert.NotNil(t, d.Images)
	assert.NotNil(t, d.ItineraryDays)
}

func TestTripService_OtherUsersTripIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	tr := env.trip(t, alice.ID, nil)

	_, err := env.trips.Get(ctx, tr.ID, bob.ID)
	requireClientError(t, err, common.ErrorNotFound, "Trip not found")

	_, err = env.trips.Update(ctx, tr.ID, bob.ID, models.TripUpdate{Name: ptr("Hijack")})
	requireClientError(t, err, common.ErrorNotFound, "Trip not found")

	err = env.trips.Delete(ctx, tr.ID, bob.ID)
	requireClientError(t, err, common.ErrorNotFound, "Trip not found")

	_, err = env.trips.Summary(ctx, tr.ID, bob.ID)
	requireClientError(t, err, common.ErrorNotFound, "Trip not found")

	list, err := env.trips.List(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTripService_UpdatePartial(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	tr := env.trip(t, alice.ID, nil)

	got, err := env.trips.Update(ctx, tr.ID, alice.ID, models.TripUpdate{Status: ptr(models.TripOngoing)})
	require.NoError(t, err)
	assert.Equal(t, models.TripOngoing, got.Status)
	assert.Equal(t, "Lisbon", got.Name)

	_, err = env.trips.Update(ctx, tr.ID, alice.ID, models.TripUpdate{EndDate: ptr(models.MustDate("2025-05-01"))})
	var ve *common.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestTripService_UpdateClearsBudget(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	tr := env.trip(t, alice.ID, ptr(900.0))

	got, err := env.trips.Update(ctx, tr.ID, alice.ID, models.TripUpdate{Budget: models.Null[float64]()})
	require.NoError(t, err)
	assert.Nil(t, got.Budget)

	sum, err := env.trips.Summary(ctx, tr.ID, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, sum.RemainingBudget)
}

func TestTripService_Summary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	tr := env.trip(t, alice.ID, ptr(500.0))

	add := func(amt float64, cat models.ExpenseCategory) {
		_, err := env.expenses.Create(ctx, alice.ID, tr.ID, models.Expense{
			Amount: amt, Category: cat, Date: models.MustDate("2025-06-02"),
		}, nil)
		require.NoError(t, err)
	}
	add(100, models.CategoryFood)
	add(20, models.CategoryFood)
	add(80, models.CategoryTransport)

	s, err := env.trips.Summary(ctx, tr.ID, alice.ID)
	require.NoError(t, err)
	assert.InDelta(t, 200, s.TotalExpenses, 1e-9)
	require.NotNil(t, s.RemainingBudget)
	assert.InDelta(t, 300, *s.RemainingBudget, 1e-9)
	assert.Equal(t, map[string]float64{"Food": 120, "Transport": 80}, s.ExpensesByCategory)
	assert.Equal(t, 3, s.ExpenseCount)
	assert.Equal(t, 4, s.Days)
}

func TestTripService_SummaryWithoutBudget(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")

	for _, budget := range []*float64{nil, ptr(0.0)} {
		tr := env.trip(t, alice.ID, budget)
		s, err := env.trips.Summary(ctx, tr.ID, alice.ID)
		require.NoError(t, err)
		assert.Nil(t, s.RemainingBudget)
		assert.Empty(t, s.ExpensesByCategory)
	}
}

func TestTripService_DeleteCascadesAndRemovesFiles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	tr := env.trip(t, alice.ID, nil)

	img, err := env.images.Upload(ctx, alice.ID, tr.ID, upload("beach.JPG", "jpeg-bytes"), nil)
	require.NoError(t, err)
	_, err = env.comments.AddToImage(ctx, alice.ID, img.ID, "nice")
	require.NoError(t, err)
	_, err = env.itinerary.Create(ctx, alice.ID, tr.ID, models.ItineraryDay{DayNumber: 1, Date: models.MustDate("2025-06-01")})
	require.NoError(t, err)

	stored, err := env.repos.Images(nil).GetByID(ctx, img.ID)
	require.NoError(t, err)
	path := filepath.Join(env.store.Root(), filepath.FromSlash(stored.StorageKey))
	_, err = os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, env.trips.Delete(ctx, tr.ID, alice.ID))

	_, err = env.trips.Get(ctx, tr.ID, alice.ID)
	requireClientError(t, err, common.ErrorNotFound, "Trip not found")
	_, err = env.repos.Images(nil).GetByID(ctx, img.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
