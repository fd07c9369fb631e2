package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/travelmate/internal/logging"
	"github.com/dmitrijs2005/travelmate/internal/server/models"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/travelmate/internal/server/storage"
)

// TripService manages the caller's trips and their aggregate views.
type TripService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       storage.ObjectStore
	logger      logging.Logger
}

func NewTripService(db *sql.DB, m repomanager.RepositoryManager, store storage.ObjectStore, logger logging.Logger) *TripService {
	return &TripService{db: db, repomanager: m, store: store, logger: logger.With("module", "trip_service")}
}

// List returns the caller's trips, newest first, each with its expenses
// summed and its length in days.
func (s *TripService) List(ctx context.Context, userID int64) ([]models.TripWithTotals, error) {
	list, err := s.repomanager.Trips(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	expenseRepo := s.repomanager.Expenses(s.db)
	result := make([]models.TripWithTotals, 0, len(list))
	for _, t := range list {
		ex, err := expenseRepo.ListByTrip(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		if err := resolveReceipts(ctx, s.store, ex); err != nil {
			return nil, err
		}
		result = append(result, withTotals(t, ex))
	}
	return result, nil
}

// Get returns one trip with its expenses, images and itinerary.
func (s *TripService) Get(ctx context.Context, id, userID int64) (*models.TripDetails, error) {
	t, err := ownedTrip(ctx, s.repomanager.Trips(s.db), id, userID)
	if err != nil {
		return nil, err
	}

	ex, err := s.repomanager.Expenses(s.db).ListByTrip(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	if err := resolveReceipts(ctx, s.store, ex); err != nil {
		return nil, err
	}
	imgs, err := s.repomanager.Images(s.db).ListByTrip(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	if err := resolveImageURLs(ctx, s.store, imgs); err != nil {
		return nil, err
	}
	days, err := s.repomanager.ItineraryDays(s.db).ListByTrip(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	return &models.TripDetails{
		TripWithTotals: withTotals(*t, ex),
		Images:         imgs,
		ItineraryDays:  days,
	}, nil
}

// Create stores a new trip owned by userID. The status defaults to planning.
func (s *TripService) Create(ctx context.Context, userID int64, t models.Trip) (*models.Trip, error) {
	if err := validateDates(t.StartDate, t.EndDate); err != nil {
		return nil, err
	}
	t.ID = 0
	t.UserID = userID
	if t.Status == "" {
		t.Status = models.TripPlanning
	}

	created, err := s.repomanager.Trips(s.db).Create(ctx, &t)
	if err != nil {
		return nil, mapStoreError(err)
	}
	s.logger.Info(ctx, "trip created", "trip_id", created.ID, "user_id", userID)
	return created, nil
}

func (s *TripService) Update(ctx context.Context, id, userID int64, upd models.TripUpdate) (*models.Trip, error) {
	repo := s.repomanager.Trips(s.db)
	t, err := ownedTrip(ctx, repo, id, userID)
	if err != nil {
		return nil, err
	}

	upd.Apply(t)
	if err := validateDates(t.StartDate, t.EndDate); err != nil {
		return nil, err
	}

	updated, err := repo.Update(ctx, t)
	if err != nil {
		return nil, notFoundAs(err, msgTripNotFound)
	}
	return updated, nil
}

// Delete removes the trip with everything below it, including stored files.
func (s *TripService) Delete(ctx context.Context, id, userID int64) error {
	repo := s.repomanager.Trips(s.db)
	t, err := ownedTrip(ctx, repo, id, userID)
	if err != nil {
		return err
	}

	keys, err := s.objectKeys(ctx, t.ID)
	if err != nil {
		return err
	}

	if err := repo.Delete(ctx, t.ID, userID); err != nil {
		return notFoundAs(err, msgTripNotFound)
	}
	removeObjects(ctx, s.store, s.logger, keys...)
	s.logger.Info(ctx, "trip deleted", "trip_id", t.ID, "user_id", userID)
	return nil
}

// Summary returns the budget overview of a trip.
func (s *TripService) Summary(ctx context.Context, id, userID int64) (*models.TripSummary, error) {
	t, err := ownedTrip(ctx, s.repomanager.Trips(s.db), id, userID)
	if err != nil {
		return nil, err
	}
	ex, err := s.repomanager.Expenses(s.db).ListByTrip(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	total := 0.0
	byCategory := map[string]float64{}
	for _, e := range ex {
		total += e.Amount
		byCategory[string(e.Category)] += e.Amount
	}

	var remaining *float64
	if t.Budget != nil && *t.Budget != 0 {
		r := *t.Budget - total
		remaining = &r
	}

	return &models.TripSummary{
		Trip: models.TripBrief{
			ID:          t.ID,
			Name:        t.Name,
			Destination: t.Destination,
			StartDate:   t.StartDate,
			EndDate:     t.EndDate,
			Budget:      t.Budget,
			Status:      t.Status,
		},
		TotalExpenses:      total,
		RemainingBudget:    remaining,
		ExpensesByCategory: byCategory,
		Days:               t.Days(),
		ExpenseCount:       len(ex),
	}, nil
}

func (s *TripService) objectKeys(ctx context.Context, tripID int64) ([]string, error) {
	imgs, err := s.repomanager.Images(s.db).ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	ex, err := s.repomanager.Expenses(s.db).ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	keys := make([]string, 0, len(imgs)+len(ex))
	for _, img := range imgs {
		keys = append(keys, img.StorageKey)
	}
	for _, e := range ex {
		if e.ReceiptImage != nil {
			keys = append(keys, *e.ReceiptImage)
		}
	}
	return keys, nil
}

func withTotals(t models.Trip, ex []models.Expense) models.TripWithTotals {
	total := 0.0
	for _, e := range ex {
		total += e.Amount
	}
	return models.TripWithTotals{Trip: t, Expenses: ex, TotalExpenses: total, Days: t.Days()}
}
