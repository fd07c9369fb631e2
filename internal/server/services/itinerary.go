package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/travelmate/internal/server/models"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/repomanager"
)

// ItineraryService manages the planned days of the caller's trips.
type ItineraryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewItineraryService(db *sql.DB, m repomanager.RepositoryManager) *ItineraryService {
	return &ItineraryService{db: db, repomanager: m}
}

func (s *ItineraryService) List(ctx context.Context, userID, tripID int64) ([]models.ItineraryDay, error) {
	if _, err := ownedTrip(ctx, s.repomanager.Trips(s.db), tripID, userID); err != nil {
		return nil, err
	}
	return s.repomanager.ItineraryDays(s.db).ListByTrip(ctx, tripID)
}

func (s *ItineraryService) Get(ctx context.Context, userID, tripID, id int64) (*models.ItineraryDay, error) {
	if _, err := ownedTrip(ctx, s.repomanager.Trips(s.db), tripID, userID); err != nil {
		return nil, err
	}
	d, err := s.repomanager.ItineraryDays(s.db).Get(ctx, id, tripID)
	if err != nil {
		return nil, notFoundAs(err, msgItineraryNotFound)
	}
	return d, nil
}

func (s *ItineraryService) Create(ctx context.Context, userID, tripID int64, d models.ItineraryDay) (*models.ItineraryDay, error) {
	if _, err := ownedTrip(ctx, s.repomanager.Trips(s.db), tripID, userID); err != nil {
		return nil, err
	}
	d.ID = 0
	d.TripID = tripID

	created, err := s.repomanager.ItineraryDays(s.db).Create(ctx, &d)
	if err != nil {
		return nil, notFoundAs(err, msgTripNotFound)
	}
	return created, nil
}

func (s *ItineraryService) Update(ctx context.Context, userID, tripID, id int64, upd models.ItineraryDayUpdate) (*models.ItineraryDay, error) {
	if _, err := ownedTrip(ctx, s.repomanager.Trips(s.db), tripID, userID); err != nil {
		return nil, err
	}
	repo := s.repomanager.ItineraryDays(s.db)
	d, err := repo.Get(ctx, id, tripID)
	if err != nil {
		return nil, notFoundAs(err, msgItineraryNotFound)
	}

	upd.Apply(d)
	updated, err := repo.Update(ctx, d)
	if err != nil {
		return nil, notFoundAs(err, msgItineraryNotFound)
	}
	return updated, nil
}

func (s *ItineraryService) Delete(ctx context.Context, userID, tripID, id int64) error {
	if _, err := ownedTrip(ctx, s.repomanager.Trips(s.db), tripID, userID); err != nil {
		return err
	}
	if err := s.repomanager.ItineraryDays(s.db).Delete(ctx, id, tripID); err != nil {
		return notFoundAs(err, msgItineraryNotFound)
	}
	return nil
}
