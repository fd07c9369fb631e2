package itinerary

import (
	"context"

	"github.com/dmitrijs2005/travelmate/internal/server/models"
)

// Repository persists itinerary days, scoped to a trip.
type Repository interface {
	Create(ctx context.Context, d *models.ItineraryDay) (*models.ItineraryDay, error)
	ListByTrip(ctx context.Context, tripID int64) ([]models.ItineraryDay, error)
	Get(ctx context.Context, id, tripID int64) (*models.ItineraryDay, error)
	Update(ctx context.Context, d *models.ItineraryDay) (*models.ItineraryDay, error)
	Delete(ctx context.Context, id, tripID int64) error
}
