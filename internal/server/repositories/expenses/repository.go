package expenses

import (
	"context"

	"github.com/dmitrijs2005/travelmate/internal/server/models"
)

// Repository persists expenses. Lookups are scoped to a trip; ownership of
// the trip is checked by the caller.
type Repository interface {
	Create(ctx context.Context, e *models.Expense) (*models.Expense, error)
	ListByTrip(ctx context.Context, tripID int64) ([]models.Expense, error)
	Get(ctx context.Context, id, tripID int64) (*models.Expense, error)
	Update(ctx context.Context, e *models.Expense) (*models.Expense, error)
	Delete(ctx context.Context, id, tripID int64) error
}
