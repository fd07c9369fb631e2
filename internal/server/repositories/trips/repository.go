package trips

import (
	"context"

	"github.com/dmitrijs2005/travelmate/internal/server/models"
)

// Repository persists trips. Methods taking a userID match only trips owned
// by that user and report common.ErrorNotFound otherwise.
type Repository interface {
	Create(ctx context.Context, trip *models.Trip) (*models.Trip, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Trip, error)
	GetForUser(ctx context.Context, id, userID int64) (*models.Trip, error)
	GetByID(ctx context.Context, id int64) (*models.Trip, error)
	Update(ctx context.Context, trip *models.Trip) (*models.Trip, error)
	Delete(ctx context.Context, id, userID int64) error
}
