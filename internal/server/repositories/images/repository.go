package images

import (
	"context"

	"github.com/dmitrijs2005/travelmate/internal/server/models"
)

// Repository persists image metadata. The image bytes live in the object
// store under StorageKey.
type Repository interface {
	Create(ctx context.Context, img *models.Image) (*models.Image, error)
	ListByTrip(ctx context.Context, tripID int64) ([]models.Image, error)
	Get(ctx context.Context, id, tripID int64) (*models.Image, error)
	GetByID(ctx context.Context, id int64) (*models.Image, error)
	UpdateCaption(ctx context.Context, id, tripID int64, caption *string) (*models.Image, error)
	Delete(ctx context.Context, id, tripID int64) error
}
