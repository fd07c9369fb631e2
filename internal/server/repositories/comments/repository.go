package comments

import (
	"context"

	"github.com/dmitrijs2005/travelmate/internal/server/models"
)

// Repository persists comments. Listing and lookups return the comment with
// its author's public profile attached.
type Repository interface {
	Create(ctx context.Context, c *models.Comment) (*models.Comment, error)
	ListByTrip(ctx context.Context, tripID int64) ([]models.Comment, error)
	ListByImage(ctx context.Context, imageID int64) ([]models.Comment, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	UpdateText(ctx context.Context, id int64, text string) (*models.Comment, error)
	Delete(ctx context.Context, id int64) error
}
