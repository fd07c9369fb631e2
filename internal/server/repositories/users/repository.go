package users

import (
	"context"

	"github.com/dmitrijs2005/travelmate/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id int64, upd models.ProfileUpdate) (*models.User, error)
}
