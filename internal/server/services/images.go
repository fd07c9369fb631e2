package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/travelmate/internal/common"
	"github.com/dmitrijs2005/travelmate/internal/logging"
	"github.com/dmitrijs2005/travelmate/internal/server/models"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/travelmate/internal/server/storage"
)

// ImageService manages the photos of the caller's trips.
type ImageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       storage.ObjectStore
	logger      logging.Logger
}

func NewImageService(db *sql.DB, m repomanager.RepositoryManager, store storage.ObjectStore, logger logging.Logger) *ImageService {
	return &ImageService{db: db, repomanager: m, store: store, logger: logger.With("module", "image_service")}
}

func (s *ImageService) List(ctx context.Context, userID, tripID int64) ([]models.Image, error) {
	if _, err := ownedTrip(ctx, s.repomanager.Trips(s.db), tripID, userID); err != nil {
		return nil, err
	}
	imgs, err := s.repomanager.Images(s.db).ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if err := resolveImageURLs(ctx, s.store, imgs); err != nil {
		return nil, err
	}
	return imgs, nil
}

// Upload stores the file and records it against the trip. The uploader is
// the caller. A nil file is rejected after the ownership check.
func (s *ImageService) Upload(ctx context.Context, userID, tripID int64, file *Upload, caption *string) (*models.Image, error) {
	if _, err := ownedTrip(ctx, s.repomanager.Trips(s.db), tripID, userID); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, common.BadRequest(msgNoImage)
	}

	key, err := putUpload(ctx, s.store, storage.PrefixImages, file)
	if err != nil {
		return nil, err
	}

	img, err := s.repomanager.Images(s.db).Create(ctx, &models.Image{
		TripID:     tripID,
		UserID:     userID,
		StorageKey: key,
		Caption:    caption,
	})
	if err != nil {
		removeObjects(ctx, s.store, s.logger, key)
		return nil, notFoundAs(err, msgTripNotFound)
	}
	s.logger.Info(ctx, "image uploaded", "image_id", img.ID, "trip_id", tripID)
	return s.withURL(ctx, *img)
}

func (s *ImageService) UpdateCaption(ctx context.Context, userID, tripID, id int64, caption *string) (*models.Image, error) {
	if _, err := ownedTrip(ctx, s.repomanager.Trips(s.db), tripID, userID); err != nil {
		return nil, err
	}
	img, err := s.repomanager.Images(s.db).UpdateCaption(ctx, id, tripID, caption)
	if err != nil {
		return nil, notFoundAs(err, msgImageNotFound)
	}
	return s.withURL(ctx, *img)
}

// Delete removes the image row and then the stored file.
func (s *ImageService) Delete(ctx context.Context, userID, tripID, id int64) error {
	if _, err := ownedTrip(ctx, s.repomanager.Trips(s.db), tripID, userID); err != nil {
		return err
	}
	repo := s.repomanager.Images(s.db)
	img, err := repo.Get(ctx, id, tripID)
	if err != nil {
		return notFoundAs(err, msgImageNotFound)
	}
	if err := repo.Delete(ctx, id, tripID); err != nil {
		return notFoundAs(err, msgImageNotFound)
	}
	removeObjects(ctx, s.store, s.logger, img.StorageKey)
	return nil
}

func (s *ImageService) withURL(ctx context.Context, img models.Image) (*models.Image, error) {
	one := []models.Image{img}
	if err := resolveImageURLs(ctx, s.store, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

func resolveImageURLs(ctx context.Context, store storage.ObjectStore, imgs []models.Image) error {
	for i := range imgs {
		url, err := store.URL(ctx, imgs[i].StorageKey)
		if err != nil {
			return err
		}
		imgs[i].ImageURL = url
	}
	return nil
}
