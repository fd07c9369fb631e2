package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/travelmate/internal/common"
	"github.com/dmitrijs2005/travelmate/internal/server/models"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/repomanager"
)

const (
	msgEditOwnComment   = "You can only edit your own comments"
	msgDeleteOwnComment = "You can only delete your own comments"
)

// CommentService manages comments on trips and images. Reading is public;
// any signed-in user may comment; only the author may edit or delete.
type CommentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCommentService(db *sql.DB, m repomanager.RepositoryManager) *CommentService {
	return &CommentService{db: db, repomanager: m}
}

// ListForTrip returns comments on the trip itself, newest first. An unknown
// trip yields an empty list.
func (s *CommentService) ListForTrip(ctx context.Context, tripID int64) ([]models.Comment, error) {
	return s.repomanager.Comments(s.db).ListByTrip(ctx, tripID)
}

func (s *CommentService) ListForImage(ctx context.Context, imageID int64) ([]models.Comment, error) {
	return s.repomanager.Comments(s.db).ListByImage(ctx, imageID)
}

func (s *CommentService) AddToTrip(ctx context.Context, userID, tripID int64, text string) (*models.Comment, error) {
	if _, err := s.repomanager.Trips(s.db).GetByID(ctx, tripID); err != nil {
		return nil, notFoundAs(err, msgTripNotFound)
	}
	c, err := s.repomanager.Comments(s.db).Create(ctx, &models.Comment{
		TripID:      tripID,
		UserID:      userID,
		CommentText: text,
	})
	if err != nil {
		return nil, mapStoreError(err)
	}
	return c, nil
}

// AddToImage comments on an image; the comment belongs to the image's trip.
func (s *CommentService) AddToImage(ctx context.Context, userID, imageID int64, text string) (*models.Comment, error) {
	img, err := s.repomanager.Images(s.db).GetByID(ctx, imageID)
	if err != nil {
		return nil, notFoundAs(err, msgImageNotFound)
	}
	c, err := s.repomanager.Comments(s.db).Create(ctx, &models.Comment{
		TripID:      img.TripID,
		UserID:      userID,
		ImageID:     &img.ID,
		CommentText: text,
	})
	if err != nil {
		return nil, mapStoreError(err)
	}
	return c, nil
}

func (s *CommentService) Update(ctx context.Context, userID, id int64, text string) (*models.Comment, error) {
	repo := s.repomanager.Comments(s.db)
	if err := s.checkAuthor(ctx, id, userID, msgEditOwnComment); err != nil {
		return nil, err
	}
	c, err := repo.UpdateText(ctx, id, text)
	if err != nil {
		return nil, notFoundAs(err, msgCommentNotFound)
	}
	return c, nil
}

func (s *CommentService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.checkAuthor(ctx, id, userID, msgDeleteOwnComment); err != nil {
		return err
	}
	if err := s.repomanager.Comments(s.db).Delete(ctx, id); err != nil {
		return notFoundAs(err, msgCommentNotFound)
	}
	return nil
}

func (s *CommentService) checkAuthor(ctx context.Context, id, userID int64, denied string) error {
	c, err := s.repomanager.Comments(s.db).GetByID(ctx, id)
	if err != nil {
		return notFoundAs(err, msgCommentNotFound)
	}
	if c.UserID != userID {
		return common.Forbidden(denied)
	}
	return nil
}
