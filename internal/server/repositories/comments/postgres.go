package comments

import (
	"context"

	"github.com/dmitrijs2005/travelmate/internal/dbx"
	"github.com/dmitrijs2005/travelmate/internal/server/models"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/pgerr"
)

const selectWithAuthor = `
	SELECT c.id, c.trip_id, c.user_id, c.image_id, c.comment_text, c.created_at, c.updated_at,
	       u.id, u.username, u.profile_image
	FROM comments c
	JOIN users u ON u.id = c.user_id`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	query :=
		`INSERT INTO comments (trip_id, user_id, image_id, comment_text)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`

	var id int64
	if err := r.db.QueryRowContext(ctx, query, c.TripID, c.UserID, c.ImageID, c.CommentText).Scan(&id); err != nil {
		return nil, pgerr.Translate(err)
	}
	return r.GetByID(ctx, id)
}

// ListByTrip returns comments on the trip itself, not on its images,
// newest first.
func (r *PostgresRepository) ListByTrip(ctx context.Context, tripID int64) ([]models.Comment, error) {
	query := selectWithAuthor + `
	WHERE c.trip_id = $1 AND c.image_id IS NULL
	ORDER BY c.created_at DESC, c.id DESC`

	return r.list(ctx, query, tripID)
}

func (r *PostgresRepository) ListByImage(ctx context.Context, imageID int64) ([]models.Comment, error) {
	query := selectWithAuthor + `
	WHERE c.image_id = $1
	ORDER BY c.created_at DESC, c.id DESC`

	return r.list(ctx, query, imageID)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	c, err := scan(r.db.QueryRowContext(ctx, selectWithAuthor+`
	WHERE c.id = $1`, id))
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	return c, nil
}

func (r *PostgresRepository) UpdateText(ctx context.Context, id int64, text string) (*models.Comment, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE comments SET comment_text = $2, updated_at = now() WHERE id = $1`, id, text)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	if err := pgerr.RequireOne(res); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return pgerr.Translate(err)
	}
	return pgerr.RequireOne(res)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	defer rows.Close()

	result := []models.Comment{}
	for rows.Next() {
		c, err := scan(rows)
		if err != nil {
			return nil, pgerr.Translate(err)
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Translate(err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*models.Comment, error) {
	c := &models.Comment{User: &models.CommentAuthor{}}
	err := s.Scan(&c.ID, &c.TripID, &c.UserID, &c.ImageID, &c.CommentText, &c.CreatedAt, &c.UpdatedAt,
		&c.User.ID, &c.User.Username, &c.User.ProfileImage)
	if err != nil {
		return nil, err
	}
	return c, nil
}
