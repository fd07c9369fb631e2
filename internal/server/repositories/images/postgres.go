package images

import (
	"context"

	"github.com/dmitrijs2005/travelmate/internal/dbx"
	"github.com/dmitrijs2005/travelmate/internal/server/models"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/pgerr"
)

const columns = `id, trip_id, user_id, storage_key, caption, upload_date`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, img *models.Image) (*models.Image, error) {
	query :=
		`INSERT INTO images (trip_id, user_id, storage_key, caption)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, upload_date`

	err := r.db.QueryRowContext(ctx, query, img.TripID, img.UserID, img.StorageKey, img.Caption).
		Scan(&img.ID, &img.UploadDate)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	return img, nil
}

// ListByTrip returns the images of a trip, latest upload first.
func (r *PostgresRepository) ListByTrip(ctx context.Context, tripID int64) ([]models.Image, error) {
	query :=
		`SELECT ` + columns + `
		 FROM images
		 WHERE trip_id = $1
		 ORDER BY upload_date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	defer rows.Close()

	result := []models.Image{}
	for rows.Next() {
		img, err := scan(rows)
		if err != nil {
			return nil, pgerr.Translate(err)
		}
		result = append(result, *img)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Translate(err)
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id, tripID int64) (*models.Image, error) {
	query := `SELECT ` + columns + ` FROM images WHERE id = $1 AND trip_id = $2`

	img, err := scan(r.db.QueryRowContext(ctx, query, id, tripID))
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	return img, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Image, error) {
	query := `SELECT ` + columns + ` FROM images WHERE id = $1`

	img, err := scan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	return img, nil
}

func (r *PostgresRepository) UpdateCaption(ctx context.Context, id, tripID int64, caption *string) (*models.Image, error) {
	query :=
		`UPDATE images SET caption = $3
		 WHERE id = $1 AND trip_id = $2
		 RETURNING ` + columns

	img, err := scan(r.db.QueryRowContext(ctx, query, id, tripID, caption))
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	return img, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, tripID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM images WHERE id = $1 AND trip_id = $2`, id, tripID)
	if err != nil {
		return pgerr.Translate(err)
	}
	return pgerr.RequireOne(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*models.Image, error) {
	img := &models.Image{}
	if err := s.Scan(&img.ID, &img.TripID, &img.UserID, &img.StorageKey, &img.Caption, &img.UploadDate); err != nil {
		return nil, err
	}
	return img, nil
}
