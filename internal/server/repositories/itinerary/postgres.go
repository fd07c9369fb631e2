package itinerary

import (
	"context"

	"github.com/dmitrijs2005/travelmate/internal/dbx"
	"github.com/dmitrijs2005/travelmate/internal/server/models"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/pgerr"
)

const columns = `id, trip_id, day_number, date, title, description, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, d *models.ItineraryDay) (*models.ItineraryDay, error) {
	query :=
		`INSERT INTO itinerary_days (trip_id, day_number, date, title, description)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, d.TripID, d.DayNumber, d.Date, d.Title, d.Description).
		Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	return d, nil
}

// ListByTrip returns the days of a trip in day order.
func (r *PostgresRepository) ListByTrip(ctx context.Context, tripID int64) ([]models.ItineraryDay, error) {
	query :=
		`SELECT ` + columns + `
		 FROM itinerary_days
		 WHERE trip_id = $1
		 ORDER BY day_number ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	defer rows.Close()

	result := []models.ItineraryDay{}
	for rows.Next() {
		d, err := scan(rows)
		if err != nil {
			return nil, pgerr.Translate(err)
		}
		result = append(result, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Translate(err)
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id, tripID int64) (*models.ItineraryDay, error) {
	query := `SELECT ` + columns + ` FROM itinerary_days WHERE id = $1 AND trip_id = $2`

	d, err := scan(r.db.QueryRowContext(ctx, query, id, tripID))
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	return d, nil
}

func (r *PostgresRepository) Update(ctx context.Context, d *models.ItineraryDay) (*models.ItineraryDay, error) {
	query :=
		`UPDATE itinerary_days
		 SET day_number = $3, date = $4, title = $5, description = $6
		 WHERE id = $1 AND trip_id = $2`

	res, err := r.db.ExecContext(ctx, query, d.ID, d.TripID, d.DayNumber, d.Date, d.Title, d.Description)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	if err := pgerr.RequireOne(res); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, tripID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM itinerary_days WHERE id = $1 AND trip_id = $2`, id, tripID)
	if err != nil {
		return pgerr.Translate(err)
	}
	return pgerr.RequireOne(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*models.ItineraryDay, error) {
	d := &models.ItineraryDay{}
	if err := s.Scan(&d.ID, &d.TripID, &d.DayNumber, &d.Date, &d.Title, &d.Description, &d.CreatedAt); err != nil {
		return nil, err
	}
	return d, nil
}
