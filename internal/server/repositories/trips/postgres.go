package trips

import (
	"context"

	"github.com/dmitrijs2005/travelmate/internal/dbx"
	"github.com/dmitrijs2005/travelmate/internal/server/models"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/pgerr"
)

const columns = `id, user_id, name, destination, start_date, end_date, budget, description, status, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, t *models.Trip) (*models.Trip, error) {
	query :=
		`INSERT INTO trips (user_id, name, destination, start_date, end_date, budget, description, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		t.UserID, t.Name, t.Destination, t.StartDate, t.EndDate, t.Budget, t.Description, string(t.Status)).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	return t, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]models.Trip, error) {
	query :=
		`SELECT ` + columns + `
		 FROM trips
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	defer rows.Close()

	result := []models.Trip{}
	for rows.Next() {
		t, err := scan(rows)
		if err != nil {
			return nil, pgerr.Translate(err)
		}
		result = append(result, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Translate(err)
	}
	return result, nil
}

func (r *PostgresRepository) GetForUser(ctx context.Context, id, userID int64) (*models.Trip, error) {
	query := `SELECT ` + columns + ` FROM trips WHERE id = $1 AND user_id = $2`

	t, err := scan(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	return t, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Trip, error) {
	query := `SELECT ` + columns + ` FROM trips WHERE id = $1`

	t, err := scan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	return t, nil
}

func (r *PostgresRepository) Update(ctx context.Context, t *models.Trip) (*models.Trip, error) {
	query :=
		`UPDATE trips
		 SET name = $3, destination = $4, start_date = $5, end_date = $6,
		     budget = $7, description = $8, status = $9, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		t.ID, t.UserID, t.Name, t.Destination, t.StartDate, t.EndDate, t.Budget, t.Description, string(t.Status)).
		Scan(&t.UpdatedAt)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	return t, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return pgerr.Translate(err)
	}
	return pgerr.RequireOne(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*models.Trip, error) {
	t := &models.Trip{}
	var status string
	err := s.Scan(&t.ID, &t.UserID, &t.Name, &t.Destination, &t.StartDate, &t.EndDate,
		&t.Budget, &t.Description, &status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Status = models.TripStatus(status)
	return t, nil
}
