package expenses

import (
	"context"

	"github.com/dmitrijs2005/travelmate/internal/dbx"
	"github.com/dmitrijs2005/travelmate/internal/server/models"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/pgerr"
)

const columns = `id, trip_id, amount, category, date, description, receipt_image, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	query :=
		`INSERT INTO expenses (trip_id, amount, category, date, description, receipt_image)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		e.TripID, e.Amount, string(e.Category), e.Date, e.Description, e.ReceiptImage).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	return e, nil
}

// ListByTrip returns the expenses of a trip, newest date first.
func (r *PostgresRepository) ListByTrip(ctx context.Context, tripID int64) ([]models.Expense, error) {
	query :=
		`SELECT ` + columns + `
		 FROM expenses
		 WHERE trip_id = $1
		 ORDER BY date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	defer rows.Close()

	result := []models.Expense{}
	for rows.Next() {
		e, err := scan(rows)
		if err != nil {
			return nil, pgerr.Translate(err)
		}
		result = append(result, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Translate(err)
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id, tripID int64) (*models.Expense, error) {
	query := `SELECT ` + columns + ` FROM expenses WHERE id = $1 AND trip_id = $2`

	e, err := scan(r.db.QueryRowContext(ctx, query, id, tripID))
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	return e, nil
}

func (r *PostgresRepository) Update(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	query :=
		`UPDATE expenses
		 SET amount = $3, category = $4, date = $5, description = $6, receipt_image = $7
		 WHERE id = $1 AND trip_id = $2`

	res, err := r.db.ExecContext(ctx, query,
		e.ID, e.TripID, e.Amount, string(e.Category), e.Date, e.Description, e.ReceiptImage)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	if err := pgerr.RequireOne(res); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, tripID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1 AND trip_id = $2`, id, tripID)
	if err != nil {
		return pgerr.Translate(err)
	}
	return pgerr.RequireOne(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*models.Expense, error) {
	e := &models.Expense{}
	var category string
	err := s.Scan(&e.ID, &e.TripID, &e.Amount, &category, &e.Date, &e.Description, &e.ReceiptImage, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.Category = models.ExpenseCategory(category)
	return e, nil
}
