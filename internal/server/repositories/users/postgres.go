package users

import (
	"context"

	"github.com/dmitrijs2005/travelmate/internal/dbx"
	"github.com/dmitrijs2005/travelmate/internal/server/models"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/pgerr"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (username, email, password_hash, full_name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.FullName).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, pgerr.Translate(err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query :=
		`SELECT id, username, email, password_hash, full_name, profile_image, created_at, updated_at
		 FROM users
		 WHERE id = $1`

	return r.scanOne(ctx, query, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, username, email, password_hash, full_name, profile_image, created_at, updated_at
		 FROM users
		 WHERE email = $1`

	return r.scanOne(ctx, query, email)
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, upd models.ProfileUpdate) (*models.User, error) {
	query :=
		`UPDATE users
		 SET username = COALESCE($2, username),
		     email = COALESCE($3, email),
		     full_name = COALESCE($4, full_name),
		     updated_at = now()
		 WHERE id = $1
		 RETURNING id, username, email, password_hash, full_name, profile_image, created_at, updated_at`

	return r.scanOne(ctx, query, id, upd.Username, upd.Email, upd.FullName)
}

func (r *PostgresRepository) scanOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	u := &models.User{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &u.ProfileImage, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	return u, nil
}
