// Package repomanager hands out repository implementations bound to a
// database handle, so services can run the same code against *sql.DB and
// inside a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/travelmate/internal/dbx"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/comments"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/expenses"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/images"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/itinerary"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/trips"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	WithTx(ctx context.Context, db *sql.DB, fn dbx.TxFunc) error

	Users(db dbx.DBTX) users.Repository
	Trips(db dbx.DBTX) trips.Repository
	Expenses(db dbx.DBTX) expenses.Repository
	ItineraryDays(db dbx.DBTX) itinerary.Repository
	Images(db dbx.DBTX) images.Repository
	Comments(db dbx.DBTX) comments.Repository
}
