package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/travelmate/internal/logging"
	"github.com/dmitrijs2005/travelmate/internal/server/models"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/travelmate/internal/server/storage"
)

// ExpenseService manages the expenses of the caller's trips. Receipts are
// kept in the object store; the row holds the object key and callers get a
// URL in its place.
type ExpenseService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       storage.ObjectStore
	logger      logging.Logger
}

func NewExpenseService(db *sql.DB, m repomanager.RepositoryManager, store storage.ObjectStore, logger logging.Logger) *ExpenseService {
	return &ExpenseService{db: db, repomanager: m, store: store, logger: logger.With("module", "expense_service")}
}

func (s *ExpenseService) List(ctx context.Context, userID, tripID int64) ([]models.Expense, error) {
	if _, err := ownedTrip(ctx, s.repomanager.Trips(s.db), tripID, userID); err != nil {
		return nil, err
	}
	ex, err := s.repomanager.Expenses(s.db).ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if err := resolveReceipts(ctx, s.store, ex); err != nil {
		return nil, err
	}
	return ex, nil
}

func (s *ExpenseService) Get(ctx context.Context, userID, tripID, id int64) (*models.Expense, error) {
	if _, err := ownedTrip(ctx, s.repomanager.Trips(s.db), tripID, userID); err != nil {
		return nil, err
	}
	e, err := s.repomanager.Expenses(s.db).Get(ctx, id, tripID)
	if err != nil {
		return nil, notFoundAs(err, msgExpenseNotFound)
	}
	return s.withReceiptURL(ctx, *e)
}

// Create adds an expense to the trip. receipt may be nil.
func (s *ExpenseService) Create(ctx context.Context, userID, tripID int64, e models.Expense, receipt *Upload) (*models.Expense, error) {
	if _, err := ownedTrip(ctx, s.repomanager.Trips(s.db), tripID, userID); err != nil {
		return nil, err
	}

	e.ID = 0
	e.TripID = tripID
	e.ReceiptImage = nil
	if receipt != nil {
		key, err := putUpload(ctx, s.store, storage.PrefixReceipts, receipt)
		if err != nil {
			return nil, err
		}
		e.ReceiptImage = &key
	}

	created, err := s.repomanager.Expenses(s.db).Create(ctx, &e)
	if err != nil {
		if e.ReceiptImage != nil {
			removeObjects(ctx, s.store, s.logger, *e.ReceiptImage)
		}
		return nil, notFoundAs(err, msgTripNotFound)
	}
	return s.withReceiptURL(ctx, *created)
}

func (s *ExpenseService) Update(ctx context.Context, userID, tripID, id int64, upd models.ExpenseUpdate) (*models.Expense, error) {
	if _, err := ownedTrip(ctx, s.repomanager.Trips(s.db), tripID, userID); err != nil {
		return nil, err
	}
	repo := s.repomanager.Expenses(s.db)
	e, err := repo.Get(ctx, id, tripID)
	if err != nil {
		return nil, notFoundAs(err, msgExpenseNotFound)
	}

	upd.Apply(e)
	updated, err := repo.Update(ctx, e)
	if err != nil {
		return nil, notFoundAs(err, msgExpenseNotFound)
	}
	return s.withReceiptURL(ctx, *updated)
}

func (s *ExpenseService) Delete(ctx context.Context, userID, tripID, id int64) error {
	if _, err := ownedTrip(ctx, s.repomanager.Trips(s.db), tripID, userID); err != nil {
		return err
	}
	repo := s.repomanager.Expenses(s.db)
	e, err := repo.Get(ctx, id, tripID)
	if err != nil {
		return notFoundAs(err, msgExpenseNotFound)
	}
	if err := repo.Delete(ctx, id, tripID); err != nil {
		return notFoundAs(err, msgExpenseNotFound)
	}
	if e.ReceiptImage != nil {
		removeObjects(ctx, s.store, s.logger, *e.ReceiptImage)
	}
	return nil
}

// ByCategory groups the trip's expenses by category in order of first
// appearance (newest date first).
func (s *ExpenseService) ByCategory(ctx context.Context, userID, tripID int64) ([]models.CategoryGroup, error) {
	ex, err := s.List(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	groups := []models.CategoryGroup{}
	index := map[models.ExpenseCategory]int{}
	for _, e := range ex {
		i, ok := index[e.Category]
		if !ok {
			i = len(groups)
			index[e.Category] = i
			groups = append(groups, models.CategoryGroup{Category: e.Category, Expenses: []models.Expense{}})
		}
		groups[i].Total += e.Amount
		groups[i].Count++
		groups[i].Expenses = append(groups[i].Expenses, e)
	}
	return groups, nil
}

func (s *ExpenseService) withReceiptURL(ctx context.Context, e models.Expense) (*models.Expense, error) {
	one := []models.Expense{e}
	if err := resolveReceipts(ctx, s.store, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

// resolveReceipts replaces receipt keys with fetchable URLs in place.
func resolveReceipts(ctx context.Context, store storage.ObjectStore, ex []models.Expense) error {
	for i := range ex {
		if ex[i].ReceiptImage == nil {
			continue
		}
		url, err := store.URL(ctx, *ex[i].ReceiptImage)
		if err != nil {
			return err
		}
		ex[i].ReceiptImage = &url
	}
	return nil
}
