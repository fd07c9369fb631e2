package repomanager

import (
	"cmp"
	"context"
	"database/sql"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/travelmate/internal/common"
	"github.com/dmitrijs2005/travelmate/internal/dbx"
	"github.com/dmitrijs2005/travelmate/internal/server/models"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/comments"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/expenses"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/images"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/itinerary"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/trips"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/users"
)

// InMemoryRepositoryManager keeps all rows in process memory. It mirrors
// the constraints of the SQL schema that the services rely on: unique
// emails, foreign keys and cascading deletes. The db handles passed to the
// factories are ignored.
type InMemoryRepositoryManager struct {
	txMu sync.Mutex
	s    *memStore
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{s: &memStore{
		now:      func() time.Time { return time.Now().UTC() },
		users:    map[int64]models.User{},
		trips:    map[int64]models.Trip{},
		expenses: map[int64]models.Expense{},
		days:     map[int64]models.ItineraryDay{},
		images:   map[int64]models.Image{},
		comments: map[int64]models.Comment{},
	}}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

// WithTx serializes units of work; there is no rollback.
func (m *InMemoryRepositoryManager) WithTx(ctx context.Context, _ *sql.DB, fn dbx.TxFunc) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, nil)
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return memUsers{m.s} }
func (m *InMemoryRepositoryManager) Trips(dbx.DBTX) trips.Repository { return memTrips{m.s} }
func (m *InMemoryRepositoryManager) Expenses(dbx.DBTX) expenses.Repository { return memExpenses{m.s} }
func (m *InMemoryRepositoryManager) ItineraryDays(dbx.DBTX) itinerary.Repository { return memDays{m.s} }
func (m *InMemoryRepositoryManager) Images(dbx.DBTX) images.Repository { return memImages{m.s} }
func (m *InMemoryRepositoryManager) Comments(dbx.DBTX) comments.Repository { return memComments{m.s} }

type memStore struct {
	mu     sync.RWMutex
	now    func() time.Time
	lastID int64

	users    map[int64]models.User
	trips    map[int64]models.Trip
	expenses map[int64]models.Expense
	days     map[int64]models.ItineraryDay
	images   map[int64]models.Image
	comments map[int64]models.Comment
}

// nextID must be called with mu held.
func (s *memStore) nextID() int64 {
	s.lastID++
	return s.lastID
}

// deleteTripLocked removes a trip and everything that references it.
func (s *memStore) deleteTripLocked(id int64) {
	delete(s.trips, id)
	for k, v := range s.expenses {
		if v.TripID == id {
			delete(s.expenses, k)
		}
	}
	for k, v := range s.days {
		if v.TripID == id {
			delete(s.days, k)
		}
	}
	for k, v := range s.images {
		if v.TripID == id {
			delete(s.images, k)
		}
	}
	for k, v := range s.comments {
		if v.TripID == id {
			delete(s.comments, k)
		}
	}
}

func newestFirst(a, b time.Time, ida, idb int64) int {
	if c := b.Compare(a); c != 0 {
		return c
	}
	return cmp.Compare(idb, ida)
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.emailTakenLocked(u.Email, 0) {
		return nil, common.ErrorAlreadyExists
	}
	u.ID = r.s.nextID()
	u.CreatedAt = r.s.now()
	u.UpdatedAt = u.CreatedAt
	r.s.users[u.ID] = *u
	return u, nil
}

func (r memUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memUsers) Update(_ context.Context, id int64, upd models.ProfileUpdate) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if upd.Email != nil && r.emailTakenLocked(*upd.Email, id) {
		return nil, common.ErrorAlreadyExists
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.FullName != nil {
		u.FullName = upd.FullName
	}
	u.UpdatedAt = r.s.now()
	r.s.users[id] = u
	return &u, nil
}

func (r memUsers) emailTakenLocked(email string, except int64) bool {
	for _, u := range r.s.users {
		if u.ID != except && u.Email == email {
			return true
		}
	}
	return false
}

type memTrips struct{ s *memStore }

func (r memTrips) Create(_ context.Context, t *models.Trip) (*models.Trip, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[t.UserID]; !ok {
		return nil, common.ErrorInvalidReference
	}
	t.ID = r.s.nextID()
	t.CreatedAt = r.s.now()
	t.UpdatedAt = t.CreatedAt
	r.s.trips[t.ID] = *t
	return t, nil
}

func (r memTrips) ListByUser(_ context.Context, userID int64) ([]models.Trip, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := []models.Trip{}
	for _, t := range r.s.trips {
		if t.UserID == userID {
			result = append(result, t)
		}
	}
	slices.SortFunc(result, func(a, b models.Trip) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return result, nil
}

func (r memTrips) GetForUser(_ context.Context, id, userID int64) (*models.Trip, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.trips[id]
	if !ok || t.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}

func (r memTrips) GetByID(_ context.Context, id int64) (*models.Trip, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.trips[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}

func (r memTrips) Update(_ context.Context, t *models.Trip) (*models.Trip, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.trips[t.ID]
	if !ok || cur.UserID != t.UserID {
		return nil, common.ErrorNotFound
	}
	t.CreatedAt = cur.CreatedAt
	t.UpdatedAt = r.s.now()
	r.s.trips[t.ID] = *t
	return t, nil
}

func (r memTrips) Delete(_ context.Context, id, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.trips[id]
	if !ok || t.UserID != userID {
		return common.ErrorNotFound
	}
	r.s.deleteTripLocked(id)
	return nil
}

type memExpenses struct{ s *memStore }

func (r memExpenses) Create(_ context.Context, e *models.Expense) (*models.Expense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.trips[e.TripID]; !ok {
		return nil, common.ErrorInvalidReference
	}
	e.ID = r.s.nextID()
	e.CreatedAt = r.s.now()
	r.s.expenses[e.ID] = *e
	return e, nil
}

func (r memExpenses) ListByTrip(_ context.Context, tripID int64) ([]models.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := []models.Expense{}
	for _, e := range r.s.expenses {
		if e.TripID == tripID {
			result = append(result, e)
		}
	}
	slices.SortFunc(result, func(a, b models.Expense) int {
		return newestFirst(a.Date.Time, b.Date.Time, a.ID, b.ID)
	})
	return result, nil
}

func (r memExpenses) Get(_ context.Context, id, tripID int64) (*models.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.expenses[id]
	if !ok || e.TripID != tripID {
		return nil, common.ErrorNotFound
	}
	return &e, nil
}

func (r memExpenses) Update(_ context.Context, e *models.Expense) (*models.Expense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.expenses[e.ID]
	if !ok || cur.TripID != e.TripID {
		return nil, common.ErrorNotFound
	}
	e.CreatedAt = cur.CreatedAt
	r.s.expenses[e.ID] = *e
	return e, nil
}

func (r memExpenses) Delete(_ context.Context, id, tripID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.expenses[id]
	if !ok || e.TripID != tripID {
		return common.ErrorNotFound
	}
	delete(r.s.expenses, id)
	return nil
}

type memDays struct{ s *memStore }

func (r memDays) Create(_ context.Context, d *models.ItineraryDay) (*models.ItineraryDay, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.trips[d.TripID]; !ok {
		return nil, common.ErrorInvalidReference
	}
	d.ID = r.s.nextID()
	d.CreatedAt = r.s.now()
	r.s.days[d.ID] = *d
	return d, nil
}

func (r memDays) ListByTrip(_ context.Context, tripID int64) ([]models.ItineraryDay, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := []models.ItineraryDay{}
	for _, d := range r.s.days {
		if d.TripID == tripID {
			result = append(result, d)
		}
	}
	slices.SortFunc(result, func(a, b models.ItineraryDay) int {
		if c := cmp.Compare(a.DayNumber, b.DayNumber); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return result, nil
}

func (r memDays) Get(_ context.Context, id, tripID int64) (*models.ItineraryDay, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	d, ok := r.s.days[id]
	if !ok || d.TripID != tripID {
		return nil, common.ErrorNotFound
	}
	return &d, nil
}

func (r memDays) Update(_ context.Context, d *models.ItineraryDay) (*models.ItineraryDay, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.days[d.ID]
	if !ok || cur.TripID != d.TripID {
		return nil, common.ErrorNotFound
	}
	d.CreatedAt = cur.CreatedAt
	r.s.days[d.ID] = *d
	return d, nil
}

func (r memDays) Delete(_ context.Context, id, tripID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.days[id]
	if !ok || d.TripID != tripID {
		return common.ErrorNotFound
	}
	delete(r.s.days, id)
	return nil
}

type memImages struct{ s *memStore }

func (r memImages) Create(_ context.Context, img *models.Image) (*models.Image, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.trips[img.TripID]; !ok {
		return nil, common.ErrorInvalidReference
	}
	img.ID = r.s.nextID()
	img.UploadDate = r.s.now()
	r.s.images[img.ID] = *img
	return img, nil
}

func (r memImages) ListByTrip(_ context.Context, tripID int64) ([]models.Image, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := []models.Image{}
	for _, img := range r.s.images {
		if img.TripID == tripID {
			result = append(result, img)
		}
	}
	slices.SortFunc(result, func(a, b models.Image) int {
		return newestFirst(a.UploadDate, b.UploadDate, a.ID, b.ID)
	})
	return result, nil
}

func (r memImages) Get(_ context.Context, id, tripID int64) (*models.Image, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	img, ok := r.s.images[id]
	if !ok || img.TripID != tripID {
		return nil, common.ErrorNotFound
	}
	return &img, nil
}

func (r memImages) GetByID(_ context.Context, id int64) (*models.Image, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	img, ok := r.s.images[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &img, nil
}

func (r memImages) UpdateCaption(_ context.Context, id, tripID int64, caption *string) (*models.Image, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	img, ok := r.s.images[id]
	if !ok || img.TripID != tripID {
		return nil, common.ErrorNotFound
	}
	img.Caption = caption
	r.s.images[id] = img
	return &img, nil
}

func (r memImages) Delete(_ context.Context, id, tripID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	img, ok := r.s.images[id]
	if !ok || img.TripID != tripID {
		return common.ErrorNotFound
	}
	delete(r.s.images, id)
	for k, c := range r.s.comments {
		if c.ImageID != nil && *c.ImageID == id {
			delete(r.s.comments, k)
		}
	}
	return nil
}

type memComments struct{ s *memStore }

func (r memComments) Create(_ context.Context, c *models.Comment) (*models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.trips[c.TripID]; !ok {
		return nil, common.ErrorInvalidReference
	}
	if _, ok := r.s.users[c.UserID]; !ok {
		return nil, common.ErrorInvalidReference
	}
	if c.ImageID != nil {
		if _, ok := r.s.images[*c.ImageID]; !ok {
			return nil, common.ErrorInvalidReference
		}
	}
	c.ID = r.s.nextID()
	c.CreatedAt = r.s.now()
	c.UpdatedAt = c.CreatedAt
	c.User = nil
	r.s.comments[c.ID] = *c
	return r.withAuthorLocked(*c), nil
}

func (r memComments) ListByTrip(_ context.Context, tripID int64) ([]models.Comment, error) {
	return r.list(func(c models.Comment) bool { return c.TripID == tripID && c.ImageID == nil })
}

func (r memComments) ListByImage(_ context.Context, imageID int64) ([]models.Comment, error) {
	return r.list(func(c models.Comment) bool { return c.ImageID != nil && *c.ImageID == imageID })
}

func (r memComments) GetByID(_ context.Context, id int64) (*models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.comments[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.withAuthorLocked(c), nil
}

func (r memComments) UpdateText(_ context.Context, id int64, text string) (*models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.comments[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c.CommentText = text
	c.UpdatedAt = r.s.now()
	r.s.comments[id] = c
	return r.withAuthorLocked(c), nil
}

func (r memComments) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.comments[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.comments, id)
	return nil
}

func (r memComments) list(match func(models.Comment) bool) ([]models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := []models.Comment{}
	for _, c := range r.s.comments {
		if match(c) {
			result = append(result, *r.withAuthorLocked(c))
		}
	}
	slices.SortFunc(result, func(a, b models.Comment) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return result, nil
}

func (r memComments) withAuthorLocked(c models.Comment) *models.Comment {
	if u, ok := r.s.users[c.UserID]; ok {
		c.User = &models.CommentAuthor{ID: u.ID, Username: u.Username, ProfileImage: u.ProfileImage}
	}
	return &c
}
