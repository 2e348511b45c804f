package services_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/models"
)

type fakeCartStore struct {
	lines    []models.CartLine
	listErr  error
	clearErr error
	cleared  bool
}

func (f *fakeCartStore) ListByUser(_ context.Context, user primitive.ObjectID) ([]models.CartLine, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.CartLine
	for _, l := range f.lines {
		if l.User == user {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeCartStore) ClearByUser(_ context.Context, user primitive.ObjectID) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	var kept []models.CartLine
	for _, l := range f.lines {
		if l.User != user {
			kept = append(kept, l)
		}
	}
	f.lines = kept
	f.cleared = true
	return nil
}

type stockOp struct {
	id  primitive.ObjectID
	qty int
}

type fakeProductStore struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]*models.Product

	// denyDecrement forces the conditional decrement to report a miss for
	// these products even when the in-memory stock would allow it.
	denyDecrement map[primitive.ObjectID]bool
	incrementErr  map[primitive.ObjectID]error

	decrements []stockOp
	increments []stockOp
}

func newFakeProductStore(products ...*models.Product) *fakeProductStore {
	m := map[primitive.ObjectID]*models.Product{}
	for _, p := range products {
		m[p.Id] = p
	}
	return &fakeProductStore{
		products:      m,
		denyDecrement: map[primitive.ObjectID]bool{},
		incrementErr:  map[primitive.ObjectID]error{},
	}
}

func (f *fakeProductStore) Get(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductStore) ConditionalDecrement(_ context.Context, id primitive.ObjectID, qty int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return false, nil
	}
	if f.denyDecrement[id] || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	f.decrements = append(f.decrements, stockOp{id: id, qty: qty})
	return true, nil
}

func (f *fakeProductStore) Increment(_ context.Context, id primitive.ObjectID, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.incrementErr[id]; err != nil {
		return err
	}
	if p, ok := f.products[id]; ok {
		p.Stock += qty
	}
	f.increments = append(f.increments, stockOp{id: id, qty: qty})
	return nil
}

func (f *fakeProductStore) stock(id primitive.ObjectID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[id].Stock
}

type fakeAddressStore struct {
	address *models.Address
	err     error
}

func (f *fakeAddressStore) Get(context.Context, primitive.ObjectID) (*models.Address, error) {
	return f.address, f.err
}

type fakeOrderStore struct {
	orders      map[primitive.ObjectID]*models.Order
	inserted    []*models.Order
	insertErrAt int // fail the nth insert (1-based), 0 = never
	insertCalls int

	updateErr     error
	forceNoUpdate bool
	// vanishAfterUpdate drops the order once a status write succeeds, so
	// the reload that follows comes back empty.
	vanishAfterUpdate bool
	updateRequests    []struct {
		from, to models.OrderStatus
	}
}

func newFakeOrderStore(orders ...*models.Order) *fakeOrderStore {
	m := map[primitive.ObjectID]*models.Order{}
	for _, o := range orders {
		m[o.Id] = o
	}
	return &fakeOrderStore{orders: m}
}

func (f *fakeOrderStore) Insert(_ context.Context, order *models.Order) (primitive.ObjectID, error) {
	f.insertCalls++
	if f.insertErrAt > 0 && f.insertCalls == f.insertErrAt {
		return primitive.NilObjectID, errors.New("insert failed")
	}
	id := primitive.NewObjectID()
	cp := *order
	cp.Id = id
	f.orders[id] = &cp
	f.inserted = append(f.inserted, &cp)
	return id, nil
}

func (f *fakeOrderStore) Get(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderStore) GetForUser(_ context.Context, id, user primitive.ObjectID) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok || o.User != user {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderStore) UpdateStatus(_ context.Context, id primitive.ObjectID, from, to models.OrderStatus, at time.Time) (int64, error) {
	f.updateRequests = append(f.updateRequests, struct {
		from, to models.OrderStatus
	}{from, to})
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	if f.forceNoUpdate {
		return 0, nil
	}
	o, ok := f.orders[id]
	if !ok || o.Status != from {
		return 0, nil
	}
	o.Status = to
	o.UpdatedAt = &at
	switch to {
	case models.StatusCancelledByBuyer:
		o.CancelledAt = &at
	case models.StatusReturned:
		o.ReturnedAt = &at
	}
	if f.vanishAfterUpdate {
		delete(f.orders, id)
	}
	return 1, nil
}

type fakeReservationStore struct {
	intents map[string]*models.Reservation
	deleted []string
}

func newFakeReservationStore() *fakeReservationStore {
	return &fakeReservationStore{intents: map[string]*models.Reservation{}}
}

func (f *fakeReservationStore) Insert(_ context.Context, r *models.Reservation) error {
	cp := *r
	f.intents[r.Id] = &cp
	return nil
}

func (f *fakeReservationStore) RemoveItems(_ context.Context, id string, itemIDs []primitive.ObjectID) error {
	r, ok := f.intents[id]
	if !ok {
		return nil
	}
	drop := map[primitive.ObjectID]bool{}
	for _, itemID := range itemIDs {
		drop[itemID] = true
	}
	var kept []models.ReservationItem
	for _, it := range r.Items {
		if !drop[it.ItemID] {
			kept = append(kept, it)
		}
	}
	r.Items = kept
	return nil
}

func (f *fakeReservationStore) Delete(_ context.Context, id string) error {
	delete(f.intents, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeReservationStore) ListOlderThan(_ context.Context, cutoff time.Time) ([]models.Reservation, error) {
	var stale []models.Reservation
	for _, r := range f.intents {
		if r.CreatedAt.Before(cutoff) {
			stale = append(stale, *r)
		}
	}
	return stale, nil
}

type fakeUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	m := map[primitive.ObjectID]*models.User{}
	for _, u := range users {
		m[u.Id] = u
	}
	return &fakeUserStore{users: m}
}

func (f *fakeUserStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

type fakeNotifier struct {
	calls      int
	err        error
	lastOrders []models.Order
	lastGrand  float64
	lastBuyer  *models.User
}

func (f *fakeNotifier) SendOrderEmails(_ context.Context, buyer *models.User, orders []models.Order, grand float64) error {
	f.calls++
	f.lastBuyer = buyer
	f.lastOrders = orders
	f.lastGrand = grand
	return f.err
}
