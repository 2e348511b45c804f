package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/models"
)

// CartStore is the per-user working set of cart lines.
type CartStore interface {
	ListByUser(ctx context.Context, user primitive.ObjectID) ([]models.CartLine, error)
	ClearByUser(ctx context.Context, user primitive.ObjectID) error
}

// ProductStore holds product records with a stock counter. Get returns
// (nil, nil) when the product does not exist.
type ProductStore interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	// ConditionalDecrement subtracts qty from the product's stock only if
	// stock >= qty, and reports whether the decrement happened.
	ConditionalDecrement(ctx context.Context, id primitive.ObjectID, qty int) (bool, error)
	Increment(ctx context.Context, id primitive.ObjectID, qty int) error
}

// AddressStore returns (nil, nil) when the user has no address.
type AddressStore interface {
	Get(ctx context.Context, user primitive.ObjectID) (*models.Address, error)
}

// OrderStore holds immutable order documents. Get/GetForUser return
// (nil, nil) when no order matches.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) (primitive.ObjectID, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	GetForUser(ctx context.Context, id, user primitive.ObjectID) (*models.Order, error)
	// UpdateStatus transitions the order from one status to another with a
	// conditional write matching the expected prior status, and returns the
	// number of documents modified.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.OrderStatus, at time.Time) (int64, error)
}

// ReservationStore holds write-ahead stock-reservation intents.
type ReservationStore interface {
	Insert(ctx context.Context, r *models.Reservation) error
	// RemoveItems drops the given products from an intent once the order
	// covering them has been persisted.
	RemoveItems(ctx context.Context, id string, itemIDs []primitive.ObjectID) error
	Delete(ctx context.Context, id string) error
	ListOlderThan(ctx context.Context, cutoff time.Time) ([]models.Reservation, error)
}

type UserStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// Notifier emails the buyer and the affected sellers after a checkout.
// Failures are logged by the caller, never surfaced to the client.
type Notifier interface {
	SendOrderEmails(ctx context.Context, buyer *models.User, orders []models.Order, grandFinalTotal float64) error
}
