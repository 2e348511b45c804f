package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	StatusPending          OrderStatus = "pending"
	StatusShipped          OrderStatus = "shipped"
	StatusCompleted        OrderStatus = "completed"
	StatusCancelledByBuyer OrderStatus = "cancelled_by_buyer"
	StatusReturned         OrderStatus = "return"
)

func (s OrderStatus) String() string {
	return string(s)
}

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusCompleted, StatusCancelledByBuyer, StatusReturned:
		return true
	}
	return false
}

// LockedForSeller reports whether the order has reached a buyer-initiated
// terminal state. A seller may not move an order out of either of these.
func (s OrderStatus) LockedForSeller() bool {
	return s == StatusCancelledByBuyer || s == StatusReturned
}

// OrderItem is an immutable snapshot of a cart line taken at checkout.
// It is never re-joined to the live product after creation.
type OrderItem struct {
	ItemID     primitive.ObjectID `bson:"item_id" json:"item_id"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	Price      float64            `bson:"price" json:"price"`
	FinalPrice float64            `bson:"final_price" json:"final_price"`
	Title      string             `bson:"title" json:"title"`
}

// Order is one seller's share of a checkout. A single checkout produces one
// order per distinct seller present in the cart.
type Order struct {
	Id          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	User        primitive.ObjectID `bson:"user" json:"user"`
	Seller      primitive.ObjectID `bson:"seller" json:"seller"`
	Items       []OrderItem        `bson:"items" json:"items"`
	Total       float64            `bson:"total" json:"total"`
	FinalTotal  float64            `bson:"final_total" json:"final_total"`
	Address     AddressSnapshot    `bson:"address" json:"address"`
	Status      OrderStatus        `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
	CancelledAt *time.Time         `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
	ReturnedAt  *time.Time         `bson:"returned_at,omitempty" json:"returned_at,omitempty"`
}
