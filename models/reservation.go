package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReservationItem struct {
	ItemID   primitive.ObjectID `bson:"item_id" json:"item_id"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// Reservation is a write-ahead intent record covering the stock decrements
// of one checkout. It is deleted once the orders are persisted; a stale
// reservation means the process died mid-checkout and its stock must be
// given back by the sweeper.
type Reservation struct {
	Id        string             `bson:"_id" json:"id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Items     []ReservationItem  `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
