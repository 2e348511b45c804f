package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CartLine is one product held in a buyer's cart. Price and FinalPrice are
// snapshots taken when the item was added, not the product's live price.
type CartLine struct {
	Id         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	User       primitive.ObjectID `bson:"user" json:"user"`
	ItemID     primitive.ObjectID `bson:"item_id" json:"item_id"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	Price      float64            `bson:"price" json:"price"`
	FinalPrice float64            `bson:"final_price" json:"final_price"`
}
