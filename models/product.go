package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Product struct {
	Id          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Seller      primitive.ObjectID `bson:"seller" json:"seller"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Price       float64            `bson:"price" json:"price" validate:"required,gt=0"`
	Discount    float64            `bson:"discount" json:"discount" validate:"gte=0,lte=100"`
	FinalPrice  float64            `bson:"final_price" json:"final_price"`
	Stock       int                `bson:"stock" json:"stock" validate:"gte=0"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	ImageURL    string             `bson:"image_url" json:"image_url"`
}

// FinalPriceFor applies a percentage discount to a price.
func FinalPriceFor(price, discount float64) float64 {
	return price - (price*discount)/100
}
