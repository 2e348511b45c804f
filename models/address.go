package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Address is a buyer's delivery address. One per user.
type Address struct {
	Id       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	User     primitive.ObjectID `bson:"user" json:"user"`
	MobileNo string             `bson:"mobile_no" json:"mobile_no"`
	Address  string             `bson:"address" json:"address"`
}

// AddressSnapshot is the delivery information frozen into an order.
type AddressSnapshot struct {
	MobileNo string `bson:"mobile_no" json:"mobile_no"`
	Address  string `bson:"address" json:"address"`
}
