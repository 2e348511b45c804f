package stores

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"marketplace-api/configs"
	"marketplace-api/models"
)

type AddressStore struct {
	coll *mongo.Collection
}

func NewAddressStore() *AddressStore {
	return &AddressStore{coll: configs.GetCollection(configs.DB(), "user_addresses")}
}

func (s *AddressStore) Get(ctx context.Context, user primitive.ObjectID) (*models.Address, error) {
	var address models.Address
	err := s.coll.FindOne(ctx, bson.M{"user": user}).Decode(&address)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (s *AddressStore) Insert(ctx context.Context, address *models.Address) (primitive.ObjectID, error) {
	address.Id = primitive.NewObjectID()
	_, err := s.coll.InsertOne(ctx, address)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return address.Id, nil
}

// Update patches the user's address and reports whether one existed.
func (s *AddressStore) Update(ctx context.Context, user primitive.ObjectID, fields bson.M) (bool, error) {
	res, err := s.coll.UpdateOne(ctx, bson.M{"user": user}, bson.M{"$set": fields})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
