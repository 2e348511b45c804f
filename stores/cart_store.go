package stores

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"marketplace-api/configs"
	"marketplace-api/models"
)

type CartStore struct {
	coll *mongo.Collection
}

func NewCartStore() *CartStore {
	return &CartStore{coll: configs.GetCollection(configs.DB(), "carts")}
}

func (s *CartStore) ListByUser(ctx context.Context, user primitive.ObjectID) ([]models.CartLine, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"user": user})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var lines []models.CartLine
	if err := cursor.All(ctx, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *CartStore) Get(ctx context.Context, user, itemID primitive.ObjectID) (*models.CartLine, error) {
	var line models.CartLine
	err := s.coll.FindOne(ctx, bson.M{"user": user, "item_id": itemID}).Decode(&line)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// Upsert sets the quantity for a (user, product) pair, inserting the line
// with its price snapshots if it does not exist yet. Snapshots are written
// only on insert so a later quantity change never refreshes the price.
func (s *CartStore) Upsert(ctx context.Context, line models.CartLine) error {
	filter := bson.M{"user": line.User, "item_id": line.ItemID}
	update := bson.M{
		"$set": bson.M{"quantity": line.Quantity},
		"$setOnInsert": bson.M{
			"user":        line.User,
			"item_id":     line.ItemID,
			"price":       line.Price,
			"final_price": line.FinalPrice,
		},
	}
	_, err := s.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// SetQuantity updates an existing line and reports whether it matched.
func (s *CartStore) SetQuantity(ctx context.Context, user, itemID primitive.ObjectID, quantity int) (bool, error) {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"user": user, "item_id": itemID},
		bson.M{"$set": bson.M{"quantity": quantity}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// Remove deletes one line and reports whether it existed.
func (s *CartStore) Remove(ctx context.Context, user, itemID primitive.ObjectID) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"user": user, "item_id": itemID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (s *CartStore) ClearByUser(ctx context.Context, user primitive.ObjectID) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{"user": user})
	return err
}
