package stores

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"marketplace-api/configs"
	"marketplace-api/models"
)

type OrderStore struct {
	coll *mongo.Collection
}

func NewOrderStore() *OrderStore {
	return &OrderStore{coll: configs.GetCollection(configs.DB(), "orders")}
}

func (s *OrderStore) Insert(ctx context.Context, order *models.Order) (primitive.ObjectID, error) {
	order.Id = primitive.NewObjectID()
	_, err := s.coll.InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return order.Id, nil
}

func (s *OrderStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *OrderStore) GetForUser(ctx context.Context, id, user primitive.ObjectID) (*models.Order, error) {
	return s.findOne(ctx, bson.M{"_id": id, "user": user})
}

func (s *OrderStore) findOne(ctx context.Context, filter bson.M) (*models.Order, error) {
	var order models.Order
	err := s.coll.FindOne(ctx, filter).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderStore) ListByUser(ctx context.Context, user primitive.ObjectID) ([]models.Order, error) {
	return s.list(ctx, bson.M{"user": user})
}

func (s *OrderStore) ListBySeller(ctx context.Context, seller primitive.ObjectID) ([]models.Order, error) {
	return s.list(ctx, bson.M{"seller": seller})
}

func (s *OrderStore) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.list(ctx, bson.M{})
}

func (s *OrderStore) list(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus writes the new status only if the order is still in the
// expected prior status, so concurrent transitions lose instead of
// clobbering each other. Buyer-terminal states also get their timestamp.
func (s *OrderStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, from, to models.OrderStatus, at time.Time) (int64, error) {
	set := bson.M{"status": to, "updated_at": at}
	switch to {
	case models.StatusCancelledByBuyer:
		set["cancelled_at"] = at
	case models.StatusReturned:
		set["returned_at"] = at
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": set},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
