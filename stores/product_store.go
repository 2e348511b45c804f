package stores

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"marketplace-api/configs"
	"marketplace-api/models"
)

type ProductStore struct {
	coll *mongo.Collection
}

func NewProductStore() *ProductStore {
	return &ProductStore{coll: configs.GetCollection(configs.DB(), "products")}
}

func (s *ProductStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductStore) Insert(ctx context.Context, product *models.Product) (primitive.ObjectID, error) {
	product.Id = primitive.NewObjectID()
	_, err := s.coll.InsertOne(ctx, product)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return product.Id, nil
}

func (s *ProductStore) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return err
}

func (s *ProductStore) ListBySeller(ctx context.Context, seller primitive.ObjectID) ([]models.Product, error) {
	return s.list(ctx, bson.M{"seller": seller})
}

func (s *ProductStore) ListAll(ctx context.Context) ([]models.Product, error) {
	return s.list(ctx, bson.M{})
}

func (s *ProductStore) list(ctx context.Context, filter bson.M) ([]models.Product, error) {
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ConditionalDecrement is the single concurrency-safe stock operation: the
// filter guards stock >= qty so the counter can never go negative, and the
// decrement only counts when the guard matched.
func (s *ProductStore) ConditionalDecrement(ctx context.Context, id primitive.ObjectID, qty int) (bool, error) {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (s *ProductStore) Increment(ctx context.Context, id primitive.ObjectID, qty int) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"stock": qty}},
	)
	return err
}
