package stores

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"marketplace-api/configs"
	"marketplace-api/models"
)

type ReservationStore struct {
	coll *mongo.Collection
}

func NewReservationStore() *ReservationStore {
	return &ReservationStore{coll: configs.GetCollection(configs.DB(), "reservations")}
}

func (s *ReservationStore) Insert(ctx context.Context, r *models.Reservation) error {
	_, err := s.coll.InsertOne(ctx, r)
	return err
}

func (s *ReservationStore) RemoveItems(ctx context.Context, id string, itemIDs []primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$pull": bson.M{"items": bson.M{"item_id": bson.M{"$in": itemIDs}}}},
	)
	return err
}

func (s *ReservationStore) Delete(ctx context.Context, id string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *ReservationStore) ListOlderThan(ctx context.Context, cutoff time.Time) ([]models.Reservation, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"created_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stale []models.Reservation
	if err := cursor.All(ctx, &stale); err != nil {
		return nil, err
	}
	return stale, nil
}
