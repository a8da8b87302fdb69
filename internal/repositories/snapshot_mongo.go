package repositories

import (
	"context"
	"errors"

	"github.com/magicboy5300/exchange/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const snapshotsCollection = "exchange_rates"

type MongoSnapshotStore struct {
	collection *mongo.Collection
}

func NewMongoSnapshotStore(db *mongo.Database) *MongoSnapshotStore {
	return &MongoSnapshotStore{collection: db.Collection(snapshotsCollection)}
}

func (m *MongoSnapshotStore) Insert(ctx context.Context, snap *models.RateSnapshot) error {
	_, err := m.collection.InsertOne(ctx, snap)
	return err
}

func (m *MongoSnapshotStore) Latest(ctx context.Context) (*models.RateSnapshot, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "updated_at", Value: -1}})

	var snap models.RateSnapshot
	err := m.collection.FindOne(ctx, bson.D{}, opts).Decode(&snap)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// Prune deletes by _id so snapshots sharing a millisecond are not dropped
// together across the retention boundary.
func (m *MongoSnapshotStore) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(keep)).
		SetProjection(bson.D{{Key: "_id", Value: 1}})

	cur, err := m.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return 0, err
	}
	var stale []struct {
		ID interface{} `bson:"_id"`
	}
	if err := cur.All(ctx, &stale); err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}

	ids := make(bson.A, 0, len(stale))
	for _, doc := range stale {
		ids = append(ids, doc.ID)
	}
	res, err := m.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
