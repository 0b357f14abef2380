// internal/app/store/statuses/statusstore.go
package statusstore

import (
	"context"

	"github.com/MGumpen/aor/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("statuses")}
}

// Seed upserts the fixed status set. Called once from EnsureSchema; the
// set never changes at runtime.
func (s *Store) Seed(ctx context.Context) error {
	for id, name := range models.StatusNames {
		_, err := s.c.UpdateOne(ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"status": name}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// All returns the status set ordered by id.
func (s *Store) All(ctx context.Context) ([]models.Status, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Status
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
