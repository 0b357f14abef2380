// internal/app/store/obstacles/obstaclestore.go
package obstaclestore

import (
	"context"
	"time"

	"github.com/MGumpen/aor/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("obstacles")}
}

// Create inserts an obstacle with status "Pending" and a UTC creation
// timestamp. Obstacles are immutable after this point; only the linked
// report's status moves through the workflow.
func (s *Store) Create(ctx context.Context, o models.Obstacle) (models.Obstacle, error) {
	o.ID = primitive.NewObjectID()
	o.Status = models.StatusNames[models.StatusPending]
	o.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, o); err != nil {
		return models.Obstacle{}, err
	}
	return o, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Obstacle, error) {
	var o models.Obstacle
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByIDs loads multiple obstacles by their ObjectIDs.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Obstacle, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Obstacle
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatedSince returns obstacles created at or after the cutoff,
// newest first.
func (s *Store) CreatedSince(ctx context.Context, cutoff time.Time) ([]models.Obstacle, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"created_at": bson.M{"$gte": cutoff}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Obstacle
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of obstacles matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
