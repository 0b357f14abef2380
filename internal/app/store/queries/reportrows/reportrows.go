// Package reportrows provides the joined read model behind the report
// listing views: each row carries the report, its obstacle, the submitting
// user and their organization, resolved in one aggregation.
package reportrows

import (
	"context"
	"time"

	"github.com/MGumpen/aor/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Row is one joined report listing row.
type Row struct {
	ReportID     primitive.ObjectID  `bson:"_id"`
	StatusID     int                 `bson:"status_id"`
	Version      int                 `bson:"version"`
	AssignedToID *primitive.ObjectID `bson:"assigned_to_id,omitempty"`
	CreatedAt    time.Time           `bson:"created_at"`

	ObstacleName string  `bson:"obstacle_name"`
	ObstacleType string  `bson:"obstacle_type"`
	Height       float64 `bson:"height"`

	UserName string `bson:"user_name"`
	OrgName  string `bson:"org_name"`

	AssignedToName string `bson:"assigned_to_name"`
}

// StatusName resolves the row's status id to its display name.
func (r Row) StatusName() string {
	return models.StatusName(r.StatusID)
}

// Fetch returns joined rows for every report matching the filter. Sorting
// is left to the caller (see Sort); the aggregation only joins.
func Fetch(ctx context.Context, db *mongo.Database, match bson.M) ([]Row, error) {
	pipeline := []bson.M{
		{"$match": match},
		{"$lookup": bson.M{
			"from":         "obstacles",
			"localField":   "obstacle_id",
			"foreignField": "_id",
			"as":           "obstacle",
		}},
		{"$unwind": "$obstacle"},
		{"$lookup": bson.M{
			"from":         "users",
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "user",
		}},
		{"$unwind": bson.M{"path": "$user", "preserveNullAndEmptyArrays": true}},
		{"$lookup": bson.M{
			"from":         "organizations",
			"localField":   "user.org_nr",
			"foreignField": "_id",
			"as":           "org",
		}},
		{"$unwind": bson.M{"path": "$org", "preserveNullAndEmptyArrays": true}},
		{"$lookup": bson.M{
			"from":         "users",
			"localField":   "assigned_to_id",
			"foreignField": "_id",
			"as":           "assignee",
		}},
		{"$unwind": bson.M{"path": "$assignee", "preserveNullAndEmptyArrays": true}},
		{"$project": bson.M{
			"status_id":      1,
			"version":        1,
			"assigned_to_id": 1,
			"created_at":     1,
			"obstacle_name":  "$obstacle.name",
			"obstacle_type":  "$obstacle.type",
			"height":         "$obstacle.height",
			"user_name": bson.M{"$trim": bson.M{"input": bson.M{"$concat": bson.A{
				bson.M{"$ifNull": bson.A{"$user.first_name", ""}},
				" ",
				bson.M{"$ifNull": bson.A{"$user.last_name", ""}},
			}}}},
			"org_name": bson.M{"$ifNull": bson.A{"$org.org_name", ""}},
			"assigned_to_name": bson.M{"$trim": bson.M{"input": bson.M{"$concat": bson.A{
				bson.M{"$ifNull": bson.A{"$assignee.first_name", ""}},
				" ",
				bson.M{"$ifNull": bson.A{"$assignee.last_name", ""}},
			}}}},
		}},
	}

	cur, err := db.Collection("reports").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []Row
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// All returns joined rows for every report not soft-deleted.
func All(ctx context.Context, db *mongo.Database) ([]Row, error) {
	return Fetch(ctx, db, bson.M{"status_id": bson.M{"$ne": models.StatusDeleted}})
}

// AssignedTo returns joined rows for reports assigned to the given registrar.
func AssignedTo(ctx context.Context, db *mongo.Database, registrarID primitive.ObjectID) ([]Row, error) {
	return Fetch(ctx, db, bson.M{
		"assigned_to_id": registrarID,
		"status_id":      bson.M{"$ne": models.StatusDeleted},
	})
}
