// internal/app/store/reports/reportstore.go
package reportstore

import (
	"context"
	"errors"
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

// ErrVersionConflict is returned when a status or assignment update loses a
// race: the report changed since the caller read it, so the update matched
// nothing. Callers should reload and let the user retry.
var ErrVersionConflict = errors.New("report was modified by someone else")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("reports")}
}

// Create inserts a report linked to an obstacle, starting at Pending with
// version 1.
func (s *Store) Create(ctx context.Context, rep models.Report) (models.Report, error) {
	rep.ID = primitive.NewObjectID()
	rep.StatusID = models.StatusPending
	rep.Version = 1
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, rep); err != nil {
		return models.Report{}, err
	}
	return rep, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Report, error) {
	var rep models.Report
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// SetStatus moves a report to the given status. The update filters on the
// version the caller read; if the report changed in between, nothing
// matches and ErrVersionConflict is returned.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, version int, statusID int) error {
	if _, ok := models.StatusNames[statusID]; !ok {
		return errors.New("unknown status id")
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "version": version},
		bson.M{
			"$set": bson.M{"status_id": statusID},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return s.conflictOrMissing(ctx, id)
	}
	return nil
}

// Approve moves a report to Approved.
func (s *Store) Approve(ctx context.Context, id primitive.ObjectID, version int) error {
	return s.SetStatus(ctx, id, version, models.StatusApproved)
}

// Reject moves a report to Rejected.
func (s *Store) Reject(ctx context.Context, id primitive.ObjectID, version int) error {
	return s.SetStatus(ctx, id, version, models.StatusRejected)
}

// Assign sets or clears the registrar a report is assigned to. A nil
// assignee unassigns. Version-checked like SetStatus.
func (s *Store) Assign(ctx context.Context, id primitive.ObjectID, version int, assignee *primitive.ObjectID) error {
	update := bson.M{"$inc": bson.M{"version": 1}}
	if assignee == nil {
		update["$unset"] = bson.M{"assigned_to_id": ""}
	} else {
		update["$set"] = bson.M{"assigned_to_id": *assignee}
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "version": version}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return s.conflictOrMissing(ctx, id)
	}
	return nil
}

// conflictOrMissing distinguishes a lost version race from a deleted report.
func (s *Store) conflictOrMissing(ctx context.Context, id primitive.ObjectID) error {
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Err()
	if err == mongo.ErrNoDocuments {
		return mongo.ErrNoDocuments
	}
	if err != nil {
		return err
	}
	return ErrVersionConflict
}

// Find returns reports matching the filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Report, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var reps []models.Report
	if err := cur.All(ctx, &reps); err != nil {
		return nil, err
	}
	return reps, nil
}

// AllVisible returns every report not soft-deleted, for the admin and
// registrar listing views.
func (s *Store) AllVisible(ctx context.Context) ([]models.Report, error) {
	return s.Find(ctx, bson.M{"status_id": bson.M{"$ne": models.StatusDeleted}})
}

// AssignedTo returns reports assigned to the given registrar.
func (s *Store) AssignedTo(ctx context.Context, registrarID primitive.ObjectID) ([]models.Report, error) {
	return s.Find(ctx, bson.M{
		"assigned_to_id": registrarID,
		"status_id":      bson.M{"$ne": models.StatusDeleted},
	})
}

// ByUser returns reports created by the given user, newest first.
func (s *Store) ByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Report, error) {
	return s.Find(ctx,
		bson.M{"user_id": userID, "status_id": bson.M{"$ne": models.StatusDeleted}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
}

// CountByStatus returns the number of reports in the given status.
func (s *Store) CountByStatus(ctx context.Context, statusID int) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"status_id": statusID})
}

// AssignedPendingCount returns how many pending reports are assigned to the
// given registrar.
func (s *Store) AssignedPendingCount(ctx context.Context, registrarID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{
		"assigned_to_id": registrarID,
		"status_id":      models.StatusPending,
	})
}

// UnassignedPendingCount returns how many pending reports have no assignee.
func (s *Store) UnassignedPendingCount(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{
		"assigned_to_id": bson.M{"$exists": false},
		"status_id":      models.StatusPending,
	})
}

// Count returns the number of reports matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// EnsureIndexes creates indexes for the reports collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		// Status counters and filtered listings
		{
			Keys:    bson.D{{Key: "status_id", Value: 1}},
			Options: options.Index().SetName("idx_report_status"),
		},
		// Registrar assignment queues
		{
			Keys:    bson.D{{Key: "assigned_to_id", Value: 1}},
			Options: options.Index().SetName("idx_report_assigned_to"),
		},
		// Crew "my reports" listing, newest first
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_report_user_created"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
