// internal/domain/models/report.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report links the creating user to an obstacle and carries the review
// state. Exactly one report exists per obstacle submission.
//
// Version is incremented on every status/assignment transition; updates
// filter on the version they read so that two racing registrars cannot both
// win silently.
type Report struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	ObstacleID primitive.ObjectID `bson:"obstacle_id" json:"obstacle_id"`

	StatusID     int                 `bson:"status_id" json:"status_id"`
	AssignedToID *primitive.ObjectID `bson:"assigned_to_id,omitempty" json:"assigned_to_id,omitempty"`

	Version   int       `bson:"version" json:"version"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
