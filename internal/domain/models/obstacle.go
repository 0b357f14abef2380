// internal/domain/models/obstacle.go
package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Obstacle is a reported physical object. Height is always stored in meters
// regardless of the unit it was submitted in. Type-conditional fields
// (MastType/HasLighting, WireCount, Category) are set only for the matching
// obstacle type. Obstacles are immutable after creation except through the
// registrar workflow, which only touches the linked report's status.
type Obstacle struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`               // ≤50 chars
	Description string             `bson:"description,omitempty" json:"description,omitempty"` // ≤1000 chars

	Height float64 `bson:"height" json:"height"` // meters, 0.1–1000

	Type string `bson:"type" json:"type"` // mast | line | other

	// Coordinates is a JSON array of [lat,lng] points, ≤4000 chars.
	Coordinates string `bson:"coordinates" json:"coordinates"`
	PointCount  int    `bson:"point_count" json:"point_count"`

	// Mast-only fields.
	MastType    string `bson:"mast_type,omitempty" json:"mast_type,omitempty"` // ≤50 chars
	HasLighting bool   `bson:"has_lighting,omitempty" json:"has_lighting,omitempty"`

	// Line-only field, 1–99 when set.
	WireCount int `bson:"wire_count,omitempty" json:"wire_count,omitempty"`

	// Other-only field, ≤50 chars.
	Category string `bson:"category,omitempty" json:"category,omitempty"`

	Status    string    `bson:"status" json:"status"` // "Pending" at creation
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Obstacle types. Matching is case-insensitive on input; the stored value
// keeps whatever the crew submitted (trimmed).
const (
	TypeMast  = "mast"
	TypeLine  = "line"
	TypeOther = "other"
)

// IsMast reports whether the obstacle's type matches "mast" case-insensitively.
func (o *Obstacle) IsMast() bool { return strings.EqualFold(o.Type, TypeMast) }

// IsLine reports whether the obstacle's type matches "line" case-insensitively.
func (o *Obstacle) IsLine() bool { return strings.EqualFold(o.Type, TypeLine) }
