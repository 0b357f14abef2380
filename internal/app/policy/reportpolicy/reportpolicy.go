// internal/app/policy/reportpolicy.go
package reportpolicy

import (
	"context"

	"github.com/MGumpen/aor/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CanBeAssigned reports whether the given user may be assigned a report:
// the user must exist, be active, and hold the registrar role.
// Returns (false, nil) for "not eligible" and (false, err) for lookup
// failures so callers can tell them apart.
func CanBeAssigned(ctx context.Context, db *mongo.Database, userID primitive.ObjectID) (bool, error) {
	var u models.User
	err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if u.Status == "disabled" {
		return false, nil
	}
	return u.HasRole("registrar"), nil
}
