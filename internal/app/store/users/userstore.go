package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/MGumpen/aor/internal/app/system/inputval"
	"github.com/MGumpen/aor/internal/app/system/normalize"
	"github.com/MGumpen/aor/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New(`roles must be "admin"|"crew"|"registrar"`)
	errNoRoles        = errors.New("user must have at least one role")
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(normalize.Email(email))}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing & validating fields.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FirstName = normalize.Name(u.FirstName)
	u.LastName = normalize.Name(u.LastName)
	u.Email = normalize.Email(u.Email)
	u.EmailCI = text.Fold(u.Email)
	if u.Status == "" {
		u.Status = "active"
	}

	if len(u.Roles) == 0 {
		return models.User{}, errNoRoles
	}
	for i, role := range u.Roles {
		role = normalize.Role(role)
		if !inputval.IsValidRole(role) {
			return models.User{}, errBadRole
		}
		u.Roles[i] = role
	}
	if u.ActiveRole != "" {
		u.ActiveRole = normalize.Role(u.ActiveRole)
		if !u.HasRole(u.ActiveRole) {
			u.ActiveRole = u.Roles[0]
		}
	} else {
		u.ActiveRole = u.Roles[0]
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// SetActiveRole records the role a user is currently acting as. The role
// must be one of the user's granted roles or the update matches nothing.
func (s *Store) SetActiveRole(ctx context.Context, id primitive.ObjectID, role string) error {
	role = normalize.Role(role)
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "roles": role},
		bson.M{"$set": bson.M{"active_role": role, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetStatus flips a user between active and disabled.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	status = normalize.Status(status)
	if status != "active" && status != "disabled" {
		return errors.New(`status must be "active"|"disabled"`)
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}})
	return err
}

// List returns users matching the filter, sorted by last then first name.
func (s *Store) List(ctx context.Context, filter bson.M) ([]models.User, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "last_name", Value: 1}, {Key: "first_name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListByRole returns users holding the given granted role.
func (s *Store) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	return s.List(ctx, bson.M{"roles": normalize.Role(role)})
}

// GetByIDs loads multiple users by their ObjectIDs.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Count returns the number of users matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// EnsureIndexes creates indexes for the users collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		// Unique case-insensitive email for login and duplicate detection
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_user_email_ci"),
		},
		// Role membership lookups
		{
			Keys:    bson.D{{Key: "roles", Value: 1}},
			Options: options.Index().SetName("idx_user_roles"),
		},
		// Organization reference checks
		{
			Keys:    bson.D{{Key: "org_nr", Value: 1}},
			Options: options.Index().SetName("idx_user_org_nr"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
