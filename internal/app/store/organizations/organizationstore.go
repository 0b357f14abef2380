// internal/app/store/organizations/organizationstore.go
package organizationstore

import (
	"context"
	"errors"
	"time"

	"github.com/MGumpen/aor/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c     *mongo.Collection
	users *mongo.Collection
}

var (
	ErrDuplicateOrganization = errors.New("an organization with this number already exists")
	ErrOrganizationInUse     = errors.New("organization still has users and cannot be deleted")
)

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("organizations"),
		users: db.Collection("users"),
	}
}

// Create inserts an organization keyed by its registration number.
func (s *Store) Create(ctx context.Context, org models.Organization) (models.Organization, error) {
	org.OrgNameCI = text.Fold(org.OrgName)
	org.CreatedAt = time.Now().UTC()
	_, err := s.c.InsertOne(ctx, org)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Organization{}, ErrDuplicateOrganization
		}
		return models.Organization{}, err
	}
	return org, nil
}

func (s *Store) GetByOrgNr(ctx context.Context, orgNr int64) (models.Organization, error) {
	var org models.Organization
	err := s.c.FindOne(ctx, bson.M{"_id": orgNr}).Decode(&org)
	if err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

// GetByOrgNrs loads multiple organizations by registration number.
func (s *Store) GetByOrgNrs(ctx context.Context, orgNrs []int64) ([]models.Organization, error) {
	if len(orgNrs) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": orgNrs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var orgs []models.Organization
	if err := cur.All(ctx, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

// List returns all organizations sorted by name.
func (s *Store) List(ctx context.Context) ([]models.Organization, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "org_name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var orgs []models.Organization
	if err := cur.All(ctx, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

// Delete removes an organization unless any user still references it.
func (s *Store) Delete(ctx context.Context, orgNr int64) error {
	n, err := s.users.CountDocuments(ctx, bson.M{"org_nr": orgNr})
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrOrganizationInUse
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": orgNr})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ExistsByNameCI checks if an organization with the given case-insensitive name exists.
func (s *Store) ExistsByNameCI(ctx context.Context, nameCI string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"org_name_ci": nameCI}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Count returns the number of organizations matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
