package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/MGumpen/aor/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateOrganization creates a test organization keyed by orgNr.
func (f *Fixtures) CreateOrganization(ctx context.Context, orgNr int64, name string) models.Organization {
	f.t.Helper()

	org := models.Organization{
		OrgNr:     orgNr,
		OrgName:   name,
		OrgNameCI: text.Fold(name),
		CreatedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("organizations").InsertOne(ctx, org)
	if err != nil {
		f.t.Fatalf("failed to create test organization: %v", err)
	}

	return org
}

// CreateUser creates a test user with the given roles. The first role
// becomes the active role; orgNr is optional.
func (f *Fixtures) CreateUser(ctx context.Context, firstName, lastName, email string, roles []string, orgNr *int64) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FirstName:  firstName,
		LastName:   lastName,
		Email:      email,
		EmailCI:    text.Fold(email),
		Roles:      roles,
		ActiveRole: roles[0],
		OrgNr:      orgNr,
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateObstacle creates a test obstacle with status "Pending".
func (f *Fixtures) CreateObstacle(ctx context.Context, name, obstacleType string, height float64) models.Obstacle {
	f.t.Helper()

	o := models.Obstacle{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Type:        obstacleType,
		Height:      height,
		Coordinates: "[[60.1,10.2]]",
		PointCount:  1,
		Status:      models.StatusNames[models.StatusPending],
		CreatedAt:   time.Now().UTC(),
	}

	_, err := f.db.Collection("obstacles").InsertOne(ctx, o)
	if err != nil {
		f.t.Fatalf("failed to create test obstacle: %v", err)
	}

	return o
}

// CreateReport creates a report linking user and obstacle, at the given
// status with version 1.
func (f *Fixtures) CreateReport(ctx context.Context, userID, obstacleID primitive.ObjectID, statusID int) models.Report {
	f.t.Helper()

	rep := models.Report{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		ObstacleID: obstacleID,
		StatusID:   statusID,
		Version:    1,
		CreatedAt:  time.Now().UTC(),
	}

	_, err := f.db.Collection("reports").InsertOne(ctx, rep)
	if err != nil {
		f.t.Fatalf("failed to create test report: %v", err)
	}

	return rep
}

// CreateLoginRecord creates a login record for the given user.
func (f *Fixtures) CreateLoginRecord(ctx context.Context, userID primitive.ObjectID, activeRole string) models.LoginRecord {
	f.t.Helper()

	rec := models.LoginRecord{
		ID:         uuid.NewString(),
		UserID:     userID.Hex(),
		ActiveRole: activeRole,
		IP:         "127.0.0.1",
		CreatedAt:  time.Now().UTC(),
	}

	_, err := f.db.Collection("login_records").InsertOne(ctx, rec)
	if err != nil {
		f.t.Fatalf("failed to create test login record: %v", err)
	}

	return rec
}

// SeedStatuses inserts the fixed status rows.
func (f *Fixtures) SeedStatuses(ctx context.Context) {
	f.t.Helper()
	for id, name := range models.StatusNames {
		_, err := f.db.Collection("statuses").InsertOne(ctx, models.Status{ID: id, Name: name})
		if err != nil {
			f.t.Fatalf("failed to seed statuses: %v", err)
		}
	}
}
