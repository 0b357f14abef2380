// internal/app/store/logins/loginstore.go
package loginstore

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/MGumpen/aor/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("login_records")}
}

// Create inserts a LoginRecord. Missing ID and CreatedAt are filled in.
func (s *Store) Create(ctx context.Context, rec models.LoginRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, rec)
	return err
}

// CreateFrom builds a LoginRecord from the HTTP request and inserts it.
// It extracts client IP (X-Forwarded-For → X-Real-IP → RemoteAddr).
func (s *Store) CreateFrom(ctx context.Context, r *http.Request, userID primitive.ObjectID, activeRole string) error {
	rec := models.LoginRecord{
		ID:         uuid.NewString(),
		UserID:     userID.Hex(),
		ActiveRole: activeRole,
		IP:         clientIP(r),
		CreatedAt:  time.Now().UTC(),
	}
	_, err := s.c.InsertOne(ctx, rec)
	return err
}

// Recent returns the newest login records, capped at limit.
func (s *Store) Recent(ctx context.Context, limit int64) ([]models.LoginRecord, error) {
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.LoginRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func clientIP(r *http.Request) string {
	// Respect common proxy headers first
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// XFF may contain a list; first is original client
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	if xr := r.Header.Get("X-Real-IP"); xr != "" {
		return strings.TrimSpace(xr)
	}
	// Fallback: parse RemoteAddr "ip:port"
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
