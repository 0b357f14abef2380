// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	reportstore "github.com/MGumpen/aor/internal/app/store/reports"
	statusstore "github.com/MGumpen/aor/internal/app/store/statuses"
	userstore "github.com/MGumpen/aor/internal/app/store/users"
	"github.com/MGumpen/aor/internal/domain/models"
)

// ConnectDB establishes the MongoDB connection used by the whole app.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates indexes, seeds the status table, and bootstraps the
// admin account when one is configured and missing.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	if err := userstore.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure user indexes: %w", err)
	}
	if err := reportstore.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure report indexes: %w", err)
	}
	if err := statusstore.New(db).Seed(ctx); err != nil {
		return fmt.Errorf("seed statuses: %w", err)
	}

	if appCfg.AdminEmail != "" {
		if err := ensureBootstrapAdmin(ctx, db, appCfg, logger); err != nil {
			return err
		}
	}
	return nil
}

// ensureBootstrapAdmin creates the configured admin user if no user with
// that email exists yet. An existing user is left untouched.
func ensureBootstrapAdmin(ctx context.Context, db *mongo.Database, appCfg AppConfig, logger *zap.Logger) error {
	users := userstore.New(db)

	existing, err := users.GetByEmail(ctx, appCfg.AdminEmail)
	if err != nil && err != mongo.ErrNoDocuments {
		return fmt.Errorf("lookup bootstrap admin: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(appCfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash bootstrap admin password: %w", err)
	}

	_, err = users.Create(ctx, models.User{
		FirstName:    "System",
		LastName:     "Admin",
		Email:        appCfg.AdminEmail,
		PasswordHash: string(hash),
		Roles:        []string{"admin"},
		ActiveRole:   "admin",
		Status:       "active",
	})
	if err == userstore.ErrDuplicateEmail {
		// Another instance won the race; the account exists.
		return nil
	}
	if err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}

	logger.Info("created bootstrap admin user", zap.String("email", appCfg.AdminEmail))
	return nil
}
