// internal/app/features/users/handler.go
package users

import (
	orgstore "github.com/MGumpen/aor/internal/app/store/organizations"
	userstore "github.com/MGumpen/aor/internal/app/store/users"
	"github.com/MGumpen/aor/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the admin user registry.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	SessionMgr *auth.SessionManager

	Users *userstore.Store
	Orgs  *orgstore.Store
}

// NewHandler constructs a users Handler.
func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		SessionMgr: sessionMgr,
		Users:      userstore.New(db),
		Orgs:       orgstore.New(db),
	}
}
