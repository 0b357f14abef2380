// internal/app/features/organizations/handler.go
package organizations

import (
	orgstore "github.com/MGumpen/aor/internal/app/store/organizations"
	"github.com/MGumpen/aor/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the admin organization registry.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	SessionMgr *auth.SessionManager

	Orgs *orgstore.Store
}

// NewHandler constructs an organizations Handler.
func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		SessionMgr: sessionMgr,
		Orgs:       orgstore.New(db),
	}
}
