// internal/app/features/obstacles/handler.go
package obstacles

import (
	obstaclestore "github.com/MGumpen/aor/internal/app/store/obstacles"
	reportstore "github.com/MGumpen/aor/internal/app/store/reports"
	"github.com/MGumpen/aor/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for obstacle intake.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	SessionMgr *auth.SessionManager

	Obstacles *obstaclestore.Store
	Reports   *reportstore.Store
}

// NewHandler constructs an obstacles Handler.
func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		SessionMgr: sessionMgr,
		Obstacles:  obstaclestore.New(db),
		Reports:    reportstore.New(db),
	}
}
