// internal/app/features/reports/handler.go
package reports

import (
	obstaclestore "github.com/MGumpen/aor/internal/app/store/obstacles"
	reportstore "github.com/MGumpen/aor/internal/app/store/reports"
	userstore "github.com/MGumpen/aor/internal/app/store/users"
	"github.com/MGumpen/aor/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the report review views: the joined listings and the
// approve/reject/assign actions.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	SessionMgr *auth.SessionManager

	Reports   *reportstore.Store
	Users     *userstore.Store
	Obstacles *obstaclestore.Store
}

// NewHandler constructs a reports Handler.
func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		SessionMgr: sessionMgr,
		Reports:    reportstore.New(db),
		Users:      userstore.New(db),
		Obstacles:  obstaclestore.New(db),
	}
}
