// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"

	uierrors "github.com/MGumpen/aor/internal/app/features/errors"
	loginstore "github.com/MGumpen/aor/internal/app/store/logins"
	obstaclestore "github.com/MGumpen/aor/internal/app/store/obstacles"
	organizationstore "github.com/MGumpen/aor/internal/app/store/organizations"
	reportstore "github.com/MGumpen/aor/internal/app/store/reports"
	userstore "github.com/MGumpen/aor/internal/app/store/users"
	"github.com/MGumpen/aor/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for the dashboard.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger

	Reports   *reportstore.Store
	Users     *userstore.Store
	Orgs      *organizationstore.Store
	Obstacles *obstaclestore.Store
	Logins    *loginstore.Store
}

// NewHandler constructs a dashboard Handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Log:       logger,
		Reports:   reportstore.New(db),
		Users:     userstore.New(db),
		Orgs:      organizationstore.New(db),
		Obstacles: obstaclestore.New(db),
		Logins:    loginstore.New(db),
	}
}

// ServeDashboard dispatches to the view for the user's active role.
// GET /dashboard
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	role, _, _, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	switch role {
	case "admin":
		h.serveAdmin(w, r)
	case "registrar":
		h.serveRegistrar(w, r)
	case "crew":
		h.serveCrew(w, r)
	default:
		uierrors.RenderForbidden(w, r, "No dashboard for this role.", "/")
	}
}
