// internal/app/features/dashboard/registrar.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/MGumpen/aor/internal/app/system/authz"
	"github.com/MGumpen/aor/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type registrarData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string

	AssignedPending   int64
	UnassignedPending int64
}

func (h *Handler) serveRegistrar(w http.ResponseWriter, r *http.Request) {
	role, name, uid, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := registrarData{
		Title:      "Dashboard",
		IsLoggedIn: true,
		Role:       role,
		UserName:   name,
	}

	var err error
	if data.AssignedPending, err = h.Reports.AssignedPendingCount(ctx, uid); err != nil {
		h.Log.Error("dashboard: assigned pending count failed", zap.Error(err), zap.String("user_id", uid.Hex()))
	}
	if data.UnassignedPending, err = h.Reports.UnassignedPendingCount(ctx); err != nil {
		h.Log.Error("dashboard: unassigned pending count failed", zap.Error(err))
	}

	templates.Render(w, r, "dashboard_registrar", data)
}
