// internal/app/features/dashboard/admin.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/MGumpen/aor/internal/app/system/authz"
	"github.com/MGumpen/aor/internal/app/system/timeouts"
	"github.com/MGumpen/aor/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type adminData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string

	UserCount     int64
	OrgCount      int64
	PendingCount  int64
	ApprovedCount int64
	RejectedCount int64
	RecentLogins  []models.LoginRecord
}

func (h *Handler) serveAdmin(w http.ResponseWriter, r *http.Request) {
	role, name, _, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := adminData{
		Title:      "Dashboard",
		IsLoggedIn: true,
		Role:       role,
		UserName:   name,
	}

	var err error
	if data.UserCount, err = h.Users.Count(ctx, bson.M{}); err != nil {
		h.Log.Error("dashboard: user count failed", zap.Error(err))
	}
	if data.OrgCount, err = h.Orgs.Count(ctx, bson.M{}); err != nil {
		h.Log.Error("dashboard: org count failed", zap.Error(err))
	}
	if data.PendingCount, err = h.Reports.CountByStatus(ctx, models.StatusPending); err != nil {
		h.Log.Error("dashboard: pending count failed", zap.Error(err))
	}
	if data.ApprovedCount, err = h.Reports.CountByStatus(ctx, models.StatusApproved); err != nil {
		h.Log.Error("dashboard: approved count failed", zap.Error(err))
	}
	if data.RejectedCount, err = h.Reports.CountByStatus(ctx, models.StatusRejected); err != nil {
		h.Log.Error("dashboard: rejected count failed", zap.Error(err))
	}
	if data.RecentLogins, err = h.Logins.Recent(ctx, 10); err != nil {
		h.Log.Error("dashboard: recent logins failed", zap.Error(err))
	}

	templates.Render(w, r, "dashboard_admin", data)
}
