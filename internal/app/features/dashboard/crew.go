// internal/app/features/dashboard/crew.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/MGumpen/aor/internal/app/system/authz"
	"github.com/MGumpen/aor/internal/app/system/timeouts"
	"github.com/MGumpen/aor/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type crewReportRow struct {
	ObstacleName string
	Status       string
	CreatedAt    string
}

type crewData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string

	Recent []crewReportRow
}

// serveCrew shows the crew member their own recent submissions. The main
// crew workflow lives at /obstacles/form; this page is a read-only recap.
func (h *Handler) serveCrew(w http.ResponseWriter, r *http.Request) {
	role, name, uid, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := crewData{
		Title:      "My reports",
		IsLoggedIn: true,
		Role:       role,
		UserName:   name,
	}

	reps, err := h.Reports.ByUser(ctx, uid)
	if err != nil {
		h.Log.Error("dashboard: crew reports failed", zap.Error(err), zap.String("user_id", uid.Hex()))
	}

	obstacleByID, err := h.obstacleNames(ctx, reps)
	if err != nil {
		h.Log.Error("dashboard: obstacle lookup failed", zap.Error(err))
	}

	rows := make([]crewReportRow, 0, len(reps))
	for _, rep := range reps {
		rows = append(rows, crewReportRow{
			ObstacleName: obstacleByID[rep.ObstacleID],
			Status:       models.StatusName(rep.StatusID),
			CreatedAt:    rep.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	data.Recent = rows

	templates.Render(w, r, "dashboard_crew", data)
}

func (h *Handler) obstacleNames(ctx context.Context, reps []models.Report) (map[primitive.ObjectID]string, error) {
	out := make(map[primitive.ObjectID]string, len(reps))
	if len(reps) == 0 {
		return out, nil
	}
	ids := make([]primitive.ObjectID, 0, len(reps))
	for _, rep := range reps {
		ids = append(ids, rep.ObstacleID)
	}
	obstacles, err := h.Obstacles.GetByIDs(ctx, ids)
	if err != nil {
		return out, err
	}
	for _, o := range obstacles {
		out[o.ID] = o.Name
	}
	return out, nil
}
