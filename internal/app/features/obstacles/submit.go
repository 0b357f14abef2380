// internal/app/features/obstacles/submit.go
package obstacles

import (
	"context"
	"net/http"
	"strings"

	"github.com/MGumpen/aor/internal/app/system/authz"
	"github.com/MGumpen/aor/internal/app/system/formutil"
	"github.com/MGumpen/aor/internal/app/system/htmlsanitize"
	"github.com/MGumpen/aor/internal/app/system/intake"
	"github.com/MGumpen/aor/internal/app/system/timeouts"
	"github.com/MGumpen/aor/internal/app/system/txn"
	"github.com/MGumpen/aor/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// HandleSubmit processes an obstacle submission: intake normalization and
// validation, then the obstacle insert and its linked report in one
// transaction. A carried draft query key is stored as a one-shot delete
// signal for the client.
//
// Route: POST /obstacles/form
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	res := intake.Process(r.PostForm, models.Obstacle{})
	if !res.OK() {
		h.renderFormWithErrors(w, r, res)
		return
	}

	obstacle := res.Obstacle
	obstacle.Description = htmlsanitize.PlainText(obstacle.Description)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := txn.Run(ctx, h.DB, h.Log, func(ctx context.Context) error {
		created, err := h.Obstacles.Create(ctx, obstacle)
		if err != nil {
			return err
		}
		_, err = h.Reports.Create(ctx, models.Report{
			UserID:     uid,
			ObstacleID: created.ID,
		})
		return err
	})
	if err != nil {
		h.Log.Error("obstacle submit failed", zap.Error(err), zap.String("user_id", uid.Hex()))
		res.Errors.Add("form", "Unable to save the report. Please try again.")
		h.renderFormWithErrors(w, r, res)
		return
	}

	// One-shot draft-delete handshake: the next page load reads this key
	// and clears the matching draft from local storage.
	if draftKey := strings.TrimSpace(r.FormValue("draft")); draftKey != "" {
		if err := h.SessionMgr.SetFlash(w, r, "pending_draft_delete", draftKey); err != nil {
			h.Log.Warn("obstacle submit: draft-delete flash failed", zap.Error(err))
		}
	}

	if err := h.SessionMgr.SetFlash(w, r, "notice", "Obstacle report submitted."); err != nil {
		h.Log.Warn("obstacle submit: notice flash failed", zap.Error(err))
	}

	http.Redirect(w, r, "/obstacles/form", http.StatusSeeOther)
}

func (h *Handler) renderFormWithErrors(w http.ResponseWriter, r *http.Request, res *intake.Result) {
	o := res.Obstacle
	data := formData{
		Name:        o.Name,
		Description: o.Description,
		Type:        o.Type,
		Coordinates: o.Coordinates,
		PointCount:  o.PointCount,
		MastType:    o.MastType,
		HasLighting: o.HasLighting,
		WireCount:   o.WireCount,
		Category:    o.Category,
		DraftKey:    strings.TrimSpace(r.FormValue("draft")),
		FieldErrors: map[string][]string{},
		Errors:      res.Errors.All(),
	}
	data.HeightMeters = strings.TrimSpace(r.FormValue("heightMeters"))
	data.HeightFeet = strings.TrimSpace(r.FormValue("heightFeet"))
	for _, field := range []string{"name", "description", "height", "coordinates", "mastType", "wireCount", "category", "form"} {
		if msgs := res.Errors.Field(field); len(msgs) > 0 {
			data.FieldErrors[field] = msgs
		}
	}
	formutil.SetBase(&data.Base, r, "Report obstacle", "/dashboard")

	templates.Render(w, r, "obstacle_form", data)
}
