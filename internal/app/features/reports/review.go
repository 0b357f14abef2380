// internal/app/features/reports/review.go
package reports

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	uierrors "github.com/MGumpen/aor/internal/app/features/errors"
	"github.com/MGumpen/aor/internal/app/policy/reportpolicy"
	reportstore "github.com/MGumpen/aor/internal/app/store/reports"
	"github.com/MGumpen/aor/internal/app/system/navigation"
	"github.com/MGumpen/aor/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleApprove moves a report to Approved.
//
// Route: POST /reports/{id}/approve
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, "approve", approvedNotice, func(ctx context.Context, id primitive.ObjectID, version int) error {
		return h.Reports.Approve(ctx, id, version)
	})
}

// HandleReject moves a report to Rejected.
//
// Route: POST /reports/{id}/reject
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, "reject", rejectedNotice, func(ctx context.Context, id primitive.ObjectID, version int) error {
		return h.Reports.Reject(ctx, id, version)
	})
}

// HandleAssign sets or clears a report's assignee. An empty assignee form
// value unassigns; a non-empty one must be an active registrar.
//
// Route: POST /reports/{id}/assign
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	notice := assignedNotice
	if strings.TrimSpace(r.FormValue("assignee")) == "" {
		notice = unassignedNotice
	}
	h.review(w, r, "assign", notice, func(ctx context.Context, id primitive.ObjectID, version int) error {
		raw := strings.TrimSpace(r.FormValue("assignee"))
		if raw == "" {
			return h.Reports.Assign(ctx, id, version, nil)
		}
		assigneeID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return errNotAssignable
		}
		eligible, err := reportpolicy.CanBeAssigned(ctx, h.DB, assigneeID)
		if err != nil {
			return err
		}
		if !eligible {
			return errNotAssignable
		}
		return h.Reports.Assign(ctx, id, version, &assigneeID)
	})
}

var errNotAssignable = errors.New("user cannot be assigned reports")

func approvedNotice(obstacleName string) string {
	if obstacleName == "" {
		return "Report approved."
	}
	return "Report for \"" + obstacleName + "\" approved."
}

func rejectedNotice(obstacleName string) string {
	if obstacleName == "" {
		return "Report rejected."
	}
	return "Report for \"" + obstacleName + "\" rejected."
}

func assignedNotice(obstacleName string) string {
	if obstacleName == "" {
		return "Report assigned."
	}
	return "Report for \"" + obstacleName + "\" assigned."
}

func unassignedNotice(obstacleName string) string {
	if obstacleName == "" {
		return "Report removed from assignment."
	}
	return "Report for \"" + obstacleName + "\" removed from assignment."
}

// review runs one version-checked report mutation and redirects back to the
// listing the action came from. Expected failures turn into a one-shot
// error message rather than an error page; on success the notice names the
// report's obstacle.
func (h *Handler) review(w http.ResponseWriter, r *http.Request, action string, notice func(obstacleName string) string, fn func(ctx context.Context, id primitive.ObjectID, version int) error) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderNotFound(w, r, "Report not found.")
		return
	}
	version, err := strconv.Atoi(strings.TrimSpace(r.FormValue("version")))
	if err != nil || version < 1 {
		http.Error(w, "invalid version", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	backURL := navigation.SafeBackURL(r, navigation.ReportsBackURL)

	switch err := fn(ctx, id, version); {
	case err == nil:
		if flashErr := h.SessionMgr.SetFlash(w, r, "notice", notice(h.obstacleName(ctx, id))); flashErr != nil {
			h.Log.Warn("review notice flash failed", zap.Error(flashErr))
		}
	case errors.Is(err, reportstore.ErrVersionConflict):
		if flashErr := h.SessionMgr.SetFlash(w, r, "error",
			"The report was changed by someone else. Review the latest version and try again."); flashErr != nil {
			h.Log.Warn("review conflict flash failed", zap.Error(flashErr))
		}
	case errors.Is(err, errNotAssignable):
		if flashErr := h.SessionMgr.SetFlash(w, r, "error",
			"That user cannot be assigned reports."); flashErr != nil {
			h.Log.Warn("review assign flash failed", zap.Error(flashErr))
		}
	case errors.Is(err, mongo.ErrNoDocuments):
		uierrors.RenderNotFound(w, r, "Report not found.")
		return
	default:
		h.Log.Error("report review failed",
			zap.String("action", action), zap.String("report_id", id.Hex()), zap.Error(err))
		uierrors.RenderServerError(w, r)
		return
	}

	http.Redirect(w, r, backURL, http.StatusSeeOther)
}

// obstacleName resolves the obstacle a report was filed for, returning ""
// when either lookup fails; the notice then falls back to a generic form.
func (h *Handler) obstacleName(ctx context.Context, reportID primitive.ObjectID) string {
	rep, err := h.Reports.GetByID(ctx, reportID)
	if err != nil {
		return ""
	}
	o, err := h.Obstacles.GetByID(ctx, rep.ObstacleID)
	if err != nil {
		return ""
	}
	return o.Name
}
