// internal/app/features/reports/list.go
package reports

import (
	"context"
	"net/http"
	"strconv"

	statusstore "github.com/MGumpen/aor/internal/app/store/statuses"
	"github.com/MGumpen/aor/internal/app/store/queries/reportrows"
	"github.com/MGumpen/aor/internal/app/system/authz"
	"github.com/MGumpen/aor/internal/app/system/formutil"
	"github.com/MGumpen/aor/internal/app/system/timeouts"
	uierrors "github.com/MGumpen/aor/internal/app/features/errors"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeList renders every visible report joined with its obstacle,
// submitter and organization. Sorting and the status filter come from
// query parameters and are applied in memory over the joined rows.
//
// Route: GET /reports
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	h.serveRows(w, r, false)
}

// ServeAssigned renders the reports assigned to the signed-in registrar.
//
// Route: GET /reports/assigned
func (h *Handler) ServeAssigned(w http.ResponseWriter, r *http.Request) {
	h.serveRows(w, r, true)
}

func (h *Handler) serveRows(w http.ResponseWriter, r *http.Request, assignedOnly bool) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		rows []reportrows.Row
		err  error
	)
	if assignedOnly {
		rows, err = reportrows.AssignedTo(ctx, h.DB, uid)
	} else {
		rows, err = reportrows.All(ctx, h.DB)
	}
	if err != nil {
		h.Log.Error("report listing failed", zap.Error(err), zap.Bool("assigned_only", assignedOnly))
		uierrors.RenderServerError(w, r)
		return
	}

	statusFilter := 0
	if n, convErr := strconv.Atoi(query.Get(r, "status")); convErr == nil && n > 0 {
		statusFilter = n
		filtered := rows[:0]
		for _, row := range rows {
			if row.StatusID == statusFilter {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	sortField := query.Get(r, "sort")
	sortDir := query.Get(r, "dir")
	reportrows.Sort(rows, sortField, sortDir)

	statuses, err := statusstore.New(h.DB).All(ctx)
	if err != nil {
		h.Log.Warn("status list failed", zap.Error(err))
	}
	registrars, err := h.Users.ListByRole(ctx, "registrar")
	if err != nil {
		h.Log.Warn("registrar list failed", zap.Error(err))
	}

	data := listData{
		Rows:         rows,
		SortField:    sortField,
		SortDir:      sortDir,
		StatusFilter: statusFilter,
		Statuses:     statuses,
		Registrars:   registrars,
		AssignedOnly: assignedOnly,
	}
	title := "Reports"
	if assignedOnly {
		title = "My assigned reports"
	}
	formutil.SetBase(&data.Base, r, title, "/dashboard")

	if msg, ok := h.SessionMgr.Flash(w, r, "error"); ok {
		data.SetError(msg)
	}
	if msg, ok := h.SessionMgr.Flash(w, r, "notice"); ok {
		data.Notice = msg
	}

	templates.Render(w, r, "report_list", data)
}
