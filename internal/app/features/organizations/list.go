// internal/app/features/organizations/list.go
package organizations

import (
	"context"
	"net/http"

	uierrors "github.com/MGumpen/aor/internal/app/features/errors"
	"github.com/MGumpen/aor/internal/app/system/formutil"
	"github.com/MGumpen/aor/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeList renders every organization, sorted by folded name.
//
// Route: GET /organizations
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	orgs, err := h.Orgs.List(ctx)
	if err != nil {
		h.Log.Error("organization list failed", zap.Error(err))
		uierrors.RenderServerError(w, r)
		return
	}

	data := listData{Orgs: orgs}
	formutil.SetBase(&data.Base, r, "Organizations", "/dashboard")

	if msg, ok := h.SessionMgr.Flash(w, r, "error"); ok {
		data.SetError(msg)
	}
	if msg, ok := h.SessionMgr.Flash(w, r, "notice"); ok {
		data.Notice = msg
	}

	templates.Render(w, r, "organization_list", data)
}
