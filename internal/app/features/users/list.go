// internal/app/features/users/list.go
package users

import (
	"context"
	"net/http"

	uierrors "github.com/MGumpen/aor/internal/app/features/errors"
	"github.com/MGumpen/aor/internal/app/system/formutil"
	"github.com/MGumpen/aor/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ServeList renders every user with their roles and organization.
//
// Route: GET /users
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	userList, err := h.Users.List(ctx, bson.M{})
	if err != nil {
		h.Log.Error("user list failed", zap.Error(err))
		uierrors.RenderServerError(w, r)
		return
	}

	// Resolve the organizations referenced by the listed users.
	var orgNrs []int64
	seen := map[int64]bool{}
	for _, u := range userList {
		if u.OrgNr != nil && !seen[*u.OrgNr] {
			seen[*u.OrgNr] = true
			orgNrs = append(orgNrs, *u.OrgNr)
		}
	}
	orgNames := map[int64]string{}
	if len(orgNrs) > 0 {
		orgs, err := h.Orgs.GetByOrgNrs(ctx, orgNrs)
		if err != nil {
			h.Log.Warn("organization lookup failed", zap.Error(err))
		}
		for _, org := range orgs {
			orgNames[org.OrgNr] = org.OrgName
		}
	}

	data := listData{Users: userList, OrgNames: orgNames}
	formutil.SetBase(&data.Base, r, "Users", "/dashboard")

	if msg, ok := h.SessionMgr.Flash(w, r, "error"); ok {
		data.SetError(msg)
	}
	if msg, ok := h.SessionMgr.Flash(w, r, "notice"); ok {
		data.Notice = msg
	}

	templates.Render(w, r, "user_list", data)
}
