// internal/app/features/organizations/new.go
package organizations

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	orgstore "github.com/MGumpen/aor/internal/app/store/organizations"
	"github.com/MGumpen/aor/internal/app/system/formutil"
	"github.com/MGumpen/aor/internal/app/system/timeouts"
	"github.com/MGumpen/aor/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeNew renders the new-organization form.
//
// Route: GET /organizations/new
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	data := newData{}
	formutil.SetBase(&data.Base, r, "New organization", "/organizations")
	templates.Render(w, r, "organization_new", data)
}

// HandleCreate validates and inserts a new organization. The registration
// number is the primary key; duplicates are refused.
//
// Route: POST /organizations/new
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	rawNr := strings.TrimSpace(r.FormValue("org_nr"))
	name := strings.TrimSpace(r.FormValue("org_name"))

	renderError := func(msg string) {
		data := newData{OrgNr: rawNr, OrgName: name}
		formutil.SetBase(&data.Base, r, "New organization", "/organizations")
		data.SetError(msg)
		templates.Render(w, r, "organization_new", data)
	}

	orgNr, err := strconv.ParseInt(rawNr, 10, 64)
	if err != nil || orgNr <= 0 {
		renderError("Registration number must be a positive number.")
		return
	}
	if name == "" {
		renderError("Name is required.")
		return
	}
	if len(name) > 100 {
		renderError("Name must be at most 100 characters.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Orgs.Create(ctx, models.Organization{OrgNr: orgNr, OrgName: name}); err != nil {
		if errors.Is(err, orgstore.ErrDuplicateOrganization) {
			renderError("An organization with this registration number already exists.")
			return
		}
		h.Log.Error("organization create failed", zap.Int64("org_nr", orgNr), zap.Error(err))
		renderError("Unable to create the organization. Please try again.")
		return
	}

	if err := h.SessionMgr.SetFlash(w, r, "notice", "Organization created."); err != nil {
		h.Log.Warn("organization create flash failed", zap.Error(err))
	}
	http.Redirect(w, r, "/organizations", http.StatusSeeOther)
}
