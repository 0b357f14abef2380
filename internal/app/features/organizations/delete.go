// internal/app/features/organizations/delete.go
package organizations

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	uierrors "github.com/MGumpen/aor/internal/app/features/errors"
	orgstore "github.com/MGumpen/aor/internal/app/store/organizations"
	"github.com/MGumpen/aor/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleDelete removes an organization. Deletes are refused while any user
// still references the organization.
//
// Route: POST /organizations/{orgNr}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	orgNr, err := strconv.ParseInt(chi.URLParam(r, "orgNr"), 10, 64)
	if err != nil || orgNr <= 0 {
		uierrors.RenderNotFound(w, r, "Organization not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	switch err := h.Orgs.Delete(ctx, orgNr); {
	case err == nil:
		if flashErr := h.SessionMgr.SetFlash(w, r, "notice", "Organization deleted."); flashErr != nil {
			h.Log.Warn("organization delete flash failed", zap.Error(flashErr))
		}
	case errors.Is(err, orgstore.ErrOrganizationInUse):
		if flashErr := h.SessionMgr.SetFlash(w, r, "error",
			"The organization still has users and cannot be deleted."); flashErr != nil {
			h.Log.Warn("organization delete flash failed", zap.Error(flashErr))
		}
	case errors.Is(err, mongo.ErrNoDocuments):
		uierrors.RenderNotFound(w, r, "Organization not found.")
		return
	default:
		h.Log.Error("organization delete failed", zap.Int64("org_nr", orgNr), zap.Error(err))
		uierrors.RenderServerError(w, r)
		return
	}

	http.Redirect(w, r, "/organizations", http.StatusSeeOther)
}
