// internal/app/features/users/activerole.go
package users

import (
	"context"
	"net/http"

	uierrors "github.com/MGumpen/aor/internal/app/features/errors"
	"github.com/MGumpen/aor/internal/app/system/auth"
	"github.com/MGumpen/aor/internal/app/system/normalize"
	"github.com/MGumpen/aor/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleSetActiveRole records the role a user acts as. The role must be
// one of the user's granted roles. When an admin changes their own account
// the session is refreshed so the new active role applies immediately.
//
// Route: POST /users/{id}/active-role
func (h *Handler) HandleSetActiveRole(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderNotFound(w, r, "User not found.")
		return
	}
	role := normalize.Role(r.FormValue("role"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Users.SetActiveRole(ctx, id, role); err != nil {
		if err == mongo.ErrNoDocuments {
			if flashErr := h.SessionMgr.SetFlash(w, r, "error",
				"The user does not hold that role."); flashErr != nil {
				h.Log.Warn("active role flash failed", zap.Error(flashErr))
			}
			http.Redirect(w, r, "/users", http.StatusSeeOther)
			return
		}
		h.Log.Error("set active role failed",
			zap.String("user_id", id.Hex()), zap.String("role", role), zap.Error(err))
		uierrors.RenderServerError(w, r)
		return
	}

	// Changing your own account takes effect in the current session too.
	if current, ok := auth.CurrentUser(r); ok && current.ID == id.Hex() {
		current.ActiveRole = role
		if err := h.SessionMgr.SignIn(w, r, current); err != nil {
			h.Log.Warn("session refresh failed", zap.Error(err))
		}
	}

	if err := h.SessionMgr.SetFlash(w, r, "notice", "Active role updated."); err != nil {
		h.Log.Warn("active role flash failed", zap.Error(err))
	}
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}
