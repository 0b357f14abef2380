// internal/app/features/home/handler.go
package home

import (
	"net/http"

	"github.com/MGumpen/aor/internal/app/features/login"
	"github.com/MGumpen/aor/internal/app/system/auth"
)

// Handler serves the root redirect.
type Handler struct{}

// NewHandler constructs a home Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// ServeRoot sends visitors to the login page and signed-in users to the
// landing page for their active role.
//
// Route: GET /
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, login.DestinationForRole(u.ActiveRole), http.StatusSeeOther)
}
