// internal/app/features/reports/routes.go
package reports

import (
	"github.com/MGumpen/aor/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireRole("admin", "registrar"))
	r.Get("/", h.ServeList)
	r.Get("/assigned", h.ServeAssigned)
	r.Post("/{id}/approve", h.HandleApprove)
	r.Post("/{id}/reject", h.HandleReject)
	r.Post("/{id}/assign", h.HandleAssign)
	return r
}
