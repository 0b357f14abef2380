// internal/app/features/obstacles/routes.go
package obstacles

import (
	"github.com/MGumpen/aor/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Get("/form", h.ServeForm)
	r.Post("/form", h.HandleSubmit)
	r.Get("/last30days", h.HandleLast30Days)
	return r
}
