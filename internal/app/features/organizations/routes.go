// internal/app/features/organizations/routes.go
package organizations

import (
	"github.com/MGumpen/aor/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireRole("admin"))
	r.Get("/", h.ServeList)
	r.Get("/new", h.ServeNew)
	r.Post("/new", h.HandleCreate)
	r.Post("/{orgNr}/delete", h.HandleDelete)
	return r
}
