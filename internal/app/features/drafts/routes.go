// internal/app/features/drafts/routes.go
package drafts

import (
	"github.com/MGumpen/aor/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Get("/", h.HandleList)
	r.Post("/save", h.HandleSave)
	r.Post("/autosave", h.HandleAutosave)
	r.Get("/pending-delete", h.HandlePendingDelete)
	r.Get("/{key}", h.HandleLoad)
	r.Post("/{key}/delete", h.HandleDelete)
	return r
}
