// internal/app/features/obstacles/form.go
package obstacles

import (
	"net/http"
	"strconv"

	"github.com/MGumpen/aor/internal/app/system/formutil"
	"github.com/MGumpen/aor/internal/app/system/normalize"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeForm renders the obstacle report form. The type/coordinates/count
// query parameters pre-populate the form when arriving from the map page
// or from a reloaded draft.
//
// Route: GET /obstacles/form
func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	data := formData{
		Type:        normalize.ObstacleType(query.Get(r, "type")),
		Coordinates: query.Get(r, "coordinates"),
		DraftKey:    query.Get(r, "draft"),
	}
	if n, err := strconv.Atoi(query.Get(r, "count")); err == nil && n >= 0 {
		data.PointCount = n
	}
	formutil.SetBase(&data.Base, r, "Report obstacle", "/dashboard")

	templates.Render(w, r, "obstacle_form", data)
}
