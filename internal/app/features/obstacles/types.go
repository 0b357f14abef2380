// internal/app/features/obstacles/types.go
package obstacles

import "github.com/MGumpen/aor/internal/app/system/formutil"

// formData is the view model for the obstacle report form. On validation
// failure the submitted values are echoed back along with per-field errors
// and the type/coordinates context so the client-side map can redraw.
type formData struct {
	formutil.Base

	Name         string
	Description  string
	Type         string
	Coordinates  string
	PointCount   int
	HeightMeters string
	HeightFeet   string
	MastType     string
	HasLighting  bool
	WireCount    int
	Category     string

	DraftKey string

	FieldErrors map[string][]string
	Errors      []string
}
