// internal/app/features/obstacles/templates.go
package obstacles

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "obstacles",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
