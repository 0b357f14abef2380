// internal/app/features/reports/types.go
package reports

import (
	"github.com/MGumpen/aor/internal/app/store/queries/reportrows"
	"github.com/MGumpen/aor/internal/app/system/formutil"
	"github.com/MGumpen/aor/internal/domain/models"
)

// listData is the view model for the report listing pages.
type listData struct {
	formutil.Base

	Rows []reportrows.Row

	// Active sort so the column headers can flip direction.
	SortField string
	SortDir   string

	// Status filter currently applied; 0 means all.
	StatusFilter int
	Statuses     []models.Status

	// Registrars eligible for assignment, shown in the assign dropdown.
	Registrars []models.User

	// AssignedOnly marks the registrar's "my reports" view.
	AssignedOnly bool

	Notice string
}
