// internal/app/features/organizations/types.go
package organizations

import (
	"github.com/MGumpen/aor/internal/app/system/formutil"
	"github.com/MGumpen/aor/internal/domain/models"
)

// listData is the view model for the organization listing.
type listData struct {
	formutil.Base

	Orgs   []models.Organization
	Notice string
}

// newData is the view model for the new-organization form.
type newData struct {
	formutil.Base

	OrgNr   string
	OrgName string
}
