// internal/app/features/users/types.go
package users

import (
	"github.com/MGumpen/aor/internal/app/system/formutil"
	"github.com/MGumpen/aor/internal/domain/models"
)

// listData is the view model for the user listing.
type listData struct {
	formutil.Base

	Users []models.User
	// OrgNames resolves each user's OrgNr to a display name.
	OrgNames map[int64]string
	Notice   string
}

// OrgNameFor returns the organization name for a listed user, or "" when
// the user has none.
func (d listData) OrgNameFor(u models.User) string {
	if u.OrgNr == nil {
		return ""
	}
	return d.OrgNames[*u.OrgNr]
}

// newData is the view model for the new-user form. Submitted values are
// echoed back on validation failure; the password never is.
type newData struct {
	formutil.Base

	FirstName string
	LastName  string
	Email     string
	Roles     []string
	OrgNr     string

	AllRoles []string
	Orgs     []models.Organization
}

// HasRole reports whether the echoed form carried the given role.
func (d newData) HasRole(role string) bool {
	for _, r := range d.Roles {
		if r == role {
			return true
		}
	}
	return false
}
