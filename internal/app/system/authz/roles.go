// internal/app/system/authz/roles.go
package authz

import (
	"net/http"
	"strings"

	"github.com/MGumpen/aor/internal/app/system/auth"
)

// HasAnyRole reports whether the current request's user holds any of the
// given roles. Returns false if no user is present (i.e., not signed in).
func HasAnyRole(r *http.Request, roles ...string) bool {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if user.HasRole(strings.TrimSpace(want)) {
			return true
		}
	}
	return false
}

// HasRole is a convenience wrapper for a single role.
func HasRole(r *http.Request, role string) bool {
	return HasAnyRole(r, role)
}

// ActiveRole returns the current user's active role (lowercased) and whether
// a user is present.
func ActiveRole(r *http.Request) (string, bool) {
	role, _, _, ok := UserCtx(r)
	return role, ok
}
