// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/MGumpen/aor/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's active role (lowercased), name, Mongo ObjectID,
// and a found flag. If no user is present in context or the user ID is
// malformed, it returns "visitor", "", NilObjectID, false, so callers can
// trust that ok=true means a valid, authenticated user with a valid ObjectID.
// When no ActiveRole is set, the first granted role is used.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	role = strings.ToLower(user.ActiveRole)
	if role == "" && len(user.Roles) > 0 {
		role = strings.ToLower(user.Roles[0])
	}
	return role, user.Name, userID, true
}

// IsAdmin reports whether the current request's user holds the admin role.
func IsAdmin(r *http.Request) bool {
	user, ok := auth.CurrentUser(r)
	return ok && user.HasRole("admin")
}

// IsCrew reports whether the current request's user holds the crew role.
func IsCrew(r *http.Request) bool {
	user, ok := auth.CurrentUser(r)
	return ok && user.HasRole("crew")
}

// IsRegistrar reports whether the current request's user holds the registrar role.
func IsRegistrar(r *http.Request) bool {
	user, ok := auth.CurrentUser(r)
	return ok && user.HasRole("registrar")
}

// UserOrgNr returns the current user's organization number.
// Returns 0 if the user is not logged in or has no organization.
func UserOrgNr(r *http.Request) int64 {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return 0
	}
	return user.OrgNr
}
