// internal/domain/models/user.go
package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents admins, field crew, and registrars.
//
// Roles holds every role granted to the user; ActiveRole (when set) is the
// role the user last chose to act as, and drives the post-login redirect.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName string             `bson:"first_name" json:"first_name"`
	LastName  string             `bson:"last_name" json:"last_name"`
	Email     string             `bson:"email" json:"email"`
	EmailCI   string             `bson:"email_ci" json:"email_ci"` // lowercase, diacritics-stripped

	PasswordHash string `bson:"password_hash,omitempty" json:"-"`

	Roles      []string `bson:"roles" json:"roles"` // admin | crew | registrar
	ActiveRole string   `bson:"active_role,omitempty" json:"active_role,omitempty"`

	// OrgNr references Organizations by registration number. Nil for users
	// without an organization (typically admins).
	OrgNr *int64 `bson:"org_nr,omitempty" json:"org_nr,omitempty"`

	Status string `bson:"status,omitempty" json:"status,omitempty"` // active | disabled

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// FullName returns the display name ("First Last").
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// HasRole reports whether the user holds the given role (case-insensitive).
func (u *User) HasRole(role string) bool {
	want := strings.ToLower(strings.TrimSpace(role))
	for _, r := range u.Roles {
		if strings.ToLower(r) == want {
			return true
		}
	}
	return false
}
