// internal/app/features/users/new.go
package users

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	userstore "github.com/MGumpen/aor/internal/app/store/users"
	"github.com/MGumpen/aor/internal/app/system/formutil"
	"github.com/MGumpen/aor/internal/app/system/inputval"
	"github.com/MGumpen/aor/internal/app/system/normalize"
	"github.com/MGumpen/aor/internal/app/system/timeouts"
	"github.com/MGumpen/aor/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ServeNew renders the new-user form.
//
// Route: GET /users/new
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	data := newData{AllRoles: inputval.AllowedRolesList()}
	orgs, err := h.Orgs.List(ctx)
	if err != nil {
		h.Log.Warn("organization list failed", zap.Error(err))
	}
	data.Orgs = orgs
	formutil.SetBase(&data.Base, r, "New user", "/users")
	templates.Render(w, r, "user_new", data)
}

// HandleCreate validates and inserts a new user with a bcrypt password
// hash. Duplicate emails are refused.
//
// Route: POST /users/new
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	firstName := strings.TrimSpace(r.FormValue("first_name"))
	lastName := strings.TrimSpace(r.FormValue("last_name"))
	email := normalize.Email(r.FormValue("email"))
	password := r.FormValue("password")
	roles := r.PostForm["roles"]
	rawOrgNr := strings.TrimSpace(r.FormValue("org_nr"))

	renderError := func(msg string) {
		data := newData{
			FirstName: firstName,
			LastName:  lastName,
			Email:     email,
			Roles:     roles,
			OrgNr:     rawOrgNr,
			AllRoles:  inputval.AllowedRolesList(),
		}
		if orgs, err := h.Orgs.List(ctx); err == nil {
			data.Orgs = orgs
		}
		formutil.SetBase(&data.Base, r, "New user", "/users")
		data.SetError(msg)
		templates.Render(w, r, "user_new", data)
	}

	if firstName == "" || lastName == "" {
		renderError("First and last name are required.")
		return
	}
	if !inputval.IsValidEmail(email) {
		renderError("A valid email address is required.")
		return
	}
	if len(password) < 8 {
		renderError("Password must be at least 8 characters.")
		return
	}
	if len(roles) == 0 {
		renderError("Select at least one role.")
		return
	}
	for _, role := range roles {
		if !inputval.IsValidRole(role) {
			renderError("Unknown role selected.")
			return
		}
	}

	var orgNr *int64
	if rawOrgNr != "" {
		n, err := strconv.ParseInt(rawOrgNr, 10, 64)
		if err != nil || n <= 0 {
			renderError("Organization number must be a positive number.")
			return
		}
		if _, err := h.Orgs.GetByOrgNr(ctx, n); err != nil {
			renderError("Unknown organization.")
			return
		}
		orgNr = &n
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.Log.Error("password hash failed", zap.Error(err))
		renderError("Unable to create the user. Please try again.")
		return
	}

	_, err = h.Users.Create(ctx, models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: string(hash),
		Roles:        roles,
		OrgNr:        orgNr,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			renderError("A user with this email already exists.")
			return
		}
		h.Log.Error("user create failed", zap.String("email", email), zap.Error(err))
		renderError("Unable to create the user. Please try again.")
		return
	}

	if err := h.SessionMgr.SetFlash(w, r, "notice", "User created."); err != nil {
		h.Log.Warn("user create flash failed", zap.Error(err))
	}
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}
