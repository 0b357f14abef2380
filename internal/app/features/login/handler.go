// internal/app/features/login/handler.go
package login

import (
	"context"
	"net/http"
	"strings"

	loginstore "github.com/MGumpen/aor/internal/app/store/logins"
	userstore "github.com/MGumpen/aor/internal/app/store/users"
	"github.com/MGumpen/aor/internal/app/system/auth"
	"github.com/MGumpen/aor/internal/app/system/timeouts"
	"github.com/MGumpen/aor/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/gorilla/csrf"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Users      *userstore.Store
	Logins     *loginstore.Store
}

// NewHandler constructs a login Handler.
func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		SessionMgr: sessionMgr,
		Users:      userstore.New(db),
		Logins:     loginstore.New(db),
	}
}

type loginFormData struct {
	Title     string
	Error     string
	Email     string
	ReturnURL string
	CSRFField any
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "login", loginFormData{
		Title:     "Sign in",
		ReturnURL: query.Get(r, "return"),
		CSRFField: csrf.TemplateField(r),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderFormWithError(w, r, "Invalid form data.", "")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		h.renderFormWithError(w, r, "Please enter your email and password.", email)
		return
	}

	// Fail fast with a useful message when the database is down rather
	// than surfacing a credential error.
	pingCtx, cancelPing := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancelPing()
	if err := h.DB.Client().Ping(pingCtx, readpref.Primary()); err != nil {
		h.Log.Error("login: mongo ping failed", zap.Error(err))
		h.renderFormWithError(w, r, "The service is temporarily unavailable. Please try again shortly.", email)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err == mongo.ErrNoDocuments {
		h.renderFormWithError(w, r, "Invalid email or password.", email)
		return
	}
	if err != nil {
		h.Log.Error("login: user lookup failed", zap.Error(err))
		h.renderFormWithError(w, r, "Unable to sign in right now. Please try again.", email)
		return
	}
	if u.Status == "disabled" {
		h.renderFormWithError(w, r, "This account has been disabled.", email)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		h.renderFormWithError(w, r, "Invalid email or password.", email)
		return
	}

	h.createSessionAndRedirect(w, r, u)
}

func (h *Handler) createSessionAndRedirect(w http.ResponseWriter, r *http.Request, u *models.User) {
	role := strings.ToLower(u.ActiveRole)
	if role == "" && len(u.Roles) > 0 {
		role = strings.ToLower(u.Roles[0])
	}

	var orgNr int64
	if u.OrgNr != nil {
		orgNr = *u.OrgNr
	}

	sessionUser := &auth.SessionUser{
		ID:         u.ID.Hex(),
		Name:       u.FullName(),
		Email:      u.Email,
		Roles:      u.Roles,
		ActiveRole: role,
		OrgNr:      orgNr,
	}
	if err := h.SessionMgr.SignIn(w, r, sessionUser); err != nil {
		h.Log.Error("login: save session failed", zap.Error(err), zap.String("email", u.Email))
		h.renderFormWithError(w, r, "Unable to create session. Please try again.", u.Email)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()
	if err := h.Logins.CreateFrom(ctx, r, u.ID, role); err != nil {
		// A failed audit insert never blocks the login itself.
		h.Log.Warn("login: record insert failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
	}

	dest := urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "")
	if dest == "" {
		dest = DestinationForRole(role)
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// DestinationForRole maps the active role to its post-login landing page.
// Crew go straight to the reporting form; everyone else to the dashboard.
func DestinationForRole(role string) string {
	if strings.EqualFold(role, "crew") {
		return "/obstacles/form"
	}
	return "/dashboard"
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, email string) {
	ret := strings.TrimSpace(r.FormValue("return"))
	if ret == "" {
		ret = query.Get(r, "return")
	}

	templates.Render(w, r, "login", loginFormData{
		Title:     "Sign in",
		Error:     msg,
		Email:     email,
		ReturnURL: ret,
		CSRFField: csrf.TemplateField(r),
	})
}
