// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	dashboardfeature "github.com/MGumpen/aor/internal/app/features/dashboard"
	draftsfeature "github.com/MGumpen/aor/internal/app/features/drafts"
	errorsfeature "github.com/MGumpen/aor/internal/app/features/errors"
	healthfeature "github.com/MGumpen/aor/internal/app/features/health"
	homefeature "github.com/MGumpen/aor/internal/app/features/home"
	loginfeature "github.com/MGumpen/aor/internal/app/features/login"
	logoutfeature "github.com/MGumpen/aor/internal/app/features/logout"
	obstaclesfeature "github.com/MGumpen/aor/internal/app/features/obstacles"
	organizationsfeature "github.com/MGumpen/aor/internal/app/features/organizations"
	reportsfeature "github.com/MGumpen/aor/internal/app/features/reports"
	themefeature "github.com/MGumpen/aor/internal/app/features/theme"
	usersfeature "github.com/MGumpen/aor/internal/app/features/users"
	"github.com/MGumpen/aor/internal/app/system/auth"
	"github.com/MGumpen/aor/internal/app/system/drafts"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// AOR initializes the template engine, applies session and CSRF middleware,
// and mounts feature routers for all application areas: home, login,
// dashboards, obstacle reporting, report review, organizations, users,
// drafts, and theming.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// All state-changing form posts carry a CSRF token rendered by formutil.
	r.Use(csrf.Protect(
		[]byte(appCfg.CSRFKey),
		csrf.Secure(secure),
		csrf.Path("/"),
	))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Root redirects to the signed-in user's landing page.
	homeHandler := homefeature.NewHandler()
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, sessionMgr, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)
	r.NotFound(errorsHandler.NotFound)

	// Role-based dashboards
	dashboardHandler := dashboardfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	// Obstacle intake
	obstaclesHandler := obstaclesfeature.NewHandler(deps.MongoDatabase, sessionMgr, logger)
	r.Mount("/obstacles", obstaclesfeature.Routes(obstaclesHandler, sessionMgr))

	// Report review
	reportsHandler := reportsfeature.NewHandler(deps.MongoDatabase, sessionMgr, logger)
	r.Mount("/reports", reportsfeature.Routes(reportsHandler, sessionMgr))

	// Organization management
	orgHandler := organizationsfeature.NewHandler(deps.MongoDatabase, sessionMgr, logger)
	r.Mount("/organizations", organizationsfeature.Routes(orgHandler, sessionMgr))

	// User management
	usersHandler := usersfeature.NewHandler(deps.MongoDatabase, sessionMgr, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler, sessionMgr))

	// Obstacle form drafts (JSON API backing the form's save/restore UI)
	draftsHandler := draftsfeature.NewHandler(drafts.NewMemoryStorage(), sessionMgr, logger)
	r.Mount("/drafts", draftsfeature.Routes(draftsHandler, sessionMgr))

	// Theme preference cookie
	themeHandler := themefeature.NewHandler()
	r.Mount("/theme", themefeature.Routes(themeHandler))

	return r, nil
}
