package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session constants                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	isAuthKey     = "is_authenticated"
	userIDKey     = "user_id"
	userNameKey   = "user_name"
	userEmailKey  = "user_email"
	userRolesKey  = "user_roles" // comma-separated
	activeRoleKey = "active_role"
	orgNrKey      = "org_nr"
)

// SessionUser is what we cache in the session & inject into r.Context().
type SessionUser struct {
	ID         string
	Name       string
	Email      string
	Roles      []string
	ActiveRole string
	OrgNr      int64 // 0 means no organization
}

// HasRole reports whether the session user holds the given role.
func (u *SessionUser) HasRole(role string) bool {
	want := strings.ToLower(strings.TrimSpace(role))
	for _, r := range u.Roles {
		if strings.ToLower(r) == want {
			return true
		}
	}
	return false
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// WithTestUser injects a SessionUser directly into the request context.
// Test-only helper; bypasses the session middleware.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
| SessionManager                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager owns the cookie store and the auth middleware. One instance
// is created in bootstrap and shared by all feature routers.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds a cookie-backed session manager. The `secure`
// flag controls whether cookies are marked Secure and which SameSite mode
// is used: in production (secure=true) cookies are Secure + SameSite=None;
// over http://localhost, Lax with secure=false so cookies are accepted.
func NewSessionManager(sessionKey, sessionName, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: sessionName, log: logger}, nil
}

// SignIn writes the user into the session cookie.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, u *SessionUser) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = u.ID
	sess.Values[userNameKey] = u.Name
	sess.Values[userEmailKey] = u.Email
	sess.Values[userRolesKey] = strings.Join(u.Roles, ",")
	sess.Values[activeRoleKey] = u.ActiveRole
	sess.Values[orgNrKey] = fmt.Sprintf("%d", u.OrgNr)
	return sess.Save(r, w)
}

// SignOut clears the session cookie.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// LoadSessionUser injects the user into context if they are logged in.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.store.Get(r, sm.name)
		if err != nil {
			// A decode failure means a stale or tampered cookie (for
			// example after a session key rotation). Treat the request
			// as anonymous; sessions.Store already returned a fresh
			// session we can continue with.
			if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
				sm.log.Warn("session cookie invalid, treating as anonymous", zap.Error(err))
			} else {
				sm.log.Error("session store error", zap.Error(err))
			}
		}

		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			u := &SessionUser{
				ID:         getString(sess, userIDKey),
				Name:       getString(sess, userNameKey),
				Email:      getString(sess, userEmailKey),
				ActiveRole: getString(sess, activeRoleKey),
			}
			if roles := getString(sess, userRolesKey); roles != "" {
				u.Roles = strings.Split(roles, ",")
			}
			fmt.Sscanf(getString(sess, orgNrKey), "%d", &u.OrgNr)
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a user in context (set by LoadSessionUser).
// If not signed in:
//   - HTML: 303 redirect to /login?return=...
//   - API:  401 Unauthorized with a plain error body.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		if wantsHTML(r) {
			ret := url.QueryEscape(currentURI(r))
			http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
			return
		}
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

// RequireRole ensures there is a user holding at least one of the allowed
// roles in context. A user passes when ANY of their granted roles matches,
// not just the active one, so an admin acting as crew keeps admin pages.
func (sm *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)

			// Not signed in → 401 semantics.
			if !ok {
				if wantsHTML(r) {
					ret := url.QueryEscape(currentURI(r))
					http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
					return
				}
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			// Signed in but wrong role → 403 semantics.
			has := false
			for _, role := range u.Roles {
				if _, allowed := set[strings.ToLower(role)]; allowed {
					has = true
					break
				}
			}
			if !has {
				if wantsHTML(r) {
					http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
					return
				}
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| One-shot flash values                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

// SetFlash stores a one-shot value under the given key. It is returned by
// the next Flash call for the same key and then removed; used for the
// transient workflow messages and the draft-delete handshake.
func (sm *SessionManager) SetFlash(w http.ResponseWriter, r *http.Request, key, value string) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.AddFlash(value, key)
	return sess.Save(r, w)
}

// Flash returns and clears the one-shot value stored under key, if any.
func (sm *SessionManager) Flash(w http.ResponseWriter, r *http.Request, key string) (string, bool) {
	sess, _ := sm.store.Get(r, sm.name)
	flashes := sess.Flashes(key)
	if len(flashes) == 0 {
		return "", false
	}
	// Flashes() already removed the values; persist the removal.
	_ = sess.Save(r, w)
	if s, ok := flashes[0].(string); ok {
		return s, true
	}
	return "", false
}

// helpers

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func wantsHTML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html")
}

func currentURI(r *http.Request) string {
	// Preserve path + query as a return param.
	u := *r.URL
	return u.RequestURI()
}
