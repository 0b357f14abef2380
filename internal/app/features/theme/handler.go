// internal/app/features/theme/handler.go
package theme

import (
	"net/http"
	"strings"

	"github.com/MGumpen/aor/internal/app/system/navigation"
)

// Handler stores the visitor's theme choice in a session-scoped cookie.
type Handler struct{}

// NewHandler constructs a theme Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// HandleSet records the requested theme. Only "light" and "dark" are
// accepted; anything else is refused without touching the cookie.
//
// Route: POST /theme
func (h *Handler) HandleSet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	value := strings.ToLower(strings.TrimSpace(r.FormValue("theme")))
	if value != "light" && value != "dark" {
		http.Error(w, "theme must be light or dark", http.StatusBadRequest)
		return
	}

	// Session-scoped: no MaxAge/Expires, gone when the browser closes.
	http.SetCookie(w, &http.Cookie{
		Name:     "theme",
		Value:    value,
		Path:     "/",
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})

	back := navigation.SafeBackURL(r, navigation.BackURLOptions{Fallback: "/"})
	http.Redirect(w, r, back, http.StatusSeeOther)
}
