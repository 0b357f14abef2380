package theme_test

import (
	"net/http"
	"testing"

	"github.com/MGumpen/aor/internal/app/features/theme"
	"github.com/MGumpen/aor/internal/testutil"
)

func TestHandleSet(t *testing.T) {
	handler := theme.NewHandler()

	req := testutil.NewFormRequest("/theme", "theme=dark", testutil.CrewUser(0))
	rec := testutil.NewRecorder()

	handler.HandleSet(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/")

	cookies := rec.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == "theme" {
			found = true
			if c.Value != "dark" {
				t.Errorf("theme cookie = %q, want dark", c.Value)
			}
			if c.MaxAge != 0 || !c.Expires.IsZero() {
				t.Error("theme cookie should be session-scoped")
			}
		}
	}
	if !found {
		t.Fatal("theme cookie not set")
	}
}

func TestHandleSet_RejectsUnknownTheme(t *testing.T) {
	handler := theme.NewHandler()

	req := testutil.NewFormRequest("/theme", "theme=neon", testutil.CrewUser(0))
	rec := testutil.NewRecorder()

	handler.HandleSet(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	if len(rec.Result().Cookies()) != 0 {
		t.Error("no cookie should be set for a rejected theme")
	}
}
