package home_test

import (
	"net/http"
	"testing"

	"github.com/MGumpen/aor/internal/app/features/home"
	"github.com/MGumpen/aor/internal/testutil"
)

func TestServeRoot_Anonymous(t *testing.T) {
	handler := home.NewHandler()

	req := testutil.NewRequest(http.MethodGet, "/")
	rec := testutil.NewRecorder()

	handler.ServeRoot(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/login")
}

func TestServeRoot_SignedIn(t *testing.T) {
	handler := home.NewHandler()

	tests := []struct {
		user testutil.TestUser
		want string
	}{
		{testutil.AdminUser(), "/dashboard"},
		{testutil.CrewUser(0), "/obstacles/form"},
		{testutil.RegistrarUser(0), "/dashboard"},
	}
	for _, tt := range tests {
		req := testutil.NewAuthenticatedRequest(http.MethodGet, "/", tt.user)
		rec := testutil.NewRecorder()

		handler.ServeRoot(rec.ResponseRecorder, req)

		rec.AssertRedirect(t, tt.want)
	}
}
