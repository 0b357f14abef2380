package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/MGumpen/aor/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestUser represents user data for testing HTTP handlers.
type TestUser struct {
	ID         string
	Name       string
	Email      string
	Roles      []string
	ActiveRole string
	OrgNr      int64
}

// AdminUser returns a TestUser with the admin role.
func AdminUser() TestUser {
	return TestUser{
		ID:         primitive.NewObjectID().Hex(),
		Name:       "Test Admin",
		Email:      "admin@test.com",
		Roles:      []string{"admin"},
		ActiveRole: "admin",
	}
}

// CrewUser returns a TestUser with the crew role and organization.
func CrewUser(orgNr int64) TestUser {
	return TestUser{
		ID:         primitive.NewObjectID().Hex(),
		Name:       "Test Crew",
		Email:      "crew@test.com",
		Roles:      []string{"crew"},
		ActiveRole: "crew",
		OrgNr:      orgNr,
	}
}

// RegistrarUser returns a TestUser with the registrar role and organization.
func RegistrarUser(orgNr int64) TestUser {
	return TestUser{
		ID:         primitive.NewObjectID().Hex(),
		Name:       "Test Registrar",
		Email:      "registrar@test.com",
		Roles:      []string{"registrar"},
		ActiveRole: "registrar",
		OrgNr:      orgNr,
	}
}

// WithUser adds a user to the request context for testing authenticated handlers.
// This bypasses the session middleware and injects the user directly.
func WithUser(r *http.Request, user TestUser) *http.Request {
	sessionUser := &auth.SessionUser{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Roles:      user.Roles,
		ActiveRole: user.ActiveRole,
		OrgNr:      user.OrgNr,
	}
	return auth.WithTestUser(r, sessionUser)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewAuthenticatedRequest creates an HTTP request with a user in context.
func NewAuthenticatedRequest(method, target string, user TestUser) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return WithUser(req, user)
}

// NewFormRequest creates a POST request with form-encoded body and a user
// in context.
func NewFormRequest(target, body string, user TestUser) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return WithUser(req, user)
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertRedirect checks for a redirect to the expected location.
func (r *ResponseRecorder) AssertRedirect(t interface{ Errorf(string, ...any) }, expectedLocation string) {
	if r.Code != http.StatusSeeOther && r.Code != http.StatusFound && r.Code != http.StatusMovedPermanently {
		t.Errorf("expected redirect status, got %d", r.Code)
	}
	location := r.Header().Get("Location")
	if location != expectedLocation {
		t.Errorf("redirect location: got %q, want %q", location, expectedLocation)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}
