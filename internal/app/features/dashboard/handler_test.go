package dashboard_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/MGumpen/aor/internal/app/features/dashboard"
	"github.com/MGumpen/aor/internal/domain/models"
	"github.com/MGumpen/aor/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*dashboard.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return dashboard.NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestServeDashboard_Admin(t *testing.T) {
	handler, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.SeedStatuses(ctx)
	org := fx.CreateOrganization(ctx, 912345678, "Nett AS")
	crew := fx.CreateUser(ctx, "Kari", "Berg", "kari@example.com", []string{"crew"}, &org.OrgNr)
	obstacle := fx.CreateObstacle(ctx, "Tall mast", "mast", 42)
	fx.CreateReport(ctx, crew.ID, obstacle.ID, models.StatusPending)
	fx.CreateReport(ctx, crew.ID, obstacle.ID, models.StatusApproved)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard", testutil.AdminUser())
	rec := testutil.NewRecorder()

	handler.ServeDashboard(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Administration")
	rec.AssertContains(t, "Users: 1")
	rec.AssertContains(t, "Organizations: 1")
	rec.AssertContains(t, "Pending reports: 1")
	rec.AssertContains(t, "Approved reports: 1")
}

func TestServeDashboard_RegistrarCounters(t *testing.T) {
	handler, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.SeedStatuses(ctx)
	org := fx.CreateOrganization(ctx, 912345678, "Nett AS")
	crew := fx.CreateUser(ctx, "Kari", "Berg", "kari@example.com", []string{"crew"}, &org.OrgNr)
	registrar := fx.CreateUser(ctx, "Ola", "Vik", "ola@example.com", []string{"registrar"}, &org.OrgNr)
	obstacle := fx.CreateObstacle(ctx, "Power line", "line", 12)

	// Two pending assigned to the registrar, one approved assigned, one
	// pending unassigned.
	for i := 0; i < 2; i++ {
		rep := fx.CreateReport(ctx, crew.ID, obstacle.ID, models.StatusPending)
		if err := handler.Reports.Assign(ctx, rep.ID, rep.Version, &registrar.ID); err != nil {
			t.Fatalf("Assign: %v", err)
		}
	}
	approved := fx.CreateReport(ctx, crew.ID, obstacle.ID, models.StatusApproved)
	if err := handler.Reports.Assign(ctx, approved.ID, approved.Version, &registrar.ID); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	fx.CreateReport(ctx, crew.ID, obstacle.ID, models.StatusPending)

	user := testutil.RegistrarUser(org.OrgNr)
	user.ID = registrar.ID.Hex()
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard", user)
	rec := testutil.NewRecorder()

	handler.ServeDashboard(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Assigned to me: 2")
	rec.AssertContains(t, "Unassigned pending: 1")
}

func TestServeDashboard_CrewRecentReports(t *testing.T) {
	handler, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.SeedStatuses(ctx)
	org := fx.CreateOrganization(ctx, 912345678, "Nett AS")
	crew := fx.CreateUser(ctx, "Kari", "Berg", "kari@example.com", []string{"crew"}, &org.OrgNr)
	other := fx.CreateUser(ctx, "Per", "Holm", "per@example.com", []string{"crew"}, &org.OrgNr)
	mine := fx.CreateObstacle(ctx, "Tower crane", "other", 55)
	theirs := fx.CreateObstacle(ctx, "Wind mast", "mast", 80)
	fx.CreateReport(ctx, crew.ID, mine.ID, models.StatusPending)
	fx.CreateReport(ctx, other.ID, theirs.ID, models.StatusPending)

	user := testutil.CrewUser(org.OrgNr)
	user.ID = crew.ID.Hex()
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard", user)
	rec := testutil.NewRecorder()

	handler.ServeDashboard(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Tower crane")
	rec.AssertContains(t, "Pending")
	if strings.Contains(rec.Body.String(), "Wind mast") {
		t.Errorf("crew dashboard shows another user's report")
	}
}

func TestServeDashboard_Unauthenticated(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.NewRequest(http.MethodGet, "/dashboard")
	rec := testutil.NewRecorder()

	handler.ServeDashboard(rec.ResponseRecorder, req)

	rec.AssertContains(t, "Please sign in to continue.")
}
