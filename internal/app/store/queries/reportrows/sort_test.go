package reportrows

import (
	"testing"
	"time"

	"github.com/MGumpen/aor/internal/domain/models"
)

func row(name, typ string, height float64, created time.Time, user, org string, statusID int) Row {
	return Row{
		ObstacleName: name,
		ObstacleType: typ,
		Height:       height,
		CreatedAt:    created,
		UserName:     user,
		OrgName:      org,
		StatusID:     statusID,
	}
}

func names(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ObstacleName
	}
	return out
}

func base() []Row {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return []Row{
		row("bravo", "mast", 50, t0.Add(2*time.Hour), "Zoe", "North", models.StatusPending),
		row("Alpha", "line", 20, t0.Add(3*time.Hour), "adam", "South", models.StatusApproved),
		row("charlie", "other", 0, t0.Add(1*time.Hour), "Mia", "East", models.StatusRejected),
		row("delta", "mast", 35, t0.Add(4*time.Hour), "Bea", "West", models.StatusPending),
	}
}

func assertOrder(t *testing.T, rows []Row, want ...string) {
	t.Helper()
	got := names(rows)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSort_NameAsc_CaseInsensitive(t *testing.T) {
	rows := base()
	Sort(rows, "name", "asc")
	assertOrder(t, rows, "Alpha", "bravo", "charlie", "delta")
}

func TestSort_NameDesc(t *testing.T) {
	rows := base()
	Sort(rows, "name", "desc")
	assertOrder(t, rows, "delta", "charlie", "bravo", "Alpha")
}

func TestSort_HeightAsc_ZeroLast(t *testing.T) {
	rows := base()
	Sort(rows, "height", "asc")
	// charlie has no height and sorts after every measured row.
	assertOrder(t, rows, "Alpha", "delta", "bravo", "charlie")
}

func TestSort_HeightDesc_ZeroFirst(t *testing.T) {
	rows := base()
	Sort(rows, "height", "desc")
	assertOrder(t, rows, "charlie", "bravo", "delta", "Alpha")
}

func TestSort_CreatedAt(t *testing.T) {
	rows := base()
	Sort(rows, "createdat", "asc")
	assertOrder(t, rows, "charlie", "bravo", "Alpha", "delta")

	rows = base()
	Sort(rows, "createdat", "desc")
	assertOrder(t, rows, "delta", "Alpha", "bravo", "charlie")
}

func TestSort_User(t *testing.T) {
	rows := base()
	Sort(rows, "user", "asc")
	assertOrder(t, rows, "Alpha", "delta", "charlie", "bravo")
}

func TestSort_Org(t *testing.T) {
	rows := base()
	Sort(rows, "org", "asc")
	assertOrder(t, rows, "charlie", "bravo", "Alpha", "delta")
}

func TestSort_Status(t *testing.T) {
	rows := base()
	Sort(rows, "status", "asc")
	// Approved < Pending < Rejected; the two pending rows keep their
	// relative order (stable sort).
	assertOrder(t, rows, "Alpha", "bravo", "delta", "charlie")
}

func TestSort_UnknownFieldDefaultsToNewestFirst(t *testing.T) {
	rows := base()
	Sort(rows, "bogus", "asc")
	assertOrder(t, rows, "delta", "Alpha", "bravo", "charlie")
}

func TestSort_UnknownDirectionDefaultsToNewestFirst(t *testing.T) {
	rows := base()
	Sort(rows, "name", "sideways")
	assertOrder(t, rows, "delta", "Alpha", "bravo", "charlie")
}

func TestSort_Stable(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []Row{
		row("first", "mast", 10, t0, "a", "x", models.StatusPending),
		row("second", "mast", 10, t0, "b", "y", models.StatusPending),
		row("third", "mast", 10, t0, "c", "z", models.StatusPending),
	}
	Sort(rows, "height", "asc")
	assertOrder(t, rows, "first", "second", "third")
}
