package drafts

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"
)

func fixedClock(millis int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(millis) }
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"mast", "mast"},
		{"Power Line", "power-line"},
		{"  weird__chars!!here  ", "weird-chars-here"},
		{"UPPER", "upper"},
		{"---", ""},
		{"", ""},
		{"a--b", "a-b"},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewKey(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	got := NewKey(PrefixSaved, "User One", "Mast", at)
	want := "draft_user-one_mast_1700000000000"
	if got != want {
		t.Errorf("NewKey = %q, want %q", got, want)
	}

	auto := NewKey(PrefixAutosave, "u1", "line", at)
	if !IsAutosaveKey(auto) {
		t.Errorf("expected autosave key, got %q", auto)
	}
	if !IsDraftKey(got) || !IsDraftKey(auto) {
		t.Error("both prefixes must count as draft keys")
	}
	if IsDraftKey("theme") {
		t.Error("unrelated keys must not count as draft keys")
	}
}

func TestCanonicalize_Aliases(t *testing.T) {
	raw := map[string]any{
		"obstacleName": "North mast",
		"ObstacleData": map[string]any{
			"ObstacleDescription": "tall one",
		},
		"type":        "mast",
		"mastType":    "  lattice  ",
		"hasLighting": "yes",
	}

	d := Canonicalize(raw)
	if d.Name != "North mast" {
		t.Errorf("Name = %q", d.Name)
	}
	if d.Description != "tall one" {
		t.Errorf("Description = %q (dotted alias)", d.Description)
	}
	if d.MastType != "lattice" {
		t.Errorf("MastType = %q, want trimmed", d.MastType)
	}
	if d.HasLighting != "true" {
		t.Errorf("HasLighting = %q, want %q", d.HasLighting, "true")
	}
}

func TestCanonicalize_AliasOrder(t *testing.T) {
	// "name" is the first alias and wins over "obstacleName" when both
	// are non-empty; an empty first alias falls through.
	d := Canonicalize(map[string]any{"name": "primary", "obstacleName": "secondary"})
	if d.Name != "primary" {
		t.Errorf("Name = %q, want first alias", d.Name)
	}

	d = Canonicalize(map[string]any{"name": "  ", "obstacleName": "secondary"})
	if d.Name != "secondary" {
		t.Errorf("Name = %q, want fallback alias", d.Name)
	}
}

func TestCanonicalize_BooleanForms(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{true, "true"},
		{false, "false"},
		{"yes", "true"},
		{"No", "false"},
		{"TRUE", "true"},
		{"maybe", ""},
	}
	for _, tt := range tests {
		d := Canonicalize(map[string]any{"hasLighting": tt.in})
		if d.HasLighting != tt.want {
			t.Errorf("hasLighting %v → %q, want %q", tt.in, d.HasLighting, tt.want)
		}
	}
}

func TestCanonicalize_CoordinatesStringified(t *testing.T) {
	d := Canonicalize(map[string]any{
		"coordinates": []any{[]any{60.1, 10.2}, []any{60.2, 10.3}},
	})
	if d.Coordinates != "[[60.1,10.2],[60.2,10.3]]" {
		t.Errorf("Coordinates = %q", d.Coordinates)
	}
	if d.PointCount != 2 {
		t.Errorf("PointCount = %d, want derived 2", d.PointCount)
	}
}

func TestCanonicalize_PointCountPrecedence(t *testing.T) {
	// Explicit count wins over the coordinates length.
	d := Canonicalize(map[string]any{
		"pointCount":  "5",
		"coordinates": "[[1,2]]",
	})
	if d.PointCount != 5 {
		t.Errorf("PointCount = %d, want explicit 5", d.PointCount)
	}

	// Negative explicit count falls back to coordinates.
	d = Canonicalize(map[string]any{
		"pointCount":  "-1",
		"coordinates": "[[1,2],[3,4],[5,6]]",
	})
	if d.PointCount != 3 {
		t.Errorf("PointCount = %d, want 3 from coordinates", d.PointCount)
	}

	// Nothing parseable → 0.
	d = Canonicalize(map[string]any{"coordinates": "not json"})
	if d.PointCount != 0 {
		t.Errorf("PointCount = %d, want 0", d.PointCount)
	}
}

func TestCanonicalize_NaNTreatedAsEmpty(t *testing.T) {
	d := Canonicalize(map[string]any{"heightMeters": math.NaN()})
	if d.HeightMeters != "" {
		t.Errorf("HeightMeters = %q, want empty for NaN", d.HeightMeters)
	}
}

func TestCanonicalize_HeightDerivation(t *testing.T) {
	// Feet only → meters derived.
	d := Canonicalize(map[string]any{"heightFeet": "100"})
	if d.HeightMeters != "30.48" {
		t.Errorf("derived HeightMeters = %q, want %q", d.HeightMeters, "30.48")
	}

	// Meters only → feet back-derived, rounded to one decimal.
	d = Canonicalize(map[string]any{"heightMeters": "30.48"})
	if d.HeightFeet != "100" {
		t.Errorf("derived HeightFeet = %q, want %q", d.HeightFeet, "100")
	}

	d = Canonicalize(map[string]any{"heightMeters": "10"})
	if d.HeightFeet != "32.8" {
		t.Errorf("derived HeightFeet = %q, want %q", d.HeightFeet, "32.8")
	}
}

func TestCanonicalize_Idempotent(t *testing.T) {
	// Canonicalizing an already-canonical payload must change nothing:
	// a draft that round-trips through storage and comes back as JSON
	// resolves to the identical Draft.
	raw := map[string]any{
		"ownerId":     "user1",
		"name":        "North mast",
		"description": "tall one",
		"type":        "mast",
		"coordinates": []any{[]any{60.1, 10.2}, []any{60.2, 10.3}},
		"heightFeet":  "100",
		"mastType":    "lattice",
		"hasLighting": "yes",
	}
	first := Canonicalize(raw)

	payload, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	second := Canonicalize(decoded)

	if second != first {
		t.Errorf("re-canonicalized draft differs:\n first = %+v\nsecond = %+v", first, second)
	}
}

func TestManager_SaveGeneratesAndReusesKey(t *testing.T) {
	store := NewMemoryStorage()
	m := NewManager(store).WithClock(fixedClock(1700000000000))

	key, err := m.Save("user1", map[string]any{"name": "Mast A", "type": "mast"}, "")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if key != "draft_user1_mast_1700000000000" {
		t.Errorf("key = %q", key)
	}

	// A later save with the same key upserts rather than minting a new key.
	m.WithClock(fixedClock(1700000099999))
	key2, err := m.Save("user1", map[string]any{"name": "Mast A v2", "type": "mast"}, key)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if key2 != key {
		t.Errorf("expected key reuse, got %q vs %q", key2, key)
	}
	if len(store.Keys()) != 1 {
		t.Errorf("expected a single stored draft, got keys %v", store.Keys())
	}

	d, err := m.Load(key, "user1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Name != "Mast A v2" {
		t.Errorf("Name = %q, want latest save", d.Name)
	}
}

func TestManager_SaveRejectsForeignKey(t *testing.T) {
	store := NewMemoryStorage()
	m := NewManager(store).WithClock(fixedClock(1700000000000))

	key, _ := m.Save("user1", map[string]any{"name": "x", "type": "mast"}, "")

	if _, err := m.Save("user2", map[string]any{"name": "y"}, key); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("expected ErrAccessDenied, got %v", err)
	}
}

func TestManager_AutosavePrunesToThree(t *testing.T) {
	store := NewMemoryStorage()
	m := NewManager(store)

	for i := 0; i < 5; i++ {
		m.WithClock(fixedClock(int64(1700000000000 + i)))
		if _, err := m.Autosave("user1", map[string]any{"name": fmt.Sprintf("v%d", i), "type": "mast"}); err != nil {
			t.Fatalf("Autosave: %v", err)
		}
	}

	var autosaves []string
	for _, k := range store.Keys() {
		if IsAutosaveKey(k) {
			autosaves = append(autosaves, k)
		}
	}
	if len(autosaves) != MaxAutosaves {
		t.Fatalf("autosave count = %d, want %d (keys %v)", len(autosaves), MaxAutosaves, autosaves)
	}
	// The oldest two were deleted; the newest three remain.
	want := []string{
		"autosave_user1_mast_1700000000002",
		"autosave_user1_mast_1700000000003",
		"autosave_user1_mast_1700000000004",
	}
	for i, k := range autosaves {
		if k != want[i] {
			t.Errorf("autosaves[%d] = %q, want %q", i, k, want[i])
		}
	}
}

func TestManager_AutosavePrunesPerOwner(t *testing.T) {
	store := NewMemoryStorage()
	m := NewManager(store)

	// One user's autosave burst must not evict another user's snapshots,
	// even when the shared storage holds more than MaxAutosaves in total.
	m.WithClock(fixedClock(1700000000000))
	aliceKey, err := m.Autosave("alice", map[string]any{"name": "my mast", "type": "mast"})
	if err != nil {
		t.Fatalf("Autosave: %v", err)
	}

	for i := 0; i < MaxAutosaves+1; i++ {
		m.WithClock(fixedClock(int64(1700000001000 + i)))
		if _, err := m.Autosave("bob", map[string]any{"name": fmt.Sprintf("b%d", i), "type": "line"}); err != nil {
			t.Fatalf("Autosave: %v", err)
		}
	}

	if _, err := m.Load(aliceKey, "alice"); err != nil {
		t.Errorf("alice's autosave %q gone after bob's autosaves: %v", aliceKey, err)
	}

	bobCount := 0
	for _, e := range m.List("bob") {
		if IsAutosaveKey(e.Key) {
			bobCount++
		}
	}
	if bobCount != MaxAutosaves {
		t.Errorf("bob autosave count = %d, want %d", bobCount, MaxAutosaves)
	}
}

func TestManager_AutosaveSkipsEmpty(t *testing.T) {
	store := NewMemoryStorage()
	m := NewManager(store).WithClock(fixedClock(1700000000000))

	key, err := m.Autosave("user1", map[string]any{"name": "  "})
	if err != nil {
		t.Fatalf("Autosave: %v", err)
	}
	if key != "" || len(store.Keys()) != 0 {
		t.Errorf("empty draft must not persist, got key %q keys %v", key, store.Keys())
	}
}

func TestManager_LoadOwnership(t *testing.T) {
	store := NewMemoryStorage()
	m := NewManager(store).WithClock(fixedClock(1700000000000))

	key, _ := m.Save("owner", map[string]any{"name": "theirs", "type": "line"}, "")

	if _, err := m.Load(key, "intruder"); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("expected ErrAccessDenied, got %v", err)
	}
	if _, err := m.Load("draft_nobody_mast_1", "owner"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := m.Load(key, "owner"); err != nil {
		t.Errorf("owner load failed: %v", err)
	}
}

func TestManager_ListExcludesForeign(t *testing.T) {
	store := NewMemoryStorage()
	m := NewManager(store)

	m.WithClock(fixedClock(1700000000001))
	m.Save("user1", map[string]any{"name": "mine-old", "type": "mast"}, "")
	m.WithClock(fixedClock(1700000000002))
	m.Save("user2", map[string]any{"name": "theirs", "type": "mast"}, "")
	m.WithClock(fixedClock(1700000000003))
	m.Save("user1", map[string]any{"name": "mine-new", "type": "line"}, "")
	store.Set("theme", "dark") // unrelated key is ignored

	entries := m.List("user1")
	if len(entries) != 2 {
		t.Fatalf("List returned %d entries, want 2", len(entries))
	}
	if entries[0].Draft.Name != "mine-new" || entries[1].Draft.Name != "mine-old" {
		t.Errorf("expected newest first, got %q then %q", entries[0].Draft.Name, entries[1].Draft.Name)
	}
}

func TestManager_DeleteOwnership(t *testing.T) {
	store := NewMemoryStorage()
	m := NewManager(store).WithClock(fixedClock(1700000000000))

	key, _ := m.Save("owner", map[string]any{"name": "x", "type": "mast"}, "")

	if err := m.Delete(key, "intruder"); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("expected ErrAccessDenied, got %v", err)
	}
	if _, ok := store.Get(key); !ok {
		t.Fatal("foreign delete must leave the draft untouched")
	}

	if err := m.Delete(key, "owner"); err != nil {
		t.Errorf("owner delete failed: %v", err)
	}
	if _, ok := store.Get(key); ok {
		t.Error("draft still present after delete")
	}
}

func TestNeedsTypeRedirect(t *testing.T) {
	tests := []struct {
		draftType string
		pageType  string
		want      bool
	}{
		{"mast", "mast", false},
		{"Mast", "mast", false},
		{"mast", "line", true},
		{"", "line", false},
		{"mast", "", false},
	}
	for _, tt := range tests {
		if got := NeedsTypeRedirect(tt.draftType, tt.pageType); got != tt.want {
			t.Errorf("NeedsTypeRedirect(%q, %q) = %v, want %v", tt.draftType, tt.pageType, got, tt.want)
		}
	}
}
