package intake

import (
	"math"
	"net/url"
	"strings"
	"testing"

	"github.com/MGumpen/aor/internal/domain/models"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"45.5", 45.5, true},
		{"45,5", 45.5, true},
		{"  10 ", 10, true},
		{"0", 0, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDecimal(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ParseDecimal(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseDecimal(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestResolveHeight_Precedence(t *testing.T) {
	tests := []struct {
		name   string
		meters string
		feet   string
		bound  float64
		want   float64
		wantOK bool
	}{
		{"meters wins over feet", "45.5", "100", 5, 45.5, true},
		{"feet converts when meters absent", "", "100", 5, 30.48, true},
		{"feet converts when meters unparseable", "xx", "100", 5, 30.48, true},
		{"bound model used last", "", "", 12.5, 12.5, true},
		{"nothing resolves", "", "", 0, 0, false},
		{"zero meters falls through", "0", "100", 0, 30.48, true},
		{"comma decimal meters", "45,5", "", 0, 45.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveHeight(tt.meters, tt.feet, tt.bound)
			if ok != tt.wantOK {
				t.Fatalf("ResolveHeight ok = %v, want %v", ok, tt.wantOK)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ResolveHeight = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProcess_MastFields(t *testing.T) {
	values := url.Values{
		"name":         {"  North mast  "},
		"type":         {"Mast"},
		"heightMeters": {"45.5"},
		"mastType":     {" lattice "},
		"hasLighting":  {"yes"},
		"coordinates":  {`[[60.1,10.2]]`},
		"pointCount":   {"1"},
	}

	res := Process(values, models.Obstacle{})
	if !res.OK() {
		t.Fatalf("expected valid submission, got errors: %v", res.Errors.All())
	}

	o := res.Obstacle
	if o.Name != "North mast" {
		t.Errorf("Name = %q, want trimmed %q", o.Name, "North mast")
	}
	if o.Height != 45.5 {
		t.Errorf("Height = %v, want 45.5", o.Height)
	}
	if o.MastType != "lattice" {
		t.Errorf("MastType = %q, want %q", o.MastType, "lattice")
	}
	if !o.HasLighting {
		t.Error("HasLighting = false, want true")
	}
	if o.WireCount != 0 || o.Category != "" {
		t.Error("non-mast conditional fields should stay empty")
	}
	if o.PointCount != 1 {
		t.Errorf("PointCount = %d, want 1", o.PointCount)
	}
}

func TestProcess_LineFields(t *testing.T) {
	values := url.Values{
		"name":         {"Power line"},
		"type":         {"line"},
		"heightMeters": {"20"},
		"wireCount":    {"3"},
		"mastType":     {"ignored"},
		"category":     {"ignored"},
	}

	res := Process(values, models.Obstacle{})
	if !res.OK() {
		t.Fatalf("expected valid submission, got errors: %v", res.Errors.All())
	}

	o := res.Obstacle
	if o.WireCount != 3 {
		t.Errorf("WireCount = %d, want 3", o.WireCount)
	}
	if o.MastType != "" || o.Category != "" {
		t.Error("mast/other fields must not populate for line type")
	}
}

func TestProcess_OtherFields(t *testing.T) {
	values := url.Values{
		"name":         {"Crane"},
		"type":         {"other"},
		"heightMeters": {"55"},
		"category":     {"construction"},
	}

	res := Process(values, models.Obstacle{})
	if !res.OK() {
		t.Fatalf("expected valid submission, got errors: %v", res.Errors.All())
	}
	if res.Obstacle.Category != "construction" {
		t.Errorf("Category = %q, want %q", res.Obstacle.Category, "construction")
	}
}

func TestProcess_UnknownTypeNoConditionals(t *testing.T) {
	values := url.Values{
		"name":         {"Tower"},
		"type":         {"tower"},
		"heightMeters": {"30"},
		"mastType":     {"lattice"},
		"wireCount":    {"3"},
		"category":     {"misc"},
	}

	res := Process(values, models.Obstacle{})
	o := res.Obstacle
	if o.MastType != "" || o.WireCount != 0 || o.Category != "" {
		t.Errorf("unknown type must not populate conditional fields, got %+v", o)
	}
}

func TestProcess_HeightRequired(t *testing.T) {
	values := url.Values{
		"name":        {"Test obstacle"},
		"type":        {"tower"},
		"coordinates": {"[[1,2],[3,4]]"},
		"pointCount":  {"2"},
	}

	res := Process(values, models.Obstacle{})
	if res.OK() {
		t.Fatal("expected validation failure with no height")
	}
	got := res.Errors.Field("height")
	if len(got) != 1 || got[0] != "Height is required." {
		t.Errorf("height errors = %v, want [Height is required.]", got)
	}
}

func TestProcess_HeightFromFeet(t *testing.T) {
	values := url.Values{
		"name":       {"Test obstacle"},
		"type":       {"other"},
		"heightFeet": {"100"},
	}

	res := Process(values, models.Obstacle{})
	if !res.OK() {
		t.Fatalf("expected valid submission, got errors: %v", res.Errors.All())
	}
	if math.Abs(res.Obstacle.Height-30.48) > 1e-9 {
		t.Errorf("Height = %v, want 30.48", res.Obstacle.Height)
	}
}

func TestProcess_HeightRange(t *testing.T) {
	tests := []struct {
		name    string
		meters  string
		wantErr bool
	}{
		{"below minimum", "0.05", true},
		{"at minimum", "0.1", false},
		{"at maximum", "1000", false},
		{"above maximum", "1001", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{"name": {"x"}, "heightMeters": {tt.meters}}
			res := Process(values, models.Obstacle{})
			hasErr := len(res.Errors.Field("height")) > 0
			if hasErr != tt.wantErr {
				t.Errorf("height %s: error = %v, want %v", tt.meters, hasErr, tt.wantErr)
			}
		})
	}
}

func TestProcess_LengthLimits(t *testing.T) {
	values := url.Values{
		"name":         {strings.Repeat("a", 51)},
		"description":  {strings.Repeat("b", 1001)},
		"type":         {"mast"},
		"heightMeters": {"10"},
		"mastType":     {strings.Repeat("c", 51)},
		"coordinates":  {strings.Repeat("d", 4001)},
	}

	res := Process(values, models.Obstacle{})
	if res.OK() {
		t.Fatal("expected validation failure")
	}
	for _, field := range []string{"name", "description", "mastType", "coordinates"} {
		if len(res.Errors.Field(field)) != 1 {
			t.Errorf("expected exactly one error for %s, got %v", field, res.Errors.Field(field))
		}
	}
}

func TestProcess_WireCountRange(t *testing.T) {
	values := url.Values{
		"name":         {"Line"},
		"type":         {"line"},
		"heightMeters": {"10"},
		"wireCount":    {"150"},
	}

	res := Process(values, models.Obstacle{})
	if len(res.Errors.Field("wireCount")) != 1 {
		t.Errorf("expected wire count range error, got %v", res.Errors.Field("wireCount"))
	}
}

func TestErrors_DuplicateSuppression(t *testing.T) {
	errs := NewErrors()
	errs.Add("height", "Height is required.")
	errs.Add("height", "Height is required.")
	errs.Add("height", "Height must be between 0.1 and 1000 meters.")

	got := errs.Field("height")
	if len(got) != 2 {
		t.Errorf("expected duplicate suppressed, got %v", got)
	}
}

func TestErrors_AllPreservesFieldOrder(t *testing.T) {
	errs := NewErrors()
	errs.Add("name", "Name must be at most 50 characters.")
	errs.Add("height", "Height is required.")

	all := errs.All()
	if len(all) != 2 || all[0] != "Name must be at most 50 characters." {
		t.Errorf("All() = %v, want name error first", all)
	}
	if errs.First() != "Name must be at most 50 characters." {
		t.Errorf("First() = %q", errs.First())
	}
}
