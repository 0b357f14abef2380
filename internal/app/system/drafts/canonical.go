package drafts

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Draft is the canonical form of a saved obstacle draft. All values are
// kept as strings so the payload round-trips losslessly through storage
// and back into form fields.
type Draft struct {
	OwnerID      string `json:"ownerId,omitempty"`
	Name         string `json:"name,omitempty"`
	Description  string `json:"description,omitempty"`
	Type         string `json:"type,omitempty"`
	Coordinates  string `json:"coordinates,omitempty"`
	PointCount   int    `json:"pointCount,omitempty"`
	HeightMeters string `json:"heightMeters,omitempty"`
	HeightFeet   string `json:"heightFeet,omitempty"`
	MastType     string `json:"mastType,omitempty"`
	HasLighting  string `json:"hasLighting,omitempty"`
	WireCount    string `json:"wireCount,omitempty"`
	Category     string `json:"category,omitempty"`
	SavedAt      int64  `json:"savedAt,omitempty"`
}

// IsEmpty reports whether the draft carries no user-entered content.
func (d Draft) IsEmpty() bool {
	return d.Name == "" && d.Description == "" && d.Coordinates == "" &&
		d.HeightMeters == "" && d.HeightFeet == "" && d.MastType == "" &&
		d.WireCount == "" && d.Category == "" && d.PointCount == 0
}

// Historical and alternate spellings for each canonical field, tried in
// order; the first non-empty value wins.
var fieldAliases = map[string][]string{
	"ownerId":      {"ownerId", "owner_id", "userId"},
	"name":         {"name", "obstacleName", "ObstacleData.ObstacleName"},
	"description":  {"description", "obstacleDescription", "ObstacleData.ObstacleDescription"},
	"type":         {"type", "obstacleType", "ObstacleData.ObstacleType"},
	"coordinates":  {"coordinates", "obstacleCoordinates", "ObstacleData.ObstacleCoordinates"},
	"pointCount":   {"pointCount", "obstaclePointCount", "count"},
	"heightMeters": {"heightMeters", "obstacleHeight", "height", "ObstacleData.ObstacleHeight"},
	"heightFeet":   {"heightFeet", "obstacleHeightFeet"},
	"mastType":     {"mastType", "obstacleMastType"},
	"hasLighting":  {"hasLighting", "obstacleLighting", "lighting"},
	"wireCount":    {"wireCount", "obstacleWireCount"},
	"category":     {"category", "obstacleCategory"},
}

// Canonicalize resolves a raw draft payload (decoded JSON object with
// possibly historical field names) into a Draft. Strings are trimmed,
// numeric NaN is treated as empty, booleans normalize to "true"/"false",
// coordinates are always stringified to JSON, and the meters/feet pair
// is completed in whichever direction is missing.
func Canonicalize(raw map[string]any) Draft {
	var d Draft
	d.OwnerID = resolveString(raw, "ownerId")
	d.Name = resolveString(raw, "name")
	d.Description = resolveString(raw, "description")
	d.Type = resolveString(raw, "type")
	d.Coordinates = resolveCoordinates(raw)
	d.HeightMeters = resolveString(raw, "heightMeters")
	d.HeightFeet = resolveString(raw, "heightFeet")
	d.MastType = resolveString(raw, "mastType")
	d.HasLighting = resolveBool(raw, "hasLighting")
	d.WireCount = resolveString(raw, "wireCount")
	d.Category = resolveString(raw, "category")

	// Complete the height pair: derive meters from feet, or the
	// feet-display value back from meters (1 decimal).
	if d.HeightMeters == "" && d.HeightFeet != "" {
		if ft, ok := parseNumber(d.HeightFeet); ok {
			d.HeightMeters = formatNumber(ft * 0.3048)
		}
	} else if d.HeightFeet == "" && d.HeightMeters != "" {
		if m, ok := parseNumber(d.HeightMeters); ok {
			d.HeightFeet = strconv.FormatFloat(math.Round(m/0.3048*10)/10, 'f', -1, 64)
		}
	}

	d.PointCount = resolvePointCount(raw, d.Coordinates)
	return d
}

// resolvePointCount prefers an explicit non-negative PointCount field,
// then the length of the parsed coordinates array, then 0.
func resolvePointCount(raw map[string]any, coordinates string) int {
	if s := resolveString(raw, "pointCount"); s != "" {
		if n, ok := parseNumber(s); ok && n >= 0 {
			return int(n)
		}
	}
	if coordinates != "" {
		var arr []json.RawMessage
		if err := json.Unmarshal([]byte(coordinates), &arr); err == nil {
			return len(arr)
		}
	}
	return 0
}

func resolveString(raw map[string]any, canonical string) string {
	for _, alias := range fieldAliases[canonical] {
		v, ok := lookup(raw, alias)
		if !ok {
			continue
		}
		if s := stringify(v); s != "" {
			return s
		}
	}
	return ""
}

func resolveBool(raw map[string]any, canonical string) string {
	for _, alias := range fieldAliases[canonical] {
		v, ok := lookup(raw, alias)
		if !ok {
			continue
		}
		switch t := v.(type) {
		case bool:
			return strconv.FormatBool(t)
		case string:
			switch strings.ToLower(strings.TrimSpace(t)) {
			case "yes", "true":
				return "true"
			case "no", "false":
				return "false"
			}
		}
	}
	return ""
}

// resolveCoordinates returns the coordinates as a JSON string, stringifying
// structured values.
func resolveCoordinates(raw map[string]any) string {
	for _, alias := range fieldAliases["coordinates"] {
		v, ok := lookup(raw, alias)
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				return s
			}
		default:
			if b, err := json.Marshal(t); err == nil && string(b) != "null" {
				return string(b)
			}
		}
	}
	return ""
}

// lookup supports dotted aliases like "ObstacleData.ObstacleName" by
// descending through nested objects.
func lookup(raw map[string]any, alias string) (any, bool) {
	parts := strings.Split(alias, ".")
	var cur any = raw
	for _, p := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		if math.IsNaN(t) {
			return ""
		}
		return formatNumber(t)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
