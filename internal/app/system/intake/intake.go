// Package intake transforms raw obstacle form fields into a validated
// Obstacle record. It reconciles the height unit, extracts the
// type-conditional fields, trims free text, and applies the server-side
// validation rules with one error per field.
package intake

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/MGumpen/aor/internal/domain/models"
)

// MetersPerFoot converts a feet value to meters: meters = feet * 0.3048.
const MetersPerFoot = 0.3048

// Result holds the outcome of processing an obstacle submission.
type Result struct {
	Obstacle models.Obstacle
	Errors   *Errors
}

// OK reports whether the submission passed validation.
func (r *Result) OK() bool {
	return !r.Errors.HasErrors()
}

// Process extracts, normalizes and validates an obstacle submission.
// The bound obstacle carries any values the caller already decoded
// (used as the last-resort height fallback).
func Process(values url.Values, bound models.Obstacle) *Result {
	o := extract(values, bound)
	errs := validate(o)
	return &Result{Obstacle: o, Errors: errs}
}

// ParseDecimal parses a decimal number accepting both "." and ","
// as the decimal separator. Returns false for empty or unparseable input.
func ParseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, true
	}
	if strings.Contains(s, ",") {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

// ResolveHeight applies the height precedence order: an explicit meters
// field wins, then a feet field converted to meters, then the value
// already bound on the model. The second return is false when no
// positive height could be resolved.
func ResolveHeight(metersField, feetField string, bound float64) (float64, bool) {
	if m, ok := ParseDecimal(metersField); ok && m > 0 {
		return m, true
	}
	if f, ok := ParseDecimal(feetField); ok && f > 0 {
		return f * MetersPerFoot, true
	}
	if bound > 0 {
		return bound, true
	}
	return 0, false
}

func extract(values url.Values, bound models.Obstacle) models.Obstacle {
	o := bound

	if v := values.Get("name"); v != "" || values.Has("name") {
		o.Name = v
	}
	if v := values.Get("description"); v != "" || values.Has("description") {
		o.Description = v
	}
	if v := values.Get("type"); v != "" || values.Has("type") {
		o.Type = v
	}
	if v := values.Get("coordinates"); v != "" || values.Has("coordinates") {
		o.Coordinates = v
	}
	if v := strings.TrimSpace(values.Get("pointCount")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			o.PointCount = n
		}
	}

	if h, ok := ResolveHeight(values.Get("heightMeters"), values.Get("heightFeet"), bound.Height); ok {
		o.Height = h
	} else {
		o.Height = 0
	}

	// Type-conditional fields. Unmatched types get none.
	switch {
	case strings.EqualFold(strings.TrimSpace(o.Type), models.TypeMast):
		o.MastType = values.Get("mastType")
		o.HasLighting = parseBool(values.Get("hasLighting"))
	case strings.EqualFold(strings.TrimSpace(o.Type), models.TypeLine):
		if n, err := strconv.Atoi(strings.TrimSpace(values.Get("wireCount"))); err == nil {
			o.WireCount = n
		}
	case strings.EqualFold(strings.TrimSpace(o.Type), models.TypeOther):
		o.Category = values.Get("category")
	}

	// Trim free text after extraction, before validation.
	o.Name = strings.TrimSpace(o.Name)
	o.Description = strings.TrimSpace(o.Description)
	o.Type = strings.TrimSpace(o.Type)
	o.Coordinates = strings.TrimSpace(o.Coordinates)
	o.MastType = strings.TrimSpace(o.MastType)
	o.Category = strings.TrimSpace(o.Category)

	return o
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true
	}
	return false
}

func validate(o models.Obstacle) *Errors {
	errs := NewErrors()

	if o.Height == 0 {
		errs.Add("height", "Height is required.")
	} else if o.Height < 0.1 || o.Height > 1000 {
		errs.Add("height", "Height must be between 0.1 and 1000 meters.")
	}

	if len(o.Name) > 50 {
		errs.Add("name", "Name must be at most 50 characters.")
	}
	if len(o.Description) > 1000 {
		errs.Add("description", "Description must be at most 1000 characters.")
	}
	if len(o.Coordinates) > 4000 {
		errs.Add("coordinates", "Coordinates must be at most 4000 characters.")
	}
	if o.WireCount != 0 && (o.WireCount < 1 || o.WireCount > 99) {
		errs.Add("wireCount", "Wire count must be between 1 and 99.")
	}
	if len(o.MastType) > 50 {
		errs.Add("mastType", "Mast type must be at most 50 characters.")
	}
	if len(o.Category) > 50 {
		errs.Add("category", "Category must be at most 50 characters.")
	}

	return errs
}
