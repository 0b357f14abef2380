// Package normalize provides canonical string forms for values that are
// compared or stored case-insensitively.
package normalize

import "strings"

// Email trims whitespace and lowercases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role trims and lowercases a role name.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status trims and lowercases a user status value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ObstacleType trims and lowercases an obstacle type for matching.
// Type-conditional field extraction matches on this form.
func ObstacleType(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam trims a query parameter, preserving case.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
