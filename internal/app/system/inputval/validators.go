// internal/app/system/inputval/validators.go
package inputval

import (
	"net/mail"
	"strings"
)

// allowedObstacleTypes is the canonical set of obstacle types the intake
// form accepts. Matching is case-insensitive.
var allowedObstacleTypes = []string{"mast", "line", "other"}

// allowedRoles is the canonical set of user roles.
var allowedRoles = []string{"admin", "crew", "registrar"}

// IsValidObstacleType reports whether t is one of the allowed obstacle
// types, ignoring case and surrounding whitespace.
func IsValidObstacleType(t string) bool {
	t = strings.ToLower(strings.TrimSpace(t))
	for _, allowed := range allowedObstacleTypes {
		if t == allowed {
			return true
		}
	}
	return false
}

// AllowedObstacleTypesList returns the allowed obstacle types in canonical order.
func AllowedObstacleTypesList() []string {
	out := make([]string, len(allowedObstacleTypes))
	copy(out, allowedObstacleTypes)
	return out
}

// IsValidRole reports whether role is one of the allowed user roles,
// ignoring case and surrounding whitespace.
func IsValidRole(role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	for _, allowed := range allowedRoles {
		if role == allowed {
			return true
		}
	}
	return false
}

// AllowedRolesList returns the allowed roles in canonical order.
func AllowedRolesList() []string {
	out := make([]string, len(allowedRoles))
	copy(out, allowedRoles)
	return out
}

// IsValidEmail reports whether s parses as a bare RFC 5322 address
// (display-name forms are rejected) with a sane local part and domain.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	local, domain := s[:at], s[at+1:]
	if local == "" || domain == "" {
		return false
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") ||
		strings.Contains(local, "..") {
		return false
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") ||
		strings.Contains(domain, "..") {
		return false
	}
	return true
}
