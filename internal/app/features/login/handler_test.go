package login_test

import (
	"testing"

	"github.com/MGumpen/aor/internal/app/features/login"
)

func TestDestinationForRole(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{"crew", "/obstacles/form"},
		{"Crew", "/obstacles/form"},
		{"admin", "/dashboard"},
		{"registrar", "/dashboard"},
		{"", "/dashboard"},
		{"visitor", "/dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			if got := login.DestinationForRole(tt.role); got != tt.want {
				t.Errorf("DestinationForRole(%q) = %q, want %q", tt.role, got, tt.want)
			}
		})
	}
}
