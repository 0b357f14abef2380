package normalize

import "testing"

func TestEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"crew@example.com", "crew@example.com"},
		{"CREW@EXAMPLE.COM", "crew@example.com"},
		{"  Crew@Example.Com  ", "crew@example.com"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Email(tt.input); got != tt.want {
				t.Errorf("Email(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Ola Nordmann", "Ola Nordmann"},
		{"  Ola Nordmann  ", "Ola Nordmann"},
		{"", ""},
		{"UPPERCASE NAME", "UPPERCASE NAME"}, // Name preserves case
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Name(tt.input); got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRole(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"admin", "admin"},
		{"ADMIN", "admin"},
		{"  Registrar  ", "registrar"},
		{"CREW", "crew"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Role(tt.input); got != tt.want {
				t.Errorf("Role(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestObstacleType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"mast", "mast"},
		{"Mast", "mast"},
		{"  LINE  ", "line"},
		{"Other", "other"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ObstacleType(tt.input); got != tt.want {
				t.Errorf("ObstacleType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
