package inputval

import "testing"

func TestIsValidObstacleType(t *testing.T) {
	tests := []struct {
		typ  string
		want bool
	}{
		{"mast", true},
		{"line", true},
		{"other", true},
		{"MAST", true},
		{"  Line  ", true},
		{"", false},
		{"   ", false},
		{"tower", false},
		{"pylon", false},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			if got := IsValidObstacleType(tt.typ); got != tt.want {
				t.Errorf("IsValidObstacleType(%q) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestIsValidRole(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{"admin", true},
		{"crew", true},
		{"registrar", true},
		{"Admin", true},
		{"  REGISTRAR  ", true},
		{"", false},
		{"superuser", false},
		{"leader", false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			if got := IsValidRole(tt.role); got != tt.want {
				t.Errorf("IsValidRole(%q) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestAllowedObstacleTypesList(t *testing.T) {
	list := AllowedObstacleTypesList()
	expected := []string{"mast", "line", "other"}
	if len(list) != len(expected) {
		t.Fatalf("AllowedObstacleTypesList() has %d items, want %d", len(list), len(expected))
	}
	for i, want := range expected {
		if list[i] != want {
			t.Errorf("AllowedObstacleTypesList()[%d] = %q, want %q", i, list[i], want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		// Valid emails
		{"user@example.com", true},
		{"user.name@example.com", true},
		{"user+tag@example.com", true},
		{"user@subdomain.example.com", true},

		// Invalid emails - empty/whitespace
		{"", false},
		{"   ", false},

		// Invalid emails - missing parts
		{"user", false},
		{"user@", false},
		{"@example.com", false},

		// Invalid emails - bad format
		{".user@example.com", false},
		{"user.@example.com", false},
		{"user..name@example.com", false},
		{"user@.example.com", false},
		{"user@example..com", false},

		// Display-name format is rejected
		{"User Name <user@example.com>", false},

		// Other malformed
		{"user @example.com", false},
		{"user@exam ple.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	type testInput struct {
		Name  string `validate:"required,max=10" label:"Full name"`
		Email string `validate:"required,email" label:"Email address"`
	}

	tests := []struct {
		name       string
		input      testInput
		wantErrors bool
		wantFirst  string
	}{
		{
			name:       "valid input",
			input:      testInput{Name: "Ola", Email: "ola@example.com"},
			wantErrors: false,
		},
		{
			name:       "missing name",
			input:      testInput{Name: "", Email: "ola@example.com"},
			wantErrors: true,
			wantFirst:  "Full name is required.",
		},
		{
			name:       "name too long",
			input:      testInput{Name: "VeryLongNameThatExceedsLimit", Email: "ola@example.com"},
			wantErrors: true,
			wantFirst:  "Full name must be at most 10 characters.",
		},
		{
			name:       "invalid email",
			input:      testInput{Name: "Ola", Email: "not-an-email"},
			wantErrors: true,
			wantFirst:  "A valid email address is required.",
		},
		{
			name:       "missing both",
			input:      testInput{Name: "", Email: ""},
			wantErrors: true,
			wantFirst:  "Full name is required.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.input)

			if result.HasErrors() != tt.wantErrors {
				t.Errorf("Validate() HasErrors = %v, want %v", result.HasErrors(), tt.wantErrors)
			}
			if tt.wantErrors && result.First() != tt.wantFirst {
				t.Errorf("Validate() First() = %q, want %q", result.First(), tt.wantFirst)
			}
		})
	}
}
