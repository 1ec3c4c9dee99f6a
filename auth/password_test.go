package auth

import "testing"

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"newuser", true},
		{"jane.doe+blog@example.org", true},
		{"Jürgen_1", true},
		{"", false},
		{"white space", false},
		{"semi;colon", false},
		{string(make([]byte, 151)), false},
	}
	for _, tt := range tests {
		if got := len(ValidateUsername(tt.name)) == 0; got != tt.valid {
			t.Errorf("ValidateUsername(%q): valid = %v, want %v", tt.name, got, tt.valid)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		username string
		problems int
	}{
		{"testpass123", "newuser", 0},
		{"short1", "newuser", 1},
		{"12345678", "newuser", 2}, // common and numeric
		{"Password", "newuser", 1},
		{"xnewuserx99", "newuser", 1},
		{"1234", "newuser", 2}, // short and numeric
	}
	for _, tt := range tests {
		if got := ValidatePassword(tt.password, tt.username); len(got) != tt.problems {
			t.Errorf("ValidatePassword(%q, %q) = %v, want %d problems", tt.password, tt.username, got, tt.problems)
		}
	}
}
