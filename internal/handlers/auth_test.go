package handlers

import "testing"

func TestSanitizeEmail(t *testing.T) {
	if got := sanitizeEmail("  A@X.Com "); got != "a@x.com" {
		t.Fatalf("expected a@x.com, got %q", got)
	}
}

func TestValidateRegistrationMissingFields(t *testing.T) {
	tests := []struct {
		email, password, name string
	}{
		{"", "secret1", "A"},
		{"a@x.com", "", "A"},
		{"a@x.com", "secret1", ""},
		{"a@x.com", "secret1", "   "},
	}
	for _, tt := range tests {
		_, code := validateRegistration(tt.email, tt.password, tt.name)
		if code != "MISSING_REQUIRED_FIELDS" {
			t.Fatalf("email=%q password=%q name=%q: expected MISSING_REQUIRED_FIELDS, got %q",
				tt.email, tt.password, tt.name, code)
		}
	}
}

func TestValidateRegistrationFormat(t *testing.T) {
	if _, code := validateRegistration("not-an-email", "secret1", "A"); code != "INVALID_FORMAT" {
		t.Fatalf("expected INVALID_FORMAT for bad email, got %q", code)
	}
	if _, code := validateRegistration("a@x.com", "short", "A"); code != "INVALID_FORMAT" {
		t.Fatalf("expected INVALID_FORMAT for short password, got %q", code)
	}
	if _, code := validateRegistration("a@x.com", "secret1", "A"); code != "" {
		t.Fatalf("expected valid payload to pass, got %q", code)
	}
}
