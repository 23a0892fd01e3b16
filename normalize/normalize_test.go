package normalize

import "testing"

func TestName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Müller", "mueller"},
		{"Mueller", "mueller"},
		{"Straße", "strasse"},
		{"  Schmidt  ", "schmidt"},
		{"Groß", "gross"},
		{"", ""},
		{"   ", ""},
		{"José", "jose"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Name(tt.input); got != tt.expected {
				t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNameIdempotent(t *testing.T) {
	inputs := []string{"Müller-Straße 12", "  KARL-HEINZ  ", "Groß"}
	for _, in := range inputs {
		once := Name(in)
		twice := Name(once)
		if once != twice {
			t.Errorf("Name not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestUmlautEquivalence(t *testing.T) {
	pairs := [][2]string{
		{"Müller", "Mueller"},
		{"Bär", "Baer"},
		{"Köln", "Koeln"},
		{"Straße", "Strasse"},
	}
	for _, p := range pairs {
		if got, want := Name(p[0]), Name(p[1]); got != want {
			t.Errorf("Name(%q)=%q, Name(%q)=%q, expected equal", p[0], got, p[1], want)
		}
	}
}

func TestStreet(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Müllerstr. 12", "muellerstrasse"},
		{"Müllerstraße 12a", "muellerstrasse"},
		{"12 Hauptstr", "hauptstrasse"},
		{"Ringweg 4", "ringweg"},
		{"Am Platz 1", "am platz"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Street(tt.input); got != tt.expected {
				t.Errorf("Street(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPlz(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"8001", "08001"},
		{"80001", "80001"},
		{"CH-8001", "08001"},
		{"", ""},
		{"1234567", "12345"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Plz(tt.input); got != tt.expected {
				t.Errorf("Plz(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPlzIdempotent(t *testing.T) {
	inputs := []string{"8001", "CH-8001", "", "123456789"}
	for _, in := range inputs {
		once := Plz(in)
		twice := Plz(once)
		if once != twice {
			t.Errorf("Plz not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestFieldBoundaries(t *testing.T) {
	if got := Field("   "); got != "" {
		t.Errorf("Field(all-whitespace) = %q, want empty", got)
	}
	if got := Field("12345"); got != "12345" {
		t.Errorf("Field(all-digits) = %q, want unchanged", got)
	}
}
