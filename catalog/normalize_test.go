package catalog

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase unchanged", "ibuprofeno", "ibuprofeno"},
		{"uppercase folded", "IBUPROFENO", "ibuprofeno"},
		{"mixed case folded", "Ácido Valproico", "ácido valproico"},
		{"surrounding whitespace trimmed", "  paracetamol  ", "paracetamol"},
		{"tabs and newlines trimmed", "\tloratadina\n", "loratadina"},
		{"interior whitespace kept", "ácido acetilsalicílico", "ácido acetilsalicílico"},
		{"diacritics preserved", "ÁCIDO FÓLICO", "ácido fólico"},
		{"punctuation preserved", "vitamina-b12", "vitamina-b12"},
		{"empty stays empty", "", ""},
		{"whitespace only becomes empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Ibuprofeno", "  ÁCIDO FÓLICO ", "warfarina"}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize is not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}
