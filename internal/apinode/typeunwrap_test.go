package apinode

import "testing"

func TestUnwrapSimple(t *testing.T) {
	cases := []struct {
		spelling, prefix, terminal string
	}{
		{"int", "", "int"},
		{"int *", "*", "int"},
		{"int **", "**", "int"},
		{"const int", "const", "int"},
		{"int &", "&", "int"},
		{"int &&", "&&", "int"},
		{"const int *", "const*", "int"},
	}

	for _, c := range cases {
		prefix, terminal := Unwrap(c.spelling)
		if prefix != c.prefix || terminal != c.terminal {
			t.Errorf("Unwrap(%q) = (%q, %q), want (%q, %q)", c.spelling, prefix, terminal, c.prefix, c.terminal)
		}
	}
}

func TestUnwrapParenthesized(t *testing.T) {
	prefix, terminal := Unwrap("(int)")
	if terminal != "int" {
		t.Fatalf("Unwrap((int)) terminal = %q, want \"int\"", terminal)
	}
	_ = prefix
}

func TestUnwrapReconstructsPointerChain(t *testing.T) {
	prefix, terminal := Unwrap("const char * const")
	// Reconstruction is prefix + terminal; qualifiers/pointers peel cleanly.
	if terminal != "char" {
		t.Fatalf("terminal = %q, want \"char\"", terminal)
	}
	if prefix == "" {
		t.Fatalf("expected a non-empty modifier prefix for %q", "const char * const")
	}
}

func TestUnwrapArray(t *testing.T) {
	prefix, terminal := Unwrap("int [10]")
	if terminal != "int" {
		t.Fatalf("terminal = %q, want \"int\"", terminal)
	}
	if prefix != "[10]" {
		t.Fatalf("prefix = %q, want \"[10]\"", prefix)
	}
}

func TestUnwrapNoModifiers(t *testing.T) {
	prefix, terminal := Unwrap("PowerLevel")
	if prefix != "" || terminal != "PowerLevel" {
		t.Fatalf("Unwrap(PowerLevel) = (%q, %q), want (\"\", \"PowerLevel\")", prefix, terminal)
	}
}
