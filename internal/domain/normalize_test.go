package domain

import "testing"

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim spaces", input: "  hello  ", want: "hello"},
		{name: "lowercase", input: "Hello World", want: "hello world"},
		{name: "compress multiple spaces", input: "hello   world", want: "hello world"},
		{name: "diacritics preserved", input: "Café", want: "café"},
		{name: "hyphens preserved", input: "well-known", want: "well-known"},
		{name: "apostrophes preserved", input: "don't", want: "don't"},
		{name: "empty string", input: "", want: ""},
		{name: "only spaces", input: "   ", want: ""},
		{name: "mixed", input: "  Hello   World  ", want: "hello world"},
		{name: "tabs and spaces", input: "\t hello \t", want: "hello"},
		{name: "inner whitespace run", input: "perro\t \n de  agua", want: "perro de agua"},
		{name: "no-break space", input: "perro\u00a0\u00a0de agua", want: "perro de agua"},
		{name: "unicode diacritics", input: "Naïve Résumé", want: "naïve résumé"},
		{name: "single word", input: "ABANDON", want: "abandon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeText(tt.input); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDeriveLetter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lemma    string
		override string
		want     string
	}{
		{lemma: "Perro", want: "p"},
		{lemma: "árbol", want: "á"},
		{lemma: "Ñandú", want: "ñ"},
		{lemma: "chabola", override: "Ch", want: "c"},
		{lemma: "llama", override: "  ", want: "l"},
		{lemma: "", want: ""},
	}
	for _, tt := range tests {
		if got := DeriveLetter(tt.lemma, tt.override); got != tt.want {
			t.Errorf("DeriveLetter(%q, %q) = %q, want %q", tt.lemma, tt.override, got, tt.want)
		}
	}
}

func TestContainsFold(t *testing.T) {
	t.Parallel()

	if !ContainsFold("Del LATÍN vulgar", "latín") {
		t.Error("expected case-insensitive match")
	}
	if ContainsFold("griego", "latín") {
		t.Error("unexpected match")
	}
}
