package search

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/lexicon-backend/internal/domain"
)

func strPtr(s string) *string { return &s }

func def(meaning string, opts ...func(*domain.Definition)) domain.Definition {
	d := domain.Definition{Meaning: meaning, Examples: []domain.Example{{Value: "Ej."}}}
	for _, o := range opts {
		o(&d)
	}
	return d
}

func withCategories(c ...string) func(*domain.Definition) {
	return func(d *domain.Definition) { d.Categories = c }
}

func withStyles(s ...string) func(*domain.Definition) {
	return func(d *domain.Definition) { d.Styles = s }
}

func withOrigin(o string) func(*domain.Definition) {
	return func(d *domain.Definition) { d.Origin = strPtr(o) }
}

func published(lemma string, defs ...domain.Definition) domain.Word {
	return domain.Word{
		ID:          uuid.New(),
		Lemma:       lemma,
		Letter:      domain.DeriveLetter(lemma, ""),
		Status:      domain.WordStatusPublished,
		Definitions: defs,
	}
}

func TestEvaluate_QueryClasses(t *testing.T) {
	t.Parallel()

	perro := published("perro", def("animal doméstico"))
	perros := published("perros", def("plural de perro"))
	// "perrito" does not contain "perro"; it is found through its meaning.
	perrito := published("perrito", def("perro pequeño"))
	gato := published("gato", def("felino, parecido al perro"))
	raton := published("ratón", def("roedor"))

	f := domain.SearchFilter{Query: "perro"}

	tests := []struct {
		word      domain.Word
		wantMatch bool
		wantClass domain.MatchClass
	}{
		{perro, true, domain.MatchExact},
		{perros, true, domain.MatchPartial},
		{perrito, true, domain.MatchDefinition},
		{gato, true, domain.MatchDefinition},
		{raton, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.word.Lemma, func(t *testing.T) {
			t.Parallel()
			ok, class := Evaluate(tt.word, f)
			assert.Equal(t, tt.wantMatch, ok)
			assert.Equal(t, tt.wantClass, class)
		})
	}
}

func TestEvaluate_CaseInsensitive(t *testing.T) {
	t.Parallel()

	w := published("Perro", def("Animal Doméstico"))

	ok, class := Evaluate(w, domain.SearchFilter{Query: "PERRO"})
	assert.True(t, ok)
	assert.Equal(t, domain.MatchExact, class)

	ok, class = Evaluate(w, domain.SearchFilter{Query: "doméstico"})
	assert.True(t, ok)
	assert.Equal(t, domain.MatchDefinition, class)
}

func TestEvaluate_NoQueryIsFilterClass(t *testing.T) {
	t.Parallel()

	ok, class := Evaluate(published("perro", def("animal")), domain.SearchFilter{})
	assert.True(t, ok)
	assert.Equal(t, domain.MatchFilter, class)
}

func TestEvaluate_LettersHardFilter(t *testing.T) {
	t.Parallel()

	w := published("perro", def("animal"))

	ok, _ := Evaluate(w, domain.SearchFilter{Query: "perro", Letters: []string{"g", "r"}})
	assert.False(t, ok, "an exact lemma match must still respect letters")

	ok, class := Evaluate(w, domain.SearchFilter{Query: "perro", Letters: []string{"P"}})
	assert.True(t, ok)
	assert.Equal(t, domain.MatchExact, class)
}

func TestEvaluate_CategoriesExistentialOverDefinitions(t *testing.T) {
	t.Parallel()

	w := published("banco",
		def("asiento", withCategories("m")),
		def("entidad financiera", withCategories("m", "com.")),
	)

	tests := []struct {
		name string
		cats []string
		want bool
	}{
		{"single hit", []string{"com."}, true},
		{"any requested value", []string{"adj.", "M"}, true},
		{"no hit", []string{"adj.", "f"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ok, _ := Evaluate(w, domain.SearchFilter{Categories: tt.cats})
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestEvaluate_StylesAndCategoriesMayHitDifferentDefinitions(t *testing.T) {
	t.Parallel()

	w := published("pibe",
		def("niño", withCategories("m")),
		def("muchacho", withStyles("coloq.")),
	)

	ok, _ := Evaluate(w, domain.SearchFilter{Categories: []string{"m"}, Styles: []string{"COLOQ."}})
	assert.True(t, ok)

	ok, _ = Evaluate(w, domain.SearchFilter{Categories: []string{"m"}, Styles: []string{"vulg."}})
	assert.False(t, ok)
}

func TestEvaluate_OriginSubstring(t *testing.T) {
	t.Parallel()

	w := published("almohada",
		def("colchoncillo", withOrigin("Del ár. hisp. almuḫádda")),
		def("funda"),
	)

	ok, _ := Evaluate(w, domain.SearchFilter{Origins: []string{"lat.", "ÁR. HISP"}})
	assert.True(t, ok)

	ok, _ = Evaluate(w, domain.SearchFilter{Origins: []string{"lat."}})
	assert.False(t, ok)
}

func TestEvaluate_PredicatesAreConjunctive(t *testing.T) {
	t.Parallel()

	w := published("gato", def("felino, parecido al perro", withCategories("m")))

	ok, _ := Evaluate(w, domain.SearchFilter{Query: "perro", Categories: []string{"f"}})
	assert.False(t, ok, "a failing category excludes a definition match")
}

func TestEvaluate_EditorialStatusAndAssignee(t *testing.T) {
	t.Parallel()

	editor, other := uuid.New(), uuid.New()
	w := published("perro", def("animal"))
	w.Status = domain.WordStatusRedacted
	w.AssignedTo = &editor

	redacted := domain.WordStatusRedacted
	reviewed := domain.WordStatusReviewed

	tests := []struct {
		name string
		f    domain.SearchFilter
		want bool
	}{
		{"public hides unpublished", domain.SearchFilter{}, false},
		{"editorial sees every status", domain.SearchFilter{Editorial: true}, true},
		{"status equal", domain.SearchFilter{Editorial: true, Status: &redacted}, true},
		{"status differs", domain.SearchFilter{Editorial: true, Status: &reviewed}, false},
		{"assignee member", domain.SearchFilter{Editorial: true, AssignedTo: []uuid.UUID{other, editor}}, true},
		{"assignee not member", domain.SearchFilter{Editorial: true, AssignedTo: []uuid.UUID{other}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ok, _ := Evaluate(w, tt.f)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestEvaluate_UnassignedWordFailsAssigneeFilter(t *testing.T) {
	t.Parallel()

	w := published("perro", def("animal"))
	ok, _ := Evaluate(w, domain.SearchFilter{Editorial: true, AssignedTo: []uuid.UUID{uuid.New()}})
	assert.False(t, ok)
}

func TestEvaluate_LettersSoundness(t *testing.T) {
	t.Parallel()

	corpus := []domain.Word{
		published("abeja", def("insecto")),
		published("Búho", def("ave")),
		published("burro", def("asno")),
		published("ñandú", def("ave")),
		published("zorro", def("cánido")),
	}
	letters := []string{"b", "ñ"}

	for _, w := range corpus {
		if ok, _ := Evaluate(w, domain.SearchFilter{Letters: letters}); ok {
			assert.Contains(t, letters, w.Letter, "word %q passed letters filter", w.Lemma)
		}
	}
}
