package search

import (
	"slices"
	"strings"

	"github.com/heartmarshall/lexicon-backend/internal/domain"
)

// Evaluate decides whether w matches f and which match class it earns.
// All comparisons are case-insensitive. Letters is a hard filter; the
// query picks the class; every other active predicate must also hold.
// Status and AssignedTo are only consulted for editorial filters.
func Evaluate(w domain.Word, f domain.SearchFilter) (bool, domain.MatchClass) {
	if len(f.Letters) > 0 && !containsFold(f.Letters, w.Letter) {
		return false, ""
	}

	class := domain.MatchFilter
	if f.HasQuery() {
		switch {
		case strings.EqualFold(w.Lemma, f.Query):
			class = domain.MatchExact
		case domain.ContainsFold(w.Lemma, f.Query):
			class = domain.MatchPartial
		case anyMeaningContains(w.Definitions, f.Query):
			class = domain.MatchDefinition
		default:
			return false, ""
		}
	}

	if len(f.Categories) > 0 && !anyDefinition(w.Definitions, func(d domain.Definition) bool {
		return intersectsFold(d.Categories, f.Categories)
	}) {
		return false, ""
	}

	if len(f.Styles) > 0 && !anyDefinition(w.Definitions, func(d domain.Definition) bool {
		return intersectsFold(d.Styles, f.Styles)
	}) {
		return false, ""
	}

	if len(f.Origins) > 0 && !anyDefinition(w.Definitions, func(d domain.Definition) bool {
		if d.Origin == nil {
			return false
		}
		for _, o := range f.Origins {
			if domain.ContainsFold(*d.Origin, o) {
				return true
			}
		}
		return false
	}) {
		return false, ""
	}

	if f.Editorial {
		if f.Status != nil && w.Status != *f.Status {
			return false, ""
		}
		if len(f.AssignedTo) > 0 && (w.AssignedTo == nil || !slices.Contains(f.AssignedTo, *w.AssignedTo)) {
			return false, ""
		}
	} else if !w.Status.IsPublic() {
		return false, ""
	}

	return true, class
}

func anyMeaningContains(defs []domain.Definition, query string) bool {
	return anyDefinition(defs, func(d domain.Definition) bool {
		return domain.ContainsFold(d.Meaning, query)
	})
}

func anyDefinition(defs []domain.Definition, pred func(domain.Definition) bool) bool {
	return slices.ContainsFunc(defs, pred)
}

func containsFold(set []string, v string) bool {
	return slices.ContainsFunc(set, func(s string) bool { return strings.EqualFold(s, v) })
}

func intersectsFold(have, want []string) bool {
	for _, h := range have {
		if containsFold(want, h) {
			return true
		}
	}
	return false
}
