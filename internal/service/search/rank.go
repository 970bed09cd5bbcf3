package search

import (
	"slices"

	"github.com/heartmarshall/lexicon-backend/internal/domain"
)

// Match is a word that passed the filter, with the class it earned.
type Match struct {
	Word  domain.Word
	Class domain.MatchClass
}

// Pagination describes the slice of a ranked result set that was returned.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// Rank sorts matches by class (exact, partial, definition, filter).
// The sort is stable: equal classes keep enumeration order.
func Rank(matches []Match) {
	slices.SortStableFunc(matches, func(a, b Match) int {
		return a.Class.Rank() - b.Class.Rank()
	})
}

// Paginate returns matches[(page-1)*limit : min(page*limit, total)] and the
// pagination envelope. page and limit must already be normalized (>= 1).
func Paginate(matches []Match, page, limit int) ([]Match, Pagination) {
	total := len(matches)
	offset := (page - 1) * limit

	p := Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
		HasNext:    offset+limit < total,
		HasPrev:    page > 1,
	}

	if offset >= total {
		return []Match{}, p
	}
	end := min(offset+limit, total)
	return matches[offset:end], p
}
