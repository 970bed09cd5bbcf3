package search

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/lexicon-backend/internal/config"
	"github.com/heartmarshall/lexicon-backend/internal/domain"
)

// maxPage keeps (page-1)*limit inside int range for any allowed limit.
const maxPage = math.MaxInt32

// SearchInput is a search request as received from the transport.
// Page and Limit are nil when absent or unparseable; they are numbers
// rather than ints so that non-finite values can be rejected.
type SearchInput struct {
	Query      string
	Categories []string
	Styles     []string
	Origins    []string
	Letters    []string
	Status     string
	AssignedTo []string
	Page       *float64
	Limit      *float64
}

// Query is a validated search: the filter plus normalized paging.
type Query struct {
	Filter domain.SearchFilter
	Page   int
	Limit  int
}

// Validate checks the input against cfg and builds the query. editorial
// selects whether Status and AssignedTo are honoured; on the public path
// they are ignored and only published words are searched.
func (i *SearchInput) Validate(cfg config.SearchConfig, editorial bool) (Query, error) {
	var errs []domain.FieldError

	q := Query{Filter: domain.SearchFilter{Editorial: editorial}}

	// Matching is case-insensitive, so folding here only drops noise.
	q.Filter.Query = domain.NormalizeText(i.Query)
	if utf8.RuneCountInString(q.Filter.Query) > cfg.MaxQueryLength {
		errs = append(errs, domain.FieldError{
			Field:   "q",
			Message: "too long (max " + strconv.Itoa(cfg.MaxQueryLength) + ")",
		})
	}

	lists := []struct {
		field string
		in    []string
		out   *[]string
	}{
		{"categories", i.Categories, &q.Filter.Categories},
		{"styles", i.Styles, &q.Filter.Styles},
		{"origins", i.Origins, &q.Filter.Origins},
		{"letters", i.Letters, &q.Filter.Letters},
	}
	for _, l := range lists {
		if countNonBlank(l.in) > cfg.MaxFilterValues {
			errs = append(errs, tooMany(l.field, cfg.MaxFilterValues))
			continue
		}
		*l.out = compact(l.in)
	}

	if editorial {
		if status := strings.TrimSpace(i.Status); status != "" {
			st := domain.WordStatus(status)
			if !st.IsValid() {
				errs = append(errs, domain.FieldError{Field: "status", Message: "invalid value"})
			} else {
				q.Filter.Status = &st
			}
		}

		if countNonBlank(i.AssignedTo) > cfg.MaxFilterValues {
			errs = append(errs, tooMany("assignedTo", cfg.MaxFilterValues))
		} else {
			for _, raw := range compact(i.AssignedTo) {
				id, err := uuid.Parse(raw)
				if err != nil {
					errs = append(errs, domain.FieldError{Field: "assignedTo", Message: "invalid id: " + raw})
					continue
				}
				q.Filter.AssignedTo = appendUnique(q.Filter.AssignedTo, id)
			}
		}
	}

	var err error
	if q.Page, err = normalizeNumber(i.Page, 1, 1, maxPage); err != nil {
		errs = append(errs, domain.FieldError{Field: "page", Message: err.Error()})
	}
	if q.Limit, err = normalizeNumber(i.Limit, cfg.DefaultLimit, 1, cfg.MaxLimit); err != nil {
		errs = append(errs, domain.FieldError{Field: "limit", Message: err.Error()})
	}

	if len(errs) > 0 {
		return Query{}, domain.NewValidationErrors(errs)
	}
	return q, nil
}

type numberError string

func (e numberError) Error() string { return string(e) }

// normalizeNumber truncates v toward zero and clamps it into [lo, hi].
// Absent values take def; NaN and infinities are rejected.
func normalizeNumber(v *float64, def, lo, hi int) (int, error) {
	if v == nil {
		return def, nil
	}
	f := *v
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, numberError("must be a finite number")
	}
	f = math.Trunc(f)
	if f < float64(lo) {
		return lo, nil
	}
	if f > float64(hi) {
		return hi, nil
	}
	return int(f), nil
}

// ParseNumber parses a raw query parameter. Empty or malformed values
// yield nil so the default applies; "NaN", "Inf" and overflowing values
// parse as non-finite and are rejected later by Validate.
func ParseNumber(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil
	}
	return &f
}

// countNonBlank counts the entries a list was sent with, repeats included.
func countNonBlank(values []string) int {
	n := 0
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}

// compact trims values and drops blanks and duplicates, keeping order.
func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = appendUnique(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func appendUnique[T comparable](s []T, v T) []T {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}

func tooMany(field string, limit int) domain.FieldError {
	return domain.FieldError{Field: field, Message: "too many (max " + strconv.Itoa(limit) + ")"}
}
