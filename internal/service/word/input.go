package word

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/lexicon-backend/internal/domain"
)

const (
	maxLemmaLength   = 200
	maxMeaningLength = 5000
	maxDefinitions   = 200
	maxNoteLength    = 2000
)

// WordInput is the full payload of a create or update. Letter is an
// optional index-letter override and is only honoured on create. On update
// a nil Status keeps the stored status; AssignedTo replaces the assignee
// when set and Unassign clears it.
type WordInput struct {
	Lemma       string
	Root        string
	Letter      string
	Status      *domain.WordStatus
	AssignedTo  *uuid.UUID
	Unassign    bool
	Definitions []domain.Definition
}

// CreateResult identifies a newly created word.
type CreateResult struct {
	WordID uuid.UUID `json:"wordId"`
	Lemma  string    `json:"lemma"`
	Letter string    `json:"letter"`
}

// Validate checks all fields and collects all errors.
func (i WordInput) Validate() error {
	var errs []domain.FieldError

	lemma := strings.TrimSpace(i.Lemma)
	if lemma == "" {
		errs = append(errs, domain.FieldError{Field: "lemma", Message: "required"})
	} else if utf8.RuneCountInString(lemma) > maxLemmaLength {
		errs = append(errs, domain.FieldError{Field: "lemma", Message: "too long (max " + strconv.Itoa(maxLemmaLength) + ")"})
	}

	if utf8.RuneCountInString(strings.TrimSpace(i.Root)) > maxLemmaLength {
		errs = append(errs, domain.FieldError{Field: "root", Message: "too long (max " + strconv.Itoa(maxLemmaLength) + ")"})
	}

	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "invalid value"})
	}

	if i.AssignedTo != nil && i.Unassign {
		errs = append(errs, domain.FieldError{Field: "assignedTo", Message: "cannot both set and clear"})
	}

	if len(i.Definitions) > maxDefinitions {
		errs = append(errs, domain.FieldError{Field: "definitions", Message: "too many (max " + strconv.Itoa(maxDefinitions) + ")"})
	}

	for idx, d := range i.Definitions {
		meaning := strings.TrimSpace(d.Meaning)
		if meaning == "" {
			errs = append(errs, domain.FieldError{Field: fieldIndex("definitions", idx, "meaning"), Message: "required"})
		} else if utf8.RuneCountInString(meaning) > maxMeaningLength {
			errs = append(errs, domain.FieldError{Field: fieldIndex("definitions", idx, "meaning"), Message: "too long (max " + strconv.Itoa(maxMeaningLength) + ")"})
		}

		if len(d.Examples) == 0 {
			errs = append(errs, domain.FieldError{Field: fieldIndex("definitions", idx, "example"), Message: "at least one example is required"})
		}
		for exIdx, ex := range d.Examples {
			if strings.TrimSpace(ex.Value) == "" {
				errs = append(errs, domain.FieldError{
					Field:   fieldIndex2("definitions", idx, "example", exIdx) + ".value",
					Message: "required",
				})
			}
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// definitions returns a trimmed copy of the input definitions numbered by
// position.
func (i WordInput) definitions() []domain.Definition {
	w := domain.Word{Definitions: make([]domain.Definition, len(i.Definitions))}
	for idx, d := range i.Definitions {
		d.Meaning = strings.TrimSpace(d.Meaning)
		d.Origin = trimOptional(d.Origin)
		d.Remission = trimOptional(d.Remission)
		d.Observation = trimOptional(d.Observation)
		d.Variant = trimOptional(d.Variant)
		d.Categories = trimList(d.Categories)
		d.Styles = trimList(d.Styles)
		d.Expressions = trimList(d.Expressions)
		w.Definitions[idx] = d
	}
	w.Renumber()
	return w.Definitions
}

// root falls back to the lemma when no root is given.
func (i WordInput) root(lemma string) string {
	if r := strings.TrimSpace(i.Root); r != "" {
		return r
	}
	return lemma
}

// NoteInput is a new editorial note.
type NoteInput struct {
	Lemma string
	Note  string
}

// Validate checks all fields and collects all errors.
func (i NoteInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Lemma) == "" {
		errs = append(errs, domain.FieldError{Field: "lemma", Message: "required"})
	}

	note := strings.TrimSpace(i.Note)
	if note == "" {
		errs = append(errs, domain.FieldError{Field: "note", Message: "required"})
	} else if utf8.RuneCountInString(note) > maxNoteLength {
		errs = append(errs, domain.FieldError{Field: "note", Message: "too long (max " + strconv.Itoa(maxNoteLength) + ")"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// trimList trims entries and drops blanks and duplicates, keeping order.
func trimList(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// fieldIndex formats a nested field path like "definitions[0].meaning".
func fieldIndex(parent string, idx int, field string) string {
	return parent + "[" + strconv.Itoa(idx) + "]." + field
}

// fieldIndex2 formats a deeply nested field path like "definitions[0].example[1]".
func fieldIndex2(parent string, idx int, child string, childIdx int) string {
	return parent + "[" + strconv.Itoa(idx) + "]." + child + "[" + strconv.Itoa(childIdx) + "]"
}
