package word

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/lexicon-backend/internal/domain"
)

// CoerceWordInput turns a decoded JSON object into a WordInput. Every
// field either converts to its typed value or yields a named field error;
// unknown keys are ignored. Business rules (required lemma, non-empty
// examples) are left to WordInput.Validate.
//
// Recognised keys: lemma, root, letter, status, assignedTo (uuid string,
// or null to clear) and definitions. Each definition accepts meaning,
// origin, categories, styles, remission, observation, variant,
// expressions and example, where example is a bare object or an array.
// A definition's "number" is ignored: definitions are numbered by
// position.
func CoerceWordInput(raw map[string]any) (WordInput, error) {
	c := &coercer{}
	var in WordInput

	in.Lemma = c.str(raw, "lemma", "lemma")
	in.Root = c.str(raw, "root", "root")
	in.Letter = c.str(raw, "letter", "letter")

	if v, ok := raw["status"]; ok && v != nil {
		if s, ok := v.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				st := domain.WordStatus(s)
				in.Status = &st
			}
		} else {
			c.fail("status", "must be a string")
		}
	}

	if v, ok := raw["assignedTo"]; ok {
		switch t := v.(type) {
		case nil:
			in.Unassign = true
		case string:
			if strings.TrimSpace(t) == "" {
				in.Unassign = true
				break
			}
			id, err := uuid.Parse(strings.TrimSpace(t))
			if err != nil {
				c.fail("assignedTo", "invalid id: "+t)
				break
			}
			in.AssignedTo = &id
		default:
			c.fail("assignedTo", "must be a string or null")
		}
	}

	if v, ok := raw["definitions"]; ok && v != nil {
		list, ok := v.([]any)
		if !ok {
			c.fail("definitions", "must be a list")
		} else {
			in.Definitions = make([]domain.Definition, 0, len(list))
			for idx, item := range list {
				obj, ok := item.(map[string]any)
				if !ok {
					c.fail(fmt.Sprintf("definitions[%d]", idx), "must be an object")
					continue
				}
				in.Definitions = append(in.Definitions, c.definition(obj, idx))
			}
		}
	}

	if len(c.errs) > 0 {
		return WordInput{}, domain.NewValidationErrors(c.errs)
	}
	return in, nil
}

type coercer struct {
	errs []domain.FieldError
}

func (c *coercer) fail(field, message string) {
	c.errs = append(c.errs, domain.FieldError{Field: field, Message: message})
}

func (c *coercer) definition(obj map[string]any, idx int) domain.Definition {
	path := func(field string) string { return fieldIndex("definitions", idx, field) }

	d := domain.Definition{
		Meaning:     c.str(obj, "meaning", path("meaning")),
		Origin:      c.optStr(obj, "origin", path("origin")),
		Categories:  c.strList(obj, "categories", path("categories")),
		Styles:      c.strList(obj, "styles", path("styles")),
		Remission:   c.optStr(obj, "remission", path("remission")),
		Observation: c.optStr(obj, "observation", path("observation")),
		Variant:     c.optStr(obj, "variant", path("variant")),
		Expressions: c.strList(obj, "expressions", path("expressions")),
	}

	v, ok := obj["example"]
	if !ok {
		v, ok = obj["examples"]
	}
	if !ok || v == nil {
		c.fail(path("example"), "at least one example is required")
		return d
	}

	raw, err := json.Marshal(v)
	if err != nil {
		c.fail(path("example"), "invalid example")
		return d
	}
	examples, err := domain.DecodeExamples(raw)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			for _, fe := range ve.Errors {
				c.fail(path("example"), fe.Message)
			}
		} else {
			c.fail(path("example"), err.Error())
		}
		return d
	}
	d.Examples = examples
	return d
}

// str reads an optional string; absent and null read as "".
func (c *coercer) str(obj map[string]any, key, field string) string {
	v, ok := obj[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		c.fail(field, "must be a string")
		return ""
	}
	return s
}

func (c *coercer) optStr(obj map[string]any, key, field string) *string {
	v, ok := obj[key]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		c.fail(field, "must be a string")
		return nil
	}
	return &s
}

// strList accepts a list of strings or a single string.
func (c *coercer) strList(obj map[string]any, key, field string) []string {
	v, ok := obj[key]
	if !ok || v == nil {
		return nil
	}
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for i, item := range t {
			s, ok := item.(string)
			if !ok {
				c.fail(fmt.Sprintf("%s[%d]", field, i), "must be a string")
				continue
			}
			out = append(out, s)
		}
		return out
	default:
		c.fail(field, "must be a list of strings")
		return nil
	}
}
