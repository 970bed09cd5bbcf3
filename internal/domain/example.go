package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EncodeExamples renders a definition's examples for the editing boundary:
// a bare object when there is exactly one example, an array otherwise.
// Storage always keeps the array form; this is the only place that emits
// the bare form.
func EncodeExamples(examples []Example) (json.RawMessage, error) {
	if len(examples) == 1 {
		return json.Marshal(examples[0])
	}
	if examples == nil {
		examples = []Example{}
	}
	return json.Marshal(examples)
}

// DecodeExamples accepts either shape produced by EncodeExamples (and the
// plain array stored in the database) and returns the canonical ordered
// sequence. A missing, null or empty value is rejected: a definition always
// carries at least one example.
func DecodeExamples(raw json.RawMessage) ([]Example, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, NewValidationError("example", "at least one example is required")
	}

	switch trimmed[0] {
	case '{':
		var ex Example
		if err := json.Unmarshal(trimmed, &ex); err != nil {
			return nil, NewValidationError("example", fmt.Sprintf("invalid example: %v", err))
		}
		return []Example{ex}, nil
	case '[':
		var examples []Example
		if err := json.Unmarshal(trimmed, &examples); err != nil {
			return nil, NewValidationError("example", fmt.Sprintf("invalid examples: %v", err))
		}
		if len(examples) == 0 {
			return nil, NewValidationError("example", "at least one example is required")
		}
		return examples, nil
	default:
		return nil, NewValidationError("example", "must be an object or an array of objects")
	}
}
