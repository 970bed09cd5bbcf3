package lexiconclient

import (
	"fmt"
	"net/http"

	"github.com/heartmarshall/lexicon-backend/internal/domain"
)

// FieldError is a field-level reason reported by the server.
type FieldError = domain.FieldError

// APIError is a non-2xx response. It unwraps to the domain sentinel
// matching its status, so callers can use errors.Is(err, domain.ErrNotFound).
type APIError struct {
	StatusCode int
	Message    string
	Fields     []FieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("lexicon: %d %s: %s: %s", e.StatusCode, e.Message, e.Fields[0].Field, e.Fields[0].Message)
	}
	return fmt.Sprintf("lexicon: %d %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return domain.ErrValidation
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrAlreadyExists
	}
	return nil
}
