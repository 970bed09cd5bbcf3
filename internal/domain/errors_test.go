package domain

import (
	"errors"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("lemma", "required")

	if got := err.Error(); got != "validation: lemma: required" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "lemma", Message: "required"},
		{Field: "definitions[0].meaning", Message: "required"},
	})

	if got := err.Error(); got != "validation: 2 errors" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
	if len(err.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Errors))
	}
}

func TestErrDuplicateLemma_IsAlreadyExists(t *testing.T) {
	t.Parallel()

	if !errors.Is(ErrDuplicateLemma, ErrAlreadyExists) {
		t.Fatal("ErrDuplicateLemma should wrap ErrAlreadyExists")
	}
	if errors.Is(ErrDuplicateLemma, ErrNotFound) {
		t.Fatal("ErrDuplicateLemma must not match ErrNotFound")
	}
}

func TestErrLastExample_IsValidation(t *testing.T) {
	t.Parallel()

	if !errors.Is(ErrLastExample, ErrValidation) {
		t.Fatal("ErrLastExample should be a validation error")
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{ErrNotFound, ErrAlreadyExists, ErrValidation, ErrUnauthorized}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}
