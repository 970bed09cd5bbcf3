package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Word is a dictionary headword with its ordered definitions.
// Lemma is the natural key; ID is the storage identity.
type Word struct {
	ID         uuid.UUID
	Lemma      string
	Root       string
	Letter     string
	Status     WordStatus
	CreatedBy  *uuid.UUID
	AssignedTo *uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Definitions []Definition
}

// Definition is one numbered sense of a word. It has no identity across
// saves: the whole set is replaced on every update, so cross references
// (Remission) point at lemmas, never at definitions.
type Definition struct {
	Number      int
	Meaning     string
	Origin      *string
	Categories  []string
	Styles      []string
	Remission   *string
	Observation *string
	Variant     *string
	Expressions []string
	Examples    []Example
}

// Example is a usage example with optional citation metadata.
type Example struct {
	Value  string  `json:"value"`
	Author *string `json:"author,omitempty"`
	Title  *string `json:"title,omitempty"`
	Source *string `json:"source,omitempty"`
	Date   *string `json:"date,omitempty"`
	Page   *string `json:"page,omitempty"`
}

// Note is an append-only editorial comment attached to a word.
type Note struct {
	ID        uuid.UUID
	WordID    uuid.UUID
	Note      string
	UserID    *uuid.UUID
	CreatedAt time.Time
}

// Renumber assigns contiguous 1-based numbers matching definition positions.
func (w *Word) Renumber() {
	for i := range w.Definitions {
		w.Definitions[i].Number = i + 1
	}
}

// InsertDefinition inserts d at position at (0-based, clamped) and renumbers.
func (w *Word) InsertDefinition(at int, d Definition) {
	if at < 0 {
		at = 0
	}
	if at > len(w.Definitions) {
		at = len(w.Definitions)
	}
	w.Definitions = append(w.Definitions, Definition{})
	copy(w.Definitions[at+1:], w.Definitions[at:])
	w.Definitions[at] = d
	w.Renumber()
}

// RemoveDefinition deletes the definition at position i and renumbers.
func (w *Word) RemoveDefinition(i int) error {
	if i < 0 || i >= len(w.Definitions) {
		return NewValidationError("definitions", fmt.Sprintf("index %d out of range", i))
	}
	w.Definitions = append(w.Definitions[:i], w.Definitions[i+1:]...)
	w.Renumber()
	return nil
}

// AddExample appends an example to the definition.
func (d *Definition) AddExample(ex Example) {
	d.Examples = append(d.Examples, ex)
}

// RemoveExample deletes the example at position i. Removing the only
// remaining example is rejected with ErrLastExample.
func (d *Definition) RemoveExample(i int) error {
	if i < 0 || i >= len(d.Examples) {
		return NewValidationError("example", fmt.Sprintf("index %d out of range", i))
	}
	if len(d.Examples) == 1 {
		return ErrLastExample
	}
	d.Examples = append(d.Examples[:i], d.Examples[i+1:]...)
	return nil
}
