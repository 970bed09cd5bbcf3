package lexiconclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lexicon-backend/internal/domain"
)

// wordPayload is the body of POST /words and PUT /words/{lemma}. The
// assignee is always sent: a full save of a word with no assignee clears it.
type wordPayload struct {
	Lemma       string              `json:"lemma"`
	Root        string              `json:"root,omitempty"`
	Letter      string              `json:"letter,omitempty"`
	Status      domain.WordStatus   `json:"status,omitempty"`
	AssignedTo  *uuid.UUID          `json:"assignedTo"`
	Definitions []definitionPayload `json:"definitions"`
}

type definitionPayload struct {
	Number      int             `json:"number,omitempty"`
	Meaning     string          `json:"meaning"`
	Origin      *string         `json:"origin,omitempty"`
	Categories  []string        `json:"categories,omitempty"`
	Styles      []string        `json:"styles,omitempty"`
	Remission   *string         `json:"remission,omitempty"`
	Observation *string         `json:"observation,omitempty"`
	Variant     *string         `json:"variant,omitempty"`
	Expressions []string        `json:"expressions,omitempty"`
	Example     json.RawMessage `json:"example"`
}

type wordData struct {
	wordPayload
	ID        uuid.UUID  `json:"id"`
	CreatedBy *uuid.UUID `json:"createdBy"`
	CreatedAt *time.Time `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

func toPayload(w domain.Word) (wordPayload, error) {
	p := wordPayload{
		Lemma:       w.Lemma,
		Root:        w.Root,
		Letter:      w.Letter,
		Status:      w.Status,
		AssignedTo:  w.AssignedTo,
		Definitions: make([]definitionPayload, 0, len(w.Definitions)),
	}
	for _, d := range w.Definitions {
		examples, err := domain.EncodeExamples(d.Examples)
		if err != nil {
			return wordPayload{}, fmt.Errorf("encode examples: %w", err)
		}
		p.Definitions = append(p.Definitions, definitionPayload{
			Number:      d.Number,
			Meaning:     d.Meaning,
			Origin:      d.Origin,
			Categories:  d.Categories,
			Styles:      d.Styles,
			Remission:   d.Remission,
			Observation: d.Observation,
			Variant:     d.Variant,
			Expressions: d.Expressions,
			Example:     examples,
		})
	}
	return p, nil
}

func (d wordData) toDomain() (*domain.Word, error) {
	w := &domain.Word{
		ID:          d.ID,
		Lemma:       d.Lemma,
		Root:        d.Root,
		Letter:      d.Letter,
		Status:      d.Status,
		AssignedTo:  d.AssignedTo,
		CreatedBy:   d.CreatedBy,
		Definitions: make([]domain.Definition, 0, len(d.Definitions)),
	}
	if d.CreatedAt != nil {
		w.CreatedAt = *d.CreatedAt
	}
	if d.UpdatedAt != nil {
		w.UpdatedAt = *d.UpdatedAt
	}
	for i, def := range d.Definitions {
		examples, err := domain.DecodeExamples(def.Example)
		if err != nil {
			return nil, fmt.Errorf("lexicon: definition %d of %q: %w", i+1, d.Lemma, err)
		}
		w.Definitions = append(w.Definitions, domain.Definition{
			Number:      def.Number,
			Meaning:     def.Meaning,
			Origin:      def.Origin,
			Categories:  def.Categories,
			Styles:      def.Styles,
			Remission:   def.Remission,
			Observation: def.Observation,
			Variant:     def.Variant,
			Expressions: def.Expressions,
			Examples:    examples,
		})
	}
	return w, nil
}

// CreateResult identifies a newly created word.
type CreateResult struct {
	WordID uuid.UUID `json:"wordId"`
	Lemma  string    `json:"lemma"`
	Letter string    `json:"letter"`
}

// CreateWord creates w. Letter, if set, overrides the derived index letter.
func (c *Client) CreateWord(ctx context.Context, w domain.Word) (*CreateResult, error) {
	payload, err := toPayload(w)
	if err != nil {
		return nil, err
	}
	var res CreateResult
	if err := c.do(ctx, http.MethodPost, "/words", payload, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetWord fetches a word with its definitions.
func (c *Client) GetWord(ctx context.Context, lemma string) (*domain.Word, error) {
	var data wordData
	if err := c.do(ctx, http.MethodGet, wordPath(lemma), nil, &data); err != nil {
		return nil, err
	}
	return data.toDomain()
}

// UpdateWord replaces the word stored under prevLemma with w. w.Lemma may
// differ from prevLemma, which renames the word.
func (c *Client) UpdateWord(ctx context.Context, prevLemma string, w domain.Word) (*domain.Word, error) {
	payload, err := toPayload(w)
	if err != nil {
		return nil, err
	}
	var data wordData
	if err := c.do(ctx, http.MethodPut, wordPath(prevLemma), payload, &data); err != nil {
		return nil, err
	}
	return data.toDomain()
}

// DeleteWord deletes a word and everything attached to it.
func (c *Client) DeleteWord(ctx context.Context, lemma string) error {
	return c.do(ctx, http.MethodDelete, wordPath(lemma), nil, nil)
}

type noteData struct {
	ID        uuid.UUID  `json:"id"`
	Note      string     `json:"note"`
	UserID    *uuid.UUID `json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (n noteData) toDomain(wordID uuid.UUID) domain.Note {
	return domain.Note{ID: n.ID, WordID: wordID, Note: n.Note, UserID: n.UserID, CreatedAt: n.CreatedAt}
}

// AddNote appends an editorial note to a word.
func (c *Client) AddNote(ctx context.Context, lemma, note string) (*domain.Note, error) {
	var data noteData
	if err := c.do(ctx, http.MethodPost, wordPath(lemma)+"/notes", map[string]string{"note": note}, &data); err != nil {
		return nil, err
	}
	n := data.toDomain(uuid.Nil)
	return &n, nil
}

// ListNotes returns a word's notes, oldest first.
func (c *Client) ListNotes(ctx context.Context, lemma string) ([]domain.Note, error) {
	var data []noteData
	if err := c.do(ctx, http.MethodGet, wordPath(lemma)+"/notes", nil, &data); err != nil {
		return nil, err
	}
	notes := make([]domain.Note, 0, len(data))
	for _, n := range data {
		notes = append(notes, n.toDomain(uuid.Nil))
	}
	return notes, nil
}

func wordPath(lemma string) string {
	return "/words/" + url.PathEscape(lemma)
}
