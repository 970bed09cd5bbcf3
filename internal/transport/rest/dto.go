package rest

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lexicon-backend/internal/domain"
	"github.com/heartmarshall/lexicon-backend/internal/service/search"
)

// wordResponse is the editing representation of a word. Examples go
// through the example codec: a bare object for one, an array otherwise.
type wordResponse struct {
	ID          uuid.UUID            `json:"id"`
	Lemma       string               `json:"lemma"`
	Root        string               `json:"root"`
	Letter      string               `json:"letter"`
	Status      domain.WordStatus    `json:"status,omitempty"`
	AssignedTo  *uuid.UUID           `json:"assignedTo,omitempty"`
	CreatedBy   *uuid.UUID           `json:"createdBy,omitempty"`
	CreatedAt   *time.Time           `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time           `json:"updatedAt,omitempty"`
	Definitions []definitionResponse `json:"definitions"`
}

type definitionResponse struct {
	Number      int             `json:"number"`
	Meaning     string          `json:"meaning"`
	Origin      *string         `json:"origin,omitempty"`
	Categories  []string        `json:"categories"`
	Styles      []string        `json:"styles"`
	Remission   *string         `json:"remission,omitempty"`
	Observation *string         `json:"observation,omitempty"`
	Variant     *string         `json:"variant,omitempty"`
	Expressions []string        `json:"expressions"`
	Example     json.RawMessage `json:"example"`
}

func toWordResponse(w domain.Word, editorial bool) (wordResponse, error) {
	resp := wordResponse{
		ID:          w.ID,
		Lemma:       w.Lemma,
		Root:        w.Root,
		Letter:      w.Letter,
		Definitions: make([]definitionResponse, 0, len(w.Definitions)),
	}
	if editorial {
		resp.Status = w.Status
		resp.AssignedTo = w.AssignedTo
		resp.CreatedBy = w.CreatedBy
		resp.CreatedAt = timePtr(w.CreatedAt)
		resp.UpdatedAt = timePtr(w.UpdatedAt)
	}

	for _, d := range w.Definitions {
		examples, err := domain.EncodeExamples(d.Examples)
		if err != nil {
			return wordResponse{}, fmt.Errorf("encode examples of %q #%d: %w", w.Lemma, d.Number, err)
		}
		resp.Definitions = append(resp.Definitions, definitionResponse{
			Number:      d.Number,
			Meaning:     d.Meaning,
			Origin:      d.Origin,
			Categories:  nonNil(d.Categories),
			Styles:      nonNil(d.Styles),
			Remission:   d.Remission,
			Observation: d.Observation,
			Variant:     d.Variant,
			Expressions: nonNil(d.Expressions),
			Example:     examples,
		})
	}
	return resp, nil
}

type searchResultResponse struct {
	Word      string            `json:"word"`
	Letter    string            `json:"letter"`
	MatchType domain.MatchClass `json:"matchType"`
}

type searchResponse struct {
	Results    []searchResultResponse `json:"results"`
	Pagination search.Pagination      `json:"pagination"`
}

func toSearchResponse(res *search.Result) searchResponse {
	out := searchResponse{
		Results:    make([]searchResultResponse, 0, len(res.Results)),
		Pagination: res.Pagination,
	}
	for _, m := range res.Results {
		out.Results = append(out.Results, searchResultResponse{
			Word:      m.Word.Lemma,
			Letter:    m.Word.Letter,
			MatchType: m.Class,
		})
	}
	return out
}

type noteResponse struct {
	ID        uuid.UUID  `json:"id"`
	Note      string     `json:"note"`
	UserID    *uuid.UUID `json:"userId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func toNoteResponse(n domain.Note) noteResponse {
	return noteResponse{ID: n.ID, Note: n.Note, UserID: n.UserID, CreatedAt: n.CreatedAt}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
