package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/lexicon-backend/internal/domain"
	"github.com/heartmarshall/lexicon-backend/internal/service/word"
)

// wordService defines the minimal interface needed by WordHandler.
type wordService interface {
	CreateWord(ctx context.Context, input word.WordInput) (*word.CreateResult, error)
	UpdateWordByLemma(ctx context.Context, prevLemma string, input word.WordInput) (*domain.Word, error)
	DeleteWordByLemma(ctx context.Context, lemma string) error
	GetWord(ctx context.Context, lemma string) (*domain.Word, error)
	AddNote(ctx context.Context, input word.NoteInput) (*domain.Note, error)
	ListNotes(ctx context.Context, lemma string) ([]domain.Note, error)
}

// WordHandler serves the editorial word endpoints. Every route it backs is
// mounted behind RequireEditor.
type WordHandler struct {
	svc     wordService
	log     *slog.Logger
	maxBody int64
}

// NewWordHandler creates a WordHandler. Request bodies larger than maxBody
// bytes are rejected; zero disables the limit.
func NewWordHandler(svc wordService, logger *slog.Logger, maxBody int64) *WordHandler {
	return &WordHandler{svc: svc, log: logger.With("handler", "word"), maxBody: maxBody}
}

// Create handles POST /words.
func (h *WordHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeWord(w, r)
	if !ok {
		return
	}

	res, err := h.svc.CreateWord(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeData(w, http.StatusCreated, res)
}

// Get handles GET /words/{lemma}.
func (h *WordHandler) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.svc.GetWord(r.Context(), r.PathValue("lemma"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	h.writeWord(w, r, http.StatusOK, found)
}

// Update handles PUT /words/{lemma}. The path carries the lemma the word
// had when the editor loaded it; the body may rename it.
func (h *WordHandler) Update(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeWord(w, r)
	if !ok {
		return
	}

	updated, err := h.svc.UpdateWordByLemma(r.Context(), r.PathValue("lemma"), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	h.writeWord(w, r, http.StatusOK, updated)
}

// Delete handles DELETE /words/{lemma}.
func (h *WordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	lemma := r.PathValue("lemma")
	if err := h.svc.DeleteWordByLemma(r.Context(), lemma); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"lemma": lemma})
}

// ListNotes handles GET /words/{lemma}/notes.
func (h *WordHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.svc.ListNotes(r.Context(), r.PathValue("lemma"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteResponse(n))
	}
	writeData(w, http.StatusOK, out)
}

// AddNote handles POST /words/{lemma}/notes with body {"note": "..."}.
func (h *WordHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeObject(w, r, h.maxBody)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	text, ok := raw["note"].(string)
	if !ok {
		handleError(h.log, w, r, domain.NewValidationError("note", "must be a string"))
		return
	}

	n, err := h.svc.AddNote(r.Context(), word.NoteInput{Lemma: r.PathValue("lemma"), Note: text})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeData(w, http.StatusCreated, toNoteResponse(*n))
}

func (h *WordHandler) decodeWord(w http.ResponseWriter, r *http.Request) (word.WordInput, bool) {
	raw, err := decodeObject(w, r, h.maxBody)
	if err != nil {
		handleError(h.log, w, r, err)
		return word.WordInput{}, false
	}
	input, err := word.CoerceWordInput(raw)
	if err != nil {
		handleError(h.log, w, r, err)
		return word.WordInput{}, false
	}
	return input, true
}

func (h *WordHandler) writeWord(w http.ResponseWriter, r *http.Request, status int, found *domain.Word) {
	resp, err := toWordResponse(*found, true)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeData(w, status, resp)
}
