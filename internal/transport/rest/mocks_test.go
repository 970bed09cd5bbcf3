package rest

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/heartmarshall/lexicon-backend/internal/domain"
	"github.com/heartmarshall/lexicon-backend/internal/service/search"
	"github.com/heartmarshall/lexicon-backend/internal/service/word"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ---------------------------------------------------------------------------
// searchService
// ---------------------------------------------------------------------------

type searchServiceMock struct {
	SearchFunc         func(ctx context.Context, input search.SearchInput) (*search.Result, error)
	DistinctValuesFunc func(ctx context.Context) (*search.Metadata, error)
	WordOfTheDayFunc   func(ctx context.Context, date time.Time) (*domain.Word, error)
}

func (m *searchServiceMock) Search(ctx context.Context, input search.SearchInput) (*search.Result, error) {
	if m.SearchFunc == nil {
		return &search.Result{}, nil
	}
	return m.SearchFunc(ctx, input)
}

func (m *searchServiceMock) DistinctValues(ctx context.Context) (*search.Metadata, error) {
	if m.DistinctValuesFunc == nil {
		return &search.Metadata{}, nil
	}
	return m.DistinctValuesFunc(ctx)
}

func (m *searchServiceMock) WordOfTheDay(ctx context.Context, date time.Time) (*domain.Word, error) {
	if m.WordOfTheDayFunc == nil {
		return nil, domain.ErrNotFound
	}
	return m.WordOfTheDayFunc(ctx, date)
}

// ---------------------------------------------------------------------------
// wordService
// ---------------------------------------------------------------------------

type wordServiceMock struct {
	CreateWordFunc        func(ctx context.Context, input word.WordInput) (*word.CreateResult, error)
	UpdateWordByLemmaFunc func(ctx context.Context, prevLemma string, input word.WordInput) (*domain.Word, error)
	DeleteWordByLemmaFunc func(ctx context.Context, lemma string) error
	GetWordFunc           func(ctx context.Context, lemma string) (*domain.Word, error)
	AddNoteFunc           func(ctx context.Context, input word.NoteInput) (*domain.Note, error)
	ListNotesFunc         func(ctx context.Context, lemma string) ([]domain.Note, error)
}

func (m *wordServiceMock) CreateWord(ctx context.Context, input word.WordInput) (*word.CreateResult, error) {
	if m.CreateWordFunc == nil {
		return &word.CreateResult{}, nil
	}
	return m.CreateWordFunc(ctx, input)
}

func (m *wordServiceMock) UpdateWordByLemma(ctx context.Context, prevLemma string, input word.WordInput) (*domain.Word, error) {
	if m.UpdateWordByLemmaFunc == nil {
		return nil, domain.ErrNotFound
	}
	return m.UpdateWordByLemmaFunc(ctx, prevLemma, input)
}

func (m *wordServiceMock) DeleteWordByLemma(ctx context.Context, lemma string) error {
	if m.DeleteWordByLemmaFunc == nil {
		return nil
	}
	return m.DeleteWordByLemmaFunc(ctx, lemma)
}

func (m *wordServiceMock) GetWord(ctx context.Context, lemma string) (*domain.Word, error) {
	if m.GetWordFunc == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetWordFunc(ctx, lemma)
}

func (m *wordServiceMock) AddNote(ctx context.Context, input word.NoteInput) (*domain.Note, error) {
	if m.AddNoteFunc == nil {
		return &domain.Note{}, nil
	}
	return m.AddNoteFunc(ctx, input)
}

func (m *wordServiceMock) ListNotes(ctx context.Context, lemma string) ([]domain.Note, error) {
	if m.ListNotesFunc == nil {
		return nil, nil
	}
	return m.ListNotesFunc(ctx, lemma)
}
