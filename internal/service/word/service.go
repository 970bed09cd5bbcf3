package word

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/lexicon-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordRepo interface {
	GetByLemma(ctx context.Context, lemma string) (*domain.Word, error)
	Create(ctx context.Context, w *domain.Word) error
	Update(ctx context.Context, w *domain.Word) error
	DeleteByLemma(ctx context.Context, lemma string) error
}

type meaningRepo interface {
	ListByWordIDs(ctx context.Context, wordIDs []uuid.UUID) (map[uuid.UUID][]domain.Definition, error)
	InsertAll(ctx context.Context, wordID uuid.UUID, defs []domain.Definition) error
	ReplaceForWord(ctx context.Context, wordID uuid.UUID, defs []domain.Definition) error
}

type noteRepo interface {
	ListByWordID(ctx context.Context, wordID uuid.UUID) ([]domain.Note, error)
	Create(ctx context.Context, n *domain.Note) error
}

type editorRepo interface {
	Ensure(ctx context.Context, id uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service coordinates every write to a word and its definition set.
// Definitions are always replaced wholesale; they have no identity that
// survives a save.
type Service struct {
	log      *slog.Logger
	words    wordRepo
	meanings meaningRepo
	notes    noteRepo
	editors  editorRepo
	tx       txManager
}

// NewService creates a new word service.
func NewService(
	logger *slog.Logger,
	words wordRepo,
	meanings meaningRepo,
	notes noteRepo,
	editors editorRepo,
	tx txManager,
) *Service {
	return &Service{
		log:      logger.With("service", "word"),
		words:    words,
		meanings: meanings,
		notes:    notes,
		editors:  editors,
		tx:       tx,
	}
}
