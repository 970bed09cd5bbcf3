package search

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/heartmarshall/lexicon-backend/internal/config"
	"github.com/heartmarshall/lexicon-backend/internal/domain"
	"github.com/heartmarshall/lexicon-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordRepo interface {
	FindCandidates(ctx context.Context, f domain.SearchFilter) ([]domain.Word, error)
	CountPublished(ctx context.Context) (int, error)
	PublishedAt(ctx context.Context, offset int) (*domain.Word, error)
}

type meaningRepo interface {
	ListByWordIDs(ctx context.Context, wordIDs []uuid.UUID) (map[uuid.UUID][]domain.Definition, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	DistinctStyles(ctx context.Context) ([]string, error)
	DistinctOrigins(ctx context.Context) ([]string, error)
}

// WordCache memoizes the word of the day by date key. Eviction and
// lifetime belong to the implementation.
type WordCache interface {
	Get(key string) (*domain.Word, bool)
	Add(key string, w *domain.Word) bool
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements dictionary search, filter metadata and the word of
// the day.
type Service struct {
	log      *slog.Logger
	words    wordRepo
	meanings meaningRepo
	cache    WordCache
	cfg      config.SearchConfig
	lang     language.Tag
}

// NewService creates a new search service. cfg must have passed
// config validation; an unparseable collation locale falls back to Spanish.
func NewService(
	logger *slog.Logger,
	words wordRepo,
	meanings meaningRepo,
	cache WordCache,
	cfg config.SearchConfig,
) *Service {
	lang, err := language.Parse(cfg.CollationLocale)
	if err != nil {
		lang = language.Spanish
	}
	return &Service{
		log:      logger.With("service", "search"),
		words:    words,
		meanings: meanings,
		cache:    cache,
		cfg:      cfg,
		lang:     lang,
	}
}

// Result is a ranked page of matches.
type Result struct {
	Results    []Match
	Pagination Pagination
}

// Search validates input, fetches candidates with the store-level
// predicates pushed down, evaluates the rest, ranks and paginates.
// Requests carrying a principal run in the editorial context.
func (s *Service) Search(ctx context.Context, input SearchInput) (*Result, error) {
	editorial := ctxutil.IsEditorial(ctx)

	q, err := input.Validate(s.cfg, editorial)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	candidates, err := s.words.FindCandidates(ctx, q.Filter)
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}

	if err := s.attachDefinitions(ctx, candidates); err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(candidates))
	for _, w := range candidates {
		if ok, class := Evaluate(w, q.Filter); ok {
			matches = append(matches, Match{Word: w, Class: class})
		}
	}

	Rank(matches)
	page, pagination := Paginate(matches, q.Page, q.Limit)

	s.log.DebugContext(ctx, "search",
		slog.String("query", q.Filter.Query),
		slog.Bool("editorial", editorial),
		slog.Int("candidates", len(candidates)),
		slog.Int("matches", len(matches)),
		slog.Duration("took", time.Since(start)),
	)

	return &Result{Results: page, Pagination: pagination}, nil
}

func (s *Service) attachDefinitions(ctx context.Context, words []domain.Word) error {
	if len(words) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(words))
	for i := range words {
		ids[i] = words[i].ID
	}

	defs, err := s.meanings.ListByWordIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load definitions: %w", err)
	}

	for i := range words {
		words[i].Definitions = defs[words[i].ID]
	}
	return nil
}
