package search

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/heartmarshall/lexicon-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// NewWordCache returns an expirable LRU suitable as the word-of-the-day
// cache.
func NewWordCache(size int, ttl time.Duration) *expirable.LRU[string, *domain.Word] {
	return expirable.NewLRU[string, *domain.Word](size, nil, ttl)
}

// WordOfTheDay returns the published word chosen for date. The choice is
// deterministic per calendar day (UTC) and memoized in the cache.
// Returns domain.ErrNotFound when nothing is published.
func (s *Service) WordOfTheDay(ctx context.Context, date time.Time) (*domain.Word, error) {
	key := date.UTC().Format(dateLayout)

	if w, ok := s.cache.Get(key); ok {
		return w, nil
	}

	total, err := s.words.CountPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("count published: %w", err)
	}
	if total == 0 {
		return nil, fmt.Errorf("word of the day %s: %w", key, domain.ErrNotFound)
	}

	w, err := s.words.PublishedAt(ctx, dayIndex(key, total))
	if err != nil {
		return nil, fmt.Errorf("word of the day %s: %w", key, err)
	}

	defs, err := s.meanings.ListByWordIDs(ctx, []uuid.UUID{w.ID})
	if err != nil {
		return nil, fmt.Errorf("load definitions: %w", err)
	}
	w.Definitions = defs[w.ID]

	s.cache.Add(key, w)
	s.log.InfoContext(ctx, "word of the day selected",
		slog.String("date", key),
		slog.String("lemma", w.Lemma),
	)

	return w, nil
}

// dayIndex maps a date key onto [0, total).
func dayIndex(key string, total int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(total))
}
