package word

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/lexicon-backend/internal/domain"
)

// GetWord returns the word with its definitions, whatever its status.
func (s *Service) GetWord(ctx context.Context, lemma string) (*domain.Word, error) {
	w, err := s.words.GetByLemma(ctx, lemma)
	if err != nil {
		return nil, err
	}

	defs, err := s.meanings.ListByWordIDs(ctx, []uuid.UUID{w.ID})
	if err != nil {
		return nil, fmt.Errorf("load definitions: %w", err)
	}
	w.Definitions = defs[w.ID]

	return w, nil
}
