package word

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/lexicon-backend/internal/domain"
)

// UpdateWordByLemma overwrites the word stored under prevLemma with input:
// lemma (a rename), root, status and assignee when given, and a full
// replace of the definition set, all in one transaction.
//
// There is no version check. Concurrent saves of the same word resolve
// as last writer wins.
func (s *Service) UpdateWordByLemma(ctx context.Context, prevLemma string, input WordInput) (*domain.Word, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	w, err := s.words.GetByLemma(ctx, prevLemma)
	if err != nil {
		return nil, err
	}

	lemma := strings.TrimSpace(input.Lemma)
	w.Lemma = lemma
	w.Root = input.root(lemma)
	if input.Status != nil {
		w.Status = *input.Status
	}
	switch {
	case input.Unassign:
		w.AssignedTo = nil
	case input.AssignedTo != nil:
		w.AssignedTo = input.AssignedTo
	}
	w.Definitions = input.definitions()

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.words.Update(txCtx, w); err != nil {
			return fmt.Errorf("update word: %w", err)
		}
		if err := s.meanings.ReplaceForWord(txCtx, w.ID, w.Definitions); err != nil {
			return fmt.Errorf("replace definitions: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	attrs := []any{
		slog.String("lemma", w.Lemma),
		slog.Int("definitions", len(w.Definitions)),
	}
	if prevLemma != w.Lemma {
		attrs = append(attrs, slog.String("renamed_from", prevLemma))
	}
	s.log.InfoContext(ctx, "word updated", attrs...)

	return w, nil
}
