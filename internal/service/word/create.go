package word

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/lexicon-backend/internal/domain"
	"github.com/heartmarshall/lexicon-backend/pkg/ctxutil"
)

// CreateWord inserts a word and its definitions atomically. The lemma is
// matched case-sensitively; an existing lemma yields
// domain.ErrDuplicateLemma and nothing is written.
func (s *Service) CreateWord(ctx context.Context, input WordInput) (*CreateResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	lemma := strings.TrimSpace(input.Lemma)

	_, err := s.words.GetByLemma(ctx, lemma)
	if err == nil {
		return nil, domain.ErrDuplicateLemma
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check duplicate: %w", err)
	}

	w := &domain.Word{
		Lemma:       lemma,
		Root:        input.root(lemma),
		Letter:      domain.DeriveLetter(lemma, input.Letter),
		Status:      domain.DefaultWordStatus,
		AssignedTo:  input.AssignedTo,
		Definitions: input.definitions(),
	}
	if input.Status != nil {
		w.Status = *input.Status
	}
	if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
		w.CreatedBy = &userID
	}

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if w.CreatedBy != nil {
			if err := s.editors.Ensure(txCtx, *w.CreatedBy); err != nil {
				return fmt.Errorf("register editor: %w", err)
			}
		}
		if err := s.words.Create(txCtx, w); err != nil {
			return fmt.Errorf("create word: %w", err)
		}
		if err := s.meanings.InsertAll(txCtx, w.ID, w.Definitions); err != nil {
			return fmt.Errorf("insert definitions: %w", err)
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, domain.ErrDuplicateLemma) {
			return nil, domain.ErrDuplicateLemma
		}
		return nil, txErr
	}

	s.log.InfoContext(ctx, "word created",
		slog.String("lemma", w.Lemma),
		slog.String("word_id", w.ID.String()),
		slog.Int("definitions", len(w.Definitions)),
	)

	return &CreateResult{WordID: w.ID, Lemma: w.Lemma, Letter: w.Letter}, nil
}
