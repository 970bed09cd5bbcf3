package word

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/lexicon-backend/internal/domain"
	"github.com/heartmarshall/lexicon-backend/pkg/ctxutil"
)

// AddNote appends an editorial note to a word. The principal in ctx, if
// any, is recorded as its author.
func (s *Service) AddNote(ctx context.Context, input NoteInput) (*domain.Note, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	w, err := s.words.GetByLemma(ctx, input.Lemma)
	if err != nil {
		return nil, err
	}

	n := &domain.Note{
		WordID: w.ID,
		Note:   strings.TrimSpace(input.Note),
	}
	if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
		n.UserID = &userID
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if n.UserID != nil {
			if err := s.editors.Ensure(txCtx, *n.UserID); err != nil {
				return fmt.Errorf("register editor: %w", err)
			}
		}
		if err := s.notes.Create(txCtx, n); err != nil {
			return fmt.Errorf("create note: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

// ListNotes returns a word's notes, oldest first.
func (s *Service) ListNotes(ctx context.Context, lemma string) ([]domain.Note, error) {
	w, err := s.words.GetByLemma(ctx, lemma)
	if err != nil {
		return nil, err
	}

	notes, err := s.notes.ListByWordID(ctx, w.ID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}
