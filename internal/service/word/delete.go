package word

import (
	"context"
	"log/slog"
)

// DeleteWordByLemma removes a word together with its definitions and
// notes. Returns domain.ErrNotFound if no word has that lemma.
func (s *Service) DeleteWordByLemma(ctx context.Context, lemma string) error {
	if err := s.words.DeleteByLemma(ctx, lemma); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "word deleted", slog.String("lemma", lemma))
	return nil
}
