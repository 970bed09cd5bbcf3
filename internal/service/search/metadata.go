package search

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
)

// Metadata lists the values available for building filter UIs.
type Metadata struct {
	Categories []string `json:"categories"`
	Styles     []string `json:"styles"`
	Origins    []string `json:"origins"`
}

// DistinctValues returns the de-duplicated categories, styles and origins
// used across all definitions, sorted with the configured locale's
// collation so accented letters group with their base letter.
func (s *Service) DistinctValues(ctx context.Context) (*Metadata, error) {
	var md Metadata

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.meanings.DistinctCategories(gctx)
		if err != nil {
			return fmt.Errorf("distinct categories: %w", err)
		}
		md.Categories = v
		return nil
	})
	g.Go(func() error {
		v, err := s.meanings.DistinctStyles(gctx)
		if err != nil {
			return fmt.Errorf("distinct styles: %w", err)
		}
		md.Styles = v
		return nil
	})
	g.Go(func() error {
		v, err := s.meanings.DistinctOrigins(gctx)
		if err != nil {
			return fmt.Errorf("distinct origins: %w", err)
		}
		md.Origins = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	md.Categories = s.collateSorted(md.Categories)
	md.Styles = s.collateSorted(md.Styles)
	md.Origins = s.collateSorted(md.Origins)

	return &md, nil
}

// collateSorted de-duplicates and sorts values. A Collator is not safe for
// concurrent use, so one is built per call.
func (s *Service) collateSorted(values []string) []string {
	out := compact(values)
	if out == nil {
		return []string{}
	}
	collate.New(s.lang).SortStrings(out)
	return out
}
