// Package importer bulk-loads dictionary words from YAML (or JSON) files.
// Every imported word enters the workflow as "imported", whatever the file
// says. Lemmas that already exist are skipped and reported.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/lexicon-backend/internal/domain"
	"github.com/heartmarshall/lexicon-backend/internal/service/word"
)

type wordCreator interface {
	CreateWord(ctx context.Context, input word.WordInput) (*word.CreateResult, error)
}

// Config controls an import run.
type Config struct {
	// DryRun parses and validates every entry without writing.
	DryRun bool
}

// Result holds import statistics.
type Result struct {
	FilesProcessed  int
	Created         int
	Duplicates      int
	Invalid         int
	DuplicateLemmas []string
}

// Run imports every file in order. Invalid entries and duplicate lemmas are
// counted and logged; a read or storage failure aborts the run and returns
// the statistics gathered so far.
func Run(ctx context.Context, cfg Config, files []string, svc wordCreator, log *slog.Logger) (Result, error) {
	log = log.With("component", "importer")

	var result Result
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		entries, err := readFile(path)
		if err != nil {
			return result, err
		}
		result.FilesProcessed++

		for i, raw := range entries {
			if err := importEntry(ctx, cfg, svc, raw, &result); err != nil {
				attrs := []any{
					slog.String("path", path),
					slog.Int("entry", i),
					slog.String("error", err.Error()),
				}
				if errors.Is(err, domain.ErrValidation) {
					log.Warn("invalid entry", attrs...)
					continue
				}
				return result, fmt.Errorf("%s entry %d: %w", path, i, err)
			}
		}

		log.Info("file imported",
			slog.String("path", path),
			slog.Int("entries", len(entries)),
			slog.Bool("dry_run", cfg.DryRun),
		)
	}

	log.Info("import finished",
		slog.Int("files", result.FilesProcessed),
		slog.Int("created", result.Created),
		slog.Int("duplicates", result.Duplicates),
		slog.Int("invalid", result.Invalid),
	)
	return result, nil
}

func importEntry(ctx context.Context, cfg Config, svc wordCreator, raw map[string]any, result *Result) error {
	input, err := word.CoerceWordInput(raw)
	if err == nil {
		status := domain.WordStatusImported
		input.Status = &status
		err = input.Validate()
	}
	if err != nil {
		result.Invalid++
		return err
	}

	if cfg.DryRun {
		result.Created++
		return nil
	}

	_, err = svc.CreateWord(ctx, input)
	switch {
	case err == nil:
		result.Created++
		return nil
	case errors.Is(err, domain.ErrDuplicateLemma):
		result.Duplicates++
		result.DuplicateLemmas = append(result.DuplicateLemmas, input.Lemma)
		return nil
	case errors.Is(err, domain.ErrValidation):
		result.Invalid++
		return err
	default:
		return err
	}
}

// ---------------------------------------------------------------------------
// File decoding
// ---------------------------------------------------------------------------

// readFile accepts a top-level list of words or a mapping with a "words"
// list.
func readFile(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	entries, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return entries, nil
}

func decode(data []byte) ([]map[string]any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	var list []any
	switch v := doc.(type) {
	case nil:
		return nil, nil
	case []any:
		list = v
	case map[string]any:
		words, ok := v["words"].([]any)
		if !ok {
			return nil, errors.New(`expected a list of words or a "words" list`)
		}
		list = words
	default:
		return nil, errors.New(`expected a list of words or a "words" list`)
	}

	entries := make([]map[string]any, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("word %d: expected a mapping", i)
		}
		entries = append(entries, normalize(obj).(map[string]any))
	}
	return entries, nil
}

// normalize turns the scalars YAML resolves on its own (page: 12,
// date: 1605-01-16) back into strings. Every text field of a word is a
// string; booleans are left alone so they still fail validation.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format(time.DateOnly)
		}
		return t.Format(time.RFC3339)
	default:
		return v
	}
}
