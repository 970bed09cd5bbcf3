// Package meaning implements persistence of word definitions ("meanings").
// Definitions are owned by a word and have no identity across saves: the
// whole set is replaced on every update.
package meaning

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/lexicon-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lexicon-backend/internal/domain"
)

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var insertColumns = []string{
	"word_id", "number", "meaning", "origin", "categories", "styles",
	"remission", "observation", "variant", "expressions", "examples",
}

// Repo provides definition persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new meaning repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	WordID      uuid.UUID       `db:"word_id"`
	Number      int             `db:"number"`
	Meaning     string          `db:"meaning"`
	Origin      *string         `db:"origin"`
	Categories  []string        `db:"categories"`
	Styles      []string        `db:"styles"`
	Remission   *string         `db:"remission"`
	Observation *string         `db:"observation"`
	Variant     *string         `db:"variant"`
	Expressions []string        `db:"expressions"`
	Examples    json.RawMessage `db:"examples"`
}

func (r row) toDomain() (domain.Definition, error) {
	examples, err := domain.DecodeExamples(r.Examples)
	if err != nil {
		return domain.Definition{}, fmt.Errorf("meaning %s#%d: %w", r.WordID, r.Number, err)
	}
	return domain.Definition{
		Number:      r.Number,
		Meaning:     r.Meaning,
		Origin:      r.Origin,
		Categories:  r.Categories,
		Styles:      r.Styles,
		Remission:   r.Remission,
		Observation: r.Observation,
		Variant:     r.Variant,
		Expressions: r.Expressions,
		Examples:    examples,
	}, nil
}

// ListByWordIDs returns the definitions of each word, ordered by number.
// Words without definitions are absent from the map.
func (r *Repo) ListByWordIDs(ctx context.Context, wordIDs []uuid.UUID) (map[uuid.UUID][]domain.Definition, error) {
	result := make(map[uuid.UUID][]domain.Definition, len(wordIDs))
	if len(wordIDs) == 0 {
		return result, nil
	}

	query, args, err := builder.Select(insertColumns...).From("meanings").
		Where("word_id = ANY(?)", wordIDs).
		OrderBy("word_id", "number").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "meaning", "list")
	}

	for _, rw := range rows {
		d, err := rw.toDomain()
		if err != nil {
			return nil, err
		}
		result[rw.WordID] = append(result[rw.WordID], d)
	}
	return result, nil
}

// ReplaceForWord discards every definition of the word and inserts defs
// with numbers 1..n in slice order. Callers run it inside a transaction.
func (r *Repo) ReplaceForWord(ctx context.Context, wordID uuid.UUID, defs []domain.Definition) error {
	if err := r.DeleteByWordID(ctx, wordID); err != nil {
		return err
	}
	return r.InsertAll(ctx, wordID, defs)
}

// DeleteByWordID removes all definitions of a word.
func (r *Repo) DeleteByWordID(ctx context.Context, wordID uuid.UUID) error {
	query, args, err := builder.Delete("meanings").Where("word_id = ?", wordID).ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "meaning", wordID.String())
	}
	return nil
}

// InsertAll inserts defs for a word in one statement. Examples are stored
// in array form regardless of how many there are.
func (r *Repo) InsertAll(ctx context.Context, wordID uuid.UUID, defs []domain.Definition) error {
	if len(defs) == 0 {
		return nil
	}

	insert := builder.Insert("meanings").Columns(insertColumns...)
	for i, d := range defs {
		examples, err := json.Marshal(d.Examples)
		if err != nil {
			return fmt.Errorf("marshal examples of definition %d: %w", i+1, err)
		}
		insert = insert.Values(
			wordID, i+1, d.Meaning, d.Origin, nonNil(d.Categories), nonNil(d.Styles),
			d.Remission, d.Observation, d.Variant, nonNil(d.Expressions), examples,
		)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "meaning", wordID.String())
	}
	return nil
}

// DistinctCategories returns every category code used by any definition.
func (r *Repo) DistinctCategories(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "SELECT DISTINCT unnest(categories) AS value FROM meanings")
}

// DistinctStyles returns every style code used by any definition.
func (r *Repo) DistinctStyles(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "SELECT DISTINCT unnest(styles) AS value FROM meanings")
}

// DistinctOrigins returns every non-null origin.
func (r *Repo) DistinctOrigins(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "SELECT DISTINCT origin AS value FROM meanings WHERE origin IS NOT NULL")
}

// Order is left to the caller, which sorts with locale collation.
func (r *Repo) distinct(ctx context.Context, query string) ([]string, error) {
	var values []string
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &values, query); err != nil {
		return nil, postgres.MapError(err, "meaning", "distinct")
	}
	return values, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
