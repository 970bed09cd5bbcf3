// Package word implements the Word repository using PostgreSQL.
// Queries are built with squirrel and scanned with pgxscan; the search
// predicates that can be answered by an index are pushed down here, the
// rest is evaluated by the search service.
package word

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/lexicon-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lexicon-backend/internal/domain"
)

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var columns = []string{
	"w.id", "w.lemma", "w.root", "w.letter", "w.status",
	"w.created_by", "w.assigned_to", "w.created_at", "w.updated_at",
}

// Repo provides word persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new word repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID         uuid.UUID  `db:"id"`
	Lemma      string     `db:"lemma"`
	Root       string     `db:"root"`
	Letter     string     `db:"letter"`
	Status     string     `db:"status"`
	CreatedBy  *uuid.UUID `db:"created_by"`
	AssignedTo *uuid.UUID `db:"assigned_to"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
}

func (r row) toDomain() domain.Word {
	return domain.Word{
		ID:         r.ID,
		Lemma:      r.Lemma,
		Root:       r.Root,
		Letter:     r.Letter,
		Status:     domain.WordStatus(r.Status),
		CreatedBy:  r.CreatedBy,
		AssignedTo: r.AssignedTo,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// FindCandidates returns the words that pass every store-level predicate of
// f, in enumeration order (created_at, id). Definitions are not loaded.
// Free-text matching is left to the caller.
func (r *Repo) FindCandidates(ctx context.Context, f domain.SearchFilter) ([]domain.Word, error) {
	query, args, err := candidatesQuery(f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build candidates query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "word", "candidates")
	}

	words := make([]domain.Word, len(rows))
	for i := range rows {
		words[i] = rows[i].toDomain()
	}
	return words, nil
}

func candidatesQuery(f domain.SearchFilter) squirrel.SelectBuilder {
	q := builder.Select(columns...).From("words w")

	if len(f.Letters) > 0 {
		q = q.Where(squirrel.Eq{"w.letter": lowerAll(f.Letters)})
	}

	if f.Editorial {
		if f.Status != nil {
			q = q.Where(squirrel.Eq{"w.status": string(*f.Status)})
		}
		if len(f.AssignedTo) > 0 {
			q = q.Where(squirrel.Eq{"w.assigned_to": f.AssignedTo})
		}
	} else {
		q = q.Where(squirrel.Eq{"w.status": string(domain.WordStatusPublished)})
	}

	if len(f.Categories) > 0 {
		q = q.Where(`EXISTS (SELECT 1 FROM meanings m, unnest(m.categories) c
			WHERE m.word_id = w.id AND lower(c) = ANY(?))`, lowerAll(f.Categories))
	}
	if len(f.Styles) > 0 {
		q = q.Where(`EXISTS (SELECT 1 FROM meanings m, unnest(m.styles) s
			WHERE m.word_id = w.id AND lower(s) = ANY(?))`, lowerAll(f.Styles))
	}
	if len(f.Origins) > 0 {
		patterns := make([]string, len(f.Origins))
		for i, o := range f.Origins {
			patterns[i] = "%" + escapeLike(o) + "%"
		}
		q = q.Where(`EXISTS (SELECT 1 FROM meanings m
			WHERE m.word_id = w.id AND m.origin ILIKE ANY(?))`, patterns)
	}

	return q.OrderBy("w.created_at", "w.id")
}

// GetByLemma returns a word by its exact (case-sensitive) lemma.
func (r *Repo) GetByLemma(ctx context.Context, lemma string) (*domain.Word, error) {
	query, args, err := builder.Select(columns...).From("words w").
		Where(squirrel.Eq{"w.lemma": lemma}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "word", lemma)
	}

	w := rw.toDomain()
	return &w, nil
}

// CountPublished returns the number of published words.
func (r *Repo) CountPublished(ctx context.Context) (int, error) {
	query, args, err := builder.Select("count(*)").From("words").
		Where(squirrel.Eq{"status": string(domain.WordStatusPublished)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "word", "count")
	}
	return n, nil
}

// PublishedAt returns the published word at position offset of the
// enumeration order.
func (r *Repo) PublishedAt(ctx context.Context, offset int) (*domain.Word, error) {
	query, args, err := builder.Select(columns...).From("words w").
		Where(squirrel.Eq{"w.status": string(domain.WordStatusPublished)}).
		OrderBy("w.created_at", "w.id").
		Offset(uint64(offset)).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build published query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "word", fmt.Sprintf("#%d", offset))
	}

	w := rw.toDomain()
	return &w, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a word record and fills in its generated id and timestamps.
// A lemma collision surfaces as domain.ErrDuplicateLemma.
func (r *Repo) Create(ctx context.Context, w *domain.Word) error {
	query, args, err := builder.Insert("words").
		Columns("lemma", "root", "letter", "status", "created_by", "assigned_to").
		Values(w.Lemma, w.Root, w.Letter, string(w.Status), w.CreatedBy, w.AssignedTo).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).
		Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "word", w.Lemma)
	}
	return nil
}

// Update writes the scalar fields of w (lemma, root, status, assigned_to)
// to the row identified by w.ID and refreshes UpdatedAt.
func (r *Repo) Update(ctx context.Context, w *domain.Word) error {
	query, args, err := builder.Update("words").
		Set("lemma", w.Lemma).
		Set("root", w.Root).
		Set("status", string(w.Status)).
		Set("assigned_to", w.AssignedTo).
		Set("updated_at", squirrel.Expr("now()")).
		Where("id = ?", w.ID).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&w.UpdatedAt); err != nil {
		return postgres.MapError(err, "word", w.Lemma)
	}
	return nil
}

// DeleteByLemma removes a word; meanings and notes go with it through the
// foreign key cascade.
func (r *Repo) DeleteByLemma(ctx context.Context, lemma string) error {
	query, args, err := builder.Delete("words").
		Where(squirrel.Eq{"lemma": lemma}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "word", lemma)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("word %s: %w", lemma, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
