// Package note implements the append-only editorial note repository.
package note

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/lexicon-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lexicon-backend/internal/domain"
)

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides note persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new note repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID        uuid.UUID  `db:"id"`
	WordID    uuid.UUID  `db:"word_id"`
	Note      string     `db:"note"`
	UserID    *uuid.UUID `db:"user_id"`
	CreatedAt time.Time  `db:"created_at"`
}

func (r row) toDomain() domain.Note {
	return domain.Note{
		ID:        r.ID,
		WordID:    r.WordID,
		Note:      r.Note,
		UserID:    r.UserID,
		CreatedAt: r.CreatedAt,
	}
}

// ListByWordID returns a word's notes, oldest first.
func (r *Repo) ListByWordID(ctx context.Context, wordID uuid.UUID) ([]domain.Note, error) {
	query, args, err := builder.Select("id", "word_id", "note", "user_id", "created_at").
		From("notes").
		Where("word_id = ?", wordID).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "note", wordID.String())
	}

	notes := make([]domain.Note, len(rows))
	for i := range rows {
		notes[i] = rows[i].toDomain()
	}
	return notes, nil
}

// Create appends a note and fills in its id and creation time.
func (r *Repo) Create(ctx context.Context, n *domain.Note) error {
	query, args, err := builder.Insert("notes").
		Columns("word_id", "note", "user_id").
		Values(n.WordID, n.Note, n.UserID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&n.ID, &n.CreatedAt); err != nil {
		return postgres.MapError(err, "note", n.WordID.String())
	}
	return nil
}
