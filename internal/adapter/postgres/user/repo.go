// Package user implements the editor registry backed by the users table.
package user

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

// Repo provides editor persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

func (r row) toDomain() domain.Editor {
	return domain.Editor{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt}
}

// Ensure registers id as an editor unless it already is. It is called
// before writing rows that reference the principal.
func (r *Repo) Ensure(ctx context.Context, id uuid.UUID) error {
	query, args, err := builder.Insert("users").
		Columns("id").
		Values(id).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build ensure query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "user", id.String())
	}
	return nil
}

// Upsert creates the editor or renames an existing one.
func (r *Repo) Upsert(ctx context.Context, e *domain.Editor) error {
	query, args, err := builder.Insert("users").
		Columns("id", "name").
		Values(e.ID, e.Name).
		Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert query: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&e.CreatedAt); err != nil {
		return postgres.MapError(err, "user", e.ID.String())
	}
	return nil
}

// GetByID returns an editor by id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Editor, error) {
	query, args, err := builder.Select("id", "name", "created_at").
		From("users").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "user", id.String())
	}
	e := rw.toDomain()
	return &e, nil
}

// List returns all editors ordered by name.
func (r *Repo) List(ctx context.Context) ([]domain.Editor, error) {
	query, args, err := builder.Select("id", "name", "created_at").
		From("users").
		OrderBy("name", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "user", "list")
	}

	editors := make([]domain.Editor, len(rows))
	for i := range rows {
		editors[i] = rows[i].toDomain()
	}
	return editors, nil
}
