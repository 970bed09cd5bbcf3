package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/lexicon-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// UniqueLemma returns prefix with a random suffix so parallel tests sharing
// the container never collide on the lemma key.
func UniqueLemma(prefix string) string {
	return prefix + "-" + uniqueSuffix()
}

// SeedUser creates an editor row and returns its id.
func SeedUser(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, name) VALUES ($1, $2)`,
		id, "Editor "+uniqueSuffix(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}
	return id
}

// SeedWord inserts a word with the given status and definitions.
// Definitions without examples get a placeholder example so the row
// satisfies the schema. Returns the stored word.
func SeedWord(t *testing.T, pool *pgxpool.Pool, lemma string, status domain.WordStatus, defs ...domain.Definition) domain.Word {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	w := domain.Word{
		ID:        uuid.New(),
		Lemma:     lemma,
		Root:      lemma,
		Letter:    domain.DeriveLetter(lemma, ""),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO words (id, lemma, root, letter, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		w.ID, w.Lemma, w.Root, w.Letter, string(w.Status), w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedWord insert word: %v", err)
	}

	for i, d := range defs {
		d.Number = i + 1
		if len(d.Examples) == 0 {
			d.Examples = []domain.Example{{Value: "Ej."}}
		}
		examples, err := json.Marshal(d.Examples)
		if err != nil {
			t.Fatalf("testhelper: SeedWord marshal examples: %v", err)
		}

		_, err = pool.Exec(ctx,
			`INSERT INTO meanings (word_id, number, meaning, origin, categories, styles, remission,
			                       observation, variant, expressions, examples)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			w.ID, d.Number, d.Meaning, d.Origin, nonNil(d.Categories), nonNil(d.Styles), d.Remission,
			d.Observation, d.Variant, nonNil(d.Expressions), examples,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedWord insert meaning %d: %v", d.Number, err)
		}
		w.Definitions = append(w.Definitions, d)
	}

	return w
}

// SeedNote appends a note to a word.
func SeedNote(t *testing.T, pool *pgxpool.Pool, wordID uuid.UUID, text string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := pool.QueryRow(context.Background(),
		`INSERT INTO notes (word_id, note) VALUES ($1, $2) RETURNING id`,
		wordID, text,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedNote: %v", err)
	}
	return id
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
