//go:build e2e

package app_test

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lexicon-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/lexicon-backend/internal/app"
	"github.com/heartmarshall/lexicon-backend/internal/config"
	"github.com/heartmarshall/lexicon-backend/internal/domain"
	"github.com/heartmarshall/lexicon-backend/pkg/lexiconclient"
)

const e2eSecret = "e2e-secret-e2e-secret-e2e-secret-!"

type testServer struct {
	URL    string
	Editor uuid.UUID
	Anon   *lexiconclient.Client
	Client *lexiconclient.Client
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.DiscardHandler)

	cfg := &config.Config{
		Server: config.ServerConfig{MaxBodyBytes: 1 << 20},
		Auth:   config.AuthConfig{JWTSecret: e2eSecret, JWTIssuer: "lexicon"},
		Search: config.SearchConfig{
			MaxQueryLength:  100,
			MaxFilterValues: 10,
			DefaultLimit:    20,
			MaxLimit:        1000,
			CollationLocale: "es",
			WordOfDayTTL:    time.Hour,
			WordOfDayCache:  8,
		},
		CORS: config.CORSConfig{AllowedOrigins: "*"},
	}

	handler, cleanup := app.NewHandler(cfg, logger, pool, prometheus.NewRegistry(), clockwork.NewRealClock())
	srv := httptest.NewServer(handler)
	t.Cleanup(func() {
		srv.Close()
		cleanup()
	})

	editor := uuid.New()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   editor.String(),
		Issuer:    "lexicon",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(e2eSecret))
	require.NoError(t, err)

	return &testServer{
		URL:    srv.URL,
		Editor: editor,
		Anon:   lexiconclient.New(srv.URL, logger),
		Client: lexiconclient.New(srv.URL, logger, lexiconclient.WithToken(signed)),
	}
}

func definition(meaning string, examples ...string) domain.Definition {
	d := domain.Definition{Meaning: meaning, Categories: []string{"sustantivo"}}
	for _, e := range examples {
		d.Examples = append(d.Examples, domain.Example{Value: e})
	}
	return d
}

// TestE2E_WordLifecycle drives create, search, rename, notes and delete
// through the HTTP stack against a real database.
func TestE2E_WordLifecycle(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	lemma := testhelper.UniqueLemma("ñandú")
	published := domain.WordStatusPublished

	created, err := ts.Client.CreateWord(ctx, domain.Word{
		Lemma:  lemma,
		Status: published,
		Definitions: []domain.Definition{
			definition("Ave corredora.", "El ñandú corre."),
			definition("Segunda acepción.", "Uno.", "Dos."),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, lemma, created.Lemma)
	assert.Equal(t, "ñ", created.Letter)

	// Public search sees the published word.
	res, err := ts.Anon.Search(ctx, lexiconclient.SearchParams{Query: lemma})
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, lemma, res.Results[0].Word)

	// Editors read it back with definitions numbered and examples intact.
	got, err := ts.Client.GetWord(ctx, lemma)
	require.NoError(t, err)
	require.Len(t, got.Definitions, 2)
	assert.Equal(t, 1, got.Definitions[0].Number)
	assert.Equal(t, 2, got.Definitions[1].Number)
	assert.Len(t, got.Definitions[1].Examples, 2)
	require.NotNil(t, got.CreatedBy)
	assert.Equal(t, ts.Editor, *got.CreatedBy)

	// Rename and send it back to the workflow.
	renamed := lemma + "z"
	got.Lemma = renamed
	got.Status = domain.WordStatusReviewed
	got.Definitions = got.Definitions[:1]
	updated, err := ts.Client.UpdateWord(ctx, lemma, *got)
	require.NoError(t, err)
	assert.Equal(t, renamed, updated.Lemma)
	assert.Len(t, updated.Definitions, 1)

	_, err = ts.Client.GetWord(ctx, lemma)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Unpublished: hidden from the public, visible to editors.
	res, err = ts.Anon.Search(ctx, lexiconclient.SearchParams{Query: renamed})
	require.NoError(t, err)
	assert.Empty(t, res.Results)

	res, err = ts.Client.Search(ctx, lexiconclient.SearchParams{Query: renamed, Status: domain.WordStatusReviewed})
	require.NoError(t, err)
	require.Len(t, res.Results, 1)

	// Notes record the author.
	_, err = ts.Client.AddNote(ctx, renamed, "revisar etimología")
	require.NoError(t, err)
	notes, err := ts.Client.ListNotes(ctx, renamed)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.NotNil(t, notes[0].UserID)
	assert.Equal(t, ts.Editor, *notes[0].UserID)

	require.NoError(t, ts.Client.DeleteWord(ctx, renamed))
	_, err = ts.Client.GetWord(ctx, renamed)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestE2E_DuplicateLemmaConflicts(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	lemma := testhelper.UniqueLemma("casa")
	w := domain.Word{Lemma: lemma, Definitions: []domain.Definition{definition("Edificio.", "Ej.")}}

	_, err := ts.Client.CreateWord(ctx, w)
	require.NoError(t, err)

	_, err = ts.Client.CreateWord(ctx, w)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestE2E_UnknownAssigneeIsValidationError(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	stranger := uuid.New()
	_, err := ts.Client.CreateWord(ctx, domain.Word{
		Lemma:      testhelper.UniqueLemma("sol"),
		AssignedTo: &stranger,
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	var apiErr *lexiconclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.NotEmpty(t, apiErr.Fields)
	assert.Equal(t, "assignedTo", apiErr.Fields[0].Field)
}

func TestE2E_AnonymousCannotEdit(t *testing.T) {
	ts := setupTestServer(t)

	_, err := ts.Anon.GetWord(context.Background(), "casa")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestE2E_WordOfTheDayIsStable(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	_, err := ts.Client.CreateWord(ctx, domain.Word{
		Lemma:       testhelper.UniqueLemma("luna"),
		Status:      domain.WordStatusPublished,
		Definitions: []domain.Definition{definition("Satélite.", "Ej.")},
	})
	require.NoError(t, err)

	day := time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)
	first, err := ts.Anon.WordOfTheDay(ctx, day)
	require.NoError(t, err)
	again, err := ts.Anon.WordOfTheDay(ctx, day.Add(13*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first.Lemma, again.Lemma)
}
