package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lexicon-backend/internal/domain"
	"github.com/heartmarshall/lexicon-backend/internal/service/search"
)

func newSearchHandler(svc *searchServiceMock) *SearchHandler {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 17, 23, 30, 0, 0, time.UTC))
	return NewSearchHandler(svc, discardLogger(), clock)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var raw struct {
		Success bool                `json:"success"`
		Data    json.RawMessage     `json:"data"`
		Error   string              `json:"error"`
		Fields  []domain.FieldError `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw), rec.Body.String())
	if data != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return envelope{Success: raw.Success, Error: raw.Error, Fields: raw.Fields}
}

func TestSearchHandler_ParsesQuery(t *testing.T) {
	t.Parallel()

	var got search.SearchInput
	svc := &searchServiceMock{
		SearchFunc: func(ctx context.Context, input search.SearchInput) (*search.Result, error) {
			got = input
			return &search.Result{}, nil
		},
	}
	h := newSearchHandler(svc)

	req := httptest.NewRequest(http.MethodGet,
		"/search?q=perro&categories=sust.,adj.&categories=+verbo+&letters=p&styles=&page=2.5&limit=abc&status=redacted&assignedTo=x", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "perro", got.Query)
	assert.Equal(t, []string{"sust.", "adj.", "verbo"}, got.Categories)
	assert.Equal(t, []string{"p"}, got.Letters)
	assert.Empty(t, got.Styles)
	assert.Equal(t, "redacted", got.Status)
	assert.Equal(t, []string{"x"}, got.AssignedTo)
	require.NotNil(t, got.Page)
	assert.Equal(t, 2.5, *got.Page)
	assert.Nil(t, got.Limit)
}

func TestSearchHandler_ResponseShape(t *testing.T) {
	t.Parallel()

	svc := &searchServiceMock{
		SearchFunc: func(ctx context.Context, input search.SearchInput) (*search.Result, error) {
			return &search.Result{
				Results: []search.Match{
					{Word: domain.Word{Lemma: "perro", Letter: "p"}, Class: domain.MatchExact},
					{Word: domain.Word{Lemma: "perrito", Letter: "p"}, Class: domain.MatchPartial},
				},
				Pagination: search.Pagination{Page: 1, Limit: 20, Total: 2, TotalPages: 1},
			}, nil
		},
	}

	rec := httptest.NewRecorder()
	newSearchHandler(svc).Search(rec, httptest.NewRequest(http.MethodGet, "/search?q=perr", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"success": true,
		"data": {
			"results": [
				{"word": "perro", "letter": "p", "matchType": "exact"},
				{"word": "perrito", "letter": "p", "matchType": "partial"}
			],
			"pagination": {"page": 1, "limit": 20, "total": 2, "totalPages": 1, "hasNext": false, "hasPrev": false}
		}
	}`, rec.Body.String())
}

func TestSearchHandler_EmptyResultsIsArray(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newSearchHandler(&searchServiceMock{}).Search(rec, httptest.NewRequest(http.MethodGet, "/search", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var data searchResponse
	decodeEnvelope(t, rec, &data)
	assert.NotNil(t, data.Results)
	assert.Empty(t, data.Results)
}

func TestSearchHandler_ValidationError(t *testing.T) {
	t.Parallel()

	svc := &searchServiceMock{
		SearchFunc: func(ctx context.Context, input search.SearchInput) (*search.Result, error) {
			return nil, domain.NewValidationErrors([]domain.FieldError{
				{Field: "q", Message: "too long (max 100)"},
				{Field: "limit", Message: "must be a finite number"},
			})
		},
	}

	rec := httptest.NewRecorder()
	newSearchHandler(svc).Search(rec, httptest.NewRequest(http.MethodGet, "/search?limit=NaN", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec, nil)
	assert.False(t, env.Success)
	assert.Equal(t, "validation failed", env.Error)
	require.Len(t, env.Fields, 2)
	assert.Equal(t, "limit", env.Fields[1].Field)
}

func TestSearchHandler_UnexpectedErrorIsGeneric(t *testing.T) {
	t.Parallel()

	svc := &searchServiceMock{
		SearchFunc: func(ctx context.Context, input search.SearchInput) (*search.Result, error) {
			return nil, errors.New("pq: connection reset by peer")
		},
	}

	rec := httptest.NewRecorder()
	newSearchHandler(svc).Search(rec, httptest.NewRequest(http.MethodGet, "/search", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"internal server error"}`, rec.Body.String())
}

func TestSearchHandler_Metadata(t *testing.T) {
	t.Parallel()

	svc := &searchServiceMock{
		DistinctValuesFunc: func(ctx context.Context) (*search.Metadata, error) {
			return &search.Metadata{Categories: []string{"adj.", "sust."}, Styles: []string{}, Origins: []string{"lat."}}, nil
		},
	}

	rec := httptest.NewRecorder()
	newSearchHandler(svc).Metadata(rec, httptest.NewRequest(http.MethodGet, "/search/metadata", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"categories":["adj.","sust."],"styles":[],"origins":["lat."]}}`, rec.Body.String())
}

func TestSearchHandler_WordOfTheDay(t *testing.T) {
	t.Parallel()

	assignee := uuid.New()
	var gotDate time.Time
	svc := &searchServiceMock{
		WordOfTheDayFunc: func(ctx context.Context, date time.Time) (*domain.Word, error) {
			gotDate = date
			return &domain.Word{
				Lemma:      "casa",
				Root:       "casa",
				Letter:     "c",
				Status:     domain.WordStatusPublished,
				AssignedTo: &assignee,
				Definitions: []domain.Definition{
					{Number: 1, Meaning: "Edificio para habitar.", Examples: []domain.Example{{Value: "Mi casa."}}},
				},
			}, nil
		},
	}
	h := newSearchHandler(svc)

	t.Run("explicit date", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.WordOfTheDay(rec, httptest.NewRequest(http.MethodGet, "/word-of-the-day?date=2024-01-02", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2024-01-02", gotDate.Format(time.DateOnly))

		var data map[string]any
		decodeEnvelope(t, rec, &data)
		assert.Equal(t, "casa", data["lemma"])
		assert.NotContains(t, data, "assignedTo")
		assert.NotContains(t, data, "status")
		defs := data["definitions"].([]any)
		assert.Equal(t, map[string]any{"value": "Mi casa."}, defs[0].(map[string]any)["example"])
	})

	t.Run("defaults to today", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.WordOfTheDay(rec, httptest.NewRequest(http.MethodGet, "/word-of-the-day", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2024-05-17", gotDate.UTC().Format(time.DateOnly))
	})
}

func TestSearchHandler_WordOfTheDay_Errors(t *testing.T) {
	t.Parallel()

	t.Run("bad date", func(t *testing.T) {
		called := false
		svc := &searchServiceMock{
			WordOfTheDayFunc: func(ctx context.Context, date time.Time) (*domain.Word, error) {
				called = true
				return nil, nil
			},
		}
		rec := httptest.NewRecorder()
		newSearchHandler(svc).WordOfTheDay(rec, httptest.NewRequest(http.MethodGet, "/word-of-the-day?date=17/05/2024", nil))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, called)
		env := decodeEnvelope(t, rec, nil)
		require.Len(t, env.Fields, 1)
		assert.Equal(t, "date", env.Fields[0].Field)
	})

	t.Run("nothing published", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newSearchHandler(&searchServiceMock{}).WordOfTheDay(rec, httptest.NewRequest(http.MethodGet, "/word-of-the-day", nil))

		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestMultiValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "absent", query: "", want: nil},
		{name: "single", query: "letters=a", want: []string{"a"}},
		{name: "comma", query: "letters=a,b", want: []string{"a", "b"}},
		{name: "repeated", query: "letters=a&letters=b", want: []string{"a", "b"}},
		{name: "mixed with blanks", query: "letters=a,,b&letters=&letters=c", want: []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/search?"+tt.query, nil)
			assert.Equal(t, tt.want, multiValue(req.URL.Query(), "letters"))
		})
	}
}
