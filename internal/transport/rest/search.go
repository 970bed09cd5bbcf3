package rest

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/lexicon-backend/internal/domain"
	"github.com/heartmarshall/lexicon-backend/internal/service/search"
)

// searchService defines the minimal interface needed by SearchHandler.
type searchService interface {
	Search(ctx context.Context, input search.SearchInput) (*search.Result, error)
	DistinctValues(ctx context.Context) (*search.Metadata, error)
	WordOfTheDay(ctx context.Context, date time.Time) (*domain.Word, error)
}

// SearchHandler serves the public read endpoints.
type SearchHandler struct {
	svc   searchService
	log   *slog.Logger
	clock clockwork.Clock
}

// NewSearchHandler creates a SearchHandler. clock decides "today" for the
// word of the day when no date is given.
func NewSearchHandler(svc searchService, logger *slog.Logger, clock clockwork.Clock) *SearchHandler {
	return &SearchHandler{svc: svc, log: logger.With("handler", "search"), clock: clock}
}

// Search handles GET /search.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := search.SearchInput{
		Query:      q.Get("q"),
		Categories: multiValue(q, "categories"),
		Styles:     multiValue(q, "styles"),
		Origins:    multiValue(q, "origins"),
		Letters:    multiValue(q, "letters"),
		Status:     q.Get("status"),
		AssignedTo: multiValue(q, "assignedTo"),
		Page:       search.ParseNumber(q.Get("page")),
		Limit:      search.ParseNumber(q.Get("limit")),
	}

	res, err := h.svc.Search(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeData(w, http.StatusOK, toSearchResponse(res))
}

// Metadata handles GET /search/metadata.
func (h *SearchHandler) Metadata(w http.ResponseWriter, r *http.Request) {
	md, err := h.svc.DistinctValues(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeData(w, http.StatusOK, md)
}

// WordOfTheDay handles GET /word-of-the-day?date=YYYY-MM-DD.
func (h *SearchHandler) WordOfTheDay(w http.ResponseWriter, r *http.Request) {
	date := h.clock.Now()
	if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			handleError(h.log, w, r, domain.NewValidationError("date", "must be YYYY-MM-DD"))
			return
		}
		date = parsed
	}

	word, err := h.svc.WordOfTheDay(r.Context(), date)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp, err := toWordResponse(*word, false)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeData(w, http.StatusOK, resp)
}

// multiValue collects a list parameter given as repeated keys,
// comma-separated values, or both.
func multiValue(q url.Values, key string) []string {
	var out []string
	for _, v := range q[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
