package rest

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/heartmarshall/lexicon-backend/internal/transport/middleware"
)

// UnlimitedPaths are the routes a rate limiter must let through: health
// checks and the metrics scrape.
var UnlimitedPaths = []string{"/health", "/health/live", "/health/ready", "/metrics"}

// RouterDeps collects what NewRouter mounts. Metrics and Gatherer are
// optional.
type RouterDeps struct {
	Health *HealthHandler
	Search *SearchHandler
	Words  *WordHandler

	Metrics  *middleware.Metrics
	Gatherer prometheus.Gatherer
}

// NewRouter registers every route on a new ServeMux. Global middleware
// such as recovery, rate limiting and auth is applied by the caller around
// the returned handler.
func NewRouter(d RouterDeps) *http.ServeMux {
	mux := http.NewServeMux()

	handle := func(pattern string, h http.Handler) {
		if d.Metrics != nil {
			h = d.Metrics.Instrument(pattern, h)
		}
		mux.Handle(pattern, h)
	}
	api := func(pattern string, h http.HandlerFunc, mws ...middleware.Middleware) {
		handle(pattern, middleware.Chain(mws...)(h))
	}

	mux.HandleFunc("GET /health", d.Health.Health)
	mux.HandleFunc("GET /health/live", d.Health.Live)
	mux.HandleFunc("GET /health/ready", d.Health.Ready)
	if d.Gatherer != nil {
		mux.Handle("GET /metrics", middleware.MetricsHandler(d.Gatherer))
	}

	api("GET /search", d.Search.Search)
	api("GET /search/metadata", d.Search.Metadata)
	api("GET /word-of-the-day", d.Search.WordOfTheDay)

	editor := middleware.RequireEditor
	api("POST /words", d.Words.Create, editor)
	api("GET /words/{lemma}", d.Words.Get, editor)
	api("PUT /words/{lemma}", d.Words.Update, editor)
	api("DELETE /words/{lemma}", d.Words.Delete, editor)
	api("GET /words/{lemma}/notes", d.Words.ListNotes, editor)
	api("POST /words/{lemma}/notes", d.Words.AddNote, editor)

	return mux
}
