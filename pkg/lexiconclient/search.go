package lexiconclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lexicon-backend/internal/domain"
)

// SearchParams is a search request. Zero Page and Limit use the server
// defaults. Status and AssignedTo only apply to authenticated clients.
type SearchParams struct {
	Query      string
	Categories []string
	Styles     []string
	Origins    []string
	Letters    []string
	Status     domain.WordStatus
	AssignedTo []uuid.UUID
	Page       int
	Limit      int
}

func (p SearchParams) values() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	list := func(key string, values []string) {
		if len(values) > 0 {
			v.Set(key, strings.Join(values, ","))
		}
	}

	set("q", p.Query)
	list("categories", p.Categories)
	list("styles", p.Styles)
	list("origins", p.Origins)
	list("letters", p.Letters)
	set("status", string(p.Status))
	for _, id := range p.AssignedTo {
		v.Add("assignedTo", id.String())
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	return v
}

// SearchHit is one ranked result.
type SearchHit struct {
	Word      string            `json:"word"`
	Letter    string            `json:"letter"`
	MatchType domain.MatchClass `json:"matchType"`
}

// Pagination describes the returned page.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// SearchResult is a page of hits.
type SearchResult struct {
	Results    []SearchHit `json:"results"`
	Pagination Pagination  `json:"pagination"`
}

// Search runs a dictionary search.
func (c *Client) Search(ctx context.Context, p SearchParams) (*SearchResult, error) {
	path := "/search"
	if q := p.values().Encode(); q != "" {
		path += "?" + q
	}
	var res SearchResult
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Metadata lists the categories, styles and origins in use.
type Metadata struct {
	Categories []string `json:"categories"`
	Styles     []string `json:"styles"`
	Origins    []string `json:"origins"`
}

// Metadata fetches the values available for filters.
func (c *Client) Metadata(ctx context.Context) (*Metadata, error) {
	var md Metadata
	if err := c.do(ctx, http.MethodGet, "/search/metadata", nil, &md); err != nil {
		return nil, err
	}
	return &md, nil
}

// WordOfTheDay fetches the word chosen for date's calendar day (UTC).
func (c *Client) WordOfTheDay(ctx context.Context, date time.Time) (*domain.Word, error) {
	var data wordData
	path := "/word-of-the-day?date=" + date.UTC().Format(time.DateOnly)
	if err := c.do(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}
	return data.toDomain()
}
