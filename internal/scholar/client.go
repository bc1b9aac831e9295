// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar is the Semantic Scholar API client: bulk search, keyword
// search, paper lookup and recommendations, all normalized into a
// ResultEnvelope with a shared error taxonomy.
package scholar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/scholar-search/internal/httputil"
	"github.com/pdiddy/scholar-search/pkg/types"
)

// Default API bases. Declared as vars so tests can substitute an httptest
// server; a Client can also override them per instance.
var (
	graphAPIBase           = "https://api.semanticscholar.org/graph/v1"
	recommendationsAPIBase = "https://api.semanticscholar.org/recommendations/v1"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "scholar-search/0.1"

	// maxErrorBody bounds how much of a failed response is kept on HTTPStatusError.
	maxErrorBody = 2048

	defaultRecommendations = 100
	maxRecommendations     = 500
)

// Client calls the Semantic Scholar Graph and Recommendations APIs.
type Client struct {
	HTTP       *http.Client
	APIKey     string
	UserAgent  string
	MaxRetries int

	// GraphBase and RecommendationsBase override the package defaults when set.
	GraphBase           string
	RecommendationsBase string

	Logger zerolog.Logger
}

// NewClient builds a Client from configuration.
func NewClient(cfg types.ClientConfig, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		HTTP:                &http.Client{Timeout: timeout},
		APIKey:              cfg.APIKey,
		UserAgent:           ua,
		MaxRetries:          cfg.MaxRetries,
		GraphBase:           cfg.GraphBaseURL,
		RecommendationsBase: cfg.RecommendationsBaseURL,
		Logger:              logger.With().Str("component", "scholar").Logger(),
	}
}

// BulkSearch runs one bulk query. It issues exactly one GET and never
// retries; callers decide whether to try again.
func (c *Client) BulkSearch(ctx context.Context, req types.SearchRequest) (types.ResultEnvelope, error) {
	req = req.WithDefaults()
	if err := ValidateRequest(req); err != nil {
		return types.ResultEnvelope{}, err
	}

	body, err := c.get(ctx, c.graphBase()+"/paper/search/bulk", BuildBulkParams(req), 0)
	if err != nil {
		return types.ResultEnvelope{}, err
	}
	env, err := parseEnvelope(body, "data")
	if err != nil {
		return types.ResultEnvelope{}, err
	}

	c.Logger.Debug().
		Str("query", req.Query).
		Int("total", env.Total).
		Int("returned", len(env.Data)).
		Bool("has_token", env.HasMore()).
		Msg("bulk search complete")
	return env, nil
}

// Search runs a relevance-ranked keyword search.
func (c *Client) Search(ctx context.Context, req types.KeywordRequest) (types.ResultEnvelope, error) {
	req = req.WithDefaults()
	if err := ValidateRequest(req); err != nil {
		return types.ResultEnvelope{}, err
	}

	body, err := c.get(ctx, c.graphBase()+"/paper/search", buildKeywordParams(req), c.MaxRetries)
	if err != nil {
		return types.ResultEnvelope{}, err
	}
	env, err := parseEnvelope(body, "data")
	if err != nil {
		return types.ResultEnvelope{}, err
	}
	// The relevance endpoint pages by offset only.
	env.Token = ""

	c.Logger.Debug().Str("query", req.Query).Int("total", env.Total).Msg("keyword search complete")
	return env, nil
}

// Paper fetches a single paper. id may be a Semantic Scholar ID or a
// prefixed external ID such as "DOI:10.1007/..." or "ARXIV:2106.15928";
// a bare DOI is accepted too.
func (c *Client) Paper(ctx context.Context, id string) (types.ResultEnvelope, error) {
	if err := ValidatePaperID(id); err != nil {
		return types.ResultEnvelope{}, err
	}
	params := url.Values{"fields": {strings.Join(types.DefaultFields, ",")}}

	body, err := c.get(ctx, c.graphBase()+"/paper/"+escapeID(id), params, c.MaxRetries)
	if err != nil {
		return types.ResultEnvelope{}, err
	}
	return parsePaper(body)
}

// Recommendations returns papers recommended for the given paper. limit is
// clamped to 1-500; zero selects 100.
func (c *Client) Recommendations(ctx context.Context, id string, limit int) (types.ResultEnvelope, error) {
	if err := ValidatePaperID(id); err != nil {
		return types.ResultEnvelope{}, err
	}
	if limit < 0 || limit > maxRecommendations {
		return types.ResultEnvelope{}, &ValidationError{
			Field:   "limit",
			Message: fmt.Sprintf("must be between 1 and %d", maxRecommendations),
		}
	}
	if limit == 0 {
		limit = defaultRecommendations
	}
	params := url.Values{
		"fields": {strings.Join(types.DefaultFields, ",")},
		"limit":  {strconv.Itoa(limit)},
	}

	endpoint := c.recommendationsBase() + "/papers/forpaper/" + escapeID(id)
	body, err := c.get(ctx, endpoint, params, c.MaxRetries)
	if err != nil {
		return types.ResultEnvelope{}, err
	}
	return parseEnvelope(body, "recommendedPapers")
}

// get issues one GET (plus 429 retries when retries > 0) and returns the
// body of a 2xx response.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, retries int) ([]byte, error) {
	reqURL := endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	ua := c.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}

	c.Logger.Debug().Str("url", req.URL.Redacted()).Msg("semantic scholar request")

	resp, err := httputil.DoWithRetry(ctx, c.httpClient(), req, retries, c.Logger)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.Logger.Warn().Int("status", resp.StatusCode).Str("url", req.URL.Redacted()).Msg("semantic scholar request failed")
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), maxErrorBody)}
	}
	return body, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func (c *Client) graphBase() string {
	if c.GraphBase != "" {
		return strings.TrimRight(c.GraphBase, "/")
	}
	return graphAPIBase
}

func (c *Client) recommendationsBase() string {
	if c.RecommendationsBase != "" {
		return strings.TrimRight(c.RecommendationsBase, "/")
	}
	return recommendationsAPIBase
}

// escapeID path-escapes each segment of a paper ID. Slashes are kept
// because DOIs contain them and the API routes on the raw path.
func escapeID(id string) string {
	parts := strings.Split(strings.TrimSpace(id), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
