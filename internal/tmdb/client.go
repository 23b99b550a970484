// Package tmdb implements the movie metadata client used by the bot.
// Every call carries the configured api_key and language, and every
// listing endpoint returns the upstream order untouched.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL      = "https://api.themoviedb.org/3"
	defaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	defaultLanguage     = "en-US"
	defaultTimeout      = 10 * time.Second

	// maxErrorBody caps how much of an error payload gets kept for diagnostics.
	maxErrorBody = 4096
	// maxResponseBody guards against unbounded reads on success paths.
	maxResponseBody = 1 << 20
)

var apiKeyRe = regexp.MustCompile(`api_key=[^&]+`)

// Client talks to the movie metadata HTTP API.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	language     string
	httpClient   *http.Client
	cache        Cache
	cacheTTL     time.Duration
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Useful for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithImageBaseURL overrides the base URL used to build image links.
func WithImageBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.imageBaseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLanguage overrides the language sent with every request.
func WithLanguage(language string) Option {
	return func(c *Client) {
		if language != "" {
			c.language = language
		}
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithCache attaches a read-through cache for the slow-changing endpoints
// (movie detail, trending, genre list). A nil cache disables caching.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// New creates a metadata client. The API key must be non-empty.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("tmdb: api key is required")
	}

	c := &Client{
		apiKey:       apiKey,
		baseURL:      defaultBaseURL,
		imageBaseURL: defaultImageBaseURL,
		language:     defaultLanguage,
		httpClient:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// HTTPStatusError reports a non-2xx reply from the metadata API.
// The URL is stored with the api_key parameter redacted.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("tmdb: unexpected status %d from %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("tmdb: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// HTTPStatusCode exposes the upstream status for callers that branch on it.
func (e *HTTPStatusError) HTTPStatusCode() int { return e.StatusCode }

// Code is the stable error code carried into handler summary logs.
func (e *HTTPStatusError) Code() string { return fmt.Sprintf("TMDB_HTTP_%d", e.StatusCode) }

// ---------------------------------------------------------------------------
// Endpoints
// ---------------------------------------------------------------------------

// SearchMovies looks up movies by title and returns them in upstream order.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]MovieSummary, error) {
	params := url.Values{}
	params.Set("query", query)

	var resp movieListResponse
	if err := c.doJSON(ctx, c.endpoint("/search/movie", params), &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// MovieDetail fetches the full record for one movie.
func (c *Client) MovieDetail(ctx context.Context, id int64) (*MovieDetail, error) {
	var detail MovieDetail
	key := "tmdb:movie:" + strconv.FormatInt(id, 10)
	if err := c.cachedJSON(ctx, key, c.endpoint("/movie/"+strconv.FormatInt(id, 10), nil), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// MovieTrailer returns the watch URL of the first official YouTube trailer,
// or "" when the movie has none.
func (c *Client) MovieTrailer(ctx context.Context, id int64) (string, error) {
	var resp videoListResponse
	if err := c.doJSON(ctx, c.endpoint("/movie/"+strconv.FormatInt(id, 10)+"/videos", nil), &resp); err != nil {
		return "", err
	}
	for _, v := range resp.Results {
		if v.Site == "YouTube" && v.Type == "Trailer" {
			return "https://www.youtube.com/watch?v=" + v.Key, nil
		}
	}
	return "", nil
}

// MovieCast returns up to limit top-billed cast names in credit order.
// A limit of zero or less returns the full list.
func (c *Client) MovieCast(ctx context.Context, id int64, limit int) ([]string, error) {
	var resp creditsResponse
	if err := c.doJSON(ctx, c.endpoint("/movie/"+strconv.FormatInt(id, 10)+"/credits", nil), &resp); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > len(resp.Cast) {
		limit = len(resp.Cast)
	}
	names := make([]string, 0, limit)
	for _, member := range resp.Cast[:limit] {
		names = append(names, member.Name)
	}
	return names, nil
}

// SearchPeople looks up people by name and returns them in upstream
// relevance order, best match first.
func (c *Client) SearchPeople(ctx context.Context, name string) ([]Person, error) {
	params := url.Values{}
	params.Set("query", name)

	var resp personListResponse
	if err := c.doJSON(ctx, c.endpoint("/search/person", params), &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// DiscoverByGenre lists movies tagged with the given genre id.
func (c *Client) DiscoverByGenre(ctx context.Context, genreID int64) ([]MovieSummary, error) {
	params := url.Values{}
	params.Set("with_genres", strconv.FormatInt(genreID, 10))

	var resp movieListResponse
	if err := c.doJSON(ctx, c.endpoint("/discover/movie", params), &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// TrendingToday lists the movies trending over the current day.
func (c *Client) TrendingToday(ctx context.Context) ([]MovieSummary, error) {
	var resp movieListResponse
	if err := c.cachedJSON(ctx, "tmdb:trending:day", c.endpoint("/trending/movie/day", nil), &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Genres fetches the movie genre table in upstream order.
func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	var resp genreListResponse
	if err := c.cachedJSON(ctx, "tmdb:genres", c.endpoint("/genre/movie/list", nil), &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}

// ProfileURL builds the full image URL for a person's profile path.
// Returns "" when the path is absent.
func (c *Client) ProfileURL(path string) string {
	if path == "" {
		return ""
	}
	return c.imageBaseURL + path
}

// ---------------------------------------------------------------------------
// Transport
// ---------------------------------------------------------------------------

func (c *Client) endpoint(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)
	return c.baseURL + path + "?" + params.Encode()
}

func (c *Client) doJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("tmdb: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPStatusError{
			StatusCode: resp.StatusCode,
			URL:        redactKey(rawURL),
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("tmdb: read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("tmdb: decode response: %w", err)
	}
	return nil
}

func redactKey(rawURL string) string {
	return apiKeyRe.ReplaceAllString(rawURL, "api_key=***")
}
