// Package tmdb is a low-level HTTP client for the movie catalog API.
// It knows how to make requests, retry them, and decode responses; the
// extraction policy (which genres, how many pages) lives in the pipeline.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"cinecap/internal/core"
	"cinecap/internal/logger"
)

// DefaultBaseURL is the production catalog API root.
const DefaultBaseURL = "https://api.themoviedb.org/3"

const (
	maxAttempts      = 6
	initialBackoff   = 1 * time.Second
	maxBackoff       = 15 * time.Second
	defaultThrottle  = 300 * time.Millisecond
	rateLimitDefault = 3 * time.Second
)

// Client makes authenticated catalog API requests with capped
// exponential-backoff retries. Safe for sequential use; the external-ID
// cache is not synchronized.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	throttle   time.Duration
	backoff    time.Duration // Starting retry delay; doubles up to maxBackoff

	externalIDCache map[int]ExternalIDs
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root, used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithThrottle sets the pause between paged calls.
func WithThrottle(d time.Duration) Option {
	return func(c *Client) { c.throttle = d }
}

// NewClient builds a catalog client with the given bearer token.
func NewClient(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("catalog bearer token is required")
	}
	c := &Client{
		baseURL:         DefaultBaseURL,
		token:           token,
		httpClient:      &http.Client{Timeout: 10 * time.Second},
		throttle:        defaultThrottle,
		backoff:         initialBackoff,
		externalIDCache: make(map[int]ExternalIDs),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GenreList is the genre catalog response.
type GenreList struct {
	Genres []core.Genre `json:"genres"`
}

// DiscoverMovie is one row of a discover page.
type DiscoverMovie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	OriginalLanguage string  `json:"original_language"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	PosterPath       string  `json:"poster_path"`
}

// DiscoverPage is a page of discover results.
type DiscoverPage struct {
	Page         int             `json:"page"`
	TotalPages   int             `json:"total_pages"`
	TotalResults int             `json:"total_results"`
	Results      []DiscoverMovie `json:"results"`
}

// Review is one catalog review.
type Review struct {
	Author        string `json:"author"`
	Content       string `json:"content"`
	AuthorDetails struct {
		Rating *float64 `json:"rating"`
	} `json:"author_details"`
}

// ReviewPage is a page of reviews.
type ReviewPage struct {
	Page    int      `json:"page"`
	Results []Review `json:"results"`
}

// ExternalIDs carries a movie's cross-reference identifiers.
type ExternalIDs struct {
	IMDBID string `json:"imdb_id"`
}

// MovieDetails is the per-movie detail response.
type MovieDetails struct {
	ID       int          `json:"id"`
	Title    string       `json:"title"`
	Overview string       `json:"overview"`
	IMDBID   string       `json:"imdb_id"`
	Genres   []core.Genre `json:"genres"`
	Runtime  int          `json:"runtime"`
}

// Genres fetches the genre catalog.
func (c *Client) Genres(ctx context.Context) (GenreList, error) {
	var out GenreList
	err := c.getJSON(ctx, "/genre/movie/list", nil, &out)
	return out, err
}

// Discover fetches one page of well-voted movies for a genre, English
// language, sorted by vote average.
func (c *Client) Discover(ctx context.Context, genreID, page, minVoteCount int) (DiscoverPage, error) {
	params := url.Values{}
	params.Set("with_genres", strconv.Itoa(genreID))
	params.Set("page", strconv.Itoa(page))
	params.Set("language", "en-US")
	params.Set("sort_by", "vote_average.desc")
	params.Set("vote_count.gte", strconv.Itoa(minVoteCount))

	var out DiscoverPage
	err := c.getJSON(ctx, "/discover/movie", params, &out)
	return out, err
}

// Reviews fetches the first page of reviews for a movie.
func (c *Client) Reviews(ctx context.Context, movieID int) (ReviewPage, error) {
	var out ReviewPage
	err := c.getJSON(ctx, fmt.Sprintf("/movie/%d/reviews", movieID), nil, &out)
	return out, err
}

// ExternalIDs fetches a movie's external identifiers, memoizing per run so
// repeated lookups during enrichment cost one request.
func (c *Client) ExternalIDs(ctx context.Context, movieID int) (ExternalIDs, error) {
	if ids, ok := c.externalIDCache[movieID]; ok {
		return ids, nil
	}
	var out ExternalIDs
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d/external_ids", movieID), nil, &out); err != nil {
		return ExternalIDs{}, err
	}
	c.externalIDCache[movieID] = out
	return out, nil
}

// Details fetches the full detail record for a movie.
func (c *Client) Details(ctx context.Context, movieID int) (MovieDetails, error) {
	var out MovieDetails
	err := c.getJSON(ctx, fmt.Sprintf("/movie/%d", movieID), nil, &out)
	return out, err
}

// Pause sleeps the configured throttle between paged calls.
func (c *Client) Pause(ctx context.Context) error {
	if c.throttle <= 0 {
		return nil
	}
	timer := time.NewTimer(c.throttle)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// getJSON performs a GET with retries and decodes the JSON body into out.
// 429 responses honor Retry-After without consuming an attempt's backoff;
// other failures back off exponentially, doubling from one second and
// capping at fifteen.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	delay := c.backoff
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		body, retryAfter, err := c.doOnce(ctx, u)
		if err == nil {
			if decodeErr := json.Unmarshal(body, out); decodeErr != nil {
				return fmt.Errorf("decode %s: %w", path, decodeErr)
			}
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if attempt == maxAttempts {
			break // No wait after the last attempt; the error returns immediately
		}

		wait := delay
		if retryAfter > 0 {
			wait = retryAfter
		} else {
			delay *= 2
			if delay > maxBackoff {
				delay = maxBackoff
			}
		}

		logger.Warn("catalog request failed, retrying", err,
			"path", path, "attempt", attempt, "wait", wait.String())

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return fmt.Errorf("catalog request %s failed after %d attempts: %w", path, maxAttempts, lastErr)
}

// doOnce performs a single request. A positive retryAfter signals a 429
// with the server's requested wait.
func (c *Client) doOnce(ctx context.Context, u string) (body []byte, retryAfter time.Duration, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json;charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		wait := rateLimitDefault
		if h := resp.Header.Get("Retry-After"); h != "" {
			if secs, parseErr := strconv.Atoi(h); parseErr == nil {
				wait = time.Duration(secs) * time.Second
			}
		}
		return nil, wait, fmt.Errorf("rate limited (429)")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, 0, nil
}
