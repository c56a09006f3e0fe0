// Package subtitles scrapes subtitle listing pages for English SRT
// downloads, keyed by IMDb id.
package subtitles

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"cinecap/internal/logger"
)

// DefaultBaseURL is the production subtitle listing root. The IMDb id is
// appended directly.
const DefaultBaseURL = "https://yifysubtitles.org/movie-imdb/"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// Result describes one subtitle lookup.
type Result struct {
	MovieID     int    `json:"movie_id"`
	IMDBID      string `json:"imdb_id"`
	Source      string `json:"subtitle_source"`
	Found       bool   `json:"found"`
	DownloadURL string `json:"download_url,omitempty"`
	Error       string `json:"error,omitempty"`
	Text        string `json:"-"`
}

// Fetcher downloads and parses subtitle listing pages.
type Fetcher struct {
	baseURL    string
	httpClient *http.Client
	throttle   time.Duration
}

// NewFetcher builds a Fetcher. baseURL empty means the production root.
func NewFetcher(baseURL string, throttle time.Duration) *Fetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Fetcher{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		throttle:   throttle,
	}
}

// Fetch looks up the English subtitle for a movie and downloads its text.
// Scrape failures are reported in the Result, not as an error: a movie
// without subtitles is an expected outcome, not a pipeline fault.
func (f *Fetcher) Fetch(ctx context.Context, movieID int, imdbID string) Result {
	res := Result{MovieID: movieID, IMDBID: imdbID, Source: "yts"}

	html, err := f.get(ctx, f.baseURL+imdbID)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	subURL := f.parseEnglishSubURL(html)
	if subURL == "" {
		res.Error = "no English subtitle found"
		return res
	}
	res.DownloadURL = subURL

	text, err := f.downloadSRT(ctx, subURL)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	res.Found = true
	res.Text = text

	if f.throttle > 0 {
		timer := time.NewTimer(f.throttle)
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
		timer.Stop()
	}
	return res
}

// parseEnglishSubURL scans listing rows for an English entry and returns
// a direct .srt link or a detail-page link to resolve.
func (f *Fetcher) parseEnglishSubURL(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		logger.Warn("failed to parse subtitle listing", err)
		return ""
	}

	var found string
	doc.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		rowText := strings.ToLower(row.Text())
		if !strings.Contains(rowText, "english") {
			return true
		}

		row.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			href, _ := a.Attr("href")
			full := f.absoluteURL(href)

			if strings.HasSuffix(strings.ToLower(href), ".srt") {
				found = full
				return false
			}
			if strings.Contains(href, "/subtitle/") || strings.Contains(href, "/subtitle-download") {
				found = full
				return false
			}
			return true
		})
		return found == ""
	})
	if found != "" {
		return found
	}

	// Some layouts list subtitle anchors outside table rows.
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		text := strings.ToLower(strings.TrimSpace(a.Text()))
		if strings.Contains(text, "english") &&
			(strings.Contains(href, ".srt") || strings.Contains(href, "/subtitle/")) {
			found = f.absoluteURL(href)
			return false
		}
		return true
	})
	return found
}

// downloadSRT fetches the subtitle body. When the link lands on an HTML
// detail page instead of the file, it follows the first .srt anchor there.
func (f *Fetcher) downloadSRT(ctx context.Context, subURL string) (string, error) {
	body, contentType, err := f.getWithType(ctx, subURL)
	if err != nil {
		return "", err
	}

	if strings.Contains(contentType, "text/html") && strings.Contains(body, ".srt") {
		doc, parseErr := goquery.NewDocumentFromReader(strings.NewReader(body))
		if parseErr == nil {
			var srtLink string
			doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
				href, _ := a.Attr("href")
				if strings.HasSuffix(strings.ToLower(href), ".srt") {
					srtLink = f.resolveAgainst(subURL, href)
					return false
				}
				return true
			})
			if srtLink != "" {
				body, _, err = f.getWithType(ctx, srtLink)
				if err != nil {
					return "", err
				}
			}
		}
	}

	return body, nil
}

func (f *Fetcher) get(ctx context.Context, u string) (string, error) {
	body, _, err := f.getWithType(ctx, u)
	return body, err
}

func (f *Fetcher) getWithType(ctx context.Context, u string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", "", fmt.Errorf("page not found (404)")
	}
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", err
	}
	return string(body), resp.Header.Get("Content-Type"), nil
}

// absoluteURL resolves a possibly relative href against the listing host.
func (f *Fetcher) absoluteURL(href string) string {
	return f.resolveAgainst(f.baseURL, href)
}

func (f *Fetcher) resolveAgainst(base, href string) string {
	baseU, err := url.Parse(base)
	if err != nil {
		return href
	}
	refU, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseU.ResolveReference(refU).String()
}
