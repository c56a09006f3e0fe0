package subtitles

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const srtBody = `1
00:00:01,000 --> 00:00:03,000
Hello there.
`

func TestFetchDirectSRTLink(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/movie-imdb/tt0133093", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<table><tr><td>English</td><td><a href="/subs/matrix.srt">download</a></td></tr></table>`)
	})
	mux.HandleFunc("/subs/matrix.srt", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprint(w, srtBody)
	})

	f := NewFetcher(srv.URL+"/movie-imdb/", 0)
	res := f.Fetch(context.Background(), 603, "tt0133093")

	if !res.Found {
		t.Fatalf("not found: %+v", res)
	}
	if !strings.Contains(res.Text, "Hello there.") {
		t.Errorf("srt text = %q", res.Text)
	}
	if !strings.HasSuffix(res.DownloadURL, "/subs/matrix.srt") {
		t.Errorf("download url = %q", res.DownloadURL)
	}
}

func TestFetchSkipsNonEnglishRows(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/movie-imdb/tt0133093", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<table>
			<tr><td>French</td><td><a href="/subs/fr.srt">download</a></td></tr>
			<tr><td>Spanish</td><td><a href="/subs/es.srt">download</a></td></tr>
		</table>`)
	})

	f := NewFetcher(srv.URL+"/movie-imdb/", 0)
	res := f.Fetch(context.Background(), 603, "tt0133093")

	if res.Found {
		t.Errorf("expected no English subtitle, got %+v", res)
	}
	if res.Error == "" {
		t.Error("expected error message in result")
	}
}

func TestFetchResolvesDetailPage(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/movie-imdb/tt0816692", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<table><tr><td>English</td><td><a href="/subtitle/interstellar-english">detail</a></td></tr></table>`)
	})
	mux.HandleFunc("/subtitle/interstellar-english", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><a href="/subs/interstellar.srt">Download .srt</a></body></html>`)
	})
	mux.HandleFunc("/subs/interstellar.srt", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprint(w, srtBody)
	})

	f := NewFetcher(srv.URL+"/movie-imdb/", 0)
	res := f.Fetch(context.Background(), 157336, "tt0816692")

	if !res.Found {
		t.Fatalf("not found: %+v", res)
	}
	if !strings.Contains(res.Text, "Hello there.") {
		t.Errorf("srt text = %q", res.Text)
	}
}

func TestFetchReports404(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	f := NewFetcher(srv.URL+"/movie-imdb/", 0)
	res := f.Fetch(context.Background(), 1, "tt0000001")

	if res.Found || !strings.Contains(res.Error, "404") {
		t.Errorf("got %+v, want 404 error", res)
	}
}
