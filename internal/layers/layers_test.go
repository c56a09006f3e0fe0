package layers

import (
	"path/filepath"
	"testing"

	"cinecap/internal/core"
)

func TestWriteReadJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "movies.json")

	in := []core.Movie{{MovieID: 603, Title: "The Matrix", IMDBID: "tt0133093"}}
	if err := WriteJSON(path, in); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var out []core.Movie
	if err := ReadJSON(path, &out); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(out) != 1 || out[0].MovieID != 603 || out[0].Title != "The Matrix" {
		t.Errorf("round trip gave %+v", out)
	}
}

func TestValidIMDBID(t *testing.T) {
	cases := []struct {
		id   string
		want bool
	}{
		{"tt0133093", true},
		{"tt01330931234", true},
		{"tt12345", false},
		{"0133093", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidIMDBID(tc.id); got != tc.want {
			t.Errorf("ValidIMDBID(%q) = %v, want %v", tc.id, got, tc.want)
		}
	}
}

func TestMergeMoviesDropsInvalidRows(t *testing.T) {
	rows := []core.Movie{
		{MovieID: 1, Title: "Good", IMDBID: "tt0000001", SourceCategory: "drama"},
		{MovieID: 2, Title: "", IMDBID: "tt0000002", SourceCategory: "drama"},
		{MovieID: 3, Title: "Bad ID", IMDBID: "12345", SourceCategory: "drama"},
	}

	out, stats := MergeMovies(rows)

	if len(out) != 1 || out[0].MovieID != 1 {
		t.Errorf("got %+v", out)
	}
	if stats.Dropped != 2 || stats.Output != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestMergeMoviesReconcilesDuplicates(t *testing.T) {
	rows := []core.Movie{
		{
			MovieID: 603, Title: "The Matrix", IMDBID: "tt0133093",
			Overview: "short", VoteCount: 100, VoteAverage: 8.0, Popularity: 10,
			SourceCategory: "sci_fi_fantasy",
			Genres:         []core.Genre{{ID: 878, Name: "Science Fiction"}},
		},
		{
			MovieID: 603, Title: "The Matrix", IMDBID: "tt0133093",
			Overview: "a much longer and better overview", VoteCount: 90, VoteAverage: 8.5, Popularity: 12,
			SourceCategory: "action_adventure",
			PosterPath:     "/matrix.jpg",
			Genres: []core.Genre{
				{ID: 878, Name: "Science Fiction"},
				{ID: 28, Name: "Action"},
				{ID: 878, Name: "Science Fiction"},
			},
		},
	}

	out, stats := MergeMovies(rows)

	if len(out) != 1 {
		t.Fatalf("got %d movies, want 1", len(out))
	}
	m := out[0]

	if m.VoteCount != 100 || m.VoteAverage != 8.5 || m.Popularity != 12 {
		t.Errorf("vote metrics not maxed: %+v", m)
	}
	if m.Overview != "a much longer and better overview" {
		t.Errorf("overview = %q, want the longer one", m.Overview)
	}
	if m.PosterPath != "/matrix.jpg" {
		t.Errorf("poster not backfilled: %q", m.PosterPath)
	}
	if len(m.SourceCategories) != 2 || m.SourceCategories[0] != "action_adventure" {
		t.Errorf("categories = %v, want sorted merged pair", m.SourceCategories)
	}
	if len(m.Genres) != 2 {
		t.Errorf("genres not deduped: %v", m.Genres)
	}
	if stats.Merged != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestMergeMoviesNormalizesTitles(t *testing.T) {
	rows := []core.Movie{
		{MovieID: 1, Title: "  WALL·E ​", IMDBID: "tt0910970", SourceCategory: "sci_fi_fantasy"},
	}
	out, _ := MergeMovies(rows)
	if len(out) != 1 || out[0].Title != "WALL·E" {
		t.Errorf("title = %q", out[0].Title)
	}
}

func TestEnrichWithReviews(t *testing.T) {
	movies := []core.Movie{{MovieID: 1}, {MovieID: 2}}

	out := EnrichWithReviews(movies, func(id int) ([]string, bool) {
		if id == 1 {
			return []string{"great movie"}, false
		}
		return nil, true
	})

	if out[0].ReviewsMissing || len(out[0].Reviews) != 1 {
		t.Errorf("movie 1: %+v", out[0])
	}
	if !out[1].ReviewsMissing || len(out[1].Reviews) != 0 {
		t.Errorf("movie 2: %+v", out[1])
	}
}

func TestMergeGoldUnionAndPrecedence(t *testing.T) {
	tables := GoldTables{
		Premises: IndexPremises([]core.PremiseRecord{
			{MovieID: 1, Title: "From Premise", Premise: " a premise "},
		}),
		Axes: IndexAxes([]core.AxesRecord{
			{MovieID: 1, Title: "From Axes", Axes: []string{"Safety ↔ Threat"}},
			{MovieID: 2, Title: "Only Axes", Axes: []string{"Order ↔ Chaos"}},
		}),
		Anchors: IndexAnchors([]core.AnchorsRecord{
			{MovieID: 3, Title: "Only Anchors", Anchors: []core.CharacterAnchor{{Label: "Neo", Descriptor: "hacker", Type: "protagonist"}}},
		}),
	}

	out := MergeGold(tables)

	if len(out) != 3 {
		t.Fatalf("got %d records, want union of 3 ids", len(out))
	}
	if out[0].MovieID != 1 || out[1].MovieID != 2 || out[2].MovieID != 3 {
		t.Errorf("not sorted by id: %+v", out)
	}
	if out[0].Title != "From Premise" {
		t.Errorf("title precedence broken: %q", out[0].Title)
	}
	if out[0].Premise != "a premise" {
		t.Errorf("premise not trimmed: %q", out[0].Premise)
	}
	if out[1].Title != "Only Axes" || out[2].Title != "Only Anchors" {
		t.Errorf("fallback titles wrong: %+v", out)
	}
}

func TestMergeGoldToleratesAbsentTables(t *testing.T) {
	out := MergeGold(GoldTables{
		Critics: IndexCritics([]core.CriticRecord{{MovieID: 7, Title: "T", Summary: "s"}}),
	})
	if len(out) != 1 || out[0].Critic != "s" {
		t.Errorf("got %+v", out)
	}
}

func TestDirsLayout(t *testing.T) {
	d := NewDirs("/tmp/data")
	if d.Bronze() != filepath.Join("/tmp/data", "bronze") {
		t.Errorf("bronze = %q", d.Bronze())
	}
	if d.BronzeReviews() != filepath.Join("/tmp/data", "bronze", "reviews") {
		t.Errorf("reviews = %q", d.BronzeReviews())
	}
	if NewDirs("").Root != "data" {
		t.Error("empty root should default to data")
	}
}
