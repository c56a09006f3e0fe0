package reviews

import (
	"strings"

	"cinecap/internal/core"
)

// genreKeywordMap expands a genre into concrete vocabulary that audience
// reviews of that genre tend to use. The expansion sharpens the genre
// context vector beyond the bare genre name.
var genreKeywordMap = map[string][]string{
	"romance":         {"love", "relationship", "breakup", "affection", "emotion", "character", "tears", "family"},
	"drama":           {"emotion", "relationship", "character", "tears", "family"},
	"action":          {"fight", "battle", "chase", "explosion", "action"},
	"adventure":       {"fight", "battle", "chase", "explosion", "action"},
	"science fiction": {"space", "future", "technology", "alien", "time"},
	"sci-fi":          {"space", "future", "technology", "alien", "time"},
	"fantasy":         {"space", "future", "technology", "alien", "time"},
	"mystery":         {"mystery", "twist", "suspense", "reveal"},
	"thriller":        {"mystery", "twist", "suspense", "reveal"},
	"comedy":          {"funny", "humor", "laugh", "comedy"},
}

// GenreKeywords builds the genre-keyword context string for a movie: each
// genre name followed by its expansion vocabulary, first occurrence wins,
// joined with " . " so the embedder sees separate clauses.
func GenreKeywords(genres []core.Genre) string {
	var kws []string
	seen := make(map[string]bool)

	add := func(w string) {
		if !seen[w] {
			seen[w] = true
			kws = append(kws, w)
		}
	}

	for _, g := range genres {
		add(g.Name)
		for _, w := range genreKeywordMap[strings.ToLower(g.Name)] {
			add(w)
		}
	}

	return strings.Join(kws, " . ")
}
