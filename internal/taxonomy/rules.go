package taxonomy

import "sort"

// GenreAxisRules maps a genre name to the axes that genre is allowed to
// select from. Genres without an entry contribute no axes.
var GenreAxisRules = map[string][]string{
	"Science Fiction": {
		"Reality ↔ Illusion",
		"Control ↔ Surrender",
		"Power ↔ Responsibility",
		"Purpose ↔ Emptiness",
		"Freedom ↔ Constraint",
	},
	"Action": {
		"Safety ↔ Threat",
		"Order ↔ Chaos",
		"Individual ↔ Collective",
		"Survival ↔ Sacrifice",
	},
	"Fantasy": {
		"Power ↔ Responsibility",
		"Identity ↔ Role",
		"Order ↔ Chaos",
		"Loyalty ↔ Betrayal",
	},
	"Drama": {
		"Identity ↔ Role",
		"Purpose ↔ Emptiness",
		"Justice ↔ Compromise",
		"Loyalty ↔ Betrayal",
	},
	"Adventure": {
		"Individual ↔ Collective",
		"Freedom ↔ Constraint",
		"Survival ↔ Sacrifice",
	},
}

// AllowedAxes returns the sorted union of axes permitted for the given
// genre names.
func AllowedAxes(genres []string) []string {
	set := make(map[string]bool)
	for _, g := range genres {
		for _, axis := range GenreAxisRules[g] {
			set[axis] = true
		}
	}

	axes := make([]string, 0, len(set))
	for axis := range set {
		axes = append(axes, axis)
	}
	sort.Strings(axes)
	return axes
}

// AllowedSet is AllowedAxes as a membership map.
func AllowedSet(genres []string) map[string]bool {
	set := make(map[string]bool)
	for _, g := range genres {
		for _, axis := range GenreAxisRules[g] {
			set[axis] = true
		}
	}
	return set
}
