package validate

import (
	"fmt"

	"cinecap/internal/taxonomy"
)

// Axes checks a generated axis selection against the genre-derived allowed
// set and the taxonomy family rules: every axis must be allowed for at
// least one of the movie's genres, no axis may repeat, and at most one axis
// per family may appear.
func Axes(axes []string, genres []string) (bool, string) {
	allowed := taxonomy.AllowedSet(genres)

	seen := make(map[string]bool, len(axes))
	usedFamilies := make(map[string]bool, len(axes))

	for _, axis := range axes {
		if !allowed[axis] {
			return false, fmt.Sprintf("axis_not_allowed:%s", axis)
		}
		if seen[axis] {
			return false, "duplicate_axes"
		}
		seen[axis] = true

		family := taxonomy.FamilyOf(axis)
		if family != "" && usedFamilies[family] {
			return false, fmt.Sprintf("family_conflict:%s", family)
		}
		usedFamilies[family] = true
	}

	return true, "pass"
}
