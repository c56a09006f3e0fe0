package taxonomy

import (
	"sort"
	"strings"

	"cinecap/internal/core"
)

// SelectAxes deterministically picks up to maxAxes axes for a movie from the
// genre-allowed candidates, scored by keyword overlap with the premise and
// anchor labels. Ties are broken alphabetically so the selection is stable.
// At most one axis per family survives, highest scored first. Used as the
// fallback when the generated axis selection is rejected, and as the
// baseline selection when no generator is available.
func SelectAxes(genres []string, premise string, anchors []core.CharacterAnchor, maxAxes int) []string {
	candidates := AllowedAxes(genres)
	if len(candidates) == 0 || maxAxes <= 0 {
		return nil
	}

	text := strings.ToLower(premise)
	for _, a := range anchors {
		text += " " + strings.ToLower(a.Label)
	}

	scores := make(map[string]int, len(candidates))
	for _, axis := range candidates {
		for _, kw := range AxisKeywords[axis] {
			if strings.Contains(text, kw) {
				scores[axis]++
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if scores[candidates[i]] != scores[candidates[j]] {
			return scores[candidates[i]] > scores[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})

	var selected []string
	usedFamilies := make(map[string]bool)
	for _, axis := range candidates {
		if len(selected) >= maxAxes {
			break
		}
		family := FamilyOf(axis)
		if family != "" && usedFamilies[family] {
			continue
		}
		usedFamilies[family] = true
		selected = append(selected, axis)
	}

	return selected
}
