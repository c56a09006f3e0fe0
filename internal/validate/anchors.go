package validate

import (
	"strings"

	"cinecap/internal/core"
)

// allowedAnchorTypes is the fixed enum of anchor kinds.
var allowedAnchorTypes = map[string]bool{
	"protagonist": true,
	"antagonist":  true,
	"duo":         true,
	"team":        true,
	"symbolic":    true,
}

// anchorAbstractWords ban descriptors that read like theme analysis rather
// than a literal handle.
var anchorAbstractWords = []string{
	"emotional", "identity", "journey", "inner",
	"fractured", "psychological", "existential",
}

// FilterAnchors keeps only the structurally valid anchors: non-empty label
// and descriptor, a known type, and no abstract vocabulary in the
// descriptor. Entries are normalized (trimmed) on the way through.
func FilterAnchors(anchors []core.CharacterAnchor) []core.CharacterAnchor {
	var valid []core.CharacterAnchor
	for _, a := range anchors {
		label := strings.TrimSpace(a.Label)
		descriptor := strings.TrimSpace(a.Descriptor)

		if label == "" || descriptor == "" {
			continue
		}
		if !allowedAnchorTypes[a.Type] {
			continue
		}
		if containsAbstractWord(descriptor) {
			continue
		}

		valid = append(valid, core.CharacterAnchor{
			Label:      label,
			Descriptor: descriptor,
			Type:       a.Type,
		})
	}
	return valid
}

// Anchors validates a generated anchor set as a whole. The set passes when
// every entry survives filtering and between one and three anchors remain.
func Anchors(anchors []core.CharacterAnchor) (bool, string) {
	if len(anchors) == 0 {
		return false, "no_anchors"
	}

	valid := FilterAnchors(anchors)
	if len(valid) == 0 {
		return false, "no_valid_anchors"
	}
	if len(valid) < len(anchors) {
		return false, "invalid_entries"
	}
	if len(valid) > 3 {
		return false, "too_many_anchors"
	}
	return true, "pass"
}

func containsAbstractWord(descriptor string) bool {
	lowered := strings.ToLower(descriptor)
	for _, w := range anchorAbstractWords {
		if strings.Contains(lowered, w) {
			return true
		}
	}
	return false
}
