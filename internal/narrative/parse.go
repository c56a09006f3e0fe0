package narrative

import (
	"encoding/json"
	"fmt"
	"strings"

	"cinecap/internal/core"
)

// AxisSelection is the model's raw axis answer before validation.
type AxisSelection struct {
	PrimaryAxes   []string `json:"primary_axes"`
	SecondaryAxis *string  `json:"secondary_axis"`
}

// StripCodeFence removes a surrounding markdown code fence if present.
// Models wrap JSON in ```json blocks despite instructions not to.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:] // drop a language tag like "json"
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ParseAxes decodes the axis-selection JSON and flattens it into an
// ordered axis list: primaries first, then the secondary if present.
func ParseAxes(raw string) ([]string, error) {
	var sel AxisSelection
	if err := json.Unmarshal([]byte(StripCodeFence(raw)), &sel); err != nil {
		return nil, fmt.Errorf("invalid axis selection JSON: %w", err)
	}

	axes := append([]string{}, sel.PrimaryAxes...)
	if sel.SecondaryAxis != nil && *sel.SecondaryAxis != "" {
		axes = append(axes, *sel.SecondaryAxis)
	}
	return axes, nil
}

// ParseAnchors decodes a JSON array of character anchors.
func ParseAnchors(raw string) ([]core.CharacterAnchor, error) {
	var anchors []core.CharacterAnchor
	if err := json.Unmarshal([]byte(StripCodeFence(raw)), &anchors); err != nil {
		return nil, fmt.Errorf("invalid anchor JSON: %w", err)
	}
	return anchors, nil
}

// ParseCapsules splits "AXIS :: emotion :: sentence" lines into capsules.
// Blank lines and list bullets are tolerated; a line without exactly three
// fields is an error so the validator sees the model's failure to follow
// the format.
func ParseCapsules(raw string) ([]core.Capsule, error) {
	var capsules []core.Capsule

	for _, line := range strings.Split(StripCodeFence(raw), "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*• "))
		if line == "" {
			continue
		}

		parts := strings.Split(line, "::")
		if len(parts) != 3 {
			return nil, fmt.Errorf("malformed capsule line: %q", line)
		}

		capsules = append(capsules, core.Capsule{
			Axis:    strings.TrimSpace(parts[0]),
			Emotion: strings.TrimSpace(parts[1]),
			Text:    strings.TrimSpace(parts[2]),
		})
	}
	return capsules, nil
}
