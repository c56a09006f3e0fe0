package narrative

import (
	"context"
	"strings"
	"testing"
)

type stubGenerator struct {
	lastPrompt string
	response   string
}

func (s *stubGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	return s.response, nil
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"```\n[1, 2]\n```", "[1, 2]"},
		{"  ```json\n{}\n```  ", "{}"},
	}
	for _, tc := range cases {
		if got := StripCodeFence(tc.in); got != tc.want {
			t.Errorf("StripCodeFence(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseAxes(t *testing.T) {
	raw := "```json\n{\"primary_axes\": [\"Safety ↔ Threat\", \"Order ↔ Chaos\"], \"secondary_axis\": \"Loyalty ↔ Betrayal\"}\n```"
	axes, err := ParseAxes(raw)
	if err != nil {
		t.Fatalf("ParseAxes: %v", err)
	}
	want := []string{"Safety ↔ Threat", "Order ↔ Chaos", "Loyalty ↔ Betrayal"}
	if len(axes) != len(want) {
		t.Fatalf("got %v, want %v", axes, want)
	}
	for i := range want {
		if axes[i] != want[i] {
			t.Errorf("axes[%d] = %q, want %q", i, axes[i], want[i])
		}
	}
}

func TestParseAxesNullSecondary(t *testing.T) {
	axes, err := ParseAxes(`{"primary_axes": ["Safety ↔ Threat"], "secondary_axis": null}`)
	if err != nil {
		t.Fatalf("ParseAxes: %v", err)
	}
	if len(axes) != 1 || axes[0] != "Safety ↔ Threat" {
		t.Errorf("got %v, want single primary", axes)
	}
}

func TestParseAxesRejectsGarbage(t *testing.T) {
	if _, err := ParseAxes("not json at all"); err == nil {
		t.Error("expected error for non-JSON input")
	}
}

func TestParseAnchors(t *testing.T) {
	raw := "```json\n[{\"label\": \"Cooper\", \"descriptor\": \"astronaut father\", \"type\": \"protagonist\"}]\n```"
	anchors, err := ParseAnchors(raw)
	if err != nil {
		t.Fatalf("ParseAnchors: %v", err)
	}
	if len(anchors) != 1 || anchors[0].Label != "Cooper" || anchors[0].Type != "protagonist" {
		t.Errorf("got %+v", anchors)
	}
}

func TestParseCapsules(t *testing.T) {
	raw := `Safety ↔ Threat :: tense :: a quiet dread builds and never lets go
- Order ↔ Chaos :: uneasy :: everything feels one step from falling apart

Safety ↔ Threat :: hopeful :: small moments of relief keep pulling people back`
	capsules, err := ParseCapsules(raw)
	if err != nil {
		t.Fatalf("ParseCapsules: %v", err)
	}
	if len(capsules) != 3 {
		t.Fatalf("got %d capsules, want 3", len(capsules))
	}
	if capsules[1].Axis != "Order ↔ Chaos" || capsules[1].Emotion != "uneasy" {
		t.Errorf("bullet line parsed wrong: %+v", capsules[1])
	}
}

func TestParseCapsulesMalformedLine(t *testing.T) {
	if _, err := ParseCapsules("Safety ↔ Threat :: tense"); err == nil {
		t.Error("expected error for two-field line")
	}
}

func TestGeneratePremisePromptAndTrim(t *testing.T) {
	gen := &stubGenerator{response: "  An astronaut survives alone on a hostile planet.  \n"}

	premise, err := GeneratePremise(context.Background(), gen, "The Martian", "An astronaut is stranded on Mars.")
	if err != nil {
		t.Fatalf("GeneratePremise: %v", err)
	}
	if premise != "An astronaut survives alone on a hostile planet." {
		t.Errorf("premise not trimmed: %q", premise)
	}
	if !strings.Contains(gen.lastPrompt, "The Martian") {
		t.Error("prompt missing movie title")
	}
	if !strings.Contains(gen.lastPrompt, "stranded on Mars") {
		t.Error("prompt missing overview")
	}
}

func TestGenerateCapsulesPromptListsAxes(t *testing.T) {
	gen := &stubGenerator{response: "x :: y :: z"}

	_, err := GenerateCapsules(context.Background(), gen, "premise", []string{"Safety ↔ Threat", "Order ↔ Chaos"}, 5)
	if err != nil {
		t.Fatalf("GenerateCapsules: %v", err)
	}
	if !strings.Contains(gen.lastPrompt, "Safety ↔ Threat, Order ↔ Chaos") {
		t.Error("prompt missing axis list")
	}
	if !strings.Contains(gen.lastPrompt, "exactly 5") {
		t.Error("prompt missing expected count")
	}
}

func TestGenerateAxesPromptIncludesCandidates(t *testing.T) {
	gen := &stubGenerator{response: `{"primary_axes": [], "secondary_axis": null}`}

	_, err := GenerateAxes(context.Background(), gen, "Dune", "a premise",
		[]string{"Paul"}, []string{"Power ↔ Responsibility", "Control ↔ Surrender"}, 2)
	if err != nil {
		t.Fatalf("GenerateAxes: %v", err)
	}
	if !strings.Contains(gen.lastPrompt, "Power ↔ Responsibility\nControl ↔ Surrender") {
		t.Error("prompt missing candidate axes")
	}
	if !strings.Contains(gen.lastPrompt, "Paul") {
		t.Error("prompt missing anchors")
	}
}
