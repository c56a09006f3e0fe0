// Package narrative builds the artifact prompts and turns model responses
// back into structured records. Each generator takes a TextGenerator so
// pipeline stages and tests can swap the model out.
package narrative

import (
	"context"
	"fmt"
	"strings"
)

// TextGenerator is the slice of the LLM client the generators need.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GeneratePremise asks for a one-sentence literal premise of the movie.
func GeneratePremise(ctx context.Context, gen TextGenerator, title, overview string) (string, error) {
	prompt := fmt.Sprintf(`You are generating a ONE-SENTENCE movie premise.

Rules:
- Describe the movie literally.
- No metaphors.
- No themes.
- No emotions.
- No abstract language.
- Must be understandable by someone who has never seen the movie.
- 10-15 words max.

Movie title: %s

Overview:
%s

Write ONLY the premise sentence.`, title, overview)

	out, err := gen.GenerateText(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(StripCodeFence(out)), nil
}

// GenerateAxes asks for a tension-axis selection as strict JSON. The
// candidate pool is passed in so the model never invents axes.
func GenerateAxes(ctx context.Context, gen TextGenerator, title, premise string, anchors []string, candidates []string, maxPrimary int) (string, error) {
	anchorLine := "None"
	if len(anchors) > 0 {
		anchorLine = strings.Join(anchors, ", ")
	}

	prompt := fmt.Sprintf(`You are selecting emotional tension axes for a movie.

Movie title:
%s

Premise (short identifier):
%s

Characters / anchors:
%s

Rules:
- Choose AT MOST %d primary axes
- Optionally choose 1 secondary axis
- Axes must be chosen ONLY from the list below
- Do NOT invent new axes
- Do NOT choose two axes from the same family
- If none strongly apply, return empty lists

Allowed axes:
%s

Respond strictly in JSON:
{
  "primary_axes": [],
  "secondary_axis": null
}`, title, premise, anchorLine, maxPrimary, strings.Join(candidates, "\n"))

	return gen.GenerateText(ctx, prompt)
}

// GenerateAnchors asks for one to three character anchors as a strict JSON
// array of {label, descriptor, type} objects.
func GenerateAnchors(ctx context.Context, gen TextGenerator, title, premise string) (string, error) {
	prompt := fmt.Sprintf(`You are extracting CHARACTER ANCHORS for a movie.

A character anchor is a SIMPLE, HUMAN-RECOGNIZABLE HANDLE
that lets someone instantly identify the movie.

Rules:
- Return 1 to 3 anchors ONLY
- Use REAL character names or team names
- Keep descriptors literal and short
- NO emotions
- NO themes
- NO abstract language

Allowed types:
- protagonist
- antagonist
- duo
- team
- symbolic

Return STRICT JSON ARRAY ONLY.
No markdown. No explanation.

Example:
[
  {
    "label": "Cooper",
    "descriptor": "astronaut father",
    "type": "protagonist"
  }
]

Movie title: %s
Premise: %s`, title, premise)

	return gen.GenerateText(ctx, prompt)
}

// GenerateCritic asks for a one-paragraph experiential critic summary.
func GenerateCritic(ctx context.Context, gen TextGenerator, title, premise string, axes []string) (string, error) {
	prompt := fmt.Sprintf(`You are writing like a human film critic explaining audience reaction.

Write ONE paragraph (70-100 words).

Rules (VERY IMPORTANT):
- DO NOT describe plot events or scenes
- DO NOT praise filmmaking or use critic jargon
- DO NOT say: masterfully, intricately, explores, examines, delves
- DO NOT list themes
- DO explain how the movie makes viewers feel and why it stays with them
- Write like someone recommending the movie from experience

Movie title: %s

Movie identity:
%s

Emotional tensions the movie operates on:
%s

Write naturally and plainly.`, title, premise, strings.Join(axes, ", "))

	out, err := gen.GenerateText(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(StripCodeFence(out)), nil
}

// GenerateCapsules asks for emotional capsules in the line format
// "AXIS :: emotion :: short sentence".
func GenerateCapsules(ctx context.Context, gen TextGenerator, premise string, axes []string, expected int) (string, error) {
	prompt := fmt.Sprintf(`Write exactly %d emotional capsules for the movie below.

STRICT FORMAT RULE (DO NOT BREAK):
Each line must follow this format exactly:
AXIS :: emotion :: short sentence

Rules:
- AXIS must be one of: %s
- One capsule per line
- No character names
- No second-person language (no "you")
- No plot or scene description
- Use simple, everyday words
- Each sentence under 18 words
- Do not add explanations or headers

Movie premise:
%s`, expected, strings.Join(axes, ", "), premise)

	return gen.GenerateText(ctx, prompt)
}
