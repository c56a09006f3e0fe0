package taxonomy

import (
	"testing"

	"cinecap/internal/core"
)

func TestEveryRuleAxisHasFamily(t *testing.T) {
	for genre, axes := range GenreAxisRules {
		for _, axis := range axes {
			if FamilyOf(axis) == "" {
				t.Errorf("axis %q (genre %q) has no family in the ontology", axis, genre)
			}
		}
	}
}

func TestFamilyOfUnknownAxis(t *testing.T) {
	if got := FamilyOf("Cats ↔ Dogs"); got != "" {
		t.Errorf("FamilyOf(unknown) = %q, want empty", got)
	}
	if KnownAxis("Cats ↔ Dogs") {
		t.Error("KnownAxis(unknown) = true, want false")
	}
}

func TestAllowedAxesUnion(t *testing.T) {
	axes := AllowedAxes([]string{"Science Fiction", "Action"})
	set := make(map[string]bool)
	for _, a := range axes {
		set[a] = true
	}

	if !set["Reality ↔ Illusion"] || !set["Safety ↔ Threat"] {
		t.Errorf("union missing expected axes: %v", axes)
	}
	if set["Loyalty ↔ Betrayal"] {
		t.Error("union contains an axis from an unrelated genre")
	}
}

func TestAllowedAxesUnknownGenre(t *testing.T) {
	if axes := AllowedAxes([]string{"Documentary"}); len(axes) != 0 {
		t.Errorf("unknown genre should contribute no axes, got %v", axes)
	}
}

func TestSelectAxesDeterministic(t *testing.T) {
	premise := "A pilot must escape a failing space station to survive."
	a := SelectAxes([]string{"Science Fiction", "Action"}, premise, nil, 3)
	b := SelectAxes([]string{"Science Fiction", "Action"}, premise, nil, 3)

	if len(a) == 0 {
		t.Fatal("expected a non-empty selection")
	}
	if len(a) != len(b) {
		t.Fatalf("selection not deterministic: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("selection not deterministic: %v vs %v", a, b)
		}
	}
}

func TestSelectAxesPrefersKeywordOverlap(t *testing.T) {
	premise := "Soldiers survive a brutal battle at great sacrifice and loss."
	selected := SelectAxes([]string{"Action"}, premise, nil, 1)
	if len(selected) != 1 || selected[0] != "Survival ↔ Sacrifice" {
		t.Errorf("selected %v, want [Survival ↔ Sacrifice]", selected)
	}
}

func TestSelectAxesOnePerFamily(t *testing.T) {
	selected := SelectAxes([]string{"Science Fiction", "Action", "Drama", "Fantasy", "Adventure"}, "", nil, 10)

	families := make(map[string]bool)
	for _, axis := range selected {
		family := FamilyOf(axis)
		if families[family] {
			t.Errorf("selection %v contains two axes from family %q", selected, family)
		}
		families[family] = true
	}
}

func TestSelectAxesRespectsCap(t *testing.T) {
	selected := SelectAxes([]string{"Science Fiction", "Drama"}, "", nil, 2)
	if len(selected) > 2 {
		t.Errorf("selected %d axes, want at most 2", len(selected))
	}
}

func TestSelectAxesNoGenres(t *testing.T) {
	if got := SelectAxes(nil, "a premise", nil, 3); got != nil {
		t.Errorf("SelectAxes(no genres) = %v, want nil", got)
	}
}

func TestSelectAxesUsesAnchorLabels(t *testing.T) {
	anchors := []core.CharacterAnchor{{Label: "The Betrayer", Descriptor: "former ally", Type: "antagonist"}}
	selected := SelectAxes([]string{"Fantasy"}, "", anchors, 1)
	if len(selected) != 1 || selected[0] != "Loyalty ↔ Betrayal" {
		t.Errorf("selected %v, want [Loyalty ↔ Betrayal]", selected)
	}
}
