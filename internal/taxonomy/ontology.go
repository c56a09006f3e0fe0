package taxonomy

// Families maps each axis family to its mutually exclusive axis labels. A
// valid axis selection carries at most one axis per family. This is global
// read-only configuration: selectors and validators receive it through
// lookups, never mutate it.
var Families = map[string][]string{
	"Reality & Perception": {
		"Reality ↔ Illusion",
		"Truth ↔ Deception",
	},
	"Power & Control": {
		"Power ↔ Responsibility",
		"Control ↔ Surrender",
	},
	"Freedom & Constraint": {
		"Freedom ↔ Constraint",
	},
	"Identity & Self": {
		"Identity ↔ Role",
		"Self ↔ Mask",
	},
	"Survival & Stakes": {
		"Safety ↔ Threat",
		"Survival ↔ Sacrifice",
	},
	"Social Bonds": {
		"Belonging ↔ Isolation",
		"Loyalty ↔ Betrayal",
		"Individual ↔ Collective",
	},
	"Order & Justice": {
		"Order ↔ Chaos",
		"Order ↔ Corruption",
		"Justice ↔ Compromise",
	},
	"Knowledge & Fear": {
		"Known ↔ Unknown",
		"Safety ↔ Exposure",
	},
	"Meaning & Absurdity": {
		"Meaning ↔ Absurdity",
		"Purpose ↔ Emptiness",
	},
}

// axisToFamily is the reverse lookup, built once at package init.
var axisToFamily = func() map[string]string {
	m := make(map[string]string)
	for family, axes := range Families {
		for _, axis := range axes {
			m[axis] = family
		}
	}
	return m
}()

// FamilyOf returns the family an axis belongs to, or "" for an unknown axis.
func FamilyOf(axis string) string {
	return axisToFamily[axis]
}

// KnownAxis reports whether the axis exists in the taxonomy.
func KnownAxis(axis string) bool {
	_, ok := axisToFamily[axis]
	return ok
}
