package taxonomy

// AxisKeywords maps an axis to plain-text cues used by the deterministic
// selector when scoring keyword overlap against a premise.
var AxisKeywords = map[string][]string{
	"Reality ↔ Illusion":      {"dream", "simulation", "illusion", "false", "real"},
	"Control ↔ Surrender":     {"control", "force", "resist", "submit", "command"},
	"Power ↔ Responsibility":  {"power", "weapon", "ability", "responsibility"},
	"Purpose ↔ Emptiness":     {"purpose", "meaning", "survive", "exist", "nothing"},
	"Freedom ↔ Constraint":    {"free", "escape", "trapped", "rule", "limit"},
	"Safety ↔ Threat":         {"threat", "danger", "protect", "attack", "enemy"},
	"Order ↔ Chaos":           {"order", "law", "collapse", "chaos", "anarchy"},
	"Individual ↔ Collective": {"team", "alone", "together", "group"},
	"Survival ↔ Sacrifice":    {"survive", "sacrifice", "cost", "loss"},
	"Identity ↔ Role":         {"identity", "role", "who", "become"},
	"Loyalty ↔ Betrayal":      {"loyal", "betray", "trust", "turn"},
	"Justice ↔ Compromise":    {"justice", "right", "wrong", "deal"},
}
