package layers

import (
	"sort"
	"strings"

	"cinecap/internal/core"
)

// GoldTables are the per-artifact records indexed by movie id. An absent
// table is a nil map; the merge tolerates it.
type GoldTables struct {
	Premises map[int]core.PremiseRecord
	Axes     map[int]core.AxesRecord
	Anchors  map[int]core.AnchorsRecord
	Critics  map[int]core.CriticRecord
	Capsules map[int]core.CapsulesRecord
}

// IndexPremises indexes premise records by movie id.
func IndexPremises(records []core.PremiseRecord) map[int]core.PremiseRecord {
	out := make(map[int]core.PremiseRecord, len(records))
	for _, r := range records {
		out[r.MovieID] = r
	}
	return out
}

// IndexAxes indexes axes records by movie id.
func IndexAxes(records []core.AxesRecord) map[int]core.AxesRecord {
	out := make(map[int]core.AxesRecord, len(records))
	for _, r := range records {
		out[r.MovieID] = r
	}
	return out
}

// IndexAnchors indexes anchor records by movie id.
func IndexAnchors(records []core.AnchorsRecord) map[int]core.AnchorsRecord {
	out := make(map[int]core.AnchorsRecord, len(records))
	for _, r := range records {
		out[r.MovieID] = r
	}
	return out
}

// IndexCritics indexes critic records by movie id.
func IndexCritics(records []core.CriticRecord) map[int]core.CriticRecord {
	out := make(map[int]core.CriticRecord, len(records))
	for _, r := range records {
		out[r.MovieID] = r
	}
	return out
}

// IndexCapsules indexes capsule records by movie id.
func IndexCapsules(records []core.CapsulesRecord) map[int]core.CapsulesRecord {
	out := make(map[int]core.CapsulesRecord, len(records))
	for _, r := range records {
		out[r.MovieID] = r
	}
	return out
}

// MergeGold joins the artifact tables into canonical gold records. The
// output covers the union of movie ids across all tables, sorted by id;
// the title is the first non-empty one in premise, axes, anchors, critic,
// capsules order.
func MergeGold(tables GoldTables) []core.GoldMovie {
	ids := make(map[int]bool)
	for id := range tables.Premises {
		ids[id] = true
	}
	for id := range tables.Axes {
		ids[id] = true
	}
	for id := range tables.Anchors {
		ids[id] = true
	}
	for id := range tables.Critics {
		ids[id] = true
	}
	for id := range tables.Capsules {
		ids[id] = true
	}

	sorted := make([]int, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Ints(sorted)

	out := make([]core.GoldMovie, 0, len(sorted))
	for _, id := range sorted {
		p := tables.Premises[id]
		a := tables.Axes[id]
		an := tables.Anchors[id]
		c := tables.Critics[id]
		caps := tables.Capsules[id]

		out = append(out, core.GoldMovie{
			MovieID:  id,
			Title:    firstNonEmpty(p.Title, a.Title, an.Title, c.Title, caps.Title),
			Premise:  strings.TrimSpace(p.Premise),
			Axes:     a.Axes,
			Anchors:  an.Anchors,
			Critic:   strings.TrimSpace(c.Summary),
			Capsules: caps.Capsules,
		})
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
