package match

import (
	"cmp"
	"slices"

	"connected-collections/internal/common"
)

// MinScore is the similarity a candidate needs to be suggested.
const MinScore = 0.6

type scored struct {
	name  string
	score float64
}

// Closest returns up to limit candidates whose normalized similarity to name
// reaches MinScore, best first. Ties keep the candidate order. Qualified
// names of the same package are compared by their short names.
func Closest(name string, candidates []string, limit int) []string {
	var hits []scored

	for _, c := range candidates {
		if c == name {
			continue
		}

		if s := score(name, c); s >= MinScore {
			hits = append(hits, scored{name: c, score: s})
		}
	}

	slices.SortStableFunc(hits, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	n := min(max(limit, 0), len(hits))
	out := make([]string, 0, n)
	for _, h := range hits[:n] {
		out = append(out, h.name)
	}

	return out
}

func score(a, b string) float64 {
	pa, sa := common.SplitQualified(a)
	pb, sb := common.SplitQualified(b)

	if Normalize(pa) == Normalize(pb) {
		return Similarity(Normalize(sa), Normalize(sb))
	}

	return Similarity(Normalize(a), Normalize(b))
}
