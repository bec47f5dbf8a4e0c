package overlay

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Aggregate merges every link sharing the same unordered endpoint pair into
// one entity. Read-only after the pass that builds it.
type Aggregate struct {
	Key string

	// First-seen endpoint references; all members share the pair.
	Source      string
	Target      string
	SourcePos   orb.Point
	TargetPos   orb.Point
	SourceGroup string
	TargetGroup string

	// Member category/tag unions in first-insertion order. The renderer
	// styles an aggregate as a step function of len(Categories); the count
	// must be exact and stable across re-aggregation.
	Categories []string
	Tags       []string

	Count int

	NearHubWest bool
	NearHubEast bool
}

func positionKey(p orb.Point) string {
	return fmt.Sprintf("%.6f,%.6f", p[0], p[1])
}

// pairKey canonicalizes the unordered endpoint pair: both positions
// serialized, sorted lexicographically, joined. A->B and B->A collapse to
// the same key regardless of recording order.
func pairKey(a, b orb.Point) string {
	ka, kb := positionKey(a), positionKey(b)
	if kb < ka {
		ka, kb = kb, ka
	}
	return ka + "|" + kb
}

type accumulator struct {
	agg      Aggregate
	seenCats map[string]struct{}
	seenTags map[string]struct{}
}

// AggregateLinks folds resolved links into one aggregate per unordered
// endpoint pair in a single pass. Output order follows first appearance.
func AggregateLinks(links []Link) []Aggregate {
	byKey := make(map[string]*accumulator, len(links))
	order := make([]string, 0, len(links))

	for _, l := range links {
		key := pairKey(l.SourcePos, l.TargetPos)

		acc, ok := byKey[key]
		if !ok {
			acc = &accumulator{
				agg: Aggregate{
					Key:         key,
					Source:      l.Source,
					Target:      l.Target,
					SourcePos:   l.SourcePos,
					TargetPos:   l.TargetPos,
					SourceGroup: l.SourceGroup,
					TargetGroup: l.TargetGroup,
				},
				seenCats: make(map[string]struct{}),
				seenTags: make(map[string]struct{}),
			}
			byKey[key] = acc
			order = append(order, key)
		}

		acc.agg.Count++
		acc.agg.NearHubWest = acc.agg.NearHubWest || l.NearHubWest
		acc.agg.NearHubEast = acc.agg.NearHubEast || l.NearHubEast

		if _, seen := acc.seenCats[l.Category]; !seen {
			acc.seenCats[l.Category] = struct{}{}
			acc.agg.Categories = append(acc.agg.Categories, l.Category)
		}
		for _, t := range l.Tags {
			if _, seen := acc.seenTags[t]; seen {
				continue
			}
			acc.seenTags[t] = struct{}{}
			acc.agg.Tags = append(acc.agg.Tags, t)
		}
	}

	out := make([]Aggregate, 0, len(order))
	for _, key := range order {
		out = append(out, byKey[key].agg)
	}
	return out
}
