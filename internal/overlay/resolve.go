package overlay

import (
	"github.com/paulmach/orb"

	"linkmap/core-go/internal/classify"
	"linkmap/core-go/internal/geo"
	"linkmap/core-go/internal/record"
)

// Link is a connection with both endpoints resolved. Resolve never emits a
// Link with an undefined endpoint position.
type Link struct {
	Source string
	Target string

	Category string
	Tags     []string

	SourcePos orb.Point
	TargetPos orb.Point

	SourceGroup string
	TargetGroup string

	NearHubWest bool
	NearHubEast bool
}

// tunnelSplitRule is a data-specific carve-out, kept as a named value so it
// can be tested on its own and deleted once the upstream feed stops
// double-reporting hub tunnels on both sides of the split.
//
// Tunnel links are exported by both hubs; each hub's export also contains
// the other hub's far-side tunnels. Keep a hub's tunnel only when its target
// lies on that hub's side of the split longitude.
type tunnelSplitRule struct {
	Category       string
	WestSource     string
	EastSource     string
	SplitLongitude float64
}

var tunnelSplit = tunnelSplitRule{
	Category:       classify.CategoryTunnel,
	WestSource:     geo.HubWestName,
	EastSource:     geo.HubEastName,
	SplitLongitude: 10.2,
}

func (r tunnelSplitRule) keep(source, category string, target orb.Point) bool {
	if category != r.Category {
		return true
	}
	switch source {
	case r.WestSource:
		return target[0] < r.SplitLongitude
	case r.EastSource:
		return target[0] >= r.SplitLongitude
	default:
		return true
	}
}

// ResolveStats counts the records Resolve dropped. Drops are silent; the
// counts exist for metrics only.
type ResolveStats struct {
	Unresolved   int
	RuleFiltered int
}

// Resolve looks both endpoint names up in the index and keeps a link only
// when both positions resolve and its inclusion rule passes. Kept links get
// category, tags, endpoint positions, endpoint groups and hub-proximity
// flags attached. Order-preserving; no side effects beyond the output.
func Resolve(raw []record.Raw, idx map[string]Site) ([]Link, ResolveStats) {
	out := make([]Link, 0, len(raw))
	var stats ResolveStats

	for _, rec := range raw {
		srcName := record.Name(rec, "source")
		tgtName := record.Name(rec, "target")

		src, srcOK := idx[srcName]
		tgt, tgtOK := idx[tgtName]
		if !srcOK || !tgtOK {
			stats.Unresolved++
			continue
		}

		category := classify.LinkCategory(rec)
		if !tunnelSplit.keep(srcName, category, tgt.Position) {
			stats.RuleFiltered++
			continue
		}

		out = append(out, Link{
			Source:      srcName,
			Target:      tgtName,
			Category:    category,
			Tags:        classify.TagList(rec),
			SourcePos:   src.Position,
			TargetPos:   tgt.Position,
			SourceGroup: src.Group,
			TargetGroup: tgt.Group,
			NearHubWest: geo.SpanTouchesHub(src.Position, tgt.Position, geo.HubWest, geo.HubEpsilon),
			NearHubEast: geo.SpanTouchesHub(src.Position, tgt.Position, geo.HubEast, geo.HubEpsilon),
		})
	}

	return out, stats
}
