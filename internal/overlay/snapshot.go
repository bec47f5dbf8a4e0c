// Package overlay is the preprocessing and visibility engine behind the
// link map: it resolves raw site/link records, classifies them, merges
// coincident records, and answers visibility queries against an explicit
// filter state.
package overlay

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"linkmap/core-go/internal/classify"
	"linkmap/core-go/internal/record"
)

// SnapshotStats summarizes one preprocessing pass.
type SnapshotStats struct {
	RawSites     int
	RawLinks     int
	Unresolved   int
	RuleFiltered int
}

// Snapshot is the immutable output of one preprocessing pass. Everything the
// rendering collaborator reads comes from here; nothing is safe to query
// before the first snapshot exists.
type Snapshot struct {
	ID       string
	BuiltAt  time.Time
	Sites    []Site
	Links    []Link
	Clusters []SiteCluster

	Aggregates []Aggregate

	// Catalog of category/tag values actually present, sorted, for legend
	// building.
	Categories []string
	Tags       []string

	Stats SnapshotStats
}

// BuildSnapshot runs the full pass: classify sites, index (with synthetic
// hubs), resolve links, group co-located sites, aggregate parallel links.
// A bad record drops or defaults; it never aborts the pass.
func BuildSnapshot(rawSites, rawLinks []record.Raw) *Snapshot {
	sites := make([]Site, 0, len(rawSites))
	for _, rec := range rawSites {
		pos, ok := record.Position(rec, "position")
		if !ok {
			continue
		}
		name := record.String(rec, "name")
		if name == "" {
			name = "unnamed"
		}
		sites = append(sites, Site{
			Name:     name,
			Position: pos,
			Group:    classify.SiteGroup(name),
			Note:     record.String(rec, "note"),
			Icon:     record.String(rec, "icon"),
		})
	}

	idx, all := BuildIndex(sites)
	links, rstats := Resolve(rawLinks, idx)

	return &Snapshot{
		ID:         uuid.NewString(),
		BuiltAt:    time.Now().UTC(),
		Sites:      all,
		Links:      links,
		Clusters:   Colocate(all),
		Aggregates: AggregateLinks(links),
		Categories: collectCategories(links),
		Tags:       collectTags(links),
		Stats: SnapshotStats{
			RawSites:     len(rawSites),
			RawLinks:     len(rawLinks),
			Unresolved:   rstats.Unresolved,
			RuleFiltered: rstats.RuleFiltered,
		},
	}
}

func collectCategories(links []Link) []string {
	seen := make(map[string]struct{})
	for _, l := range links {
		seen[l.Category] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func collectTags(links []Link) []string {
	seen := make(map[string]struct{})
	for _, l := range links {
		for _, t := range l.Tags {
			seen[t] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
