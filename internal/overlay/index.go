package overlay

import (
	"github.com/paulmach/orb"

	"linkmap/core-go/internal/classify"
	"linkmap/core-go/internal/geo"
)

// Site is one geographic point after classification. Immutable once built.
type Site struct {
	Name     string
	Position orb.Point
	Group    string
	Note     string
	Icon     string
}

// syntheticSites are the fixed reference points links may name without the
// site source containing them. They resolve like any other site.
func syntheticSites() []Site {
	return []Site{
		{Name: geo.HubWestName, Position: geo.HubWest, Group: classify.SiteGroup(geo.HubWestName)},
		{Name: geo.HubEastName, Position: geo.HubEast, Group: classify.SiteGroup(geo.HubEastName)},
	}
}

// BuildIndex keys sites by name, last write wins on duplicates, then injects
// the synthetic hub sites where the source did not already provide them.
// It returns the index plus the full ordered site list (source order, then
// injected synthetics) so downstream passes stay deterministic.
func BuildIndex(sites []Site) (map[string]Site, []Site) {
	idx := make(map[string]Site, len(sites)+2)
	for _, s := range sites {
		idx[s.Name] = s
	}

	all := append([]Site(nil), sites...)
	for _, hub := range syntheticSites() {
		if _, ok := idx[hub.Name]; ok {
			continue
		}
		idx[hub.Name] = hub
		all = append(all, hub)
	}
	return idx, all
}
