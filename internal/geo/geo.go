package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// The two fixed exchange points. Link sources reference them by these
// reserved names; the site source does not contain them, so the overlay
// index injects them as synthetic sites.
const (
	HubWestName = "hub-west"
	HubEastName = "hub-east"
)

var (
	HubWest = orb.Point{6.9489, 50.9413}
	HubEast = orb.Point{13.3889, 52.5170}
)

// HubEpsilon is the per-axis tolerance for "touches a hub". Absolute
// difference, not great-circle distance: hub-adjacent sites are snapped to
// the hub coordinates in the source data, so cheap and exact is enough.
const HubEpsilon = 0.01

// TouchesHub reports whether pos lies within epsilon of hub on both axes.
func TouchesHub(pos, hub orb.Point, epsilon float64) bool {
	return math.Abs(pos[0]-hub[0]) <= epsilon && math.Abs(pos[1]-hub[1]) <= epsilon
}

// SpanTouchesHub reports whether either endpoint of a link touches hub.
func SpanTouchesHub(a, b, hub orb.Point, epsilon float64) bool {
	return TouchesHub(a, hub, epsilon) || TouchesHub(b, hub, epsilon)
}
