package overlay

import (
	"math"

	"github.com/paulmach/orb"

	"linkmap/core-go/internal/classify"
)

// labelRadius is the pixel radius at which member labels fan out around a
// multi-member marker.
const labelRadius = 18.0

// Icon shapes consumed by the renderer.
const (
	IconCircle = "circle"
	IconPie    = "pie"
)

// Icon describes the marker for a site cluster: a plain circle for a single
// member, a multi-sector pie with one color per member otherwise.
type Icon struct {
	Shape  string
	Colors []string
}

// LabelOffset is a per-member label displacement in pixels.
type LabelOffset struct {
	X float64
	Y float64
}

// SiteCluster merges all sites sharing identical coordinates. Built fresh
// each preprocessing pass, never mutated afterward.
type SiteCluster struct {
	Position orb.Point
	Members  []Site
	Icon     Icon
	// Offsets has one entry per member for clusters of two or more; single
	// member clusters carry none and the renderer uses its default
	// below-marker placement.
	Offsets []LabelOffset
}

// Colocate groups sites by exact coordinate equality. No tolerance: the
// source snaps true duplicates to identical coordinates, so float equality
// is the grouping the data means. Cluster order follows first appearance.
func Colocate(sites []Site) []SiteCluster {
	byPos := make(map[orb.Point][]Site, len(sites))
	order := make([]orb.Point, 0, len(sites))

	for _, s := range sites {
		if _, seen := byPos[s.Position]; !seen {
			order = append(order, s.Position)
		}
		byPos[s.Position] = append(byPos[s.Position], s)
	}

	out := make([]SiteCluster, 0, len(order))
	for _, pos := range order {
		members := byPos[pos]
		out = append(out, SiteCluster{
			Position: pos,
			Members:  members,
			Icon:     clusterIcon(members),
			Offsets:  labelOffsets(len(members)),
		})
	}
	return out
}

func clusterIcon(members []Site) Icon {
	colors := make([]string, 0, len(members))
	for _, m := range members {
		colors = append(colors, classify.GroupColor(m.Group))
	}
	shape := IconPie
	if len(members) == 1 {
		shape = IconCircle
	}
	return Icon{Shape: shape, Colors: colors}
}

// labelOffsets places n labels evenly around a circle, starting at
// 12 o'clock and proceeding clockwise: member i sits at the middle of its
// 360/n degree slice.
func labelOffsets(n int) []LabelOffset {
	if n <= 1 {
		return nil
	}
	slice := 360.0 / float64(n)
	out := make([]LabelOffset, 0, n)
	for i := 0; i < n; i++ {
		mid := (-90 + float64(i)*slice + slice/2) * math.Pi / 180
		out = append(out, LabelOffset{
			X: labelRadius * math.Cos(mid),
			Y: labelRadius * math.Sin(mid),
		})
	}
	return out
}
