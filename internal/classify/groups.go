package classify

// Site groups drive marker color and group filtering.
const (
	GroupBackbone = "backbone"
	GroupRelay    = "relay"
	GroupAccess   = "access"
	GroupPartner  = "partner"
	GroupOther    = "other"
)

var allGroups = []string{
	GroupBackbone,
	GroupRelay,
	GroupAccess,
	GroupPartner,
	GroupOther,
}

// AllGroups returns the group set in legend order.
func AllGroups() []string {
	out := make([]string, len(allGroups))
	copy(out, allGroups)
	return out
}

var groupColors = map[string]string{
	GroupBackbone: "#d62728",
	GroupRelay:    "#1f77b4",
	GroupAccess:   "#2ca02c",
	GroupPartner:  "#ffffff",
	GroupOther:    "#7f7f7f",
}

// GroupColor returns the marker color for a group; unknown groups render
// like GroupOther.
func GroupColor(group string) string {
	if c, ok := groupColors[group]; ok {
		return c
	}
	return groupColors[GroupOther]
}

// siteGroups is the static site-name -> group table. Case-sensitive exact
// match; names absent from the table classify as GroupOther.
var siteGroups = map[string]string{
	// backbone
	"hub-west":       GroupBackbone,
	"hub-east":       GroupBackbone,
	"koeln-core":     GroupBackbone,
	"frankfurt-core": GroupBackbone,
	"hamburg-core":   GroupBackbone,
	"muenchen-core":  GroupBackbone,

	// relay
	"kassel-nord":   GroupRelay,
	"erfurt-1":      GroupRelay,
	"hannover-sued": GroupRelay,
	"leipzig-west":  GroupRelay,
	"wuerzburg-2":   GroupRelay,

	// access
	"bonn-uni":      GroupAccess,
	"aachen-1":      GroupAccess,
	"dresden-alt":   GroupAccess,
	"jena-tower":    GroupAccess,
	"bremen-hafen":  GroupAccess,
	"nuernberg-ost": GroupAccess,

	// partner (white)
	// "goettingen-sued" also appeared under the relay block in an earlier
	// revision of this table; the partner mapping is the most recent one and
	// wins. Flagged for the upstream data owner rather than guessed at.
	"goettingen-sued": GroupPartner,
	"magdeburg-ix":    GroupPartner,
	"stuttgart-ix":    GroupPartner,
}

// SiteGroup looks a site name up in the static table; names without an
// explicit mapping fall back to GroupOther.
func SiteGroup(name string) string {
	if g, ok := siteGroups[name]; ok {
		return g
	}
	return GroupOther
}
