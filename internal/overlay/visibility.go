package overlay

import (
	"sort"
	"strconv"
	"strings"
)

// LinkVisible is the composite predicate for a single resolved link: its
// category must be active, neither hub suppression may apply, both endpoint
// groups must be active (a link hides when either end is filtered out), and
// when a tag filter is set at least one of its tags must match. An empty
// tag filter means no tag filtering, not "show nothing".
func (f FilterState) LinkVisible(l Link) bool {
	if _, ok := f.Categories[l.Category]; !ok {
		return false
	}
	if f.SuppressHubWest && l.NearHubWest {
		return false
	}
	if f.SuppressHubEast && l.NearHubEast {
		return false
	}
	if _, ok := f.Groups[l.SourceGroup]; !ok {
		return false
	}
	if _, ok := f.Groups[l.TargetGroup]; !ok {
		return false
	}
	return f.tagsMatch(l.Tags)
}

// AggregateVisible applies the link rule to an aggregate, except that
// category membership is satisfied by any of its member categories: an
// aggregate shows if at least one constituent type would.
func (f FilterState) AggregateVisible(a Aggregate) bool {
	anyCategory := false
	for _, c := range a.Categories {
		if _, ok := f.Categories[c]; ok {
			anyCategory = true
			break
		}
	}
	if !anyCategory {
		return false
	}
	if f.SuppressHubWest && a.NearHubWest {
		return false
	}
	if f.SuppressHubEast && a.NearHubEast {
		return false
	}
	if _, ok := f.Groups[a.SourceGroup]; !ok {
		return false
	}
	if _, ok := f.Groups[a.TargetGroup]; !ok {
		return false
	}
	return f.tagsMatch(a.Tags)
}

// SiteVisible shows a site iff its group is active.
func (f FilterState) SiteVisible(s Site) bool {
	_, ok := f.Groups[s.Group]
	return ok
}

func (f FilterState) tagsMatch(tags []string) bool {
	if len(f.Tags) == 0 {
		return true
	}
	for _, t := range tags {
		if _, ok := f.Tags[t]; ok {
			return true
		}
	}
	return false
}

// Key serializes every filter dimension into a deterministic,
// order-independent string. Equal visibility behavior yields equal keys and
// any single-dimension change changes the key; the renderer compares keys to
// skip recomputation, nothing more.
func (f FilterState) Key() string {
	var sb strings.Builder
	sb.WriteString("cat=")
	sb.WriteString(sortedJoin(f.Categories))
	sb.WriteString(";grp=")
	sb.WriteString(sortedJoin(f.Groups))
	sb.WriteString(";tag=")
	sb.WriteString(sortedJoin(f.Tags))
	sb.WriteString(";hubw=")
	sb.WriteString(strconv.FormatBool(f.SuppressHubWest))
	sb.WriteString(";hube=")
	sb.WriteString(strconv.FormatBool(f.SuppressHubEast))
	sb.WriteString(";agg=")
	sb.WriteString(strconv.FormatBool(f.Aggregated))
	sb.WriteString(";ll=")
	sb.WriteString(strconv.FormatBool(f.ShowLinkLabels))
	sb.WriteString(";sl=")
	sb.WriteString(strconv.FormatBool(f.ShowSiteLabels))
	return sb.String()
}

func sortedJoin(set map[string]struct{}) string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return strings.Join(values, ",")
}
