package overlay

import (
	"testing"

	"linkmap/core-go/internal/classify"
	"linkmap/core-go/internal/geo"
	"linkmap/core-go/internal/record"
)

func siteRec(name string, lon, lat float64) record.Raw {
	return record.Raw{"name": name, "position": []any{lon, lat}}
}

func linkRec(source, target, linkType string) record.Raw {
	return record.Raw{"source": source, "target": target, "linkType": linkType}
}

func TestBuildSnapshot_FullPass(t *testing.T) {
	rawSites := []record.Raw{
		siteRec("koeln-core", 6.96, 50.94),
		siteRec("bonn-uni", 7.1, 50.7),
		// Bad position, dropped.
		{"name": "broken", "position": "nope"},
	}
	rawLinks := []record.Raw{
		linkRec("koeln-core", "bonn-uni", "F"),
		linkRec("bonn-uni", "hub-west", "C"),
		linkRec("koeln-core", "ghost", "F"),
	}

	snap := BuildSnapshot(rawSites, rawLinks)

	if snap.ID == "" {
		t.Fatal("snapshot must carry an id")
	}
	if snap.BuiltAt.IsZero() {
		t.Fatal("snapshot must carry a build time")
	}

	// 2 valid sites plus 2 injected hubs.
	if len(snap.Sites) != 4 {
		t.Fatalf("sites: got %d", len(snap.Sites))
	}
	if snap.Sites[2].Name != geo.HubWestName || snap.Sites[3].Name != geo.HubEastName {
		t.Fatalf("synthetics must append after source sites: %q, %q", snap.Sites[2].Name, snap.Sites[3].Name)
	}

	if len(snap.Links) != 2 {
		t.Fatalf("links: got %d", len(snap.Links))
	}
	if snap.Stats.Unresolved != 1 {
		t.Fatalf("unresolved: got %d", snap.Stats.Unresolved)
	}
	if snap.Stats.RawSites != 3 || snap.Stats.RawLinks != 3 {
		t.Fatalf("raw counts: got %d/%d", snap.Stats.RawSites, snap.Stats.RawLinks)
	}

	// Classified groups come from the static table.
	if snap.Links[0].SourceGroup != classify.GroupBackbone {
		t.Fatalf("koeln-core group: got %q", snap.Links[0].SourceGroup)
	}

	// Sorted catalogs of values actually present.
	if len(snap.Categories) != 2 || snap.Categories[0] != "C" || snap.Categories[1] != "F" {
		t.Fatalf("categories: got %v", snap.Categories)
	}

	if len(snap.Clusters) != 4 {
		t.Fatalf("clusters: got %d", len(snap.Clusters))
	}
	if len(snap.Aggregates) != 2 {
		t.Fatalf("aggregates: got %d", len(snap.Aggregates))
	}
}

func TestBuildSnapshot_SourceProvidedHubWins(t *testing.T) {
	rawSites := []record.Raw{
		siteRec(geo.HubWestName, 6.9489, 50.9413),
	}
	snap := BuildSnapshot(rawSites, nil)

	// Only hub-east gets injected.
	if len(snap.Sites) != 2 {
		t.Fatalf("sites: got %d", len(snap.Sites))
	}
	if snap.Sites[0].Name != geo.HubWestName || snap.Sites[1].Name != geo.HubEastName {
		t.Fatalf("got %q, %q", snap.Sites[0].Name, snap.Sites[1].Name)
	}
}

func TestBuildSnapshot_LegacySpellings(t *testing.T) {
	rawSites := []record.Raw{
		// Legacy coordinates alias.
		{"name": "alt-site", "coordinates": []any{9.0, 51.0}},
	}
	rawLinks := []record.Raw{
		// Legacy field spelling plus legacy category value.
		{"source": "alt-site", "target": "hub-east", "link_type": "N_TYPE"},
	}

	snap := BuildSnapshot(rawSites, rawLinks)
	if len(snap.Links) != 1 {
		t.Fatalf("links: got %d", len(snap.Links))
	}
	if snap.Links[0].Category != classify.CategoryTunnel {
		t.Fatalf("category: got %q", snap.Links[0].Category)
	}
}

func TestBuildSnapshot_NamelessSite(t *testing.T) {
	snap := BuildSnapshot([]record.Raw{
		{"position": []any{3.0, 4.0}},
	}, nil)
	if snap.Sites[0].Name != "unnamed" {
		t.Fatalf("nameless site: got %q", snap.Sites[0].Name)
	}
	if snap.Sites[0].Group != classify.GroupOther {
		t.Fatalf("nameless site group: got %q", snap.Sites[0].Group)
	}
}

func TestBuildSnapshot_EmptyInput(t *testing.T) {
	snap := BuildSnapshot(nil, nil)
	if len(snap.Sites) != 2 {
		t.Fatalf("empty input still carries synthetic hubs, got %d sites", len(snap.Sites))
	}
	if len(snap.Links) != 0 || len(snap.Aggregates) != 0 {
		t.Fatalf("empty input must yield no links")
	}
	if len(snap.Categories) != 0 || len(snap.Tags) != 0 {
		t.Fatalf("empty input must yield empty catalogs")
	}
}
