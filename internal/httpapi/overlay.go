package httpapi

import (
	"net/http"
	"sort"

	"linkmap/core-go/internal/classify"
	"linkmap/core-go/internal/geo"
	"linkmap/core-go/internal/overlay"
)

type overlayResponse struct {
	SnapshotID string `json:"snapshot_id"`
	Key        string `json:"key"`
	Aggregated bool   `json:"aggregated"`

	Links      []overlayLink      `json:"links"`
	Aggregates []overlayAggregate `json:"aggregates"`
	Clusters   []overlayCluster   `json:"clusters"`

	Labels overlayLabels `json:"labels"`
}

type overlayLabels struct {
	Links bool `json:"links"`
	Sites bool `json:"sites"`
}

type overlayLink struct {
	Source      string     `json:"source"`
	Target      string     `json:"target"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	SourcePos   [2]float64 `json:"source_position"`
	TargetPos   [2]float64 `json:"target_position"`
	SourceGroup string     `json:"source_group"`
	TargetGroup string     `json:"target_group"`
}

type overlayAggregate struct {
	Key         string     `json:"key"`
	Source      string     `json:"source"`
	Target      string     `json:"target"`
	SourcePos   [2]float64 `json:"source_position"`
	TargetPos   [2]float64 `json:"target_position"`
	Categories  []string   `json:"categories"`
	Tags        []string   `json:"tags"`
	Count       int        `json:"count"`
	NearHubWest bool       `json:"near_hub_west"`
	NearHubEast bool       `json:"near_hub_east"`
}

type overlayCluster struct {
	Position [2]float64              `json:"position"`
	Icon     overlayIcon             `json:"icon"`
	Members  []overlayClusterMember  `json:"members"`
}

type overlayIcon struct {
	Shape  string   `json:"shape"`
	Colors []string `json:"colors"`
}

type overlayClusterMember struct {
	Name    string      `json:"name"`
	Group   string      `json:"group"`
	Color   string      `json:"color"`
	Visible bool        `json:"visible"`
	Offset  *[2]float64 `json:"label_offset,omitempty"`
}

func (h *Handler) handleGetOverlay(w http.ResponseWriter, r *http.Request) {
	snap := h.ensureSnapshot(w)
	if snap == nil {
		return
	}
	state := h.filterState()

	resp := overlayResponse{
		SnapshotID: snap.ID,
		Key:        state.Key(),
		Aggregated: state.Aggregated,
		Links:      []overlayLink{},
		Aggregates: []overlayAggregate{},
		Clusters:   []overlayCluster{},
		Labels: overlayLabels{
			Links: state.ShowLinkLabels,
			Sites: state.ShowSiteLabels,
		},
	}

	if state.Aggregated {
		for _, a := range snap.Aggregates {
			if !state.AggregateVisible(a) {
				continue
			}
			resp.Aggregates = append(resp.Aggregates, overlayAggregate{
				Key:         a.Key,
				Source:      a.Source,
				Target:      a.Target,
				SourcePos:   [2]float64(a.SourcePos),
				TargetPos:   [2]float64(a.TargetPos),
				Categories:  emptyIfNil(a.Categories),
				Tags:        emptyIfNil(a.Tags),
				Count:       a.Count,
				NearHubWest: a.NearHubWest,
				NearHubEast: a.NearHubEast,
			})
		}
	} else {
		for _, l := range snap.Links {
			if !state.LinkVisible(l) {
				continue
			}
			resp.Links = append(resp.Links, overlayLink{
				Source:      l.Source,
				Target:      l.Target,
				Category:    l.Category,
				Tags:        emptyIfNil(l.Tags),
				SourcePos:   [2]float64(l.SourcePos),
				TargetPos:   [2]float64(l.TargetPos),
				SourceGroup: l.SourceGroup,
				TargetGroup: l.TargetGroup,
			})
		}
	}

	for _, c := range snap.Clusters {
		members := make([]overlayClusterMember, 0, len(c.Members))
		anyVisible := false
		for i, m := range c.Members {
			visible := state.SiteVisible(m)
			anyVisible = anyVisible || visible
			member := overlayClusterMember{
				Name:    m.Name,
				Group:   m.Group,
				Color:   classify.GroupColor(m.Group),
				Visible: visible,
			}
			if i < len(c.Offsets) {
				offset := [2]float64{c.Offsets[i].X, c.Offsets[i].Y}
				member.Offset = &offset
			}
			members = append(members, member)
		}
		if !anyVisible {
			continue
		}
		resp.Clusters = append(resp.Clusters, overlayCluster{
			Position: [2]float64(c.Position),
			Icon:     overlayIcon{Shape: c.Icon.Shape, Colors: c.Icon.Colors},
			Members:  members,
		})
	}

	h.writeJSON(w, http.StatusOK, resp)
}

type filterStateDTO struct {
	Categories      []string `json:"categories"`
	Groups          []string `json:"groups"`
	Tags            []string `json:"tags"`
	SuppressHubWest bool     `json:"suppress_hub_west"`
	SuppressHubEast bool     `json:"suppress_hub_east"`
	Aggregated      bool     `json:"aggregated"`
	ShowLinkLabels  bool     `json:"show_link_labels"`
	ShowSiteLabels  bool     `json:"show_site_labels"`
}

func toFilterStateDTO(s overlay.FilterState) filterStateDTO {
	return filterStateDTO{
		Categories:      sortedValues(s.Categories),
		Groups:          sortedValues(s.Groups),
		Tags:            sortedValues(s.Tags),
		SuppressHubWest: s.SuppressHubWest,
		SuppressHubEast: s.SuppressHubEast,
		Aggregated:      s.Aggregated,
		ShowLinkLabels:  s.ShowLinkLabels,
		ShowSiteLabels:  s.ShowSiteLabels,
	}
}

func (d filterStateDTO) toFilterState() overlay.FilterState {
	return overlay.FilterState{
		Categories:      overlay.NewSet(d.Categories...),
		Groups:          overlay.NewSet(d.Groups...),
		Tags:            overlay.NewSet(d.Tags...),
		SuppressHubWest: d.SuppressHubWest,
		SuppressHubEast: d.SuppressHubEast,
		Aggregated:      d.Aggregated,
		ShowLinkLabels:  d.ShowLinkLabels,
		ShowSiteLabels:  d.ShowSiteLabels,
	}
}

func (h *Handler) handleGetFilters(w http.ResponseWriter, r *http.Request) {
	state := h.filterState()
	h.writeJSON(w, http.StatusOK, map[string]any{
		"filters": toFilterStateDTO(state),
		"key":     state.Key(),
	})
}

func (h *Handler) handlePutFilters(w http.ResponseWriter, r *http.Request) {
	var req filterStateDTO
	if err := decodeJSONStrict(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "invalid json body", map[string]any{"error": err.Error()})
		return
	}

	state := req.toFilterState()
	h.setFilterState(state)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"filters": toFilterStateDTO(state),
		"key":     state.Key(),
	})
}

type catalogGroup struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type catalogHub struct {
	Name     string     `json:"name"`
	Position [2]float64 `json:"position"`
}

func (h *Handler) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	snap := h.ensureSnapshot(w)
	if snap == nil {
		return
	}

	groups := make([]catalogGroup, 0, len(classify.AllGroups()))
	for _, g := range classify.AllGroups() {
		groups = append(groups, catalogGroup{Name: g, Color: classify.GroupColor(g)})
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"snapshot_id": snap.ID,
		"categories":  emptyIfNil(snap.Categories),
		"tags":        emptyIfNil(snap.Tags),
		"groups":      groups,
		"hubs": []catalogHub{
			{Name: geo.HubWestName, Position: [2]float64(geo.HubWest)},
			{Name: geo.HubEastName, Position: [2]float64(geo.HubEast)},
		},
		"hub_epsilon": geo.HubEpsilon,
	})
}

func sortedValues(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func emptyIfNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
