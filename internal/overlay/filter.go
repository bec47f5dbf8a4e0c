package overlay

// FilterState is the full set of visibility toggles the operator controls.
// It is an explicit value passed into every predicate call; the engine keeps
// no ambient filter globals. Any combination is valid, including everything
// off, which yields an empty visible set.
type FilterState struct {
	Categories map[string]struct{}
	Groups     map[string]struct{}
	Tags       map[string]struct{}

	SuppressHubWest bool
	SuppressHubEast bool

	Aggregated     bool
	ShowLinkLabels bool
	ShowSiteLabels bool
}

// DefaultFilterState starts empty: nothing is visible until the operator
// opts in. This is a product decision owned here so it stays one line to
// flip.
func DefaultFilterState() FilterState {
	return FilterState{
		Categories: map[string]struct{}{},
		Groups:     map[string]struct{}{},
		Tags:       map[string]struct{}{},
	}
}

// NewSet builds a membership set from a value list, for tests and the HTTP
// boundary.
func NewSet(values ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}

// Clone returns an independent copy; the HTTP holder hands clones out so
// readers never alias the mutable state.
func (f FilterState) Clone() FilterState {
	out := f
	out.Categories = cloneSet(f.Categories)
	out.Groups = cloneSet(f.Groups)
	out.Tags = cloneSet(f.Tags)
	return out
}

func cloneSet(in map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for k := range in {
		out[k] = struct{}{}
	}
	return out
}
