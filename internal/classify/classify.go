// Package classify derives filterable categories from raw source records:
// link category normalization, site group lookup, and tag extraction.
package classify

import (
	"strings"

	"linkmap/core-go/internal/record"
)

// Normalized link categories. The empty string is the "unclassified"
// category: it is a valid classification that matches no real filter value.
const (
	CategoryFiber        = "F"
	CategoryCopper       = "C"
	CategoryRF           = "R"
	CategoryTunnel       = "N"
	CategoryUnclassified = ""
)

var allCategories = []string{
	CategoryFiber,
	CategoryCopper,
	CategoryRF,
	CategoryTunnel,
}

// AllCategories returns the known category set, for legend building.
func AllCategories() []string {
	out := make([]string, len(allCategories))
	copy(out, allCategories)
	return out
}

// legacyCategorySpellings remaps historical long-form type values to their
// canonical short form. Only one spelling survives in the wild.
var legacyCategorySpellings = map[string]string{
	"N_TYPE": CategoryTunnel,
}

// LinkCategory normalizes a link record's type field: trim, upper-case,
// remap the legacy spelling, and pass everything else through verbatim.
// Missing or empty fields classify as CategoryUnclassified.
func LinkCategory(rec record.Raw) string {
	c := strings.ToUpper(strings.TrimSpace(record.String(rec, "linkType")))
	if canonical, ok := legacyCategorySpellings[c]; ok {
		return canonical
	}
	return c
}

// TagList extracts a link record's tag array. Tags are upper-case in the
// source; trim and upper-case anyway so hand-edited records still match.
// A missing or malformed tag field yields nil, never an error.
func TagList(rec record.Raw) []string {
	raw := record.Strings(rec, "tags")
	if len(raw) == 0 {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}
