// Package record reads the loosely-shaped site and link source records.
//
// The two source collections have accumulated three generations of field
// spellings, so every read goes through an ordered list of accessor
// strategies instead of struct tags: direct field first, then the nested
// "properties" sub-object, then the legacy alias spelling.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
)

// Raw is one undecoded source record.
type Raw = map[string]any

// legacyAliases maps a current field name to its historical spelling.
var legacyAliases = map[string]string{
	"linkType": "link_type",
	"position": "coordinates",
}

type strategy func(rec Raw, field string) (any, bool)

// Strategies are tried in order; the first hit wins.
var strategies = []strategy{
	func(rec Raw, field string) (any, bool) {
		v, ok := rec[field]
		return v, ok
	},
	func(rec Raw, field string) (any, bool) {
		props, ok := rec["properties"].(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok := props[field]
		return v, ok
	},
	func(rec Raw, field string) (any, bool) {
		alias, ok := legacyAliases[field]
		if !ok {
			return nil, false
		}
		v, ok := rec[alias]
		return v, ok
	},
}

// Field returns the first value found for field across all strategies.
func Field(rec Raw, field string) (any, bool) {
	for _, s := range strategies {
		if v, ok := s(rec, field); ok {
			return v, true
		}
	}
	return nil, false
}

// String reads field as a string; missing or non-string yields "".
func String(rec Raw, field string) string {
	v, ok := Field(rec, field)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Name reads an endpoint reference, which is either a plain string name or
// an embedded sub-object carrying a "name" field.
func Name(rec Raw, field string) string {
	v, ok := Field(rec, field)
	if !ok {
		return ""
	}
	switch e := v.(type) {
	case string:
		return e
	case map[string]any:
		s, _ := e["name"].(string)
		return s
	default:
		return ""
	}
}

// Strings reads field as a list of strings. Anything that is not a string
// array (missing, scalar, mixed array) degrades to the valid entries or nil;
// it never errors.
func Strings(rec Raw, field string) []string {
	v, ok := Field(rec, field)
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case []string:
		out := make([]string, len(list))
		copy(out, list)
		return out
	case []any:
		var out []string
		for _, entry := range list {
			if s, ok := entry.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Position reads field as a two-element [lon, lat] coordinate.
func Position(rec Raw, field string) (orb.Point, bool) {
	v, ok := Field(rec, field)
	if !ok {
		return orb.Point{}, false
	}
	list, ok := v.([]any)
	if !ok || len(list) < 2 {
		return orb.Point{}, false
	}
	lon, okLon := asFloat(list[0])
	lat, okLat := asFloat(list[1])
	if !okLon || !okLat {
		return orb.Point{}, false
	}
	return orb.Point{lon, lat}, true
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

type collectionWrapper struct {
	Name     string `json:"name"`
	Features []Raw  `json:"features"`
}

// DecodeCollection accepts either a bare JSON array of records or a
// named-collection wrapper exposing a "features" list.
func DecodeCollection(data []byte) ([]Raw, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty collection document")
	}

	if trimmed[0] == '[' {
		var out []Raw
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, fmt.Errorf("decode record array: %w", err)
		}
		return out, nil
	}

	var wrapper collectionWrapper
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, fmt.Errorf("decode record collection: %w", err)
	}
	if wrapper.Features == nil {
		return []Raw{}, nil
	}
	return wrapper.Features, nil
}
