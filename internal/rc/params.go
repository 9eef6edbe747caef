// Package rc models matplotlib-style rcParams mappings: merge overlays,
// diff against documented defaults, and encode .mplstyle files.
//
// All operations allocate fresh maps; a Params value handed to a caller is
// never mutated by this package.
package rc

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
)

// Params is a style mapping of rcParam key to value. Values are plain
// JSON-able types: string, bool, float64, []any, Cycle, or nil.
type Params map[string]any

// Cycle is the axes.prop_cycle value: a property key with its cycled
// values. It serializes the way the JSON wire format expects.
type Cycle struct {
	Key    string   `json:"key"`
	Values []string `json:"values"`
}

// Clone returns a shallow copy with its own map.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge layers overlay on top of p, override winning on key collision.
// Neither input is mutated.
func (p Params) Merge(overlay Params) Params {
	out := p.Clone()
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

// Diff returns the subset of p whose keys exist in base with a different
// value. Keys absent from base are not part of the diff.
func (p Params) Diff(base Params) Params {
	out := make(Params)
	for k, v := range p {
		bv, ok := base[k]
		if !ok {
			continue
		}
		if !valueEqual(v, bv) {
			out[k] = v
		}
	}
	return out
}

// Keys returns the sorted key list.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func valueEqual(a, b any) bool {
	return reflect.DeepEqual(normalizeValue(a), normalizeValue(b))
}

// Normalize canonicalizes a mapping decoded from JSON or TOML: numbers
// become float64, nested slices are normalized, and the prop_cycle wire
// shape becomes a Cycle.
func Normalize(p Params) Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case float32:
		return float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return t.String()
		}
		return f
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeValue(e)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out
	case Cycle:
		return t
	case map[string]any:
		if c, ok := cycleFromMap(t); ok {
			return c
		}
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalizeValue(e)
		}
		return out
	default:
		return v
	}
}

// cycleFromMap recognizes the serialized Cycle shape.
func cycleFromMap(m map[string]any) (Cycle, bool) {
	if len(m) != 2 {
		return Cycle{}, false
	}
	key, ok := m["key"].(string)
	if !ok {
		return Cycle{}, false
	}
	raw, ok := m["values"].([]any)
	if !ok {
		return Cycle{}, false
	}
	values := make([]string, len(raw))
	for i, e := range raw {
		s, ok := e.(string)
		if !ok {
			return Cycle{}, false
		}
		values[i] = s
	}
	return Cycle{Key: key, Values: values}, true
}

// MarshalJSON keeps Params output deterministic. encoding/json already
// sorts map keys, so this exists only to document the guarantee callers
// rely on (byte-identical serialization for identical inputs).
func (p Params) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any(p))
}

// UnmarshalJSON decodes and normalizes in one step.
func (p *Params) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode rc params: %w", err)
	}
	*p = Normalize(raw)
	return nil
}
