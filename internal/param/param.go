// Package param models effect parameter sets and their user-facing schema.
//
// Every effect entry point merges caller overrides over its full defaults
// with [Merge]; callers may pass a partial set, or nil.
package param

import (
	"math"
	"sort"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// Set maps a parameter key to a number or a color string.
type Set map[string]any

// Kind distinguishes numeric parameters from color parameters.
type Kind int

const (
	Number Kind = iota
	Color
)

func (k Kind) String() string {
	if k == Color {
		return "color"
	}
	return "number"
}

// Descriptor is one user-facing schema entry.
type Descriptor struct {
	Key     string
	Label   string
	Kind    Kind
	Min     float64
	Max     float64
	Step    float64
	Default any
}

// Merge returns defaults overlaid with overrides. An override whose kind
// does not match the default's (a string for a numeric key, say) is
// dropped; keys unknown to defaults pass through untouched.
func Merge(defaults, overrides Set) Set {
	out := make(Set, len(defaults)+len(overrides))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range overrides {
		if v == nil {
			continue
		}
		def, known := defaults[k]
		if known && kindOf(def) != kindOf(v) {
			continue
		}
		if f, ok := toFloat(v); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			continue
		}
		out[k] = v
	}
	return out
}

// Float returns a numeric value, or 0 when the key is absent or not numeric.
func (s Set) Float(key string) float64 {
	f, _ := toFloat(s[key])
	return f
}

// Int returns a numeric value rounded to the nearest integer, never below lo.
func (s Set) Int(key string, lo int) int {
	n := int(math.Round(s.Float(key)))
	if n < lo {
		return lo
	}
	return n
}

// Range reads a min/max pair and returns it in ascending order regardless
// of how the caller supplied it.
func (s Set) Range(minKey, maxKey string) (lo, hi float64) {
	a, b := s.Float(minKey), s.Float(maxKey)
	return math.Min(a, b), math.Max(a, b)
}

// Color parses a hex color value. Unparsable values fall back to fallback.
func (s Set) Color(key string, fallback colorful.Color) colorful.Color {
	str, ok := s[key].(string)
	if !ok {
		return fallback
	}
	c, err := colorful.Hex(str)
	if err != nil {
		return fallback
	}
	return c
}

// Hex returns the color value normalized to #rrggbb.
func (s Set) Hex(key string, fallback colorful.Color) string {
	return s.Color(key, fallback).Hex()
}

// Keys returns the set's keys sorted.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone copies the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Normalize converts every numeric value to float64 so a set can be
// serialized and compared without int/float drift.
func (s Set) Normalize() Set {
	out := make(Set, len(s))
	for k, v := range s {
		if f, ok := toFloat(v); ok {
			out[k] = f
			continue
		}
		out[k] = v
	}
	return out
}

// Sanitize clamps every numeric key described by the schema into its
// [Min, Max] range and snaps it to Step. Keys outside the schema are left
// alone.
func Sanitize(schema []Descriptor, s Set) Set {
	out := s.Clone()
	for _, d := range schema {
		if d.Kind != Number {
			continue
		}
		v, ok := toFloat(out[d.Key])
		if !ok {
			continue
		}
		out[d.Key] = d.Clamp(v)
	}
	return out
}

// Clamp bounds v to the descriptor range, snapping to Step from Min.
func (d Descriptor) Clamp(v float64) float64 {
	lo, hi := math.Min(d.Min, d.Max), math.Max(d.Min, d.Max)
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	if d.Step > 0 {
		v = lo + math.Round((v-lo)/d.Step)*d.Step
		v = math.Min(v, hi)
		// trim float noise from repeated step arithmetic
		v, _ = strconv.ParseFloat(strconv.FormatFloat(v, 'f', 6, 64), 64)
	}
	return v
}

func kindOf(v any) Kind {
	if _, ok := v.(string); ok {
		return Color
	}
	return Number
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
