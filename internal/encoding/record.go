package encoding

import (
	"encoding/json"
	"hash/fnv"
	"strconv"
	"strings"
)

// Record is a JSON-shaped document: string keys, nested maps, scalar
// leaves of loose type. Records come from JSON columns and request bodies,
// so values may be float64, int, string, bool, json.Number, or missing.
type Record map[string]any

// Sub returns the nested record under key, or nil if the key is absent or
// holds something other than a map. A nil Record is safe to call through,
// so deep lookups never panic.
func (r Record) Sub(key string) Record {
	if r == nil {
		return nil
	}
	switch v := r[key].(type) {
	case Record:
		return v
	case map[string]any:
		return v
	default:
		return nil
	}
}

// Float returns the value under key coerced to float64, or def when the
// key is absent or the value cannot be coerced.
func (r Record) Float(key string, def float64) float64 {
	if r == nil {
		return def
	}
	v, ok := r[key]
	if !ok {
		return def
	}
	return CoerceFloat(v, def)
}

// Str returns the value under key as a string. Non-string scalars are
// formatted; absent keys yield def.
func (r Record) Str(key, def string) string {
	if r == nil {
		return def
	}
	v, ok := r[key]
	if !ok || v == nil {
		return def
	}
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	case int:
		return strconv.Itoa(s)
	default:
		return def
	}
}

// Bool returns the value under key as a boolean. Numeric values count as
// true when nonzero; anything absent or unconvertible is false.
func (r Record) Bool(key string) bool {
	if r == nil {
		return false
	}
	switch v := r[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	case nil:
		return false
	default:
		return CoerceFloat(v, 0) != 0
	}
}

// CoerceFloat converts an arbitrary scalar to float64, returning def for
// nil or unconvertible values. It never panics.
func CoerceFloat(v any, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint64:
		return float64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return def
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return def
		}
		return f
	default:
		return def
	}
}

// CategoricalCode maps a string to an integer in [0, modulus) using an
// unsalted 64-bit FNV-1a hash over the UTF-8 bytes. Codes are persisted
// inside stored feature vectors, so the mapping must be identical across
// processes and runs; a process-seeded hash must never be substituted here.
func CategoricalCode(s string, modulus uint64) float64 {
	if modulus == 0 {
		return 0
	}
	h := fnv.New64a()
	h.Write([]byte(s))
	return float64(h.Sum64() % modulus)
}
