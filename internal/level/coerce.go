package level

import (
	"math"
	"strconv"
	"strings"

	"github.com/Larleeloo/DND-Pixel-Art-Game1-sub006/internal/document"
)

// toFloat accepts a number, or a string holding a token the parser would
// accept as a number; anything else is 0.
func toFloat(v document.Value) float64 {
	switch v.Kind() {
	case document.NumberKind:
		n, _ := v.AsNumber()
		return n
	case document.StringKind:
		s, _ := v.AsString()
		f, ok := document.NumberToken(strings.TrimSpace(s))
		if !ok || math.IsInf(f, 0) {
			return 0
		}
		return f
	default:
		return 0
	}
}

// toInt is toFloat truncated toward zero.
func toInt(v document.Value) int {
	f := toFloat(v)
	if f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0
	}
	return int(f)
}

// toBool accepts a boolean or the exact strings "true" and "false"; anything
// else is false.
func toBool(v document.Value) bool {
	switch v.Kind() {
	case document.BoolKind:
		b, _ := v.AsBool()
		return b
	case document.StringKind:
		s, _ := v.AsString()
		return s == "true"
	default:
		return false
	}
}

// toString returns strings as-is and renders numbers and booleans; null,
// objects and arrays become "".
func toString(v document.Value) string {
	switch v.Kind() {
	case document.StringKind:
		s, _ := v.AsString()
		return s
	case document.NumberKind:
		n, _ := v.AsNumber()
		return strconv.FormatFloat(n, 'f', -1, 64)
	case document.BoolKind:
		b, _ := v.AsBool()
		return strconv.FormatBool(b)
	default:
		return ""
	}
}

// toStrings converts an array of scalars to strings. A single string is
// treated as a comma-separated list.
func toStrings(v document.Value) []string {
	out := []string{}
	switch v.Kind() {
	case document.ArrayKind:
		arr, _ := v.AsArray()
		for _, e := range arr {
			if e.Kind() == document.ObjectKind || e.Kind() == document.ArrayKind || e.IsNull() {
				continue
			}
			out = append(out, toString(e))
		}
	case document.StringKind:
		s, _ := v.AsString()
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// fields reads typed values out of one document object, falling back to the
// caller's default when a key is absent.
type fields struct {
	obj *document.Object
}

func (f fields) has(key string) bool { return f.obj.Has(key) }

func (f fields) getInt(key string, def int) int {
	if v, ok := f.obj.Get(key); ok {
		return toInt(v)
	}
	return def
}

func (f fields) getFloat(key string, def float64) float64 {
	if v, ok := f.obj.Get(key); ok {
		return toFloat(v)
	}
	return def
}

func (f fields) getBool(key string, def bool) bool {
	if v, ok := f.obj.Get(key); ok {
		return toBool(v)
	}
	return def
}

func (f fields) getString(key string, def string) string {
	if v, ok := f.obj.Get(key); ok {
		return toString(v)
	}
	return def
}

func (f fields) getStrings(key string, def []string) []string {
	if v, ok := f.obj.Get(key); ok {
		return toStrings(v)
	}
	return def
}
