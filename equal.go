package shape

import (
	"math"
	"reflect"

	"github.com/google/go-cmp/cmp"
)

var equalOpts = []cmp.Option{
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

// Equal reports whether a and b are deeply equal. Sequences compare element
// by element in order, mappings by key set and values; Object and string-keyed
// maps compare alike. Numbers compare by value whatever their Go type.
func Equal(a, b any) bool {
	return cmp.Equal(normalize(a), normalize(b), equalOpts...)
}

// normalize rewrites v into a canonical form: int64 (or uint64 / float64 when
// the value does not fit) for numbers, []any for sequences and
// map[string]any for mappings.
func normalize(v any) any {
	switch x := v.(type) {
	case nil, undefined, string, bool:
		return x
	case Object:
		res := make(map[string]any, len(x))
		for _, f := range x {
			res[f.Key] = normalize(f.Value)
		}
		return res
	case map[string]any:
		res := make(map[string]any, len(x))
		for k, fv := range x {
			res[k] = normalize(fv)
		}
		return res
	case []any:
		res := make([]any, len(x))
		for i := range x {
			res[i] = normalize(x[i])
		}
		return res
	}
	rv := reflect.ValueOf(v)
	switch k := rv.Kind(); {
	case isIntKind(k):
		return rv.Int()
	case isUintKind(k):
		if u := rv.Uint(); u > math.MaxInt64 {
			return u
		}
		return int64(rv.Uint())
	case isFloatKind(k):
		f := rv.Float()
		if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			return int64(f)
		}
		return f
	case k == reflect.String:
		return rv.String()
	case k == reflect.Bool:
		return rv.Bool()
	case k == reflect.Slice, k == reflect.Array:
		res := make([]any, rv.Len())
		for i := range res {
			res[i] = normalize(rv.Index(i).Interface())
		}
		return res
	case k == reflect.Map && rv.Type().Key().Kind() == reflect.String:
		res := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			res[iter.Key().String()] = normalize(iter.Value().Interface())
		}
		return res
	case k == reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return normalize(rv.Elem().Interface())
	}
	return v
}
