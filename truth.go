package shape

import (
	"math"
	"reflect"
)

// Truth reports whether a predicate result counts as a match. nil, Undefined,
// false, zero numbers, NaN, the empty string and nil pointers, maps, slices,
// funcs and channels are false; everything else, including empty but non-nil
// collections, is true.
func Truth(v any) bool {
	switch x := v.(type) {
	case nil, undefined:
		return false
	case bool:
		return x
	case string:
		return x != ""
	}
	rv := reflect.ValueOf(v)
	switch k := rv.Kind(); {
	case k == reflect.Bool:
		return rv.Bool()
	case k == reflect.String:
		return rv.Len() != 0
	case isIntKind(k):
		return rv.Int() != 0
	case isUintKind(k):
		return rv.Uint() != 0
	case isFloatKind(k):
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case k == reflect.Pointer, k == reflect.Map, k == reflect.Slice,
		k == reflect.Func, k == reflect.Chan, k == reflect.Interface:
		return !rv.IsNil()
	}
	return true
}
