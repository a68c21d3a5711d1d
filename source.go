package shape

import (
	"math"
	"reflect"
	"strings"

	"github.com/signadot/shape/debug"
)

var errorType = reflect.TypeFor[error]()

// lookup resolves name on a mapping-shaped source. The second result is false
// when src is not mapping-shaped at all; an absent property on a mapping is
// Undefined.
func lookup(src any, name string) (any, bool) {
	switch x := src.(type) {
	case nil, undefined:
		return Undefined, false
	case map[string]any:
		if v, ok := x[name]; ok {
			return v, true
		}
		return Undefined, true
	case Object:
		if v, ok := x.Get(name); ok {
			return v, true
		}
		return Undefined, true
	case Getter:
		if v, ok := x.Get(name); ok {
			return v, true
		}
		if m, ok := method(reflect.ValueOf(src), name); ok {
			return m, true
		}
		return Undefined, true
	}
	orig := reflect.ValueOf(src)
	rv := orig
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Undefined, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		kt := rv.Type().Key()
		if kt.Kind() != reflect.String {
			return Undefined, false
		}
		if mv := rv.MapIndex(reflect.ValueOf(name).Convert(kt)); mv.IsValid() {
			return mv.Interface(), true
		}
		if m, ok := method(orig, name); ok {
			return m, true
		}
		return Undefined, true
	case reflect.Struct:
		if v, ok := structField(rv, name, false); ok {
			return v, true
		}
		if m, ok := method(orig, name); ok {
			return m, true
		}
		if v, ok := structField(rv, name, true); ok {
			return v, true
		}
		if m, ok := foldMethod(orig, name); ok {
			return m, true
		}
		return Undefined, true
	}
	return Undefined, false
}

// structField finds an exported field by json tag or name, or with fold set,
// by case-insensitive name.
func structField(rv reflect.Value, name string, fold bool) (any, bool) {
	for _, f := range reflect.VisibleFields(rv.Type()) {
		if !f.IsExported() {
			continue
		}
		tagName, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if tagName == "-" {
			continue
		}
		switch {
		case fold && strings.EqualFold(f.Name, name):
		case !fold && (tagName == name || f.Name == name):
		default:
			continue
		}
		fv, err := rv.FieldByIndexErr(f.Index)
		if err != nil {
			return Undefined, true
		}
		return fv.Interface(), true
	}
	return nil, false
}

// methodSet returns a value whose method set includes pointer receiver
// methods of v.
func methodSet(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		return v
	}
	if v.CanAddr() {
		return v.Addr()
	}
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	return p
}

func method(v reflect.Value, name string) (any, bool) {
	if !v.IsValid() {
		return nil, false
	}
	m := methodSet(v).MethodByName(name)
	if !m.IsValid() {
		return nil, false
	}
	return m.Interface(), true
}

func foldMethod(v reflect.Value, name string) (any, bool) {
	if !v.IsValid() {
		return nil, false
	}
	ms := methodSet(v)
	t := ms.Type()
	for i := range t.NumMethod() {
		if strings.EqualFold(t.Method(i).Name, name) {
			return ms.Method(i).Interface(), true
		}
	}
	return nil, false
}

// elements returns the elements of a sequence-shaped source.
func elements(src any) ([]any, bool) {
	switch x := src.(type) {
	case nil, undefined, Object, string:
		return nil, false
	case []any:
		return x, true
	}
	rv := reflect.ValueOf(src)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		res := make([]any, rv.Len())
		for i := range res {
			res[i] = rv.Index(i).Interface()
		}
		return res, true
	}
	return nil, false
}

func callable(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && !rv.IsNil()
}

// invoke calls fn with args. Missing parameters are zero, extra arguments to
// non-variadic functions are dropped. A trailing error result is returned as
// the error and a false trailing bool of a (value, ok) pair yields Undefined,
// as does an argument which cannot be converted to its parameter type.
func invoke(fn any, args ...any) (any, error) {
	rv := reflect.ValueOf(fn)
	ft := rv.Type()
	n := ft.NumIn()
	in := make([]reflect.Value, 0, max(n, len(args)))
	for i := range n {
		if ft.IsVariadic() && i == n-1 {
			et := ft.In(i).Elem()
			for _, a := range args[min(i, len(args)):] {
				av, ok := convertArg(a, et)
				if !ok {
					return badArg(fn, a, et)
				}
				in = append(in, av)
			}
			break
		}
		pt := ft.In(i)
		if i >= len(args) {
			in = append(in, reflect.Zero(pt))
			continue
		}
		av, ok := convertArg(args[i], pt)
		if !ok {
			return badArg(fn, args[i], pt)
		}
		in = append(in, av)
	}
	out := rv.Call(in)
	res, err := results(out)
	if debug.Invoke() {
		debug.Logf("invoke %T with %v -> %v (err %v)\n", fn, args, res, err)
	}
	return res, err
}

func badArg(fn, a any, t reflect.Type) (any, error) {
	if debug.Invoke() {
		debug.Logf("invoke %T: argument %v (%T) does not fit %s\n", fn, a, a, t)
	}
	return Undefined, nil
}

func results(out []reflect.Value) (any, error) {
	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		if !out[n-1].IsNil() {
			return Undefined, out[n-1].Interface().(error)
		}
		out = out[:n-1]
	}
	if len(out) == 2 && out[1].Kind() == reflect.Bool {
		if !out[1].Bool() {
			return Undefined, nil
		}
		out = out[:1]
	}
	if len(out) == 0 {
		return Undefined, nil
	}
	return out[0].Interface(), nil
}

func convertArg(a any, t reflect.Type) (reflect.Value, bool) {
	if a == nil || isUndefined(a) {
		return reflect.Zero(t), true
	}
	av := reflect.ValueOf(a)
	if av.Type().AssignableTo(t) {
		return av, true
	}
	switch {
	case isNumberKind(av.Kind()) && isNumberKind(t.Kind()):
		return convertNumber(av, t)
	case av.Kind() == reflect.String && t.Kind() == reflect.String:
		return av.Convert(t), true
	}
	return reflect.Value{}, false
}

// convertNumber converts av to the numeric type t when it can do so without
// losing the value.
func convertNumber(av reflect.Value, t reflect.Type) (reflect.Value, bool) {
	probe := reflect.New(t).Elem()
	switch {
	case isIntKind(t.Kind()):
		i, ok := asInt64(av)
		if !ok || probe.OverflowInt(i) {
			return reflect.Value{}, false
		}
		probe.SetInt(i)
	case isUintKind(t.Kind()):
		u, ok := asUint64(av)
		if !ok || probe.OverflowUint(u) {
			return reflect.Value{}, false
		}
		probe.SetUint(u)
	default:
		f := asFloat64(av)
		if probe.OverflowFloat(f) {
			return reflect.Value{}, false
		}
		probe.SetFloat(f)
	}
	return probe, true
}

func isIntKind(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUintKind(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isFloatKind(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isNumberKind(k reflect.Kind) bool {
	return isIntKind(k) || isUintKind(k) || isFloatKind(k)
}

func asInt64(v reflect.Value) (int64, bool) {
	switch {
	case isIntKind(v.Kind()):
		return v.Int(), true
	case isUintKind(v.Kind()):
		u := v.Uint()
		return int64(u), u <= math.MaxInt64
	default:
		f := v.Float()
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	}
}

func asUint64(v reflect.Value) (uint64, bool) {
	switch {
	case isIntKind(v.Kind()):
		i := v.Int()
		return uint64(i), i >= 0
	case isUintKind(v.Kind()):
		return v.Uint(), true
	default:
		f := v.Float()
		if f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 {
			return 0, false
		}
		return uint64(f), true
	}
}

func asFloat64(v reflect.Value) float64 {
	switch {
	case isIntKind(v.Kind()):
		return float64(v.Int())
	case isUintKind(v.Kind()):
		return float64(v.Uint())
	default:
		return v.Float()
	}
}

// isMapping reports whether properties can be looked up on src.
func isMapping(src any) bool {
	switch src.(type) {
	case nil, undefined:
		return false
	case map[string]any, Object, Getter:
		return true
	}
	rv := reflect.ValueOf(src)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		return rv.Type().Key().Kind() == reflect.String
	case reflect.Struct:
		return true
	}
	return false
}
