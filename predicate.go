package shape

import "reflect"

// Predicate decides whether a source value matches. value is the effective
// value of the property and this is the source object holding it, so a
// predicate can look at sibling properties. A truthy result is a match; with
// MatchTransform the result replaces the value.
type Predicate func(value, this any) (any, error)

// Test adapts a boolean function of the value alone.
func Test(f func(any) bool) Predicate {
	return func(v, _ any) (any, error) { return f(v), nil }
}

// Is adapts a typed boolean function. Values which cannot be converted to T
// do not match.
func Is[T any](f func(T) bool) Predicate {
	return func(v, _ any) (any, error) {
		t, ok := as[T](v)
		if !ok {
			return false, nil
		}
		return f(t), nil
	}
}

// Map adapts a typed function for transform queries. Values which cannot be
// converted to T produce Undefined.
func Map[T, R any](f func(T) R) Predicate {
	return func(v, _ any) (any, error) {
		t, ok := as[T](v)
		if !ok {
			return Undefined, nil
		}
		return f(t), nil
	}
}

func as[T any](v any) (T, bool) {
	var zero T
	if t, ok := v.(T); ok {
		return t, true
	}
	if v == nil || isUndefined(v) {
		return zero, false
	}
	cv, ok := convertArg(v, reflect.TypeFor[T]())
	if !ok {
		return zero, false
	}
	return cv.Interface().(T), true
}

// asPredicate recognizes the function shapes accepted as predicates in
// queries.
func asPredicate(q any) (Predicate, bool) {
	switch f := q.(type) {
	case Predicate:
		return f, true
	case func(any, any) (any, error):
		return f, true
	case func(any) bool:
		return Test(f), true
	case func(any) any:
		return func(v, _ any) (any, error) { return f(v), nil }, true
	case func(any, any) bool:
		return func(v, this any) (any, error) { return f(v, this), nil }, true
	case func(any, any) any:
		return func(v, this any) (any, error) { return f(v, this), nil }, true
	}
	return nil, false
}
