// Package shape matches Go values against structural queries.
//
// # Overview
//
// A query describes the shape a source value should have: literal values,
// nested mappings and sequences, predicate functions and markers. Match
// decides whether a source satisfies a query and, if so, builds a result which
// mirrors the query, holding only the properties the query names.
//
//	res, ok, err := shape.Match(
//	    map[string]any{"name": shape.Any(), "age": shape.Is(func(n int) bool { return n >= 21 })},
//	    person)
//
// On no match, ok is false and res is nil. No match is not an error.
//
// # Query values
//
//   - Literals are compared with Equal. Numbers compare by value across Go
//     numeric types.
//   - Mappings (string-keyed maps, or Object to keep key order) match each named
//     property of a mapping-shaped source: a map, a struct, a Getter. Properties
//     the query does not name are ignored and left out of the result.
//   - Sequences (slices, arrays) match element by element and the source must
//     have exactly as many elements as the query consumes.
//   - Predicates (see Predicate) receive the value and the enclosing source
//     object. A falsy result fails the whole match. With MatchTransform the
//     predicate's result becomes the property's result.
//
// # Markers
//
//   - Any(args...) matches anything, invoking a callable value with args.
//   - Optional(def) matches present and absent properties alike, using def for
//     absent ones.
//   - Var(name) binds the first value seen under name and requires every other
//     occurrence within the same match to be Equal to it.
//   - Skip(n) consumes n elements of a sequence.
//
// # Methods
//
// Source properties may be functions, including struct methods found by
// name. They are invoked when matched: with no arguments for nested queries,
// predicates and Any, with the Any arguments, or with a literal query value as
// the sole argument. In that last case the method's return value is the
// result, and an undefined return (see Undefined) fails the match:
//
//	func (p Person) Favorite(n int) (int, bool)
//
//	shape.Match(map[string]any{"favorite": 7}, person)
//
// # Reduce
//
// Reduce matches every element of a slice independently and keeps the
// results of the elements which match.
//
// # Related Packages
//
//   - github.com/signadot/shape/parse - queries and documents from YAML text
//   - github.com/signadot/shape/encode - result output
package shape
