package shape

import "github.com/signadot/shape/debug"

// Bindings maps variable names to the value each was first bound to within
// one match attempt.
type Bindings map[string]any

// Unify binds v to name if name is unbound and otherwise reports whether v is
// Equal to the bound value. A bound name is never rebound.
func (b Bindings) Unify(name string, v any) bool {
	bound, ok := b[name]
	if !ok {
		if debug.Bind() {
			debug.Logf("bind %s = %v\n", name, v)
		}
		b[name] = v
		return true
	}
	eq := Equal(bound, v)
	if debug.Bind() {
		debug.Logf("unify %s: bound %v, got %v: %t\n", name, bound, v, eq)
	}
	return eq
}

func (b Bindings) Lookup(name string) (any, bool) {
	v, ok := b[name]
	return v, ok
}
