package shape

import (
	"fmt"
	"strings"
)

type MarkerKind int

const (
	WildcardMarker MarkerKind = iota + 1
	OptionalMarker
	VariableMarker
	SkipMarker
)

func (k MarkerKind) String() string {
	switch k {
	case WildcardMarker:
		return "any"
	case OptionalMarker:
		return "optional"
	case VariableMarker:
		return "var"
	case SkipMarker:
		return "skip"
	default:
		return fmt.Sprintf("MarkerKind(%d)", int(k))
	}
}

// Marker is a query value which the matcher treats specially instead of
// comparing it literally. Markers are immutable and may be shared between
// queries and match attempts.
type Marker struct {
	kind   MarkerKind
	args   []any
	def    any
	hasDef bool
	name   string
	count  int
}

// Any returns a wildcard marker. It matches any value; when the source value
// is callable it is first invoked with args.
func Any(args ...any) Marker {
	return Marker{kind: WildcardMarker, args: append([]any(nil), args...)}
}

// Optional returns a marker which matches whether or not the source property
// is present. An absent property takes the default, if one is given, and is
// otherwise left out of the result.
func Optional(def ...any) Marker {
	m := Marker{kind: OptionalMarker}
	switch len(def) {
	case 0:
	case 1:
		m.def = def[0]
		m.hasDef = true
	default:
		panic(fmt.Sprintf("shape.Optional: at most one default, got %d", len(def)))
	}
	return m
}

// Var returns a variable marker. The first occurrence of name in a match
// attempt binds the value found there; later occurrences must be Equal to it.
func Var(name string) (Marker, error) {
	if name == "" {
		return Marker{}, fmt.Errorf("%w: variable name must not be empty", ErrMarker)
	}
	return Marker{kind: VariableMarker, name: name}, nil
}

func MustVar(name string) Marker {
	m, err := Var(name)
	if err != nil {
		panic(err)
	}
	return m
}

// Skip returns a marker which, inside a sequence query, consumes n source
// elements without contributing to the result.
func Skip(n int) (Marker, error) {
	if n < 0 {
		return Marker{}, fmt.Errorf("%w: skip count must be non-negative, got %d", ErrMarker, n)
	}
	return Marker{kind: SkipMarker, count: n}, nil
}

func MustSkip(n int) Marker {
	m, err := Skip(n)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Marker) Kind() MarkerKind { return m.kind }

// Args returns a copy of the wildcard invocation arguments.
func (m Marker) Args() []any { return append([]any(nil), m.args...) }

func (m Marker) Default() (any, bool) { return m.def, m.hasDef }

func (m Marker) Name() string { return m.name }

func (m Marker) Count() int { return m.count }

func (m Marker) String() string {
	switch m.kind {
	case WildcardMarker:
		if len(m.args) == 0 {
			return "!any"
		}
		parts := make([]string, len(m.args))
		for i, a := range m.args {
			parts[i] = fmt.Sprintf("%v", a)
		}
		return "!any(" + strings.Join(parts, ",") + ")"
	case OptionalMarker:
		if m.hasDef {
			return fmt.Sprintf("!optional(%v)", m.def)
		}
		return "!optional"
	case VariableMarker:
		return "!var(" + m.name + ")"
	case SkipMarker:
		return fmt.Sprintf("!skip(%d)", m.count)
	}
	return m.kind.String()
}
