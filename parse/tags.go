package parse

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/signadot/shape"
)

// Symbol is a YAML tag which builds a query value from the tagged value.
type Symbol interface {
	Name() string
	Description() string
	// Instance builds the query value. child is the decoded tagged value,
	// nil when absent.
	Instance(child any) (any, error)
}

var symbols = map[string]Symbol{}

func init() {
	for _, s := range []Symbol{anySym, optionalSym, varSym, skipSym, exprSym} {
		if err := Register(s); err != nil {
			panic(err)
		}
	}
}

// Register adds a tag. Tag names are given without the leading '!'.
func Register(s Symbol) error {
	if _, present := symbols[s.Name()]; present {
		return fmt.Errorf("tag %q already registered", s.Name())
	}
	symbols[s.Name()] = s
	return nil
}

func Lookup(name string) Symbol {
	return symbols[strings.TrimPrefix(name, "!")]
}

// Symbols returns the registered tags sorted by name.
func Symbols() []Symbol {
	res := make([]Symbol, 0, len(symbols))
	for _, s := range symbols {
		res = append(res, s)
	}
	slices.SortFunc(res, func(a, b Symbol) int { return strings.Compare(a.Name(), b.Name()) })
	return res
}

type symbol struct {
	name, desc string
	instance   func(child any) (any, error)
}

func (s symbol) Name() string                    { return s.name }
func (s symbol) Description() string             { return s.desc }
func (s symbol) Instance(child any) (any, error) { return s.instance(child) }
func (s symbol) String() string                  { return "!" + s.name }

var anySym = symbol{
	name: "any",
	desc: "match anything; a scalar or sequence value gives method arguments",
	instance: func(child any) (any, error) {
		switch x := child.(type) {
		case nil:
			return shape.Any(), nil
		case []any:
			return shape.Any(x...), nil
		case shape.Object:
			return nil, fmt.Errorf("%w: !any arguments must be a scalar or a sequence", ErrTag)
		default:
			return shape.Any(x), nil
		}
	},
}

var optionalSym = symbol{
	name: "optional",
	desc: "match present or absent; the value, if any, is the default",
	instance: func(child any) (any, error) {
		if child == nil {
			return shape.Optional(), nil
		}
		return shape.Optional(child), nil
	},
}

var varSym = symbol{
	name: "var",
	desc: "bind a variable; the value is its name",
	instance: func(child any) (any, error) {
		name, ok := child.(string)
		if !ok {
			return nil, fmt.Errorf("%w: !var needs a name, got %v", ErrTag, child)
		}
		return shape.Var(name)
	},
}

var skipSym = symbol{
	name: "skip",
	desc: "skip sequence elements; the value is the count",
	instance: func(child any) (any, error) {
		var n int64
		switch x := child.(type) {
		case int64:
			n = x
		case uint64:
			if x > math.MaxInt32 {
				return nil, fmt.Errorf("%w: skip count %d too large", shape.ErrMarker, x)
			}
			n = int64(x)
		case float64:
			if x != math.Trunc(x) {
				return nil, fmt.Errorf("%w: skip count must be an integer, got %v", shape.ErrMarker, x)
			}
			n = int64(x)
		default:
			return nil, fmt.Errorf("%w: !skip needs a count, got %v", ErrTag, child)
		}
		if n > math.MaxInt32 {
			return nil, fmt.Errorf("%w: skip count %d too large", shape.ErrMarker, n)
		}
		return shape.Skip(int(n))
	},
}

var exprSym = symbol{
	name: "expr",
	desc: "predicate expression over value and this",
	instance: func(child any) (any, error) {
		src, ok := child.(string)
		if !ok {
			return nil, fmt.Errorf("%w: !expr needs an expression string, got %v", ErrTag, child)
		}
		return shape.Expr(src)
	},
}
