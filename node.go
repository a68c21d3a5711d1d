package shape

import (
	"cmp"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"

	"github.com/hashicorp/go-multierror"
)

type Kind int

const (
	LiteralKind Kind = iota
	ObjectKind
	ArrayKind
	PredicateKind
	MarkKind
)

func (k Kind) String() string {
	switch k {
	case LiteralKind:
		return "literal"
	case ObjectKind:
		return "object"
	case ArrayKind:
		return "array"
	case PredicateKind:
		return "predicate"
	case MarkKind:
		return "marker"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Node is a compiled query node. Which fields are set depends on Kind:
// Literal for LiteralKind, Fields and Values for ObjectKind, Values for
// ArrayKind, Pred for PredicateKind and Marker for MarkKind.
type Node struct {
	Kind Kind
	Path string

	Literal any
	Fields  []string
	Values  []*Node
	Ordered bool
	Pred    Predicate
	Marker  Marker
}

// Query is a compiled query. It is immutable and may be used for any number
// of match attempts, concurrently.
type Query struct {
	root *Node
}

func (q *Query) Root() *Node { return q.root }

// Compile checks query and turns it into a Query. query is plain data:
// string-keyed maps or Objects for mappings, slices or arrays for sequences,
// predicate functions, Markers, and anything else as a literal. Every problem
// found is reported, wrapped with ErrQuery.
func Compile(query any) (*Query, error) {
	if q, ok := query.(*Query); ok {
		return q, nil
	}
	c := &compiler{}
	root := c.compile(query, "$", false)
	if err := c.errs.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return &Query{root: root}, nil
}

type compiler struct {
	errs *multierror.Error
}

func (c *compiler) errorf(path, format string, args ...any) {
	c.errs = multierror.Append(c.errs, fmt.Errorf("at %s: "+format, append([]any{path}, args...)...))
}

func (c *compiler) compile(q any, path string, inSeq bool) *Node {
	switch x := q.(type) {
	case nil:
		return &Node{Kind: LiteralKind, Path: path}
	case *Query:
		return x.root
	case *Marker:
		if x == nil {
			return &Node{Kind: LiteralKind, Path: path}
		}
		return c.marker(*x, path, inSeq)
	case Marker:
		return c.marker(x, path, inSeq)
	case Object:
		n := &Node{Kind: ObjectKind, Path: path, Ordered: true}
		seen := make(map[string]bool, len(x))
		for _, f := range x {
			if seen[f.Key] {
				c.errorf(path, "duplicate key %q", f.Key)
				continue
			}
			seen[f.Key] = true
			n.Fields = append(n.Fields, f.Key)
			n.Values = append(n.Values, c.compile(f.Value, path+"."+f.Key, false))
		}
		return n
	case map[string]any:
		n := &Node{Kind: ObjectKind, Path: path}
		n.Fields = slices.Sorted(maps.Keys(x))
		for _, k := range n.Fields {
			n.Values = append(n.Values, c.compile(x[k], path+"."+k, false))
		}
		return n
	case []any:
		return c.array(x, path)
	}
	if p, ok := asPredicate(q); ok {
		return &Node{Kind: PredicateKind, Path: path, Pred: p}
	}
	rv := reflect.ValueOf(q)
	switch rv.Kind() {
	case reflect.Func:
		c.errorf(path, "unsupported predicate type %T", q)
		return &Node{Kind: LiteralKind, Path: path, Literal: q}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		n := &Node{Kind: ObjectKind, Path: path}
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return cmp.Compare(a.String(), b.String())
		})
		for _, k := range keys {
			n.Fields = append(n.Fields, k.String())
			n.Values = append(n.Values, c.compile(rv.MapIndex(k).Interface(), path+"."+k.String(), false))
		}
		return n
	case reflect.Slice, reflect.Array:
		vals, _ := elements(q)
		return c.array(vals, path)
	}
	return &Node{Kind: LiteralKind, Path: path, Literal: q}
}

func (c *compiler) array(vals []any, path string) *Node {
	n := &Node{Kind: ArrayKind, Path: path, Values: make([]*Node, len(vals))}
	for i, v := range vals {
		n.Values[i] = c.compile(v, path+"["+strconv.Itoa(i)+"]", true)
	}
	return n
}

func (c *compiler) marker(m Marker, path string, inSeq bool) *Node {
	switch {
	case m.kind == 0:
		c.errorf(path, "zero Marker, use a marker constructor")
	case m.kind == SkipMarker && !inSeq:
		c.errorf(path, "%s outside of a sequence", m)
	}
	return &Node{Kind: MarkKind, Path: path, Marker: m}
}
