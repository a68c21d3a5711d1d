package parse

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/hashicorp/go-multierror"

	"github.com/signadot/shape"
	"github.com/signadot/shape/debug"
)

// Query parses a single YAML document into a query value. Mappings become
// shape.Object so field order is kept, and tags registered with Register
// become markers or predicates. A tag's value starts on the tag's line; a tag
// followed by nothing, a ',' or a comment has a null value, as does one
// followed by a space and ']' or '}'.
func Query(data []byte) (any, error) {
	f, err := parser.Parse(queryTokens(data), 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	var docs []*ast.DocumentNode
	for _, doc := range f.Docs {
		if doc != nil && doc.Body != nil {
			docs = append(docs, doc)
		}
	}
	if len(docs) != 1 {
		return nil, fmt.Errorf("%w: expected 1 query, got %d", ErrDocs, len(docs))
	}
	c := &converter{anchors: map[string]any{}}
	res := c.node(docs[0].Body)
	if c.errs != nil {
		return nil, c.errs.ErrorOrNil()
	}
	if debug.Parse() {
		debug.Logf("parsed query %v\n", res)
	}
	return res, nil
}

// Docs decodes each document of a YAML or JSON stream. Mappings become
// shape.Object. Tags have no query meaning here.
func Docs(data []byte) ([]any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data), yaml.UseOrderedMap())
	var res []any
	for {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: document %d: %w", ErrParse, len(res), err)
		}
		res = append(res, fromYAML(v))
	}
}

func fromYAML(v any) any {
	switch x := v.(type) {
	case yaml.MapSlice:
		obj := make(shape.Object, 0, len(x))
		for _, item := range x {
			obj = append(obj, shape.Field{Key: keyString(item.Key), Value: fromYAML(item.Value)})
		}
		return obj
	case map[string]any:
		for k, e := range x {
			x[k] = fromYAML(e)
		}
		return x
	case []any:
		for i, e := range x {
			x[i] = fromYAML(e)
		}
		return x
	case uint64:
		if x <= math.MaxInt64 {
			return int64(x)
		}
		return x
	case int:
		return int64(x)
	}
	return v
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}

type converter struct {
	anchors map[string]any
	errs    *multierror.Error
}

func (c *converter) fail(n ast.Node, err error) any {
	if tok := n.GetToken(); tok != nil && tok.Position != nil {
		err = fmt.Errorf("line %d: %w", tok.Position.Line, err)
	}
	c.errs = multierror.Append(c.errs, err)
	return nil
}

func (c *converter) node(n ast.Node) any {
	switch x := n.(type) {
	case nil, *ast.NullNode:
		return nil
	case *ast.BoolNode:
		return x.Value
	case *ast.IntegerNode:
		switch i := x.Value.(type) {
		case uint64:
			if i <= math.MaxInt64 {
				return int64(i)
			}
			return i
		case int:
			return int64(i)
		}
		return x.Value
	case *ast.FloatNode:
		return x.Value
	case *ast.InfinityNode:
		return x.Value
	case *ast.NanNode:
		return math.NaN()
	case *ast.StringNode:
		return x.Value
	case *ast.LiteralNode:
		return x.Value.Value
	case *ast.MappingValueNode:
		obj := shape.Object{}
		return c.fields(obj, []*ast.MappingValueNode{x})
	case *ast.MappingNode:
		obj := make(shape.Object, 0, len(x.Values))
		return c.fields(obj, x.Values)
	case *ast.SequenceNode:
		res := make([]any, 0, len(x.Values))
		for _, e := range x.Values {
			res = append(res, c.node(e))
		}
		return res
	case *ast.AnchorNode:
		v := c.node(x.Value)
		c.anchors[x.Name.GetToken().Value] = v
		return v
	case *ast.AliasNode:
		name := x.Value.GetToken().Value
		v, ok := c.anchors[name]
		if !ok {
			return c.fail(x, fmt.Errorf("%w: unknown alias %q", ErrParse, name))
		}
		return v
	case *ast.TagNode:
		return c.tag(x)
	case *ast.MappingKeyNode:
		return c.node(x.Value)
	case *ast.CommentGroupNode:
		return nil
	}
	return c.fail(n, fmt.Errorf("%w: %s", ErrUnknown, n.Type()))
}

func (c *converter) tag(x *ast.TagNode) any {
	name := x.Start.Value
	if strings.HasPrefix(name, "!!") {
		if name == "!!str" && x.Value != nil {
			if s, ok := c.node(x.Value).(string); ok {
				return s
			}
			return x.Value.GetToken().Value
		}
		return c.node(x.Value)
	}
	sym := Lookup(name)
	if sym == nil {
		return c.fail(x, fmt.Errorf("%w: unknown tag %s", ErrTag, name))
	}
	q, err := sym.Instance(c.node(x.Value))
	if err != nil {
		return c.fail(x, err)
	}
	if debug.Parse() {
		debug.Logf("tag %s -> %v\n", name, q)
	}
	return q
}

func (c *converter) fields(obj shape.Object, mvs []*ast.MappingValueNode) shape.Object {
	var merges []shape.Object
	for _, mv := range mvs {
		if mv.Key.IsMergeKey() {
			merges = append(merges, c.merge(mv.Value)...)
			continue
		}
		key, ok := c.key(mv.Key)
		if !ok {
			continue
		}
		if _, present := obj.Get(key); present {
			c.fail(mv.Key, fmt.Errorf("%w: duplicate key %q", ErrParse, key))
			continue
		}
		obj = append(obj, shape.Field{Key: key, Value: c.node(mv.Value)})
	}
	for _, m := range merges {
		for _, f := range m {
			if _, present := obj.Get(f.Key); !present {
				obj = append(obj, f)
			}
		}
	}
	return obj
}

func (c *converter) merge(n ast.Node) []shape.Object {
	switch v := c.node(n).(type) {
	case shape.Object:
		return []shape.Object{v}
	case []any:
		res := make([]shape.Object, 0, len(v))
		for _, e := range v {
			obj, ok := e.(shape.Object)
			if !ok {
				c.fail(n, fmt.Errorf("%w: merge of non mapping %v", ErrParse, e))
				continue
			}
			res = append(res, obj)
		}
		return res
	case nil:
		return nil
	default:
		c.fail(n, fmt.Errorf("%w: merge of non mapping %v", ErrParse, v))
		return nil
	}
}

func (c *converter) key(k ast.MapKeyNode) (string, bool) {
	var n ast.Node = k
	if mk, ok := n.(*ast.MappingKeyNode); ok {
		n = mk.Value
	}
	switch x := n.(type) {
	case *ast.TagNode:
		c.fail(x, fmt.Errorf("%w: %s", ErrKeyTag, x.Start.Value))
		return "", false
	case *ast.StringNode:
		return x.Value, true
	case *ast.NullNode:
		return "null", true
	case *ast.MappingNode, *ast.MappingValueNode, *ast.SequenceNode:
		c.fail(x, fmt.Errorf("%w: key must be a scalar", ErrParse))
		return "", false
	}
	return n.GetToken().Value, true
}
