package shape

import (
	"fmt"
	"maps"

	"github.com/signadot/shape/debug"
)

// Match matches source against query and returns the result of the match.
// The boolean is false when source does not match; no-match is not an error.
// Errors come from malformed queries and from source methods or predicates
// which fail. query is either plain data, as accepted by Compile, or a
// compiled *Query.
func Match(query, source any, opts ...MatchOpt) (any, bool, error) {
	q, err := Compile(query)
	if err != nil {
		return nil, false, err
	}
	return q.Match(source, opts...)
}

// Match runs one match attempt of q against source with fresh bindings.
func (q *Query) Match(source any, opts ...MatchOpt) (any, bool, error) {
	return q.match(source, newConfig(opts))
}

func (q *Query) match(source any, cfg *MatchConfig) (any, bool, error) {
	m := &matcher{cfg: cfg, env: Bindings{}}
	res, ok, err := m.match(q.root, source, nil)
	if err != nil || !ok {
		return nil, false, err
	}
	if cfg.Bindings != nil {
		maps.Copy(cfg.Bindings, m.env)
	}
	if isUndefined(res) {
		res = nil
	}
	return res, true, nil
}

// matcher holds the state of one match attempt.
type matcher struct {
	cfg *MatchConfig
	env Bindings
}

// match matches v against n. this is the source object holding v. A result of
// Undefined means the property is left out of the enclosing result.
func (m *matcher) match(n *Node, v, this any) (any, bool, error) {
	if debug.Match() {
		debug.Logf("match %s at %s\n", n.Kind, n.Path)
	}
	switch n.Kind {
	case MarkKind:
		return m.matchMarker(n, v)
	case PredicateKind:
		return m.matchPredicate(n, v, this)
	case LiteralKind:
		return m.matchLiteral(n, v)
	case ObjectKind:
		return m.matchObject(n, v)
	case ArrayKind:
		return m.matchArray(n, v)
	}
	return nil, false, fmt.Errorf("%w: unknown node kind %s at %s", errInternal, n.Kind, n.Path)
}

func (m *matcher) matchMarker(n *Node, v any) (any, bool, error) {
	mk := n.Marker
	switch mk.kind {
	case WildcardMarker:
		if !callable(v) {
			return v, true, nil
		}
		res, err := invoke(v, mk.args...)
		if err != nil {
			return nil, false, invokeError(n, err)
		}
		return res, true, nil
	case OptionalMarker:
		if !isUndefined(v) {
			return v, true, nil
		}
		if mk.hasDef {
			return mk.def, true, nil
		}
		return Undefined, true, nil
	case VariableMarker:
		if !m.env.Unify(mk.name, v) {
			return nil, false, nil
		}
		return v, true, nil
	case SkipMarker:
		return nil, false, fmt.Errorf("%w: %s outside of a sequence at %s", ErrQuery, mk, n.Path)
	}
	return nil, false, fmt.Errorf("%w: unknown marker %s at %s", errInternal, mk.kind, n.Path)
}

func (m *matcher) matchPredicate(n *Node, v, this any) (any, bool, error) {
	eff, err := effective(n, v)
	if err != nil {
		return nil, false, err
	}
	res, err := n.Pred(eff, this)
	if err != nil {
		return nil, false, fmt.Errorf("predicate at %s: %w", n.Path, err)
	}
	if m.cfg.Transform {
		return res, true, nil
	}
	if !Truth(res) {
		if debug.Match() {
			debug.Logf("predicate at %s rejected %v\n", n.Path, eff)
		}
		return nil, false, nil
	}
	return eff, true, nil
}

func (m *matcher) matchLiteral(n *Node, v any) (any, bool, error) {
	if callable(v) {
		res, err := invoke(v, n.Literal)
		if err != nil {
			return nil, false, invokeError(n, err)
		}
		if isUndefined(res) {
			return nil, false, nil
		}
		return res, true, nil
	}
	if !Equal(n.Literal, v) {
		return nil, false, nil
	}
	return v, true, nil
}

func (m *matcher) matchObject(n *Node, v any) (any, bool, error) {
	v, err := effective(n, v)
	if err != nil {
		return nil, false, err
	}
	if !isMapping(v) {
		return nil, false, nil
	}
	var (
		obj Object
		res map[string]any
	)
	if n.Ordered {
		obj = make(Object, 0, len(n.Fields))
	} else {
		res = make(map[string]any, len(n.Fields))
	}
	for i, field := range n.Fields {
		fv, _ := lookup(v, field)
		fRes, ok, err := m.match(n.Values[i], fv, v)
		if err != nil || !ok {
			return nil, false, err
		}
		if isUndefined(fRes) {
			continue
		}
		if n.Ordered {
			obj = append(obj, Field{Key: field, Value: fRes})
		} else {
			res[field] = fRes
		}
	}
	if n.Ordered {
		return obj, true, nil
	}
	return res, true, nil
}

func (m *matcher) matchArray(n *Node, v any) (any, bool, error) {
	v, err := effective(n, v)
	if err != nil {
		return nil, false, err
	}
	elems, ok := elements(v)
	if !ok {
		return nil, false, nil
	}
	res := make([]any, 0, len(n.Values))
	cursor := 0
	for _, en := range n.Values {
		if en.Kind == MarkKind && en.Marker.kind == SkipMarker {
			if en.Marker.count > len(elems)-cursor {
				return nil, false, nil
			}
			cursor += en.Marker.count
			continue
		}
		if cursor >= len(elems) {
			return nil, false, nil
		}
		eRes, ok, err := m.match(en, elems[cursor], v)
		if err != nil || !ok {
			return nil, false, err
		}
		cursor++
		if isUndefined(eRes) {
			eRes = nil
		}
		res = append(res, eRes)
	}
	if cursor != len(elems) {
		return nil, false, nil
	}
	return res, true, nil
}

// effective invokes v without arguments if it is callable.
func effective(n *Node, v any) (any, error) {
	if !callable(v) {
		return v, nil
	}
	res, err := invoke(v)
	if err != nil {
		return nil, invokeError(n, err)
	}
	return res, nil
}

func invokeError(n *Node, err error) error {
	return fmt.Errorf("error invoking source at %s: %w", n.Path, err)
}
