package shape

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/signadot/shape/debug"
)

// Reduce matches every element of sources, which must be a slice or array,
// against query and returns the results of the elements which match, in
// order. Each element is matched with its own bindings, so a variable is only
// held consistent within one candidate.
func Reduce(sources, query any, opts ...MatchOpt) ([]any, error) {
	q, err := Compile(query)
	if err != nil {
		return nil, err
	}
	return q.Reduce(sources, opts...)
}

func (q *Query) Reduce(sources any, opts ...MatchOpt) ([]any, error) {
	elems, ok := elements(sources)
	if !ok {
		return nil, fmt.Errorf("%w: cannot reduce %T", ErrNotSequence, sources)
	}
	cfg := newConfig(opts)
	cfg.Bindings = nil
	if cfg.Workers > 1 && len(elems) > 1 {
		return q.reduceParallel(elems, cfg)
	}
	res := make([]any, 0, len(elems))
	for i, elem := range elems {
		r, ok, err := q.match(elem, cfg)
		if err != nil {
			return nil, fmt.Errorf("error matching element %d: %w", i, err)
		}
		if debug.Reduce() {
			debug.Logf("reduce element %d: match %t\n", i, ok)
		}
		if ok {
			res = append(res, r)
		}
	}
	return res, nil
}

// reduceParallel matches elements concurrently. Like the sequential path it
// reports the error of the lowest failing element.
func (q *Query) reduceParallel(elems []any, cfg *MatchConfig) ([]any, error) {
	type slot struct {
		res any
		ok  bool
		err error
	}
	slots := make([]slot, len(elems))
	g := new(errgroup.Group)
	g.SetLimit(cfg.Workers)
	for i := range elems {
		g.Go(func() error {
			r, ok, err := q.match(elems[i], cfg)
			if debug.Reduce() {
				debug.Logf("reduce element %d: match %t\n", i, ok)
			}
			slots[i] = slot{res: r, ok: ok, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	res := make([]any, 0, len(elems))
	for i, s := range slots {
		if s.err != nil {
			return nil, fmt.Errorf("error matching element %d: %w", i, s.err)
		}
		if s.ok {
			res = append(res, s.res)
		}
	}
	return res, nil
}
