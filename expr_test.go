package shape

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExpr(t *testing.T) {
	tests := []struct {
		name  string
		query any
		in    any
		opts  []MatchOpt
		res   any
		ok    bool
	}{
		{
			name:  "comparison",
			query: map[string]any{"age": MustExpr(`value >= 21`)},
			in:    map[string]any{"age": 22},
			res:   map[string]any{"age": 22},
			ok:    true,
		},
		{
			name:  "comparison fails",
			query: map[string]any{"age": MustExpr(`value >= 21`)},
			in:    map[string]any{"age": uint64(20)},
		},
		{
			name:  "sibling",
			query: map[string]any{"name": MustExpr(`value == this.nick`)},
			in:    ObjectOf("name", "al", "nick", "al"),
			res:   map[string]any{"name": "al"},
			ok:    true,
		},
		{
			name:  "transform",
			query: map[string]any{"size": MustExpr(`value * 2`)},
			in:    map[string]any{"size": 2},
			opts:  []MatchOpt{MatchTransform(true)},
			res:   map[string]any{"size": 4},
			ok:    true,
		},
		{
			name:  "absent is nil",
			query: map[string]any{"size": MustExpr(`value == nil`)},
			in:    map[string]any{},
			ok:    true,
			res:   map[string]any{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok, err := Match(tt.query, tt.in, tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			if ok != tt.ok {
				t.Fatalf("got match %t want %t", ok, tt.ok)
			}
			if diff := cmp.Diff(tt.res, res); diff != "" {
				t.Errorf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExprCompileError(t *testing.T) {
	if _, err := Expr(`value >=`); !errors.Is(err, ErrQuery) {
		t.Errorf("got %v want %v", err, ErrQuery)
	}
}
