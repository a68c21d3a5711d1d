package shape

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleSource() map[string]any {
	src := map[string]any{
		"bool":   true,
		"num":    1,
		"nil":    nil,
		"str":    "str",
		"nested": map[string]any{"num": 1},
		"array":  []any{1, "1"},
	}
	src["f"] = func(vs ...int) string {
		v := 1
		if len(vs) > 0 {
			v = vs[0]
		}
		return src["str"].(string) + strconv.Itoa(v)
	}
	return src
}

type person struct {
	FirstName       string
	LastName        string
	FavoriteNumbers []int
}

func (p person) Name() string {
	return p.LastName + ", " + p.FirstName
}

func (p person) SomeFavoriteNumber(n int) (int, bool) {
	for _, f := range p.FavoriteNumbers {
		if f == n {
			return n, true
		}
	}
	return 0, false
}

type matchTest struct {
	name  string
	query any
	in    any
	opts  []MatchOpt
	res   any
	ok    bool
}

var matchTests = []matchTest{
	{
		name:  "literal bool",
		query: map[string]any{"bool": true},
		in:    sampleSource(),
		res:   map[string]any{"bool": true},
		ok:    true,
	},
	{
		name:  "literal null",
		query: map[string]any{"nil": nil},
		in:    sampleSource(),
		res:   map[string]any{"nil": nil},
		ok:    true,
	},
	{
		name:  "literal number",
		query: map[string]any{"num": 1},
		in:    sampleSource(),
		res:   map[string]any{"num": 1},
		ok:    true,
	},
	{
		name:  "literal number across types",
		query: map[string]any{"num": 1.0},
		in:    sampleSource(),
		res:   map[string]any{"num": 1},
		ok:    true,
	},
	{
		name:  "literal string",
		query: map[string]any{"str": "str"},
		in:    sampleSource(),
		res:   map[string]any{"str": "str"},
		ok:    true,
	},
	{
		name:  "literal mismatch",
		query: map[string]any{"str": "other"},
		in:    sampleSource(),
	},
	{
		name:  "null is not absent",
		query: map[string]any{"missing": nil},
		in:    sampleSource(),
	},
	{
		name:  "nested",
		query: map[string]any{"nested": map[string]any{"num": 1}},
		in:    sampleSource(),
		res:   map[string]any{"nested": map[string]any{"num": 1}},
		ok:    true,
	},
	{
		name:  "array",
		query: map[string]any{"array": []any{1, "1"}},
		in:    sampleSource(),
		res:   map[string]any{"array": []any{1, "1"}},
		ok:    true,
	},
	{
		name:  "array length mismatch",
		query: map[string]any{"array": []any{1}},
		in:    sampleSource(),
	},
	{
		name:  "predicate",
		query: map[string]any{"num": func(v any) bool { return v == 1 }},
		in:    sampleSource(),
		res:   map[string]any{"num": 1},
		ok:    true,
	},
	{
		name:  "predicate mismatch",
		query: map[string]any{"num": func(v any) bool { return v != 1 }},
		in:    sampleSource(),
	},
	{
		name: "predicate reads siblings",
		query: map[string]any{
			"num": func(v, this any) bool { return this.(map[string]any)["str"] == "str" },
		},
		in:  sampleSource(),
		res: map[string]any{"num": 1},
		ok:  true,
	},
	{
		name:  "typed predicate",
		query: map[string]any{"num": Is(func(n int64) bool { return n == 1 })},
		in:    sampleSource(),
		res:   map[string]any{"num": 1},
		ok:    true,
	},
	{
		name:  "predicate on method result",
		query: map[string]any{"f": func(v any) bool { return v == "str1" }},
		in:    sampleSource(),
		res:   map[string]any{"f": "str1"},
		ok:    true,
	},
	{
		name:  "undefined",
		query: map[string]any{"name": Any(), "age": Any(), "gender": Optional()},
		in:    map[string]any{"age": 21, "name": "joe"},
		res:   map[string]any{"name": "joe", "age": 21},
		ok:    true,
	},
	{
		name:  "not undefined",
		query: map[string]any{"name": Any(), "age": Any(), "gender": Optional()},
		in:    map[string]any{"age": 21, "name": "joe", "gender": "male"},
		res:   map[string]any{"name": "joe", "age": 21, "gender": "male"},
		ok:    true,
	},
	{
		name:  "undefined default",
		query: map[string]any{"name": Any(), "age": Any(), "gender": Optional("undeclared")},
		in:    map[string]any{"age": 21, "name": "joe"},
		res:   map[string]any{"name": "joe", "age": 21, "gender": "undeclared"},
		ok:    true,
	},
	{
		name:  "present default ignored",
		query: map[string]any{"gender": Optional("undeclared")},
		in:    map[string]any{"gender": "female"},
		res:   map[string]any{"gender": "female"},
		ok:    true,
	},
	{
		name:  "variable",
		query: map[string]any{"num": MustVar("n"), "nested": map[string]any{"num": MustVar("n")}},
		in:    sampleSource(),
		res:   map[string]any{"num": 1, "nested": map[string]any{"num": 1}},
		ok:    true,
	},
	{
		name:  "variable consistent",
		query: map[string]any{"a": MustVar("x"), "b": MustVar("x")},
		in:    map[string]any{"a": 1, "b": 1},
		res:   map[string]any{"a": 1, "b": 1},
		ok:    true,
	},
	{
		name:  "variable inconsistent",
		query: map[string]any{"a": MustVar("x"), "b": MustVar("x")},
		in:    map[string]any{"a": 1, "b": 2},
	},
	{
		name:  "variable deep equality",
		query: []any{MustVar("x"), MustVar("x")},
		in:    []any{[]int{1, 2}, []any{1.0, 2}},
		res:   []any{[]int{1, 2}, []any{1.0, 2}},
		ok:    true,
	},
	{
		name:  "skip",
		query: []any{1, MustSkip(2), 1},
		in:    []any{1, 2, 3, 1},
		res:   []any{1, 1},
		ok:    true,
	},
	{
		name:  "skip trailing element",
		query: []any{1, MustSkip(2), 1},
		in:    []any{1, 2, 3, 1, 5},
	},
	{
		name:  "skip past end",
		query: []any{1, MustSkip(3)},
		in:    []any{1, 2},
	},
	{
		name:  "skip huge counts",
		query: []any{MustSkip(math.MaxInt), MustSkip(math.MaxInt), 1},
		in:    []any{1, 2},
	},
	{
		name:  "skip to end",
		query: []any{1, MustSkip(1)},
		in:    []any{1, 2},
		res:   []any{1},
		ok:    true,
	},
	{
		name:  "skip zero",
		query: []any{1, MustSkip(0), 2},
		in:    []int{1, 2},
		res:   []any{1, 2},
		ok:    true,
	},
	{
		name:  "transform",
		query: map[string]any{"size": func(v any) any { return v.(int) * 2 }},
		in:    map[string]any{"size": 2},
		opts:  []MatchOpt{MatchTransform(true)},
		res:   map[string]any{"size": 4},
		ok:    true,
	},
	{
		name:  "transform keeps falsy results",
		query: map[string]any{"size": Map(func(n int) bool { return n > 2 })},
		in:    map[string]any{"size": 2},
		opts:  []MatchOpt{MatchTransform(true)},
		res:   map[string]any{"size": false},
		ok:    true,
	},
	{
		name:  "shape mismatch object",
		query: map[string]any{"a": 1},
		in:    5,
	},
	{
		name:  "shape mismatch array",
		query: []any{1},
		in:    map[string]any{"0": 1},
	},
	{
		name:  "string is not a sequence",
		query: []any{"a", "b"},
		in:    "ab",
	},
	{
		name:  "wildcard on absent property",
		query: map[string]any{"a": Any(), "b": Any()},
		in:    map[string]any{"a": 1},
		res:   map[string]any{"a": 1},
		ok:    true,
	},
	{
		name:  "top level literal",
		query: "x",
		in:    "x",
		res:   "x",
		ok:    true,
	},
	{
		name:  "ordered object",
		query: ObjectOf("name", Any(), "someFavoriteNumber", 7),
		in:    person{FirstName: "mary", LastName: "contrary", FavoriteNumbers: []int{7, 14}},
		res:   ObjectOf("name", "contrary, mary", "someFavoriteNumber", 7),
		ok:    true,
	},
	{
		name:  "method argument undefined",
		query: ObjectOf("name", Any(), "someFavoriteNumber", 7),
		in:    &person{FirstName: "joe", LastName: "jones", FavoriteNumbers: []int{5, 15}},
	},
	{
		name:  "method argument of wrong type",
		query: map[string]any{"someFavoriteNumber": "seven"},
		in:    person{FavoriteNumbers: []int{7}},
	},
	{
		name:  "object source",
		query: map[string]any{"a": 1},
		in:    ObjectOf("a", 1, "b", 2),
		res:   map[string]any{"a": 1},
		ok:    true,
	},
}

func TestMatch(t *testing.T) {
	for _, mt := range matchTests {
		t.Run(mt.name, func(t *testing.T) {
			res, ok, err := Match(mt.query, mt.in, mt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			if ok != mt.ok {
				t.Fatalf("got match %t want %t (result %v)", ok, mt.ok, res)
			}
			if diff := cmp.Diff(mt.res, res); diff != "" {
				t.Errorf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMatchAllWildcards(t *testing.T) {
	for _, args := range [][]any{nil, {2}} {
		src := sampleSource()
		query := map[string]any{}
		for k := range src {
			query[k] = Any(args...)
		}
		res, ok, err := Match(query, src)
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatalf("args %v: no match", args)
		}
		want := sampleSource()
		f := want["f"].(func(...int) string)
		if len(args) == 0 {
			want["f"] = f()
		} else {
			want["f"] = f(args[0].(int))
		}
		if diff := cmp.Diff(want, res); diff != "" {
			t.Errorf("args %v: result mismatch (-want +got):\n%s", args, diff)
		}
	}
}

func TestMatchFailureStopsSiblings(t *testing.T) {
	calls := 0
	query := map[string]any{
		"a": func(any) bool { return false },
		"b": func(any) bool { calls++; return true },
	}
	res, ok, err := Match(query, map[string]any{"a": 1, "b": 2})
	if err != nil {
		t.Fatal(err)
	}
	if ok || res != nil {
		t.Errorf("got %v, %t want no match", res, ok)
	}
	if calls != 0 {
		t.Errorf("sibling predicate ran %d times after failure", calls)
	}
}

func TestMatchIdempotent(t *testing.T) {
	query := map[string]any{"a": MustVar("x"), "b": []any{MustVar("x"), Optional(3)}}
	src := map[string]any{"a": 1, "b": []any{1, 2}}
	q, err := Compile(query)
	if err != nil {
		t.Fatal(err)
	}
	first, ok1, err := q.Match(src)
	if err != nil {
		t.Fatal(err)
	}
	second, ok2, err := q.Match(src)
	if err != nil {
		t.Fatal(err)
	}
	if !ok1 || !ok2 {
		t.Fatalf("got %t %t want matches", ok1, ok2)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("results differ (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"a": 1, "b": []any{1, 2}}, src); diff != "" {
		t.Errorf("source mutated (-want +got):\n%s", diff)
	}
}

func TestMatchBindings(t *testing.T) {
	env := Bindings{}
	query := map[string]any{"partners": []any{
		map[string]any{"name": MustVar("n")},
		map[string]any{"name": MustVar("n")},
	}}
	src := map[string]any{"partners": []any{
		map[string]any{"name": "joe", "age": 3},
		map[string]any{"name": "joe"},
	}}
	_, ok, err := Match(query, src, MatchBindings(env))
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("no match")
	}
	if diff := cmp.Diff(Bindings{"n": "joe"}, env); diff != "" {
		t.Errorf("bindings mismatch (-want +got):\n%s", diff)
	}
}

var errBroken = errors.New("broken")

type broken struct{}

func (broken) Size() (int, error) { return 0, errBroken }

type store map[string]int

func (s store) Get(name string) (any, bool) {
	v, ok := s[name]
	return v * 10, ok
}

func TestMatchSourceError(t *testing.T) {
	_, ok, err := Match(map[string]any{"size": Any()}, broken{})
	if !errors.Is(err, errBroken) {
		t.Fatalf("got %v want %v", err, errBroken)
	}
	if ok {
		t.Error("error reported as match")
	}
}

func TestMatchGetter(t *testing.T) {
	res, ok, err := Match(map[string]any{"a": 10}, store{"a": 1})
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("no match")
	}
	if diff := cmp.Diff(map[string]any{"a": 10}, res); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

type tagged struct {
	ID    string `json:"id"`
	Count int    `json:"count,omitempty"`
	Skip  string `json:"-"`
}

func TestMatchStructFields(t *testing.T) {
	src := &tagged{ID: "x", Count: 2, Skip: "hidden"}
	res, ok, err := Match(map[string]any{"id": "x", "Count": Any(), "skip": Optional("none")}, src)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("no match")
	}
	want := map[string]any{"id": "x", "Count": 2, "skip": "none"}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}
