package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/shape"
	"github.com/signadot/shape/parse"
)

const people = `name: a
x: 1
---
name: b
---
[1, 2]
`

type runTest struct {
	name  string
	query string
	in    string
	cfg   MatchConfig
	patch string
	out   string
}

var runTests = []runTest{
	{
		name:  "match",
		query: "name: !any",
		in:    people,
		out:   "name: a\n---\nname: b\n",
	},
	{
		name:  "workers",
		query: "name: !any",
		in:    people,
		cfg:   MatchConfig{Workers: 4},
		out:   "name: a\n---\nname: b\n",
	},
	{
		name:  "count",
		query: "name: !any",
		in:    people,
		cfg:   MatchConfig{Count: true},
	},
	{
		name:  "json",
		query: "name: b",
		in:    people,
		cfg:   MatchConfig{MainConfig: &MainConfig{J: true}},
		out:   "{\n  \"name\": \"b\"\n}\n",
	},
	{
		name:  "transform",
		query: `age: !expr "value + 1"`,
		in:    "age: 1\n",
		cfg:   MatchConfig{Transform: true},
		out:   "age: 2\n",
	},
	{
		name:  "merge patch",
		query: "name: a",
		in:    people,
		patch: "{added: true}",
		out:   "added: true\nname: a\n",
	},
	{
		name:  "patch ops",
		query: "name: a",
		in:    people,
		patch: "[{op: add, path: /size, value: 1}]",
		out:   "name: a\nsize: 1\n",
	},
	{
		name:  "diff",
		query: "name: !any",
		in:    "name: a\nx: 1\n",
		cfg:   MatchConfig{Diff: true},
		out:   " name: a\n-x: 1\n",
	},
}

func TestMatchRun(t *testing.T) {
	for _, rt := range runTests {
		t.Run(rt.name, func(t *testing.T) {
			qv, err := parse.Query([]byte(rt.query))
			if err != nil {
				t.Fatal(err)
			}
			q, err := shape.Compile(qv)
			if err != nil {
				t.Fatal(err)
			}
			cfg := rt.cfg
			if cfg.MainConfig == nil {
				cfg.MainConfig = &MainConfig{}
			}
			buf := &bytes.Buffer{}
			m := &matchRun{cfg: &cfg, query: q, out: buf}
			if rt.patch != "" {
				if m.patch, err = newPatch([]byte(rt.patch)); err != nil {
					t.Fatal(err)
				}
			}
			if err := m.input([]byte(rt.in)); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(rt.out, buf.String()); diff != "" {
				t.Errorf("diff (-want +got):\n%s", diff)
			}
			if cfg.Count && m.count != 2 {
				t.Errorf("expected 2 matches got %d", m.count)
			}
		})
	}
}

func TestNewPatchErrors(t *testing.T) {
	for _, in := range []string{"1", "a: 1\n---\nb: 2\n", "[{op: nope}]x: ["} {
		if _, err := newPatch([]byte(in)); err == nil {
			t.Errorf("%q: expected error", in)
		}
	}
}

func TestWriteTags(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := writeTags(buf); err != nil {
		t.Fatal(err)
	}
	for _, tag := range []string{"!any", "!optional", "!var", "!skip", "!expr"} {
		if !strings.Contains(buf.String(), tag) {
			t.Errorf("missing %s in %q", tag, buf.String())
		}
	}
}
