package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	"github.com/signadot/shape"
	"github.com/signadot/shape/encode"
	"github.com/signadot/shape/libdiff"
	"github.com/signadot/shape/parse"
)

func match(cfg *MatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Command.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Tags {
		return writeTags(cc.Out)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: match requires 1 argument, a query", cli.ErrUsage)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("%w: -workers must not be negative", cli.ErrUsage)
	}
	q, err := getQuery(cfg, args[0])
	if err != nil {
		return err
	}
	var p *resultPatch
	if cfg.Patch != "" {
		if p, err = readPatch(cfg.Patch); err != nil {
			return err
		}
	}
	m := &matchRun{cfg: cfg, query: q, patch: p, out: cc.Out}
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, file := range files {
		if err := m.file(cc, file); err != nil {
			return fmt.Errorf("error matching %s: %w", file, err)
		}
	}
	if cfg.Count {
		_, err := fmt.Fprintln(cc.Out, m.count)
		return err
	}
	return nil
}

func getQuery(cfg *MatchConfig, arg string) (*shape.Query, error) {
	if cfg.String && cfg.File {
		return nil, fmt.Errorf("%w: only one of -s, -f may be specified", cli.ErrUsage)
	}
	var d []byte
	if cfg.File {
		var err error
		if arg == "-" {
			d, err = io.ReadAll(os.Stdin)
		} else {
			d, err = os.ReadFile(arg)
		}
		if err != nil {
			return nil, fmt.Errorf("error reading query: %w", err)
		}
	} else {
		d = []byte(arg)
	}
	v, err := parse.Query(d)
	if err != nil {
		return nil, fmt.Errorf("error decoding query: %w", err)
	}
	return shape.Compile(v)
}

type matchRun struct {
	cfg   *MatchConfig
	query *shape.Query
	patch *resultPatch
	out   io.Writer
	count int
}

func (m *matchRun) file(cc *cli.Context, file string) error {
	var (
		d   []byte
		err error
	)
	if file == "-" {
		d, err = io.ReadAll(cc.In)
	} else {
		d, err = os.ReadFile(file)
	}
	if err != nil {
		return fmt.Errorf("error reading: %w", err)
	}
	return m.input(d)
}

// input matches each document of d.
func (m *matchRun) input(d []byte) error {
	docs, err := parse.Docs(d)
	if err != nil {
		return err
	}
	if m.cfg.Diff {
		return m.diff(docs)
	}
	res, err := m.query.Reduce(docs,
		shape.MatchTransform(m.cfg.Transform),
		shape.MatchWorkers(m.cfg.Workers))
	if err != nil {
		return err
	}
	for _, r := range res {
		if err := m.emit(r); err != nil {
			return err
		}
	}
	return nil
}

func (m *matchRun) diff(docs []any) error {
	opts := []encode.EncodeOption{encode.EncodeFormat(m.cfg.format())}
	var paint func(libdiff.Op, string) string
	if m.cfg.colors(m.out) != nil {
		paint = diffColor
	}
	for i, doc := range docs {
		r, ok, err := m.query.Match(doc, shape.MatchTransform(m.cfg.Transform))
		if err != nil {
			return fmt.Errorf("error matching document %d: %w", i, err)
		}
		if !ok {
			continue
		}
		if r, err = m.patched(r); err != nil {
			return err
		}
		m.count++
		if m.cfg.Count {
			continue
		}
		if err := m.sep(); err != nil {
			return err
		}
		from, to := &bytes.Buffer{}, &bytes.Buffer{}
		if err := encode.Encode(doc, from, opts...); err != nil {
			return fmt.Errorf("error encoding document %d: %w", i, err)
		}
		if err := encode.Encode(r, to, opts...); err != nil {
			return fmt.Errorf("error encoding result %d: %w", i, err)
		}
		if err := libdiff.Write(m.out, libdiff.Lines(from.String(), to.String()), paint); err != nil {
			return err
		}
	}
	return nil
}

func diffColor(op libdiff.Op, s string) string {
	c := color.New(color.FgRed)
	if op == libdiff.Insert {
		c = color.New(color.FgGreen)
	}
	c.EnableColor()
	return c.Sprint(s)
}

func (m *matchRun) patched(r any) (any, error) {
	if m.patch == nil {
		return r, nil
	}
	return m.patch.apply(r)
}

func (m *matchRun) emit(r any) error {
	r, err := m.patched(r)
	if err != nil {
		return err
	}
	m.count++
	if m.cfg.Count {
		return nil
	}
	if err := m.sep(); err != nil {
		return err
	}
	if err := encode.Encode(r, m.out, m.cfg.encOpts(m.out)...); err != nil {
		return fmt.Errorf("error encoding output: %w", err)
	}
	return nil
}

func (m *matchRun) sep() error {
	if m.count <= 1 {
		return nil
	}
	_, err := io.WriteString(m.out, "---\n")
	return err
}
