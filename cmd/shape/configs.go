package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/shape/encode"
	"github.com/signadot/shape/format"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='encode with color'"`
	J     bool `cli:"name=j aliases=json desc='output json'"`
	Y     bool `cli:"name=y aliases=yaml desc='output yaml'"`
	Gops  bool `cli:"name=gops desc='start a gops diagnostics agent'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) format() format.Format {
	if cfg.J {
		return format.JSONFormat
	}
	return format.YAMLFormat
}

// colors returns the colors for output to w, or nil for none. -color forces
// colors, otherwise terminals get colors.
func (cfg *MainConfig) colors(w io.Writer) *encode.Colors {
	if cfg.Color {
		return encode.NewColors()
	}
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name == "color" && opt.Value != nil {
				return nil
			}
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return encode.NewColors()
	}
	return nil
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.format()),
	}
	if c := cfg.colors(w); c != nil {
		res = append(res, encode.EncodeColors(c))
	}
	return res
}

type MatchConfig struct {
	*cli.Command
	*MainConfig

	String    bool   `cli:"name=s desc='consider query a string argument'"`
	File      bool   `cli:"name=f desc='consider query a file path'"`
	Transform bool   `cli:"name=transform aliases=x desc='replace predicates with their values'"`
	Count     bool   `cli:"name=n desc='print the number of matches only'"`
	Diff      bool   `cli:"name=diff desc='diff each matching document against its result'"`
	Patch     string `cli:"name=patch desc='json merge patch or json patch file applied to results'"`
	Workers   int    `cli:"name=workers desc='number of documents matched concurrently'"`
	Tags      bool   `cli:"name=tags desc='show available tags'"`
}

type TagsConfig struct {
	*cli.Command
	*MainConfig
}
