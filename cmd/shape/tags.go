package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/shape/parse"
)

func tags(cfg *TagsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Command.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: tags takes no arguments", cli.ErrUsage)
	}
	return writeTags(cc.Out)
}

func writeTags(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "available query tags:\n"); err != nil {
		return err
	}
	for _, s := range parse.Symbols() {
		if _, err := fmt.Fprintf(w, "\t!%-9s %s\n", s.Name(), s.Description()); err != nil {
			return err
		}
	}
	return nil
}
