package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "shape").
		WithSynopsis("shape [opts] command [opts]").
		WithDescription("shape matches documents against structural queries.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return shapeMain(cfg, cc, args)
		}).
		WithSubs(
			MatchCommand(cfg),
			TagsCommand(cfg))
}

func MatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "match").
		WithAliases("m").
		WithSynopsis("match [opts] <query> [files]").
		WithDescription(matchDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return match(cfg, cc, args)
		})
}

func TagsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TagsConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Command, "tags").
		WithAliases("t").
		WithSynopsis("tags").
		WithDescription("list the query tags").
		WithRun(func(cc *cli.Context, args []string) error {
			return tags(cfg, cc, args)
		})
}

const matchDescription = `match reads documents from files, or stdin when no files are
given, and prints the result of matching each document against the query.
Documents are separated by '---'. Results are separated by '---'.

The query is YAML. Plain values match equal values and mappings match any
mapping which has matching values for the query's keys. Tags mark special
query values:

  name: !any            # anything, present or absent
  nick: !optional anon  # anything, with a default when absent
  owner: !var who       # the same value wherever 'who' appears
  items: [!skip 2, 3]   # skip 2 elements, then match 3
  age: !expr "value >= 21"

Results contain only what the query asked for. With -transform, !expr values
in results are replaced by the expression's value.

-patch applies a JSON merge patch (a mapping) or a JSON patch (a sequence of
operations) to each result. -diff prints each matching document against its
result.`
