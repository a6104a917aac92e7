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

	return cli.NewCommandAt(&cfg.Main, "ryml").
		WithSynopsis("ryml [opts] command [opts]").
		WithDescription("ryml loads, dumps, resolves, diffs, and queries YAML documents as an arena-backed tree.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return rymlMain(cfg, cc, args)
		}).
		WithSubs(
			LoadCommand(cfg),
			DumpCommand(cfg),
			ResolveCommand(cfg),
			DiffCommand(cfg),
			QueryCommand(cfg))
}

func LoadCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &LoadConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Load, "load").
		WithAliases("l").
		WithSynopsis("load [files]").
		WithDescription("load parses YAML files into trees and reports their shape").
		WithRun(func(cc *cli.Context, args []string) error {
			return runLoad(cfg, cc, args)
		})
}

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Dump, "dump").
		WithAliases("d").
		WithOpts(opts...).
		WithSynopsis("dump [-r] [files]").
		WithDescription("dump renders a tree back to YAML, in color on a terminal").
		WithRun(func(cc *cli.Context, args []string) error {
			return runDump(cfg, cc, args)
		})
}

func ResolveCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ResolveConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Resolve, "resolve").
		WithAliases("r").
		WithSynopsis("resolve [files]").
		WithDescription("resolve expands anchors, aliases, and << merge keys and dumps the result").
		WithRun(func(cc *cli.Context, args []string) error {
			return runResolve(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithOpts(opts...).
		WithSynopsis("diff a.yaml b.yaml").
		WithDescription("diff compares two resolved documents as text or as an RFC 6902 JSON patch").
		WithRun(func(cc *cli.Context, args []string) error {
			return runDiff(cfg, cc, args)
		})
}

func QueryCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &QueryConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Query, "query").
		WithAliases("q").
		WithSynopsis("query <expr> [files]").
		WithDescription("query filters the top-level mapping entries of a document by an expr-lang boolean expression").
		WithRun(func(cc *cli.Context, args []string) error {
			return runQuery(cfg, cc, args)
		})
}
