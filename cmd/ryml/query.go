package main

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/scott-cotton/cli"

	rapidyaml "github.com/davemers0160/rapidyaml"
)

// queryEnv is the per-node projection an expr-lang expression runs
// against: a flattened view of a top-level mapping entry.
type queryEnv struct {
	Key  string
	Val  string
	Path string
	Kind string
}

func runQuery(cfg *QueryConfig, cc *cli.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: query requires a boolean expression argument", cli.ErrUsage)
	}
	program, err := expr.Compile(args[0], expr.Env(queryEnv{}), expr.AsBool())
	if err != nil {
		return fmt.Errorf("compiling query: %w", err)
	}

	return forEachFile(args[1:], func(name string, data []byte) error {
		tr, err := loadTree(data)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := tr.Resolve(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		r := newRenderer(cc.Out, cfg.useColor(cc.Out))
		root := tr.RootID()
		for c := tr.FirstChild(root); c != rapidyaml.None; c = tr.NextSibling(c) {
			env := queryEnv{
				Key:  tr.Key(c).String(),
				Val:  tr.Val(c).String(),
				Path: "/" + tr.Key(c).String(),
				Kind: tr.Kind(c).String(),
			}
			out, err := expr.Run(program, env)
			if err != nil {
				return fmt.Errorf("running query: %w", err)
			}
			match, ok := out.(bool)
			if !ok {
				return fmt.Errorf("query expression must evaluate to a bool, got %T", out)
			}
			if match {
				r.Dump(tr, c)
			}
		}
		return nil
	})
}
