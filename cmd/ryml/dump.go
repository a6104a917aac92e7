package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func runDump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	return forEachFile(args, func(name string, data []byte) error {
		tr, err := loadTree(data)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if cfg.Resolve {
			if err := tr.Resolve(); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
		r := newRenderer(cc.Out, cfg.useColor(cc.Out))
		r.Dump(tr, tr.RootID())
		return nil
	})
}
