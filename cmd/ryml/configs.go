package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

// MainConfig holds the options shared by every subcommand.
type MainConfig struct {
	Color   bool `cli:"name=color desc='force color output'"`
	NoColor bool `cli:"name=no-color desc='disable color output'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// useColor decides whether render.go should emit ANSI escapes: an
// explicit flag wins, otherwise color is used only when w is a
// terminal.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	switch {
	case cfg.NoColor:
		return false
	case cfg.Color:
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

// LoadConfig holds options for the load subcommand.
type LoadConfig struct {
	*MainConfig
	Load *cli.Command
}

// DumpConfig holds options for the dump subcommand.
type DumpConfig struct {
	*MainConfig
	Resolve bool `cli:"name=r aliases=resolve desc='resolve anchors/aliases/merge keys before dumping'"`
	Dump    *cli.Command
}

// ResolveConfig holds options for the resolve subcommand.
type ResolveConfig struct {
	*MainConfig
	Resolve *cli.Command
}

// DiffConfig holds options for the diff subcommand.
type DiffConfig struct {
	*MainConfig
	JSONPatch bool `cli:"name=json-patch desc='emit an RFC 6902 JSON patch instead of a text diff'"`
	Diff      *cli.Command
}

// QueryConfig holds options for the query subcommand.
type QueryConfig struct {
	*MainConfig
	Query *cli.Command
}
