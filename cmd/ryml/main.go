// Command ryml is a small command-line front end for the rapidyaml tree:
// it loads YAML text into a Tree, can dump it back out in color, resolve
// anchors/aliases/merge keys, diff two resolved documents, and filter nodes
// with an expression.
package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}
