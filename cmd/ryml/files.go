package main

import (
	"io"
	"os"
)

// readFile returns the contents of name, or of stdin when name is "-".
func readFile(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}

// forEachFile invokes fn with the name and contents of each file in args,
// or once against stdin under the name "-" when args is empty.
func forEachFile(args []string, fn func(name string, data []byte) error) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, name := range args {
		data, err := readFile(name)
		if err != nil {
			return err
		}
		if err := fn(name, data); err != nil {
			return err
		}
	}
	return nil
}
