package main

import (
	"context"
	"fmt"
	"log/slog"
)

// Fmt parses a source expression and prints it back out in canonical form,
// grounded on the teacher's cli/cmd/fmt.go Native-subcommand pattern,
// collapsed to a single mode since RESL has only one concrete syntax.
type Fmt struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
	Pretty bool   `help:"Pretty-print with indentation."                          short:"p"`
}

// Run executes the fmt command.
func (c *Fmt) Run(_ context.Context, _ *slog.Logger) error {
	src, err := readSource(c.Source)
	if err != nil {
		return err
	}

	out, perr := FormatSource(src, c.Pretty)
	if perr != nil {
		return perr
	}

	fmt.Print(out)

	if !c.Pretty {
		fmt.Println()
	}

	return nil
}
