package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Eval evaluates a source expression and prints the resulting value,
// grounded on the teacher's cli/cmd/eval.go file-or-stdin pattern.
type Eval struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
	Pretty bool   `help:"Pretty-print the result."                                short:"p"`
}

// Run executes the eval command.
func (e *Eval) Run(_ context.Context, logger *slog.Logger) error {
	src, err := readSource(e.Source)
	if err != nil {
		return err
	}

	out, perr := Evaluate(src, e.Pretty)
	if perr != nil {
		logger.Debug("eval failed", slog.String("source", e.Source))

		return perr
	}

	fmt.Println(out)

	return nil
}

func readSource(path string) (string, error) {
	var file *os.File

	if path == "-" {
		file = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()

		file = f
	}

	buf, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	return string(buf), nil
}
