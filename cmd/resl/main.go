// Command resl parses, formats, evaluates, and interactively explores RESL
// source text.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/resl"
)

// CLI is the root command, grounded on the teacher's cli.CLI: a thin kong
// struct embedding global flags plus one field per subcommand.
type CLI struct {
	Verbose bool   `help:"Enable debug logging."              short:"v"`
	Profile string `help:"Enable profiling (cpu, mem, block)."`

	Eval Eval `cmd:"" help:"Evaluate an expression and print its value."`
	Fmt  Fmt  `cmd:"" help:"Format an expression."`
	Repl Repl `cmd:"" help:"Start an interactive read-eval-print loop."`
}

func main() {
	var cli CLI

	kctx := kong.Parse(&cli,
		kong.Name("resl"),
		kong.Description("A small expression language for configuration."),
		kong.UsageOnError(),
	)

	if cli.Verbose {
		resl.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	stop := startProfile(cli.Profile)
	defer stop()

	err := kctx.Run(context.Background(), resl.Logger)
	if err != nil {
		resl.Logger.Error("run failed", slog.Any("error", err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
