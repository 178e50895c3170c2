package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ardnew/resl/cmd/resl/repl"
)

// Repl starts the interactive read-eval-print loop.
type Repl struct {
	Pretty bool `help:"Pretty-print evaluated results." short:"p"`
}

// Run executes the repl command.
func (r *Repl) Run(_ context.Context, _ *slog.Logger) error {
	dir, err := os.UserCacheDir()

	var histPath, prefsPath string
	if err == nil {
		resldir := filepath.Join(dir, "resl")
		_ = os.MkdirAll(resldir, 0o755)

		histPath = filepath.Join(resldir, "history.resl")
		prefsPath = filepath.Join(resldir, "prefs.yaml")
	}

	return repl.Run(histPath, prefsPath, r.Pretty)
}
