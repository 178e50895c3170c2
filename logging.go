package resl

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// Logger is the package-wide structured logger, following the teacher's
// convention of a package-level slog.Logger that embedders may replace
// wholesale via SetLogger. The default writes text-handler output to
// stderr at Info level.
var Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

// SetLogger replaces the package-wide logger, letting an embedder route
// diagnostics into its own observability stack.
func SetLogger(l *slog.Logger) {
	if l != nil {
		Logger = l
	}
}

var debugMu sync.Mutex
var debugSink io.Writer = os.Stdout

// SetDebugSink redirects the debug() built-in's output stream (spec.md
// §6.3). The default sink is the process's standard output; passing nil
// restores that default.
func SetDebugSink(w io.Writer) {
	debugMu.Lock()
	defer debugMu.Unlock()

	if w == nil {
		debugSink = os.Stdout

		return
	}

	debugSink = w
}

// writeDebug writes one line to the current debug sink. The lock guards
// only the read of the current sink; the writes themselves run unlocked,
// so the ordering of concurrent callers sharing a sink is up to the sink.
func writeDebug(line string) {
	debugMu.Lock()
	w := debugSink
	debugMu.Unlock()

	io.WriteString(w, line)
	io.WriteString(w, "\n")
}
