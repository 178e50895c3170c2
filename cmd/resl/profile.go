package main

import "github.com/pkg/profile"

// profileMode maps a --profile flag value to the pkg/profile option that
// starts it, grounded on the teacher's profile/pprof.go mode registry.
// Unlike the teacher, this is wired unconditionally rather than gated
// behind a build tag: resl is a small CLI where the handful of profiler
// symbols pulled in by an unused mode cost nothing worth hiding behind a
// build flag.
var profileMode = map[string]func(*profile.Profile){
	"cpu":       profile.CPUProfile,
	"mem":       profile.MemProfile,
	"block":     profile.BlockProfile,
	"goroutine": profile.GoroutineProfile,
	"mutex":     profile.MutexProfile,
	"trace":     profile.TraceProfile,
}

// startProfile starts profiling in the requested mode and returns a stop
// function safe to call unconditionally (a no-op when mode is empty or
// unrecognized).
func startProfile(mode string) func() {
	fn, ok := profileMode[mode]
	if !ok {
		return func() {}
	}

	stopper := profile.Start(fn, profile.Quiet)

	return stopper.Stop
}
