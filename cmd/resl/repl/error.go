package repl

import "errors"

// Sentinel errors, grounded on the teacher's cli/cmd/repl/error.go.
var ErrOutOfBounds = errors.New("index out of range")
