package main

import "github.com/ardnew/resl"

// Evaluate adapts resl.EvaluateAndFormat's *resl.ParseError return into a
// plain error, so callers can use ordinary nil checks without tripping over
// a typed-nil-in-interface wrapping a non-nil-looking *ParseError.
func Evaluate(src string, pretty bool) (string, error) {
	out, err := resl.EvaluateAndFormat(src, pretty)
	if err != nil {
		return "", err
	}

	return out, nil
}

// FormatSource adapts resl.Format the same way.
func FormatSource(src string, pretty bool) (string, error) {
	out, err := resl.Format(src, pretty)
	if err != nil {
		return "", err
	}

	return out, nil
}
