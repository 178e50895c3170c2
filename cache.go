package resl

import (
	"sync"

	"github.com/zeebo/xxh3"
)

// parseCacheEntry holds a memoized parse result — either an AST or the
// ParseError produced while parsing it, never both.
type parseCacheEntry struct {
	expr Expr
	err  *ParseError
}

// parseCache memoizes Parse by a content hash of the source text,
// following the teacher's lang/cache.go pattern of xxh3-keyed program
// caching to avoid re-lexing/re-parsing identical source repeatedly
// (e.g. a REPL re-submitting an unchanged buffer, or a config loader
// re-evaluating the same template across requests).
var parseCache sync.Map // map[uint64]parseCacheEntry

// ParseCached parses src, serving a memoized result when src's content
// hash has been seen before. Safe for concurrent use — distinct sources
// parse independently (spec.md §5); identical sources share one parse.
func ParseCached(src string) (Expr, *ParseError) {
	key := xxh3.HashString(src)

	if v, ok := parseCache.Load(key); ok {
		entry := v.(parseCacheEntry)

		return entry.expr, entry.err
	}

	expr, err := Parse(src)
	parseCache.Store(key, parseCacheEntry{expr: expr, err: err})

	return expr, err
}

// ResetParseCache discards all memoized parse results. Exposed for
// embedders that want to bound cache growth (e.g. a long-lived REPL) or
// isolate test runs from one another.
func ResetParseCache() {
	parseCache.Range(func(key, _ any) bool {
		parseCache.Delete(key)

		return true
	})
}
