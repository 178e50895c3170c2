package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// builtinNames lists the completion candidates: RESL's built-in function
// names plus the literal keywords null, true and false. Grounded on the
// teacher's completer.go, minus namespace member lookup
// (childCandidates/parentPath) since RESL identifiers are flat —
// there is no dotted member-access chain to walk.
var builtinNames = []string{
	"concat", "to_str", "length", "push", "insert", "type_of", "debug",
	"null", "true", "false",
}

// isWordBoundary reports whether r delimits an identifier for completion
// purposes, following the teacher's operator/punctuation boundary set.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '(', ')', '[', ']', '{', '}',
		'+', '-', '*', '/', '%',
		'<', '>', '=', '!',
		'&', '|', ',', '?', ':', ';':
		return true
	}

	return false
}

// wordBounds returns the identifier touching cursor and its byte bounds
// within input, grounded on the teacher's completer.go wordBounds.
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// computeMatches fuzzy-matches the word under the cursor against the
// built-in name list.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()
	cursor := m.input.Position()

	word, start, end := wordBounds(input, cursor)
	if word == "" {
		return nil, start, end
	}

	return fuzzy.Find(word, builtinNames), start, end
}

// renderCandidateBar renders the single-line completion bar, highlighting
// matched characters, ellipsizing to width.
func renderCandidateBar(matches fuzzy.Matches, selected int, width int) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, i == selected)
		w := lipgloss.Width(rendered)

		if i > 0 {
			w += lipgloss.Width(sep)
		}

		if used+w > width && i > 0 {
			b.WriteString(sep + hintStyle.Render("..."))

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)
		used += w
	}

	return b.String()
}

func renderCandidate(match fuzzy.Match, selected bool) string {
	base := suggestionStyle
	highlight := lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)

	if selected {
		base = selectedStyle
		highlight = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).Bold(true)
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
