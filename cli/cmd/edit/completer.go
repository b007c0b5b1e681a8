package edit

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/domcol/lang"
)

// symbolNames lists every name an equation may use, sorted.
var symbolNames = func() []string {
	var names []string

	for s := range lang.Symbols() {
		names = append(names, s.Name)
	}

	return names
}()

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// wordBounds returns the identifier around cursor and its byte bounds. The
// word is empty when the cursor is between non-identifier characters. A
// LaTeX backslash is not part of the word, so "\si" completes like "si".
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor
	for start > 0 && isWordByte(input[start-1]) {
		start--
	}

	end = cursor
	for end < len(input) && isWordByte(input[end]) {
		end++
	}

	return input[start:end], start, end
}

// findMatches ranks the symbol names against word, best first. An empty
// word or a word made only of digits has no matches.
func findMatches(word string) fuzzy.Matches {
	if strings.Trim(word, "0123456789") == "" {
		return nil
	}

	return fuzzy.Find(word, symbolNames)
}

// computeMatches returns the matches for the word at the cursor and the
// word's bounds.
func (m model) computeMatches() (fuzzy.Matches, int, int) {
	word, start, end := wordBounds(m.input.Value(), m.input.Position())

	return findMatches(word), start, end
}

// renderCandidateBar builds the completion line, cut short with an ellipsis
// to fit width.
func renderCandidateBar(matches fuzzy.Matches, suggIdx int, tabActive bool, width int) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	reserve := lipgloss.Width(sep) + lipgloss.Width(ellipsis)

	var (
		b    strings.Builder
		used int
	)

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		w := lipgloss.Width(rendered)
		if i > 0 {
			w += lipgloss.Width(sep)
		}

		if i > 0 && i < len(matches)-1 && used+w+reserve > width {
			b.WriteString(sep + ellipsis)

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

// renderCandidate renders one candidate with its matched characters
// highlighted. Functions get a "()" suffix.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if isFunction(match.Str) {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}

func isFunction(name string) bool {
	s, ok := lang.Lookup(name)

	return ok && s.Kind == lang.SymbolFunction
}
