package edit

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/domcol/lang"
)

var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// functionCall describes the call, if any, enclosing the cursor.
type functionCall struct {
	name     string
	argIndex int
	inCall   bool
}

// detectFunctionCall finds the innermost group enclosing cursor and the name
// applied to it. Calls are either name(a, b), where commas separate the
// arguments, or \name{a}{b}, where each brace group is an argument.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(max(cursor, 0), len(input))

	open, depth := -1, 0

	for i := cursor - 1; i >= 0 && open < 0; i-- {
		switch input[i] {
		case ')', '}':
			depth++
		case '(', '{':
			if depth == 0 {
				open = i
			} else {
				depth--
			}
		}
	}

	if open < 0 {
		return functionCall{}
	}

	argIndex, nameEnd := 0, open

	if input[open] == '{' {
		for nameEnd > 0 && input[nameEnd-1] == '}' {
			start := matchingOpen(input, nameEnd-1)
			if start < 0 {
				return functionCall{}
			}

			argIndex++
			nameEnd = start
		}
	} else {
		depth = 0

		for i := open + 1; i < cursor; i++ {
			switch input[i] {
			case '(', '{':
				depth++
			case ')', '}':
				depth--
			case ',':
				if depth == 0 {
					argIndex++
				}
			}
		}
	}

	nameStart := nameEnd
	for nameStart > 0 && isWordByte(input[nameStart-1]) {
		nameStart--
	}

	name := calledName(input[nameStart:nameEnd])
	if name == "" {
		return functionCall{}
	}

	return functionCall{name: name, argIndex: argIndex, inCall: true}
}

// calledName returns the name a letter run applies to its group. Runs
// split into known symbols, so "isin" calls sin. A run with no function
// suffix is returned without leading digits.
func calledName(run string) string {
	for i := range len(run) {
		if isFunction(run[i:]) {
			return run[i:]
		}
	}

	return strings.TrimLeft(run, "0123456789")
}

// matchingOpen returns the index of the group opener matching the closer at
// input[closer], or -1.
func matchingOpen(input string, closer int) int {
	depth := 0

	for i := closer; i >= 0; i-- {
		switch input[i] {
		case ')', '}':
			depth++
		case '(', '{':
			depth--
		}

		if depth == 0 {
			return i
		}
	}

	return -1
}

// getSignature returns the signature and parameter names of the function
// called name, or "" if there is none.
func getSignature(name string) (signature string, params []string, doc string) {
	s, ok := lang.Lookup(name)
	if !ok || s.Kind != lang.SymbolFunction {
		return "", nil, ""
	}

	return name + "(" + strings.Join(s.Params, ", ") + ")", s.Params, s.Doc
}

// renderSignatureHint renders signature with the parameter at argIndex
// highlighted.
func renderSignatureHint(signature string, params []string, argIndex int) string {
	open := strings.IndexByte(signature, '(')
	if open < 0 {
		return signatureStyle.Render(signature)
	}

	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(signature[:open]))
	b.WriteString(signatureStyle.Render("("))

	for i, p := range params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		if i == argIndex {
			b.WriteString(currentParamStyle.Render(p))
		} else {
			b.WriteString(signatureStyle.Render(p))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	return b.String()
}
