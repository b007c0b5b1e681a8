package lang

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// Kind classifies a [Token].
type Kind int

const (
	Number     Kind = iota // number
	Identifier             // identifier
	Operator               // operator
	LParen                 // left paren
	RParen                 // right paren
	Comma                  // comma
	EOF                    // end of input
)

// Token is a lexical unit of an equation.
type Token struct {
	Lexeme string
	Pos    Position
	Kind   Kind
	// Implicit marks a multiplication operator inserted between adjacent
	// operands.
	Implicit bool
	// Command marks an identifier written as a LaTeX command (\sin).
	Command bool
}

func (t Token) String() string {
	if t.Kind == EOF {
		return t.Kind.String()
	}

	return t.Kind.String() + " " + quoteLexeme(t.Lexeme)
}

func quoteLexeme(s string) string { return "'" + s + "'" }

// closer returns the closing lexeme matching an opening group lexeme.
func closer(open string) string {
	if open == "{" {
		return "}"
	}

	return ")"
}

// LaTeX commands with fixed meanings.
var (
	skipCommands = map[string]bool{
		"left": true, "right": true, "quad": true, "qquad": true,
		"displaystyle": true,
	}
	opCommands = map[string]string{"cdot": "*", "times": "*", "div": "/"}
	// nameCommands take the name they set upright as a brace argument.
	nameCommands = map[string]bool{"operatorname": true, "mathrm": true}
)

// Tokenize lexes text into a sequence of tokens ending with [EOF].
//
// The sequence is lazy and may be ranged over any number of times; each
// range re-lexes text from the start. On invalid input the sequence yields
// a single *[LexError] and stops. The error's Index is -1; use [AtIndex] to
// attribute it to an equation.
//
// An implicit multiplication operator is inserted between a number,
// identifier, or closing group and a following number, identifier, or
// opening group. An identifier directly followed by an opening group is a
// call and is left alone.
func Tokenize(text string) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		lx := lexer{src: text, pos: Position{Line: 1, Column: 1}}

		var (
			prev     Token
			havePrev bool
		)

		for {
			tok, err := lx.next()
			if err != nil {
				yield(Token{}, err)

				return
			}

			if havePrev && lx.implicitProduct(prev, tok) {
				star := Token{Kind: Operator, Lexeme: "*", Pos: tok.Pos, Implicit: true}
				if !yield(star, nil) {
					return
				}
			}

			if !yield(tok, nil) || tok.Kind == EOF {
				return
			}

			prev, havePrev = tok, true
		}
	}
}

type lexer struct {
	src string
	// pending holds tokens already split from a letter run.
	pending []Token
	// groups records, for each open brace group, whether it is a command
	// argument.
	groups []bool
	pos    Position
	// argClosed is set when the last closed brace group was a command
	// argument, so a following brace group is the next argument.
	argClosed bool
}

func (lx *lexer) peek() (rune, int) {
	if lx.pos.Offset >= len(lx.src) {
		return utf8.RuneError, 0
	}

	return utf8.DecodeRuneInString(lx.src[lx.pos.Offset:])
}

func (lx *lexer) advance(n int) {
	for range n {
		r, size := lx.peek()
		if size == 0 {
			return
		}

		lx.pos.Offset += size

		if r == '\n' {
			lx.pos.Line++
			lx.pos.Column = 1
		} else {
			lx.pos.Column++
		}
	}
}

func (lx *lexer) fail(r rune) error {
	return &LexError{Index: -1, Pos: lx.pos, Char: r}
}

func isLetter(r rune) bool { return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }

func (lx *lexer) next() (Token, error) {
	if len(lx.pending) > 0 {
		tok := lx.pending[0]
		lx.pending = lx.pending[1:]

		return tok, nil
	}

	for {
		r, size := lx.peek()
		if size == 0 {
			return Token{Kind: EOF, Pos: lx.pos}, nil
		}

		start := lx.pos

		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			lx.advance(1)

			continue

		case isDigit(r) || r == '.':
			return lx.number()

		case isLetter(r):
			return lx.identifier()

		case r == '\\':
			tok, skip, err := lx.command()
			if err != nil {
				return Token{}, err
			}

			if skip {
				continue
			}

			return tok, nil

		case strings.ContainsRune("+-*/^", r):
			lx.advance(1)

			return Token{Kind: Operator, Lexeme: string(r), Pos: start}, nil

		case r == '(' || r == '{':
			lx.advance(1)

			if r == '{' {
				lx.groups = append(lx.groups, false)
			}

			return Token{Kind: LParen, Lexeme: string(r), Pos: start}, nil

		case r == ')' || r == '}':
			lx.advance(1)

			if r == '}' && len(lx.groups) > 0 {
				lx.argClosed = lx.groups[len(lx.groups)-1]
				lx.groups = lx.groups[:len(lx.groups)-1]
			}

			return Token{Kind: RParen, Lexeme: string(r), Pos: start}, nil

		case r == ',':
			lx.advance(1)

			return Token{Kind: Comma, Lexeme: ",", Pos: start}, nil

		default:
			return Token{}, lx.fail(r)
		}
	}
}

// number lexes digits, an optional fraction, and an optional exponent.
// An exponent marker without digits is left for the next token.
func (lx *lexer) number() (Token, error) {
	start := lx.pos
	s := lx.src[start.Offset:]
	n, digits := 0, 0

	for n < len(s) && isDigit(rune(s[n])) {
		n++
		digits++
	}

	if n < len(s) && s[n] == '.' {
		n++

		for n < len(s) && isDigit(rune(s[n])) {
			n++
			digits++
		}
	}

	if digits == 0 {
		return Token{}, lx.fail('.')
	}

	if n < len(s) && (s[n] == 'e' || s[n] == 'E') {
		m := n + 1
		if m < len(s) && (s[m] == '+' || s[m] == '-') {
			m++
		}

		if m < len(s) && isDigit(rune(s[m])) {
			for m < len(s) && isDigit(rune(s[m])) {
				m++
			}

			n = m
		}
	}

	lx.advance(n)

	return Token{Kind: Number, Lexeme: s[:n], Pos: start}, nil
}

// identifier lexes letters, optional digits, and an optional subscript.
// A bare run of letters that is not a known symbol is split into known
// symbols when possible, so "iz" reads as i·z.
func (lx *lexer) identifier() (Token, error) {
	start := lx.pos
	s := lx.src[start.Offset:]

	letters := 0
	for letters < len(s) && isLetter(rune(s[letters])) {
		letters++
	}

	n := letters
	for n < len(s) && isDigit(rune(s[n])) {
		n++
	}

	name := s[:n]

	if n < len(s) && s[n] == '_' {
		sub, width, ok := subscript(s[n+1:])
		if !ok {
			lx.advance(n)

			return Token{}, lx.fail('_')
		}

		name += "_" + sub
		lx.advance(n + 1 + width)

		return Token{Kind: Identifier, Lexeme: name, Pos: start}, nil
	}

	lx.advance(n)

	if n == letters {
		if parts := splitSymbols(name); len(parts) > 1 {
			toks := make([]Token, len(parts))
			pos := start

			for i, part := range parts {
				toks[i] = Token{Kind: Identifier, Lexeme: part, Pos: pos}
				pos.Offset += len(part)
				pos.Column += len(part)
			}

			lx.pending = append(lx.pending, toks[1:]...)

			return toks[0], nil
		}
	}

	return Token{Kind: Identifier, Lexeme: name, Pos: start}, nil
}

// subscript reads a single letter or digit, or a brace group of letters and
// digits. It returns the subscript text and the number of bytes consumed.
func subscript(s string) (string, int, bool) {
	if s == "" {
		return "", 0, false
	}

	if isLetter(rune(s[0])) || isDigit(rune(s[0])) {
		return s[:1], 1, true
	}

	if s[0] != '{' {
		return "", 0, false
	}

	end := strings.IndexByte(s, '}')
	if end < 2 {
		return "", 0, false
	}

	for _, r := range s[1:end] {
		if !isLetter(r) && !isDigit(r) {
			return "", 0, false
		}
	}

	return s[1:end], end + 1, true
}

// splitSymbols splits a run of letters into the longest known symbol
// names, left to right. It returns nil when the run is itself a symbol or
// cannot be covered entirely by symbols.
func splitSymbols(run string) []string {
	if _, ok := symbols[run]; ok {
		return nil
	}

	var parts []string

	for len(run) > 0 {
		n := len(run)
		for ; n > 0; n-- {
			if _, ok := symbols[run[:n]]; ok {
				break
			}
		}

		if n == 0 {
			return nil
		}

		parts = append(parts, run[:n])
		run = run[n:]
	}

	return parts
}

// command lexes a LaTeX command. Spacing and sizing commands are skipped.
func (lx *lexer) command() (tok Token, skip bool, err error) {
	start := lx.pos
	s := lx.src[start.Offset+1:]

	n := 0
	for n < len(s) && isLetter(rune(s[n])) {
		n++
	}

	if n == 0 {
		if s != "" && strings.ContainsRune(",;:! ", rune(s[0])) {
			lx.advance(2)

			return Token{}, true, nil
		}

		return Token{}, false, lx.fail('\\')
	}

	name := s[:n]
	lx.advance(1 + n)

	switch {
	case skipCommands[name]:
		return Token{}, true, nil
	case nameCommands[name]:
		tok, err := lx.upright(start)

		return tok, false, err
	case opCommands[name] != "":
		return Token{Kind: Operator, Lexeme: opCommands[name], Pos: start}, false, nil
	default:
		return Token{Kind: Identifier, Lexeme: name, Pos: start, Command: true}, false, nil
	}
}

// upright lexes the {name} argument of \operatorname or \mathrm as a single
// command identifier at start, so \operatorname{Re}(z) is a call to Re.
func (lx *lexer) upright(start Position) (Token, error) {
	for {
		r, _ := lx.peek()
		if r != ' ' && r != '\t' {
			break
		}

		lx.advance(1)
	}

	if r, _ := lx.peek(); r != '{' {
		return Token{}, lx.fail(r)
	}

	lx.advance(1)

	s := lx.src[lx.pos.Offset:]

	letters := 0
	for letters < len(s) && isLetter(rune(s[letters])) {
		letters++
	}

	n := letters
	for n < len(s) && isDigit(rune(s[n])) {
		n++
	}

	if letters == 0 || n == len(s) || s[n] != '}' {
		lx.advance(n)

		r, _ := lx.peek()

		return Token{}, lx.fail(r)
	}

	lx.advance(n + 1)

	return Token{Kind: Identifier, Lexeme: s[:n], Pos: start, Command: true}, nil
}

// implicitProduct reports whether a multiplication is implied between prev
// and next. Brace groups after a command, or after a command argument, are
// further arguments; their opening brace is marked as such.
func (lx *lexer) implicitProduct(prev, next Token) bool {
	if next.Kind == LParen && next.Lexeme == "{" {
		isArg := prev.Kind == Identifier && prev.Command ||
			prev.Kind == RParen && prev.Lexeme == "}" && lx.argClosed
		lx.groups[len(lx.groups)-1] = isArg

		if isArg {
			return false
		}
	}

	switch prev.Kind {
	case Number, RParen:
	case Identifier:
		if next.Kind == LParen && next.Lexeme == "(" {
			return false
		}
	default:
		return false
	}

	switch next.Kind {
	case Number, Identifier, LParen:
		return true
	default:
		return false
	}
}
