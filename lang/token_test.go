package lang

import (
	"errors"
	"iter"
	"slices"
	"testing"
)

// lexemes renders a token sequence compactly; implicit products print as
// "×" and EOF is omitted.
func lexemes(t *testing.T, text string) []string {
	t.Helper()

	var out []string

	for tok, err := range Tokenize(text) {
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", text, err)
		}

		switch {
		case tok.Kind == EOF:
		case tok.Implicit:
			out = append(out, "×")
		default:
			out = append(out, tok.Lexeme)
		}
	}

	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"z^2 + 1", []string{"z", "^", "2", "+", "1"}},
		{"2z", []string{"2", "×", "z"}},
		{"2(z+1)", []string{"2", "×", "(", "z", "+", "1", ")"}},
		{"(z)(z)", []string{"(", "z", ")", "×", "(", "z", ")"}},
		{"sin(z)", []string{"sin", "(", "z", ")"}},
		{"iz", []string{"i", "×", "z"}},
		{"pie", []string{"pi", "×", "e"}},
		{"foo", []string{"foo"}},
		{"2e", []string{"2", "×", "e"}},
		{"1.5e-3z", []string{"1.5e-3", "×", "z"}},
		{".5", []string{".5"}},
		{"z_1", []string{"z_1"}},
		{"z_{12}", []string{"z_12"}},
		{"z2", []string{"z2"}},
		{`\frac{1}{z}`, []string{"frac", "{", "1", "}", "{", "z", "}"}},
		{`z{2}`, []string{"z", "×", "{", "2", "}"}},
		{`{z}{z}`, []string{"{", "z", "}", "×", "{", "z", "}"}},
		{`\sin\left(z\right)`, []string{"sin", "(", "z", ")"}},
		{`2\cdot z`, []string{"2", "*", "z"}},
		{`\pi z`, []string{"pi", "×", "z"}},
		{`z\,+\;1`, []string{"z", "+", "1"}},
		{"pow(z, 2)", []string{"pow", "(", "z", ",", "2", ")"}},
		{`\left(z\right)`, []string{"(", "z", ")"}},
		{`z\quad+\qquad1`, []string{"z", "+", "1"}},
		{`\displaystyle z^2`, []string{"z", "^", "2"}},
		{`\operatorname{Re}(z)`, []string{"Re", "(", "z", ")"}},
		{`\mathrm{Im}\left(z\right)`, []string{"Im", "(", "z", ")"}},
		{`\operatorname {Re}{z}`, []string{"Re", "{", "z", "}"}},
		{`2\mathrm{Re}(z)`, []string{"2", "×", "Re", "(", "z", ")"}},
		{`\mathrm{e}^z`, []string{"e", "^", "z"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := lexemes(t, tt.in); !slices.Equal(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTokenize_EndsWithEOF(t *testing.T) {
	var last Token

	for tok, err := range Tokenize("z + 1") {
		if err != nil {
			t.Fatal(err)
		}

		last = tok
	}

	if last.Kind != EOF {
		t.Errorf("got %v, want EOF", last.Kind)
	}

	if last.Pos.Offset != 5 {
		t.Errorf("EOF offset: got %d, want 5", last.Pos.Offset)
	}
}

func TestTokenize_Restartable(t *testing.T) {
	seq := Tokenize("2z^2 - sin(z)")

	first := slices.Collect(keys(seq))
	second := slices.Collect(keys(seq))

	if !slices.Equal(first, second) {
		t.Errorf("second pass differs:\n%v\n%v", first, second)
	}
}

func TestTokenize_StopsEarly(t *testing.T) {
	n := 0

	for range Tokenize("z + z + z") {
		n++
		if n == 2 {
			break
		}
	}

	if n != 2 {
		t.Errorf("got %d tokens, want 2", n)
	}
}

func TestTokenize_Positions(t *testing.T) {
	var got []Position

	for tok := range keys(Tokenize("z +\n 12")) {
		got = append(got, tok.Pos)
	}

	want := []Position{
		{Offset: 0, Line: 1, Column: 1},
		{Offset: 2, Line: 1, Column: 3},
		{Offset: 5, Line: 2, Column: 2},
		{Offset: 7, Line: 2, Column: 4},
	}

	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTokenize_Errors(t *testing.T) {
	tests := []struct {
		in   string
		char rune
		pos  Position
	}{
		{"z # 1", '#', Position{Offset: 2, Line: 1, Column: 3}},
		{"z_", '_', Position{Offset: 1, Line: 1, Column: 2}},
		{`\%`, '\\', Position{Offset: 0, Line: 1, Column: 1}},
		{"2π", 'π', Position{Offset: 1, Line: 1, Column: 2}},
		{".", '.', Position{Offset: 0, Line: 1, Column: 1}},
		{"[z]", '[', Position{Offset: 0, Line: 1, Column: 1}},
		{`\operatorname z`, 'z', Position{Offset: 14, Line: 1, Column: 15}},
		{`\mathrm{R e}`, ' ', Position{Offset: 9, Line: 1, Column: 10}},
		{`\mathrm{}`, '}', Position{Offset: 8, Line: 1, Column: 9}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var err error

			for _, e := range Tokenize(tt.in) {
				if e != nil {
					err = e
				}
			}

			var lex *LexError
			if !errors.As(err, &lex) {
				t.Fatalf("got %v, want *LexError", err)
			}

			if lex.Char != tt.char || lex.Pos != tt.pos {
				t.Errorf("got %q at %+v, want %q at %+v", lex.Char, lex.Pos, tt.char, tt.pos)
			}

			if !errors.Is(err, ErrLex) {
				t.Errorf("%v does not match ErrLex", err)
			}

			if lex.Index != -1 {
				t.Errorf("index: got %d, want -1", lex.Index)
			}
		})
	}
}

func keys(seq iter.Seq2[Token, error]) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for tok, err := range seq {
			if err != nil || !yield(tok) {
				return
			}
		}
	}
}
