package lang

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func mustParse(t *testing.T, text string, opts ...Option) *AST {
	t.Helper()

	ast, err := ParseString(context.Background(), text, opts...)
	if err != nil {
		t.Fatalf("ParseString(%q): %v", text, err)
	}

	return ast
}

func TestParse(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"z", "z"},
		{"z^2+1", "z^2 + 1"},
		{"-z^2", "-z^2"},
		{"2^3^2", "2^3^2"},
		{"(2^3)^2", "(2^3)^2"},
		{"1-2-3", "1 - 2 - 3"},
		{"1-(2-3)", "1 - (2 - 3)"},
		{"2z^2", "2 * z^2"},
		{"2^-z", "2^(-z)"},
		{"z - -1", "z - -1"},
		{"+z", "z"},
		{"iz", "i * z"},
		{"1/2z", "1 / 2 * z"},
		{"sin(z)^2", "sin(z)^2"},
		{"pow(z, 2)", "pow(z, 2)"},
		{"(z+1)(z-1)", "(z + 1) * (z - 1)"},
		{`\frac{1}{z+1}`, "frac(1, z + 1)"},
		{`e^{iz}`, "e^(i * z)"},
		{`\sin\left(\pi z\right)`, "sin(pi * z)"},
		{"1.50", "1.5"},
		{`\operatorname{Re}\left(z\right)`, "Re(z)"},
		{`\mathrm{Im}(z)`, "Im(z)"},
		{`\displaystyle\frac{1}{z}`, "frac(1, z)"},
		{`\left(z+1\right)\quad z`, "(z + 1) * z"},
		{`z\qquad-1`, "z - 1"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ast := mustParse(t, tt.in)

			if got := ast.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}

			if ast.Source != tt.in {
				t.Errorf("source: got %q, want %q", ast.Source, tt.in)
			}

			// The rendered form parses back to the same tree.
			again := mustParse(t, ast.String())
			if !Equal(ast.Root, again.Root) {
				t.Errorf("round trip of %q changed the tree: %q", tt.in, again)
			}
		})
	}
}

func TestParse_Structure(t *testing.T) {
	ast := mustParse(t, "-z^2")

	neg, ok := ast.Root.(*Unary)
	if !ok {
		t.Fatalf("root: got %T, want *Unary", ast.Root)
	}

	if pow, ok := neg.Operand.(*Binary); !ok || pow.Op != OpPow {
		t.Errorf("operand: got %#v, want z^2", neg.Operand)
	}

	ast = mustParse(t, "2^3^2")

	top := ast.Root.(*Binary)
	if _, ok := top.Right.(*Binary); !ok {
		t.Errorf("2^3^2 is not right-associative: %#v", top)
	}

	ast = mustParse(t, "1-2-3")

	top = ast.Root.(*Binary)
	if _, ok := top.Left.(*Binary); !ok {
		t.Errorf("1-2-3 is not left-associative: %#v", top)
	}
}

func TestParse_Implicit(t *testing.T) {
	top, ok := mustParse(t, "2z").Root.(*Binary)
	if !ok || !top.Implicit || top.Op != OpMul {
		t.Errorf("got %#v, want implicit product", top)
	}

	top = mustParse(t, "2*z").Root.(*Binary)
	if top.Implicit {
		t.Errorf("explicit product marked implicit")
	}
}

func TestParse_Positions(t *testing.T) {
	top := mustParse(t, "z + 1").Root.(*Binary)

	if got, want := top.Pos(), (Position{Offset: 0, Line: 1, Column: 1}); got != want {
		t.Errorf("binary: got %+v, want %+v", got, want)
	}

	if got, want := top.Right.Pos(), (Position{Offset: 4, Line: 1, Column: 5}); got != want {
		t.Errorf("right: got %+v, want %+v", got, want)
	}
}

func TestParse_Deterministic(t *testing.T) {
	const text = `\frac{\sin(z)}{z^2 + 1} - 2iz`

	a := mustParse(t, text, WithIndex(1))
	b := mustParse(t, text, WithIndex(1))

	if !reflect.DeepEqual(a, b) {
		t.Errorf("parses of %q differ", text)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		in, msg string
		pos     Position
	}{
		{"", "empty expression", Position{Offset: 0, Line: 1, Column: 1}},
		{"   ", "empty expression", Position{Offset: 3, Line: 1, Column: 4}},
		{"z*", "unexpected end of input", Position{Offset: 2, Line: 1, Column: 3}},
		{"*z", "unexpected operator '*'", Position{Offset: 0, Line: 1, Column: 1}},
		{"(z", "unbalanced grouping: missing ')'", Position{Offset: 0, Line: 1, Column: 1}},
		{"z)", "unbalanced grouping: unexpected ')'", Position{Offset: 1, Line: 1, Column: 2}},
		{"(z}", "unbalanced grouping: '(' closed by '}'", Position{Offset: 2, Line: 1, Column: 3}},
		{"sin()", `empty argument list for "sin"`, Position{Offset: 4, Line: 1, Column: 5}},
		{"z,1", "unexpected trailing comma ','", Position{Offset: 1, Line: 1, Column: 2}},
		{`\frac{}{z}`, `empty argument for "frac"`, Position{Offset: 6, Line: 1, Column: 7}},
		{"z + 1e308", `number "1e308" out of range`, Position{Offset: 4, Line: 1, Column: 5}},
		{"1e400", `invalid number "1e400"`, Position{Offset: 0, Line: 1, Column: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseString(context.Background(), tt.in, WithIndex(4))

			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("got %v, want *ParseError", err)
			}

			if pe.Message != tt.msg {
				t.Errorf("message: got %q, want %q", pe.Message, tt.msg)
			}

			if pe.Pos != tt.pos {
				t.Errorf("pos: got %+v, want %+v", pe.Pos, tt.pos)
			}

			if pe.Index != 4 {
				t.Errorf("index: got %d, want 4", pe.Index)
			}

			if !errors.Is(err, ErrParse) {
				t.Errorf("%v does not match ErrParse", err)
			}

			if !strings.HasPrefix(err.Error(), "equation 4: ") {
				t.Errorf("message %q lacks the equation prefix", err)
			}
		})
	}
}

func TestParse_LexErrorIndexed(t *testing.T) {
	_, err := ParseString(context.Background(), "z#", WithIndex(2))

	var lex *LexError
	if !errors.As(err, &lex) {
		t.Fatalf("got %v, want *LexError", err)
	}

	if lex.Index != 2 || lex.Char != '#' {
		t.Errorf("got index %d char %q, want 2 '#'", lex.Index, lex.Char)
	}

	if errors.Is(err, ErrParse) {
		t.Errorf("lex error matches ErrParse")
	}
}

func TestParse_NoEOF(t *testing.T) {
	// A sequence that ends without EOF behaves as if it had one.
	seq := func(yield func(Token, error) bool) {
		yield(Token{Kind: Identifier, Lexeme: "z", Pos: Position{Line: 1, Column: 1}}, nil)
	}

	ast, err := Parse(context.Background(), seq)
	if err != nil {
		t.Fatal(err)
	}

	if got := ast.String(); got != "z" {
		t.Errorf("got %q, want %q", got, "z")
	}
}

func TestAST_Clone(t *testing.T) {
	ast := mustParse(t, `\frac{-z^2}{sin(z) + 1}`, WithIndex(3))
	c := ast.Clone()

	if !Equal(ast.Root, c.Root) || c.Index != 3 || c.Source != ast.Source {
		t.Fatalf("clone %q differs from %q", c, ast)
	}

	orig := make(map[Node]bool)
	for n := range ast.All() {
		orig[n] = true
	}

	for n := range c.All() {
		if orig[n] {
			t.Errorf("clone shares node %s", Format(n))
		}
	}

	c.Root.(*Call).Name = "pow"
	if ast.Root.(*Call).Name != "frac" {
		t.Errorf("renaming the clone changed the original to %q", ast.Root.(*Call).Name)
	}
}
