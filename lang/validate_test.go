package lang

import (
	"context"
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	valid := []string{
		"z^2+1",
		"exp(iz)",
		`\frac{1}{z}`,
		"Re(z) + Im(z)",
		"pi*e",
		"sqrt(z)",
		"abs(z) + arg(z)",
		"pow(z, 1/2)",
		`\overline{z}`,
		"ln(z) - log(z)",
		"sinh(z) cosh(z) tanh(z)",
		`\operatorname{Re}\left(z\right) + \mathrm{Im}(z)`,
	}

	for _, text := range valid {
		t.Run(text, func(t *testing.T) {
			ast := mustParse(t, text)

			got, err := Validate(context.Background(), ast)
			if err != nil {
				t.Fatalf("Validate(%q): %v", text, err)
			}

			if got != ast {
				t.Errorf("Validate returned a different tree")
			}
		})
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		in     string
		kind   ValidationKind
		symbol string
		want   int
		got    int
	}{
		{"w+1", UnknownIdentifier, "w", 0, 0},
		{"foo(z)", UnknownIdentifier, "foo", 0, 0},
		{"z(2)", UnknownIdentifier, "z", 0, 0},
		{"z_1", UnknownIdentifier, "z_1", 0, 0},
		{"sin(w)", UnknownIdentifier, "w", 0, 0},
		{"w + foo(z)", UnknownIdentifier, "w", 0, 0},
		{"sin(z, 1)", ArityMismatch, "sin", 1, 2},
		{"frac(z)", ArityMismatch, "frac", 2, 1},
		{`\frac{1}{z}{2}`, ArityMismatch, "frac", 2, 3},
		{"sin + 1", ArityMismatch, "sin", 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ast := mustParse(t, tt.in, WithIndex(3))

			res, err := Validate(context.Background(), ast)
			if res != nil {
				t.Errorf("got tree %q, want nil", res)
			}

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("got %v, want *ValidationError", err)
			}

			if ve.Kind != tt.kind || ve.Symbol != tt.symbol {
				t.Errorf("got %v %q, want %v %q", ve.Kind, ve.Symbol, tt.kind, tt.symbol)
			}

			if ve.Kind == ArityMismatch && (ve.Want != tt.want || ve.Got != tt.got) {
				t.Errorf("arity: got want=%d got=%d, want want=%d got=%d",
					ve.Want, ve.Got, tt.want, tt.got)
			}

			if ve.Index != 3 {
				t.Errorf("index: got %d, want 3", ve.Index)
			}

			if !errors.Is(err, ErrValidate) {
				t.Errorf("%v does not match ErrValidate", err)
			}
		})
	}
}

func TestSymbols(t *testing.T) {
	var prev string

	n := 0

	for s := range Symbols() {
		if s.Name <= prev {
			t.Errorf("%q listed after %q", s.Name, prev)
		}

		if s.Kind == SymbolFunction && s.Routine == "" {
			t.Errorf("%q has no routine", s.Name)
		}

		prev = s.Name
		n++
	}

	if n == 0 {
		t.Fatal("empty symbol table")
	}

	if s, ok := Lookup("frac"); !ok || s.Arity() != 2 {
		t.Errorf("frac: got %+v, want arity 2", s)
	}

	if s, ok := Lookup("i"); !ok || s.Value != complex(0, 1) {
		t.Errorf("i: got %+v", s)
	}

	if _, ok := Lookup("w"); ok {
		t.Errorf("w is not a symbol")
	}
}

func TestRoutines(t *testing.T) {
	got := Routines()

	for _, want := range []string{"c_div", "c_exp", "c_log", "c_pow", "c_sin"} {
		found := false

		for _, r := range got {
			if r == want {
				found = true
			}
		}

		if !found {
			t.Errorf("routine %q missing from %v", want, got)
		}
	}
}
