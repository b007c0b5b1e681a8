package lang

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func TestError(t *testing.T) {
	err := ErrParse.Wrap(io.EOF).With(slog.Int("equation", 1))

	if !errors.Is(err, ErrParse) {
		t.Errorf("%v does not match ErrParse", err)
	}

	if !errors.Is(err, io.EOF) {
		t.Errorf("%v does not match io.EOF", err)
	}

	if errors.Is(err, ErrLex) {
		t.Errorf("%v matches ErrLex", err)
	}

	if got, want := err.Error(), "parse error: EOF"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if got := WrapError(io.EOF).Error(); got != "EOF" {
		t.Errorf("got %q, want %q", got, "EOF")
	}

	if got := WrapError(err); got != err {
		t.Errorf("WrapError rewrapped an *Error")
	}
}

func TestStageErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{
			&LexError{Index: 1, Pos: Position{Offset: 2, Line: 1, Column: 3}, Char: '#'},
			`equation 1: 1:3: unexpected character '#'`,
		},
		{
			&ParseError{Index: -1, Pos: Position{Offset: 2, Line: 1, Column: 3}, Message: "unexpected end of input"},
			`1:3: unexpected end of input`,
		},
		{
			&ValidationError{Index: 2, Kind: UnknownIdentifier, Symbol: "w", Pos: Position{Line: 1, Column: 1}},
			`equation 2: 1:1: unknown identifier "w"`,
		},
		{
			&ValidationError{
				Index: 0, Kind: ArityMismatch, Symbol: "sin",
				Pos: Position{Line: 1, Column: 1}, Want: 1, Got: 2,
			},
			`equation 0: 1:1: arity mismatch: "sin" takes 1 argument, got 2`,
		},
		{
			&ValidationError{
				Index: 0, Kind: ArityMismatch, Symbol: "pow",
				Pos: Position{Line: 1, Column: 1}, Want: 2, Got: 1,
			},
			`equation 0: 1:1: arity mismatch: "pow" takes 2 arguments, got 1`,
		},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestAtIndex(t *testing.T) {
	orig := &ParseError{Index: -1, Message: "empty expression"}

	got := AtIndex(orig, 5)

	var pe *ParseError
	if !errors.As(got, &pe) || pe.Index != 5 {
		t.Fatalf("got %v, want index 5", got)
	}

	if orig.Index != -1 {
		t.Errorf("AtIndex modified its argument")
	}

	if got := AtIndex(io.EOF, 5); got != io.EOF {
		t.Errorf("got %v, want io.EOF unchanged", got)
	}
}
