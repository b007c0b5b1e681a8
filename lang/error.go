package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Sentinel errors. Stage errors match these with [errors.Is].
var (
	ErrLex      = NewError("lex error")
	ErrParse    = NewError("parse error")
	ErrValidate = NewError("validation error")
)

// Error is an error with optional structured logging attributes.
// It implements both error and [slog.LogValuer].
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError returns err as an *Error, wrapping it if necessary.
func WrapError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{err: err}
}

func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the same sentinel as e. Copies made by
// [Error.Wrap] and [Error.With] keep matching their origin.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg != "" && t.msg == e.msg && len(t.attrs) == 0 && t.err == nil
}

// LogValue implements [slog.LogValuer].
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.Any("cause", e.err))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e wrapping err.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err, attrs: e.attrs}
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	merged := make([]slog.Attr, 0, len(e.attrs)+len(attrs))
	merged = append(merged, e.attrs...)
	merged = append(merged, attrs...)

	return &Error{msg: e.msg, err: e.err, attrs: merged}
}

// prefix renders the "equation N: L:C: " lead-in shared by stage errors.
func prefix(index int, pos Position) string {
	var b strings.Builder

	if index >= 0 {
		fmt.Fprintf(&b, "equation %d: ", index)
	}

	if pos.IsValid() {
		b.WriteString(pos.String())
		b.WriteString(": ")
	}

	return b.String()
}

// LexError reports a character the tokenizer does not accept.
type LexError struct {
	Index int
	Pos   Position
	Char  rune
}

func (e *LexError) Error() string {
	return prefix(e.Index, e.Pos) + fmt.Sprintf("unexpected character %q", e.Char)
}

func (e *LexError) Unwrap() error { return ErrLex }

func (e *LexError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrLex.msg),
		slog.Int("equation", e.Index),
		slog.Any("pos", e.Pos),
		slog.String("char", string(e.Char)),
	)
}

// ParseError reports a grammar violation.
type ParseError struct {
	Index   int
	Pos     Position
	Message string
}

func (e *ParseError) Error() string {
	return prefix(e.Index, e.Pos) + e.Message
}

func (e *ParseError) Unwrap() error { return ErrParse }

func (e *ParseError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrParse.msg),
		slog.Int("equation", e.Index),
		slog.Any("pos", e.Pos),
		slog.String("message", e.Message),
	)
}

// ValidationKind classifies a [ValidationError].
type ValidationKind int

//go:generate go tool stringer --linecomment --type ValidationKind,Kind,SymbolKind --output kind_string.go

const (
	UnknownIdentifier ValidationKind = iota // unknown identifier
	ArityMismatch                           // arity mismatch
)

// ValidationError reports a symbol that is not in the symbol table or is
// used with the wrong number of arguments. Want and Got are the expected
// and actual argument counts of an [ArityMismatch].
type ValidationError struct {
	Index  int
	Kind   ValidationKind
	Symbol string
	Pos    Position
	Want   int
	Got    int
}

func (e *ValidationError) Error() string {
	s := prefix(e.Index, e.Pos)

	switch e.Kind {
	case ArityMismatch:
		return s + fmt.Sprintf("%s: %q takes %d argument%s, got %d",
			e.Kind, e.Symbol, e.Want, plural(e.Want), e.Got)
	default:
		return s + fmt.Sprintf("%s %q", e.Kind, e.Symbol)
	}
}

func (e *ValidationError) Unwrap() error { return ErrValidate }

func (e *ValidationError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", ErrValidate.msg),
		slog.Int("equation", e.Index),
		slog.String("kind", e.Kind.String()),
		slog.String("symbol", e.Symbol),
		slog.Any("pos", e.Pos),
	}

	if e.Kind == ArityMismatch {
		attrs = append(attrs, slog.Int("want", e.Want), slog.Int("got", e.Got))
	}

	return slog.GroupValue(attrs...)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}

	return "s"
}

// AtIndex returns a copy of err with its equation index set to index.
// Errors that carry no index are returned unchanged.
func AtIndex(err error, index int) error {
	var (
		lex *LexError
		par *ParseError
		val *ValidationError
	)

	switch {
	case errors.As(err, &lex):
		c := *lex
		c.Index = index

		return &c
	case errors.As(err, &par):
		c := *par
		c.Index = index

		return &c
	case errors.As(err, &val):
		c := *val
		c.Index = index

		return &c
	default:
		return err
	}
}
