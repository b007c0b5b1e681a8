package lang

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"math"
	"strconv"

	"github.com/ardnew/domcol/log"
)

// Option configures parsing and validation.
type Option func(*AST)

// WithLogger sets the logger used for trace records. The zero logger
// discards everything.
func WithLogger(logger log.Logger) Option {
	return func(ast *AST) { ast.logger = logger }
}

// WithIndex sets the index of the equation in its list. Errors carry it.
func WithIndex(index int) Option {
	return func(ast *AST) { ast.Index = index }
}

// WithSource records the source text on the returned [AST].
func WithSource(text string) Option {
	return func(ast *AST) { ast.Source = text }
}

func applyOptions(ast *AST, opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(ast)
		}
	}
}

// ParseString tokenizes and parses text.
func ParseString(ctx context.Context, text string, opts ...Option) (*AST, error) {
	return Parse(ctx, Tokenize(text), append([]Option{WithSource(text)}, opts...)...)
}

// Parse builds an [AST] from a token sequence. Errors yielded by the
// sequence are returned with the equation index applied.
func Parse(ctx context.Context, tokens iter.Seq2[Token, error], opts ...Option) (*AST, error) {
	ast := &AST{Index: -1}
	applyOptions(ast, opts...)

	next, stop := iter.Pull2(tokens)
	defer stop()

	p := &parser{next: next, index: ast.Index}

	root, err := p.parseEquation()
	if err != nil {
		ast.logger.TraceContext(ctx, "parse failed",
			slog.Int("equation", ast.Index),
			slog.String("error", err.Error()),
		)

		return nil, err
	}

	ast.Root = root

	ast.logger.TraceContext(ctx, "parsed",
		slog.Int("equation", ast.Index),
		slog.Int("tokens", p.count),
		slog.String("tree", ast.String()),
	)

	return ast, nil
}

// parser holds the parser state: a pulled token stream with one token of
// lookahead.
type parser struct {
	next  func() (Token, error, bool)
	tok   Token
	index int
	count int
}

// parseEquation parses one complete expression followed by EOF.
func (p *parser) parseEquation() (Node, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.tok.Kind == EOF {
		return nil, p.errorf(p.tok.Pos, "empty expression")
	}

	root, err := p.parseExpr(precSum)
	if err != nil {
		return nil, err
	}

	switch p.tok.Kind {
	case EOF:
		return root, nil
	case RParen:
		return nil, p.errorf(p.tok.Pos, "unbalanced grouping: unexpected %s", quoteLexeme(p.tok.Lexeme))
	default:
		return nil, p.errorf(p.tok.Pos, "unexpected trailing %s", p.tok)
	}
}

func (p *parser) advance() error {
	tok, err, ok := p.next()

	switch {
	case err != nil:
		return AtIndex(err, p.index)
	case !ok:
		// Treat a sequence without EOF as if it had one.
		tok = Token{Kind: EOF, Pos: p.tok.Pos}
	default:
		p.count++
	}

	p.tok = tok

	return nil
}

func (p *parser) errorf(pos Position, format string, args ...any) error {
	return &ParseError{Index: p.index, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) binaryOp() (Op, bool) {
	if p.tok.Kind != Operator {
		return 0, false
	}

	switch op := Op(p.tok.Lexeme[0]); op {
	case OpAdd, OpSub, OpMul, OpDiv, OpPow:
		return op, true
	}

	return 0, false
}

// parseExpr parses operators binding at least as tightly as minPrec.
func (p *parser) parseExpr(minPrec int) (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := p.binaryOp()
		if !ok {
			return left, nil
		}

		prec := binaryPrec(op)
		if prec < minPrec {
			return left, nil
		}

		implicit := p.tok.Implicit

		if err := p.advance(); err != nil {
			return nil, err
		}

		// Exponentiation is right-associative: its right side may contain
		// another '^' at the same precedence.
		rightPrec := prec + 1
		if op == OpPow {
			rightPrec = precPower
		}

		right, err := p.parseExpr(rightPrec)
		if err != nil {
			return nil, err
		}

		left = &Binary{Op: op, Left: left, Right: right, At: left.Pos(), Implicit: implicit}
	}
}

// parseUnary parses an optional sign followed by its operand. A sign binds
// looser than '^', so -z^2 is -(z^2).
func (p *parser) parseUnary() (Node, error) {
	sign := p.tok
	if sign.Kind != Operator || sign.Lexeme != "-" && sign.Lexeme != "+" {
		return p.parsePrimary()
	}

	if err := p.advance(); err != nil {
		return nil, err
	}

	operand, err := p.parseExpr(precUnary)
	if err != nil {
		return nil, err
	}

	if sign.Lexeme == "+" {
		return operand, nil
	}

	return &Unary{Op: OpNeg, Operand: operand, At: sign.Pos}, nil
}

func (p *parser) parsePrimary() (Node, error) {
	tok := p.tok

	switch tok.Kind {
	case Number:
		v, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, p.errorf(tok.Pos, "invalid number %q", tok.Lexeme)
		}

		// Shaders evaluate in single precision.
		if v > math.MaxFloat32 {
			return nil, p.errorf(tok.Pos, "number %q out of range", tok.Lexeme)
		}

		if err := p.advance(); err != nil {
			return nil, err
		}

		return &NumberLit{Literal: tok.Lexeme, Value: v, At: tok.Pos}, nil

	case Identifier:
		if err := p.advance(); err != nil {
			return nil, err
		}

		switch {
		case p.tok.Kind == LParen && p.tok.Lexeme == "(":
			return p.parseCall(tok)
		case p.tok.Kind == LParen:
			return p.parseBraceCall(tok)
		default:
			return &Var{Name: tok.Lexeme, At: tok.Pos}, nil
		}

	case LParen:
		if err := p.advance(); err != nil {
			return nil, err
		}

		inner, err := p.parseExpr(precSum)
		if err != nil {
			return nil, err
		}

		return inner, p.expectClose(tok)

	case RParen:
		return nil, p.errorf(tok.Pos, "unbalanced grouping: unexpected %s", quoteLexeme(tok.Lexeme))

	case EOF:
		return nil, p.errorf(tok.Pos, "unexpected end of input")

	default:
		return nil, p.errorf(tok.Pos, "unexpected %s", tok)
	}
}

// expectClose consumes the group closer matching open.
func (p *parser) expectClose(open Token) error {
	want := closer(open.Lexeme)

	switch {
	case p.tok.Kind == RParen && p.tok.Lexeme == want:
		return p.advance()
	case p.tok.Kind == RParen:
		return p.errorf(p.tok.Pos, "unbalanced grouping: %s closed by %s",
			quoteLexeme(open.Lexeme), quoteLexeme(p.tok.Lexeme))
	case p.tok.Kind == EOF:
		return p.errorf(open.Pos, "unbalanced grouping: missing %s", quoteLexeme(want))
	default:
		return p.errorf(p.tok.Pos, "unexpected %s, expected %s", p.tok, quoteLexeme(want))
	}
}

// parseCall parses a parenthesized, comma-separated argument list.
func (p *parser) parseCall(name Token) (Node, error) {
	open := p.tok

	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.tok.Kind == RParen {
		return nil, p.errorf(p.tok.Pos, "empty argument list for %q", name.Lexeme)
	}

	var args []Node

	for {
		arg, err := p.parseExpr(precSum)
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		if p.tok.Kind != Comma {
			break
		}

		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if err := p.expectClose(open); err != nil {
		return nil, err
	}

	return &Call{Name: name.Lexeme, Args: args, At: name.Pos}, nil
}

// parseBraceCall parses one argument per consecutive brace group, as in
// \frac{a}{b}.
func (p *parser) parseBraceCall(name Token) (Node, error) {
	var args []Node

	for p.tok.Kind == LParen && p.tok.Lexeme == "{" {
		open := p.tok

		if err := p.advance(); err != nil {
			return nil, err
		}

		if p.tok.Kind == RParen {
			return nil, p.errorf(p.tok.Pos, "empty argument for %q", name.Lexeme)
		}

		arg, err := p.parseExpr(precSum)
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		if err := p.expectClose(open); err != nil {
			return nil, err
		}
	}

	return &Call{Name: name.Lexeme, Args: args, At: name.Pos}, nil
}
