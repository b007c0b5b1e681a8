package lang

import (
	"context"
	"log/slog"
)

// Validate checks every name in ast against the symbol table and every
// call against its function's arity. It reports the first violation in
// pre-order as a *[ValidationError] and returns ast unchanged on success.
//
// A name that is not in the table, or a call to something that is not a
// function, is an [UnknownIdentifier]. A function used as a value, or
// called with the wrong number of arguments, is an [ArityMismatch].
func Validate(ctx context.Context, ast *AST, opts ...Option) (*AST, error) {
	applyOptions(ast, opts...)

	for n := range ast.All() {
		err := validateNode(n)
		if err == nil {
			continue
		}

		err.Index = ast.Index

		ast.logger.TraceContext(ctx, "validation failed",
			slog.Any("error", err),
		)

		return nil, err
	}

	ast.logger.TraceContext(ctx, "validated", slog.Int("equation", ast.Index))

	return ast, nil
}

func validateNode(n Node) *ValidationError {
	switch n := n.(type) {
	case *Var:
		sym, ok := Lookup(n.Name)

		switch {
		case !ok:
			return &ValidationError{Kind: UnknownIdentifier, Symbol: n.Name, Pos: n.At}
		case sym.Kind == SymbolFunction:
			return &ValidationError{
				Kind: ArityMismatch, Symbol: n.Name, Pos: n.At,
				Want: sym.Arity(), Got: 0,
			}
		}

	case *Call:
		sym, ok := Lookup(n.Name)

		switch {
		case !ok || sym.Kind != SymbolFunction:
			return &ValidationError{Kind: UnknownIdentifier, Symbol: n.Name, Pos: n.At}
		case sym.Arity() != len(n.Args):
			return &ValidationError{
				Kind: ArityMismatch, Symbol: n.Name, Pos: n.At,
				Want: sym.Arity(), Got: len(n.Args),
			}
		}
	}

	return nil
}
