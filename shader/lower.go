package shader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ardnew/domcol/lang"
)

// Function is one lowered equation.
type Function struct {
	// Body is the dialect-neutral expression returned by the function.
	Body  string
	Index int
}

// Name returns the generated function name, equation_<Index>.
func (f Function) Name() string { return FunctionName(f.Index) }

// Source returns the function declaration in dialect d.
func (f Function) Source(d Dialect) string {
	if d == Kage {
		return fmt.Sprintf("func %s(z vec2) vec2 { return %s }", f.Name(), f.Body)
	}

	return fmt.Sprintf("vec2 %s(vec2 z) { return %s; }", f.Name(), f.Body)
}

// Lower renders a validated tree as an expression over vec2 values.
// The expression is valid in every [Dialect].
func Lower(ast *lang.AST) (string, error) {
	if ast == nil || ast.Root == nil {
		return "", &CodegenError{Index: -1, Message: "empty tree"}
	}

	var b strings.Builder

	if err := lower(&b, ast.Root); err != nil {
		err.Index = ast.Index

		return "", err
	}

	return b.String(), nil
}

// Generate lowers ast to the function for the equation at index.
func Generate(ast *lang.AST, index int, dialect Dialect) (string, error) {
	body, err := Lower(ast)
	if err != nil {
		return "", err
	}

	return Function{Index: index, Body: body}.Source(dialect), nil
}

var binaryRoutines = map[lang.Op]string{
	lang.OpAdd: "c_add",
	lang.OpSub: "c_sub",
	lang.OpMul: "c_mul",
	lang.OpDiv: "c_div",
	lang.OpPow: "c_pow",
}

func lower(b *strings.Builder, n lang.Node) *CodegenError {
	switch n := n.(type) {
	case *lang.NumberLit:
		b.WriteString(vec2(n.Value, 0))

	case *lang.Var:
		sym, ok := lang.Lookup(n.Name)

		switch {
		case !ok:
			return &CodegenError{Pos: n.At, Message: fmt.Sprintf("unresolved name %q", n.Name)}
		case sym.Kind == lang.SymbolVariable:
			b.WriteString(n.Name)
		case sym.Kind == lang.SymbolConstant:
			b.WriteString(vec2(real(sym.Value), imag(sym.Value)))
		default:
			return &CodegenError{Pos: n.At, Message: fmt.Sprintf("function %q used as a value", n.Name)}
		}

	case *lang.Unary:
		if n.Op != lang.OpNeg {
			return &CodegenError{Pos: n.At, Message: fmt.Sprintf("unsupported unary operator %q", n.Op)}
		}

		return call(b, "c_neg", n.Operand)

	case *lang.Binary:
		routine, ok := binaryRoutines[n.Op]
		if !ok {
			return &CodegenError{Pos: n.At, Message: fmt.Sprintf("unsupported operator %q", n.Op)}
		}

		return call(b, routine, n.Left, n.Right)

	case *lang.Call:
		sym, ok := lang.Lookup(n.Name)
		if !ok || sym.Kind != lang.SymbolFunction || sym.Arity() != len(n.Args) {
			return &CodegenError{Pos: n.At, Message: fmt.Sprintf("unresolved call to %q", n.Name)}
		}

		return call(b, sym.Routine, n.Args...)

	default:
		return &CodegenError{Message: fmt.Sprintf("unsupported node %T", n)}
	}

	return nil
}

func call(b *strings.Builder, routine string, args ...lang.Node) *CodegenError {
	b.WriteString(routine)
	b.WriteByte('(')

	for i, arg := range args {
		if i > 0 {
			b.WriteString(", ")
		}

		if err := lower(b, arg); err != nil {
			return err
		}
	}

	b.WriteByte(')')

	return nil
}

func vec2(re, im float64) string {
	return "vec2(" + floatLit(re) + ", " + floatLit(im) + ")"
}

// floatLit formats v as a floating-point literal. Both dialects need a
// decimal point or exponent to read a literal as a float.
func floatLit(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}

	return s
}
