package lang

import (
	"iter"
	"strconv"

	"github.com/ardnew/domcol/log"
)

// Op is an arithmetic operator.
type Op byte

const (
	OpAdd Op = '+'
	OpSub Op = '-'
	OpMul Op = '*'
	OpDiv Op = '/'
	OpPow Op = '^'
	OpNeg Op = '~' // unary minus
)

func (o Op) String() string {
	if o == OpNeg {
		return "-"
	}

	return string(rune(o))
}

// Node is an expression tree node. The concrete types are *[NumberLit],
// *[Var], *[Binary], *[Unary], and *[Call].
type Node interface {
	// Pos returns the position of the token that begins the node.
	Pos() Position
	node()
}

// NumberLit is a real numeric literal.
type NumberLit struct {
	Literal string
	Value   float64
	At      Position
}

// Var references the plane coordinate or a named constant.
type Var struct {
	Name string
	At   Position
}

// Binary applies a binary operator.
type Binary struct {
	Left, Right Node
	At          Position
	Op          Op
	// Implicit is set when the operator was implied by juxtaposition.
	Implicit bool
}

// Unary applies unary minus.
type Unary struct {
	Operand Node
	At      Position
	Op      Op
}

// Call applies a named function.
type Call struct {
	Name string
	Args []Node
	At   Position
}

func (n *NumberLit) Pos() Position { return n.At }
func (n *Var) Pos() Position       { return n.At }
func (n *Binary) Pos() Position    { return n.At }
func (n *Unary) Pos() Position     { return n.At }
func (n *Call) Pos() Position      { return n.At }

func (*NumberLit) node() {}
func (*Var) node()       {}
func (*Binary) node()    {}
func (*Unary) node()     {}
func (*Call) node()      {}

// AST is the parsed form of one equation.
type AST struct {
	Root   Node
	logger log.Logger
	Source string
	Index  int
}

// All returns an iterator over every node in pre-order.
func (ast *AST) All() iter.Seq[Node] {
	return Walk(ast.Root)
}

// Walk returns an iterator over n and its descendants in pre-order.
func Walk(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		walk(n, yield)
	}
}

func walk(n Node, yield func(Node) bool) bool {
	if n == nil {
		return true
	}

	if !yield(n) {
		return false
	}

	switch n := n.(type) {
	case *Binary:
		return walk(n.Left, yield) && walk(n.Right, yield)
	case *Unary:
		return walk(n.Operand, yield)
	case *Call:
		for _, arg := range n.Args {
			if !walk(arg, yield) {
				return false
			}
		}
	}

	return true
}

// Clone returns a copy of ast whose tree shares no nodes with ast.
func (ast *AST) Clone() *AST {
	out := *ast
	out.Root = CloneNode(ast.Root)

	return &out
}

// CloneNode returns a deep copy of n.
func CloneNode(n Node) Node {
	switch n := n.(type) {
	case *NumberLit:
		c := *n

		return &c
	case *Var:
		c := *n

		return &c
	case *Binary:
		c := *n
		c.Left, c.Right = CloneNode(n.Left), CloneNode(n.Right)

		return &c
	case *Unary:
		c := *n
		c.Operand = CloneNode(n.Operand)

		return &c
	case *Call:
		c := *n
		c.Args = make([]Node, len(n.Args))

		for i, arg := range n.Args {
			c.Args[i] = CloneNode(arg)
		}

		return &c
	default:
		return nil
	}
}

// Equal reports whether a and b have the same shape, operators, names, and
// values. Positions are ignored.
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case *NumberLit:
		b, ok := b.(*NumberLit)

		return ok && a.Value == b.Value
	case *Var:
		b, ok := b.(*Var)

		return ok && a.Name == b.Name
	case *Binary:
		b, ok := b.(*Binary)

		return ok && a.Op == b.Op && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case *Unary:
		b, ok := b.(*Unary)

		return ok && a.Op == b.Op && Equal(a.Operand, b.Operand)
	case *Call:
		b, ok := b.(*Call)
		if !ok || a.Name != b.Name || len(a.Args) != len(b.Args) {
			return false
		}

		for i := range a.Args {
			if !Equal(a.Args[i], b.Args[i]) {
				return false
			}
		}

		return true
	default:
		return a == nil && b == nil
	}
}

// Binding powers. Higher binds tighter.
const (
	precNone = iota
	precSum
	precProduct
	precUnary
	precPower
	precAtom
)

func binaryPrec(op Op) int {
	switch op {
	case OpAdd, OpSub:
		return precSum
	case OpMul, OpDiv:
		return precProduct
	case OpPow:
		return precPower
	default:
		return precNone
	}
}

func nodePrec(n Node) int {
	switch n := n.(type) {
	case *Binary:
		return binaryPrec(n.Op)
	case *Unary:
		return precUnary
	default:
		return precAtom
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
