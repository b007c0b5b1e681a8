package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// String renders the tree in infix notation with the fewest parentheses
// that preserve its structure.
func (ast *AST) String() string {
	if ast == nil || ast.Root == nil {
		return ""
	}

	return Format(ast.Root)
}

// Format renders n in infix notation.
func Format(n Node) string {
	var b strings.Builder

	formatNode(&b, n, precNone)

	return b.String()
}

func formatNode(b *strings.Builder, n Node, parent int) {
	prec := nodePrec(n)
	if prec < parent {
		b.WriteByte('(')
		defer b.WriteByte(')')
	}

	switch n := n.(type) {
	case *NumberLit:
		b.WriteString(formatNumber(n.Value))

	case *Var:
		b.WriteString(n.Name)

	case *Unary:
		b.WriteString("-")
		formatNode(b, n.Operand, precUnary)

	case *Binary:
		left, right := prec, prec+1
		if n.Op == OpPow {
			left, right = prec+1, prec
		}

		formatNode(b, n.Left, left)

		if n.Op == OpPow {
			b.WriteString(n.Op.String())
		} else {
			b.WriteString(" " + n.Op.String() + " ")
		}

		formatNode(b, n.Right, right)

	case *Call:
		b.WriteString(n.Name)
		b.WriteByte('(')

		for i, arg := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}

			formatNode(b, arg, precNone)
		}

		b.WriteByte(')')
	}
}

// ToMap converts the tree to nested maps for JSON and YAML encoding.
func (ast *AST) ToMap() map[string]any {
	return map[string]any{
		"index":  ast.Index,
		"source": ast.Source,
		"root":   nodeMap(ast.Root),
	}
}

func nodeMap(n Node) map[string]any {
	switch n := n.(type) {
	case *NumberLit:
		return map[string]any{"type": "number", "value": n.Value}
	case *Var:
		return map[string]any{"type": "variable", "name": n.Name}
	case *Unary:
		return map[string]any{"type": "unary", "op": n.Op.String(), "operand": nodeMap(n.Operand)}
	case *Binary:
		return map[string]any{
			"type":  "binary",
			"op":    n.Op.String(),
			"left":  nodeMap(n.Left),
			"right": nodeMap(n.Right),
		}
	case *Call:
		args := make([]any, len(n.Args))
		for i, arg := range n.Args {
			args[i] = nodeMap(arg)
		}

		return map[string]any{"type": "call", "name": n.Name, "args": args}
	default:
		return nil
	}
}

// FormatJSON writes the trees as a JSON array.
func FormatJSON(_ context.Context, w io.Writer, indent int, asts ...*AST) error {
	list := make([]map[string]any, len(asts))
	for i, ast := range asts {
		list[i] = ast.ToMap()
	}

	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(list, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(list)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the trees as a YAML sequence. A non-positive indent
// selects flow style.
func FormatYAML(ctx context.Context, w io.Writer, indent int, asts ...*AST) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	list := make([]map[string]any, len(asts))
	for i, ast := range asts {
		list[i] = ast.ToMap()
	}

	data, err := yaml.MarshalContext(ctx, list, opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

// Print writes the tree as an indented outline.
func (ast *AST) Print(w io.Writer) error {
	return printNode(w, ast.Root, "", "")
}

func printNode(w io.Writer, n Node, lead, indent string) error {
	var (
		label    string
		children []Node
	)

	switch n := n.(type) {
	case *NumberLit:
		label = "Number " + formatNumber(n.Value)
	case *Var:
		label = "Variable " + n.Name
	case *Unary:
		label, children = "Unary -", []Node{n.Operand}
	case *Binary:
		label, children = "Binary "+n.Op.String(), []Node{n.Left, n.Right}
	case *Call:
		label, children = "Call "+n.Name, n.Args
	}

	if _, err := fmt.Fprintf(w, "%s%s @%s\n", lead, label, n.Pos()); err != nil {
		return err
	}

	for i, c := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}

		if err := printNode(w, c, indent+branch, indent+next); err != nil {
			return err
		}
	}

	return nil
}
