package lang

import (
	"iter"
	"maps"
	"math"
	"slices"
)

// SymbolKind classifies an entry in the symbol table.
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota // variable
	SymbolConstant                   // constant
	SymbolFunction                   // function
)

// Symbol is an entry in the closed table of names an equation may use.
type Symbol struct {
	// Value is the complex value of a constant.
	Value complex128
	// Name is the identifier as written in an equation.
	Name string
	// Routine names the complex library routine a function lowers to.
	Routine string
	// Doc is a one-line description shown by the editor.
	Doc string
	// Params names the parameters of a function.
	Params []string
	Kind   SymbolKind
}

// Arity returns the number of arguments a function symbol takes, or zero
// for variables and constants.
func (s Symbol) Arity() int { return len(s.Params) }

// Variable is the name of the complex plane coordinate.
const Variable = "z"

func fn(routine, doc string, params ...string) Symbol {
	return Symbol{Kind: SymbolFunction, Routine: routine, Doc: doc, Params: params}
}

var symbols = func() map[string]Symbol {
	table := map[string]Symbol{
		Variable: {Kind: SymbolVariable, Doc: "plane coordinate"},
		"i":      {Kind: SymbolConstant, Value: complex(0, 1), Doc: "imaginary unit"},
		"pi":     {Kind: SymbolConstant, Value: complex(math.Pi, 0), Doc: "ratio of circumference to diameter"},
		"e":      {Kind: SymbolConstant, Value: complex(math.E, 0), Doc: "base of the natural logarithm"},

		"exp":      fn("c_exp", "exponential", "w"),
		"ln":       fn("c_log", "principal natural logarithm", "w"),
		"log":      fn("c_log", "principal natural logarithm", "w"),
		"sin":      fn("c_sin", "sine", "w"),
		"cos":      fn("c_cos", "cosine", "w"),
		"tan":      fn("c_tan", "tangent", "w"),
		"sinh":     fn("c_sinh", "hyperbolic sine", "w"),
		"cosh":     fn("c_cosh", "hyperbolic cosine", "w"),
		"tanh":     fn("c_tanh", "hyperbolic tangent", "w"),
		"sqrt":     fn("c_sqrt", "principal square root", "w"),
		"conj":     fn("c_conj", "complex conjugate", "w"),
		"overline": fn("c_conj", "complex conjugate", "w"),
		"Re":       fn("c_re", "real part", "w"),
		"re":       fn("c_re", "real part", "w"),
		"Im":       fn("c_im", "imaginary part", "w"),
		"im":       fn("c_im", "imaginary part", "w"),
		"abs":      fn("c_abs", "modulus", "w"),
		"arg":      fn("c_arg", "argument (phase)", "w"),
		"frac":     fn("c_div", "quotient", "numerator", "denominator"),
		"pow":      fn("c_pow", "principal power", "base", "exponent"),
	}

	for name, sym := range table {
		sym.Name = name
		table[name] = sym
	}

	return table
}()

// Lookup returns the symbol named name.
func Lookup(name string) (Symbol, bool) {
	s, ok := symbols[name]

	return s, ok
}

// Symbols returns the symbol table ordered by name.
func Symbols() iter.Seq[Symbol] {
	return func(yield func(Symbol) bool) {
		for _, name := range slices.Sorted(maps.Keys(symbols)) {
			if !yield(symbols[name]) {
				return
			}
		}
	}
}

// Routines returns the distinct library routines used by function symbols,
// sorted.
func Routines() []string {
	seen := make(map[string]struct{})

	for _, s := range symbols {
		if s.Kind == SymbolFunction {
			seen[s.Routine] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(seen))
}
