// Package lang is the front end of the domain coloring compiler. It turns
// the text of one equation into a validated expression tree.
//
// # Stages
//
//   - [Tokenize] lexes text into a lazy, restartable token sequence and
//     inserts implicit multiplication between adjacent operands.
//   - [Parse] builds an [AST] with a Pratt parser.
//   - [Validate] checks the tree against the fixed symbol table.
//
// Each stage fails with a typed error ([LexError], [ParseError],
// [ValidationError]) that matches its sentinel ([ErrLex], [ErrParse],
// [ErrValidate]) with [errors.Is] and carries the index of the equation in
// its list.
//
// # Grammar
//
// Informal EBNF, lowest precedence first:
//
//	Expr    → Sum
//	Sum     → Product (('+' | '-') Product)*
//	Product → Unary (('*' | '/' | implicit) Unary)*
//	Unary   → ('-' | '+') Unary | Power
//	Power   → Primary ('^' Unary)?
//	Primary → Number | Identifier | Call | '(' Expr ')' | '{' Expr '}'
//	Call    → Identifier '(' Expr (',' Expr)* ')'
//	        | Identifier ('{' Expr '}')+
//
// Exponentiation is right-associative and binds tighter than unary minus,
// so -z^2 is -(z^2) and 2^-z is 2^(-z).
//
// # LaTeX input
//
// Equation editors emit LaTeX, so the tokenizer also accepts \commands
// (\sin, \pi, \frac), brace groups, \cdot and \times, and ignores \left,
// \right and LaTeX spacing. A command followed by brace groups is a call
// with one argument per group:
//
//	\frac{1}{z^2+1}   ≡   frac(1, z^2+1)
//
// # Symbols
//
// [Symbols] lists the closed table of names an equation may use: the plane
// coordinate z, the constants i, pi and e, and the complex functions.
package lang
