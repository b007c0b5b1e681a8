package lang

import (
	"log/slog"
	"strconv"
)

// Position locates a token in the source text of one equation.
// Offset is a 0-based byte offset; Line and Column are 1-based, with
// Column counted in runes.
type Position struct {
	Offset int `json:"offset" yaml:"offset"`
	Line   int `json:"line"   yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// IsValid reports whether p was set by the tokenizer.
func (p Position) IsValid() bool { return p.Line > 0 }

// LogValue implements [slog.LogValuer].
func (p Position) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("offset", p.Offset),
		slog.Int("line", p.Line),
		slog.Int("column", p.Column),
	)
}
