package shader

import (
	"fmt"
	"log/slog"

	"github.com/ardnew/domcol/lang"
)

// ErrCodegen matches every *[CodegenError].
var ErrCodegen = lang.NewError("codegen error")

// CodegenError reports a tree the generator cannot represent. A validated
// tree never produces one; it indicates a fault in an earlier stage.
type CodegenError struct {
	Index   int
	Pos     lang.Position
	Message string
}

func (e *CodegenError) Error() string {
	s := ""
	if e.Index >= 0 {
		s = fmt.Sprintf("equation %d: ", e.Index)
	}

	if e.Pos.IsValid() {
		s += e.Pos.String() + ": "
	}

	return s + e.Message
}

func (e *CodegenError) Unwrap() error { return ErrCodegen }

func (e *CodegenError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrCodegen.Error()),
		slog.Int("equation", e.Index),
		slog.Any("pos", e.Pos),
		slog.String("message", e.Message),
	)
}
