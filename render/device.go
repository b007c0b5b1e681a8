package render

import "context"

// Device compiles shader source into programs.
type Device interface {
	// Compile builds a program from source. It should return promptly
	// with the context's cause when ctx is canceled. Any other error is
	// reported to the caller as a [DeviceCompileError] with the error's
	// text as diagnostics.
	Compile(ctx context.Context, source string) (Program, error)
}

// Program is a compiled shader owned by a [Bridge].
type Program interface {
	// Source returns the text the program was compiled from.
	Source() string
	// Release frees device resources. The program is unusable afterward.
	Release()
}

// Surface is a drawable target. The bridge compiles only while a surface
// with a positive area is attached.
type Surface interface {
	Size() (width, height int)
}

// DeviceFunc adapts a function to the [Device] interface.
type DeviceFunc func(ctx context.Context, source string) (Program, error)

// Compile calls f.
func (f DeviceFunc) Compile(ctx context.Context, source string) (Program, error) {
	return f(ctx, source)
}

// Size is a fixed-size [Surface].
type Size struct{ Width, Height int }

// Size implements [Surface].
func (s Size) Size() (int, int) { return s.Width, s.Height }

func validSurface(s Surface) bool {
	if s == nil {
		return false
	}

	w, h := s.Size()

	return w > 0 && h > 0
}
