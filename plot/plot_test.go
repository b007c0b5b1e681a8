package plot

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math/cmplx"
	"strings"
	"sync"
	"testing"

	"github.com/ardnew/domcol/lang"
	"github.com/ardnew/domcol/render"
	"github.com/ardnew/domcol/render/cpu"
	"github.com/ardnew/domcol/shader"
)

func names(fs []shader.Function) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Name()
	}

	return out
}

func TestCompile_Positional(t *testing.T) {
	ctx := context.Background()

	res := Compile(ctx, []string{"z", "1/z"})
	if err := res.Errors(); err != nil {
		t.Fatal(err)
	}

	if got := fmt.Sprint(names(res.Functions())); got != "[equation_0 equation_1]" {
		t.Errorf("got %s, want [equation_0 equation_1]", got)
	}

	if strings.Index(res.Source, "equation_0(vec2 z)") > strings.Index(res.Source, "equation_1(vec2 z)") {
		t.Errorf("functions out of order")
	}

	res = Compile(ctx, []string{"1/z"})

	fs := res.Functions()
	if len(fs) != 1 || fs[0].Name() != "equation_0" || fs[0].Body != "c_div(vec2(1.0, 0.0), z)" {
		t.Errorf("got %+v, want equation_0 = 1/z", fs)
	}

	if strings.Contains(res.Source, "equation_1") {
		t.Errorf("program still references equation_1")
	}
}

func TestCompile_ScopedErrors(t *testing.T) {
	res := Compile(context.Background(), []string{"", "z*"}, WithDialect(shader.Kage))

	if len(res.Equations) != 2 {
		t.Fatalf("got %d equations, want 2", len(res.Equations))
	}

	for i, eq := range res.Equations {
		var pe *lang.ParseError
		if !errors.As(eq.Err, &pe) || pe.Index != i {
			t.Errorf("equation %d: got %v, want a ParseError at index %d", i, eq.Err, i)
		}
	}

	if len(res.Functions()) != 0 || strings.Contains(res.Source, "equation_") {
		t.Errorf("program has equation functions:\n%s", res.Source)
	}

	if !errors.Is(res.Errors(), lang.ErrParse) {
		t.Errorf("joined errors do not match ErrParse: %v", res.Errors())
	}

	// The program renders the background only.
	p, err := cpu.New().Compile(context.Background(), res.Source)
	if err != nil {
		t.Fatal(err)
	}

	img, err := p.(*cpu.Program).Render(context.Background(), render.View{Scale: 1, Width: 2, Height: 2})
	if err != nil {
		t.Fatal(err)
	}

	if got, want := img.RGBAAt(1, 1), (color.RGBA{R: 128, G: 128, B: 128, A: 255}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCompile_UnknownIdentifier(t *testing.T) {
	res := Compile(context.Background(), []string{"w", "z"})

	var ve *lang.ValidationError
	if !errors.As(res.Equations[0].Err, &ve) || ve.Kind != lang.UnknownIdentifier || ve.Index != 0 {
		t.Fatalf("got %v, want an unknown identifier at index 0", res.Equations[0].Err)
	}

	if strings.Contains(res.Source, "equation_0") {
		t.Errorf("failed equation is in the program")
	}

	if !strings.Contains(res.Source, "equation_1") {
		t.Errorf("valid equation is missing from the program")
	}
}

func TestCompile_Evaluates(t *testing.T) {
	for _, d := range shader.Dialects() {
		res := Compile(context.Background(), []string{"z^2+1"}, WithDialect(d))

		p, err := cpu.New().Compile(context.Background(), res.Source)
		if err != nil {
			t.Fatal(err)
		}

		for _, tt := range []struct{ z, want complex128 }{{1, 2}, {1i, 0}} {
			got, err := p.(*cpu.Program).Eval(0, tt.z)
			if err != nil {
				t.Fatal(err)
			}

			if cmplx.Abs(got-tt.want) > 1e-9 {
				t.Errorf("%v: z^2+1 at %v: got %v, want %v", d, tt.z, got, tt.want)
			}
		}
	}
}

func TestCompile_CachedErrorsReindexed(t *testing.T) {
	ClearCache()

	res := Compile(context.Background(), []string{"z*", "z", "z*"})

	for _, i := range []int{0, 2} {
		var pe *lang.ParseError
		if !errors.As(res.Equations[i].Err, &pe) || pe.Index != i {
			t.Errorf("equation %d: got %v", i, res.Equations[i].Err)
		}
	}

	if got := res.Equations[1].AST.Index; got != 1 {
		t.Errorf("tree index: got %d, want 1", got)
	}
}

func TestCompile_TreesNotShared(t *testing.T) {
	ClearCache()

	list := []string{"sin(z^2 + 1)", "sin(z^2 + 1)"}
	first := Compile(context.Background(), list)
	second := Compile(context.Background(), list)

	seen := make(map[lang.Node]string)

	for name, res := range map[string]*Result{"first": first, "second": second} {
		for i, eq := range res.Equations {
			if eq.AST == nil {
				t.Fatalf("%s equation %d: %v", name, i, eq.Err)
			}

			owner := fmt.Sprintf("%s equation %d", name, i)

			for n := range eq.AST.All() {
				if other, dup := seen[n]; dup {
					t.Fatalf("%s shares node %v with %s", owner, lang.Format(n), other)
				}

				seen[n] = owner
			}
		}
	}
}

func TestCompile_CacheMatchesUncached(t *testing.T) {
	list := []string{"sin(z)", `\frac{1}{z-1}`, "q", "e^{iz}"}

	ClearCache()

	cached := Compile(context.Background(), list)
	again := Compile(context.Background(), list)
	uncached := Compile(context.Background(), list, WithCache(false))

	if cached.Source != uncached.Source || again.Source != uncached.Source {
		t.Errorf("cached and uncached programs differ")
	}
}

func TestCompile_Snapshot(t *testing.T) {
	list := []string{"z"}
	res := Compile(context.Background(), list)
	list[0] = "w"

	if res.Equations[0].Source != "z" {
		t.Errorf("result aliases the caller's list")
	}
}

func TestCompile_Concurrent(t *testing.T) {
	ClearCache()

	var wg sync.WaitGroup

	for i := range 8 {
		wg.Go(func() {
			list := []string{"z^2", "1/z", fmt.Sprintf("z + %d", i%2)}

			if err := Compile(context.Background(), list).Errors(); err != nil {
				t.Error(err)
			}
		})
	}

	wg.Wait()
}

func TestSession(t *testing.T) {
	b := render.NewBridge(cpu.New())
	defer b.Close()

	if err := b.Attach(render.View{Scale: 4, Width: 4, Height: 4}); err != nil {
		t.Fatal(err)
	}

	list := []string{"z", "1/z"}
	s := NewSession(b, func() []string { return list })

	res, done := s.Plot(context.Background())
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	if got := b.Program().Source(); got != res.Source {
		t.Errorf("bridge program is not the compiled program")
	}

	list = list[1:]

	res, done = s.Plot(context.Background())
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	if got := len(res.Functions()); got != 1 {
		t.Errorf("got %d functions, want 1", got)
	}

	if got := b.Pulse().Seq(); got != 2 {
		t.Errorf("pulses: got %d, want 2", got)
	}

	if s.Bridge() != b {
		t.Errorf("Bridge returned a different bridge")
	}
}
