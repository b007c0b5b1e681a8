package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ardnew/domcol/lang"
	"github.com/ardnew/domcol/plot"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

// pipeStdin replaces os.Stdin with a pipe carrying content until the test
// ends.
func pipeStdin(t *testing.T, content string) {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	old := os.Stdin
	os.Stdin = r

	t.Cleanup(func() {
		os.Stdin = old
		r.Close()
	})

	go func() {
		defer w.Close()

		_, _ = io.WriteString(w, content)
	}()
}

func TestWithEquationFilesEmpty(t *testing.T) {
	for _, sources := range [][]string{nil, {}} {
		ctx := WithEquationFiles(context.Background(), sources)
		if files := equationFilesFrom(ctx); files != nil {
			t.Errorf("WithEquationFiles(%v) stored %+v, want nil", sources, files)
		}
	}
}

func TestEquationFiles(t *testing.T) {
	dir := t.TempDir()

	first := writeFile(t, filepath.Join(dir, "first.txt"),
		"% poles\n1/z\n\n  z^2+1  \n")
	second := writeFile(t, filepath.Join(dir, "second.txt"), "sin(z)\n")

	link := filepath.Join(dir, "link.txt")
	if err := os.Symlink(first, link); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		sources []string
		want    []string
	}{
		{
			name:    "single",
			sources: []string{first},
			want:    []string{"1/z", "z^2+1"},
		},
		{
			name:    "in_order",
			sources: []string{second, first},
			want:    []string{"sin(z)", "1/z", "z^2+1"},
		},
		{
			name:    "duplicate_path",
			sources: []string{first, second, first},
			want:    []string{"1/z", "z^2+1", "sin(z)"},
		},
		{
			name:    "symlink_duplicate",
			sources: []string{link, first},
			want:    []string{"1/z", "z^2+1"},
		},
		{
			name:    "nonexistent_skipped",
			sources: []string{filepath.Join(dir, "missing.txt"), second},
			want:    []string{"sin(z)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := equationFilesFrom(WithEquationFiles(context.Background(), tt.sources))
			if files == nil {
				t.Fatal("no equation files stored")
			}

			got, err := files.Equations()
			if err != nil {
				t.Fatal(err)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWithEquationFilesAllNonexistent(t *testing.T) {
	dir := t.TempDir()

	ctx := WithEquationFiles(context.Background(), []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.txt"),
	})

	if files := equationFilesFrom(ctx); files != nil {
		t.Errorf("got %+v, want nil", files)
	}
}

func TestEquationFilesStdinLast(t *testing.T) {
	file := writeFile(t, filepath.Join(t.TempDir(), "file.txt"), "z\n")

	pipeStdin(t, "1/z\n% skipped\n")

	files := equationFilesFrom(WithEquationFiles(context.Background(),
		[]string{stdinSource, file, stdinSource}))
	if files == nil {
		t.Fatal("no equation files stored")
	}

	got, err := files.Equations()
	if err != nil {
		t.Fatal(err)
	}

	if want := []string{"z", "1/z"}; !slices.Equal(got, want) {
		t.Errorf("got %q, want %q (stdin read once, last)", got, want)
	}
}

func TestInput(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "poles.yaml"),
		"equations:\n  - 1/z\nview:\n  scale: 8\n")
	file := writeFile(t, filepath.Join(dir, "list.txt"), "z^2\n")

	ctx := WithScene(context.Background(), "poles", dir)
	ctx = WithEquationFiles(ctx, []string{file})

	sc, err := input(ctx, []string{"sin(z)"})
	if err != nil {
		t.Fatal(err)
	}

	if want := []string{"1/z", "z^2", "sin(z)"}; !slices.Equal(sc.Equations, want) {
		t.Errorf("equations = %q, want %q", sc.Equations, want)
	}

	if sc.View.Scale != 8 {
		t.Errorf("scale = %v, want 8", sc.View.Scale)
	}
}

func TestInputDefaultScene(t *testing.T) {
	sc, err := input(context.Background(), []string{"z"})
	if err != nil {
		t.Fatal(err)
	}

	if want := []string{"z"}; !slices.Equal(sc.Equations, want) {
		t.Errorf("equations = %q, want %q", sc.Equations, want)
	}

	if sc.View.Width != 512 || sc.View.Height != 512 {
		t.Errorf("view = %+v, want the default view", sc.View)
	}
}

func TestInputMissingScene(t *testing.T) {
	ctx := WithScene(context.Background(), "no-such-scene", t.TempDir())

	if _, err := input(ctx, nil); err == nil {
		t.Error("expected an error for a missing scene")
	}
}

func TestReport(t *testing.T) {
	ctx := context.Background()

	if err := report(ctx, plot.Compile(ctx, []string{"z", "1/z"})); err != nil {
		t.Errorf("report = %v, want nil", err)
	}

	err := report(ctx, plot.Compile(ctx, []string{"z", "w", "(z"}))
	if err == nil {
		t.Fatal("expected errors for rejected equations")
	}

	for _, want := range []error{lang.ErrValidate, lang.ErrParse} {
		if !errors.Is(err, want) {
			t.Errorf("report = %v, want it to match %v", err, want)
		}
	}
}
