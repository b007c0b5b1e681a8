package scene

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want View
		eqs  []string
	}{
		{
			name: "yaml",
			doc: `equations:
  - z^2 + 1
  - \frac{1}{z}
view:
  center: [1, -0.5]
  scale: 2
  width: 320
  height: 200
`,
			want: View{Center: [2]float64{1, -0.5}, Scale: 2, Width: 320, Height: 200},
			eqs:  []string{"z^2 + 1", `\frac{1}{z}`},
		},
		{
			name: "json",
			doc:  `{"equations": ["sin(z)"], "view": {"scale": 8}}`,
			want: View{Scale: 8, Width: 512, Height: 512},
			eqs:  []string{"sin(z)"},
		},
		{
			name: "defaults",
			doc:  "equations: []\n",
			want: Default().View,
			eqs:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Load(context.Background(), strings.NewReader(tt.doc))
			if err != nil {
				t.Fatal(err)
			}

			if s.View != tt.want {
				t.Errorf("view: got %+v, want %+v", s.View, tt.want)
			}

			if !slices.Equal(s.Equations, tt.eqs) {
				t.Errorf("equations: got %q, want %q", s.Equations, tt.eqs)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown field", "equations: []\ncolor: red\n", ErrDecode},
		{"bad type", "equations: 3\n", ErrDecode},
		{"zero scale", "view:\n  scale: 0\n", ErrView},
		{"negative size", "view:\n  width: -1\n", ErrView},
		{"short center", "view:\n  center: [1]\n", ErrView},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), strings.NewReader(tt.doc))
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestView_Render(t *testing.T) {
	v := View{Center: [2]float64{1, 2}, Scale: 3, Width: 4, Height: 5}.Render()

	if v.Center != complex(1, 2) || v.Scale != 3 || v.Width != 4 || v.Height != 5 {
		t.Errorf("got %+v", v)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.yaml")

	if err := os.WriteFile(path, []byte("equations: [z]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFile(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(s.Equations, []string{"z"}) {
		t.Errorf("got %q, want [z]", s.Equations)
	}

	_, err = LoadFile(context.Background(), filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, ErrRead) || !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("got %v, want ErrRead wrapping fs.ErrNotExist", err)
	}
}

func TestSearchIn(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()

	for _, p := range []string{
		filepath.Join(second, "spiral.yaml"),
		filepath.Join(second, "poles.json"),
		filepath.Join(first, "poles.json"),
	} {
		if err := os.WriteFile(p, []byte("equations: []\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name, want string
	}{
		{"spiral", filepath.Join(second, "spiral.yaml")},
		{"spiral.yaml", filepath.Join(second, "spiral.yaml")},
		{"poles", filepath.Join(first, "poles.json")},
	}

	for _, tt := range tests {
		got, err := SearchIn(tt.name, first, second)
		if err != nil {
			t.Errorf("%s: %v", tt.name, err)

			continue
		}

		if got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}

	if _, err := SearchIn("nothing", first, second); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}

	direct := filepath.Join(second, "spiral.yaml")
	if got, err := Search(direct); err != nil || got != direct {
		t.Errorf("Search(%q): got %q, %v", direct, got, err)
	}
}

func TestSearchPath(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	extra := t.TempDir()
	missing := filepath.Join(extra, "missing")

	got := SearchPath(extra, missing)

	if !slices.Contains(got, cwd) {
		t.Errorf("%q lacks the working directory", got)
	}

	if got[len(got)-1] != extra {
		t.Errorf("%q does not end with %q", got, extra)
	}

	if slices.Contains(got, missing) {
		t.Errorf("%q includes a missing directory", got)
	}
}
