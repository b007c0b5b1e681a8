package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNativeWrite(t *testing.T) {
	tests := []struct {
		name      string
		equations []string
		want      string
		wantErr   bool
	}{
		{
			name:      "normalized",
			equations: []string{"z^2+1", `\frac{1}{z}`, "(z)"},
			want:      "z^2 + 1\nfrac(1, z)\nz\n",
		},
		{
			name:      "rejected_skipped",
			equations: []string{"z", "w", "sin(z)"},
			want:      "z\nsin(z)\n",
			wantErr:   true,
		},
		{
			name:      "all_rejected",
			equations: []string{"(z"},
			want:      "",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			f := &Native{Equations: tt.equations}

			err := f.write(context.Background(), &buf)
			if (err != nil) != tt.wantErr {
				t.Fatalf("write() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil && !errors.Is(err, ErrStrict) {
				t.Errorf("write() error = %v, want %v", err, ErrStrict)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJSONWrite(t *testing.T) {
	var buf bytes.Buffer

	j := &JSON{Indent: 2, Equations: []string{"z", "w", "1/z"}}
	if err := j.write(context.Background(), &buf); !errors.Is(err, ErrStrict) {
		t.Errorf("write() error = %v, want %v", err, ErrStrict)
	}

	got := buf.String()
	for _, want := range []string{`"index": 0`, `"index": 2`, `"source": "1/z"`, `"op": "/"`} {
		if !strings.Contains(got, want) {
			t.Errorf("output lacks %q:\n%s", want, got)
		}
	}

	if strings.Contains(got, `"index": 1`) {
		t.Errorf("rejected equation printed:\n%s", got)
	}
}

func TestYAMLWrite(t *testing.T) {
	var buf bytes.Buffer

	y := &YAML{Indent: 2, Equations: []string{"sin(z)"}}
	if err := y.write(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	for _, want := range []string{"type: call", "name: sin", "index: 0"} {
		if !strings.Contains(got, want) {
			t.Errorf("output lacks %q:\n%s", want, got)
		}
	}
}

func TestASTWrite(t *testing.T) {
	var buf bytes.Buffer

	a := &AST{Equations: []string{"-z"}}
	if err := a.write(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}

	want := "Unary - @1:1\n└─ Variable z @1:2\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
