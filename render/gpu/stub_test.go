//go:build !gpu

package gpu

import (
	"context"
	"errors"
	"testing"

	"github.com/ardnew/domcol/render"
)

func TestUnavailable(t *testing.T) {
	if Available {
		t.Fatal("Available without the gpu tag")
	}

	if _, err := New().Compile(context.Background(), ""); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Compile: got %v, want ErrUnavailable", err)
	}

	b := render.NewBridge(New())
	defer b.Close()

	if err := Run(context.Background(), b, render.DefaultView, "test"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Run: got %v, want ErrUnavailable", err)
	}
}
