//go:build !gpu

package cmd

import (
	"context"
	"errors"
	"testing"
)

func TestPlotWithoutGPU(t *testing.T) {
	p := &Plot{Equations: []string{"z"}}

	if err := p.Run(context.Background()); !errors.Is(err, ErrNoGPU) {
		t.Errorf("Run() error = %v, want %v", err, ErrNoGPU)
	}
}
