package cmd

import (
	"context"

	"github.com/ardnew/domcol/cli/cmd/edit"
	"github.com/ardnew/domcol/log"
)

// Edit opens the interactive equation editor with a terminal preview.
type Edit struct {
	View viewFlags `embed:""`

	Equations []string `arg:"" help:"Equations appended to the input." optional:""`
}

// Run executes the edit command.
func (e *Edit) Run(ctx context.Context) error {
	sc, err := input(ctx, e.Equations)
	if err != nil {
		return err
	}

	sv, err := e.View.apply(sc.View)
	if err != nil {
		return err
	}

	return edit.Run(ctx, sc.Equations, sv.Render(), log.Default())
}
