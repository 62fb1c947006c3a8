package system

import (
	"fmt"
	"os"

	"github.com/nutrilog/nutrilog/internal/cli"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nutrilog/nutrilog/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	day, err := ctx.Today()
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(ctx.Store, ctx.Tracker, day), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}
