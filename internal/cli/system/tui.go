package system

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/cli"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/share"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	var sink share.Sink
	if !clipboard.Unsupported {
		sink = share.Clipboard{}
	}

	m := tui.NewModel(tui.Deps{
		Habits:   ctx.Habits,
		Moods:    ctx.Moods,
		Water:    ctx.Water,
		Reminder: ctx.Reminder,
		Settings: ctx.Settings,
		Share:    sink,
		Now:      ctx.Now,
		OnChange: ctx.RefreshWidget,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
