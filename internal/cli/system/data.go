package system

import (
	"context"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/cli"
)

type DataCmd struct {
	Clear    DataClearCmd    `cmd:"" help:"Delete every stored habit, mood, setting and reminder."`
	ResetDay DataResetDayCmd `cmd:"" name:"reset-day" help:"Reset today's habit progress and water intake."`
}

type DataClearCmd struct {
	Yes bool `short:"y" help:"Do not ask for confirmation."`
}

func (c *DataClearCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := ctx.Confirm("This deletes ALL wellnest data. Continue?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Cancelled.")
			return nil
		}
	}
	// Cancel first so no alarm outlives the data.
	if err := ctx.Reminder.Cancel(context.Background()); err != nil {
		return err
	}
	if err := ctx.Store.Clear(); err != nil {
		return err
	}
	ctx.RefreshWidget()
	ctx.Println("All data cleared.")
	return nil
}

type DataResetDayCmd struct{}

func (c *DataResetDayCmd) Run(ctx *cli.Context) error {
	if err := ctx.Rollover.ResetNow(); err != nil {
		return err
	}
	ctx.RefreshWidget()
	ctx.Println("Today's progress reset.")
	return nil
}
