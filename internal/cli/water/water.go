package water

import (
	"strings"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/cli"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/models"
)

type WaterCmd struct {
	Status WaterStatusCmd `cmd:"" help:"Show today's water intake." default:"1"`
	Add    WaterAddCmd    `cmd:"" help:"Record a glass of water."`
	Goal   WaterGoalCmd   `cmd:"" help:"Set the daily goal in glasses."`
	Reset  WaterResetCmd  `cmd:"" help:"Reset today's intake to zero."`
}

type WaterStatusCmd struct{}

func (c *WaterStatusCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Water.Status()
	if err != nil {
		return err
	}
	printStatus(ctx, st)
	return nil
}

type WaterAddCmd struct{}

func (c *WaterAddCmd) Run(ctx *cli.Context) error {
	st, added, err := ctx.Water.AddGlass()
	if err != nil {
		return err
	}
	if !added {
		ctx.Println("🎉 You've reached your water goal!")
		return nil
	}
	ctx.RefreshWidget()
	printStatus(ctx, st)
	return nil
}

type WaterGoalCmd struct {
	Glasses int `arg:"" help:"Daily goal (1-20 glasses)."`
}

func (c *WaterGoalCmd) Run(ctx *cli.Context) error {
	if err := ctx.Water.SetGoal(c.Glasses); err != nil {
		return err
	}
	ctx.RefreshWidget()
	ctx.Printf("Daily water goal set to %d glasses.\n", c.Glasses)
	return nil
}

type WaterResetCmd struct{}

func (c *WaterResetCmd) Run(ctx *cli.Context) error {
	if err := ctx.Water.Reset(); err != nil {
		return err
	}
	ctx.RefreshWidget()
	ctx.Println("Today's water intake reset.")
	return nil
}

func printStatus(ctx *cli.Context, st models.WaterStatus) {
	filled := st.Current
	if filled > st.Goal {
		filled = st.Goal
	}
	bar := strings.Repeat("💧", filled) + strings.Repeat("·", st.Goal-filled)
	ctx.Printf("%d/%d glasses (%d%%) %s\n", st.Current, st.Goal, st.Percentage, bar)
	ctx.Println(st.Message)
}
