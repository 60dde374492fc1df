package habits

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/cli"
	apperrors "github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/errors"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/models"
)

type HabitCmd struct {
	Add      HabitAddCmd      `cmd:"" help:"Add a new habit."`
	Edit     HabitEditCmd     `cmd:"" help:"Edit an existing habit."`
	Delete   HabitDeleteCmd   `cmd:"" help:"Delete a habit and today's progress for it."`
	List     HabitListCmd     `cmd:"" help:"List habits with today's progress." default:"1"`
	Progress HabitProgressCmd `cmd:"" help:"Record progress on a habit."`
	Undo     HabitUndoCmd     `cmd:"" help:"Remove one step of progress from a habit."`
	Seed     HabitSeedCmd     `cmd:"" help:"Add the sample habits when none exist."`
}

type HabitAddCmd struct {
	Name        string          `arg:"" help:"Habit name."`
	Target      int             `help:"Daily target (count, kcal, or 100 for percentage)." default:"1"`
	Description string          `help:"Optional description." default:""`
	Category    models.Category `help:"Progress category: count, calories or percentage." enum:"count,calories,percentage" default:"count"`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Habits.Find(c.Name); err == nil {
		return fmt.Errorf("habit with name %q already exists", c.Name)
	}
	h, err := ctx.Habits.Add(c.Name, c.Target, c.Description, c.Category)
	if err != nil {
		return err
	}
	ctx.RefreshWidget()
	ctx.Printf("Added habit: %s (%s)\n", h.Name, h.ID)
	return nil
}

type HabitEditCmd struct {
	Ref         string           `arg:"" help:"Habit id or name."`
	Name        *string          `help:"New name."`
	Target      *int             `help:"New daily target."`
	Description *string          `help:"New description."`
	Category    *models.Category `help:"New category: count, calories or percentage."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	h, err := findHabit(ctx, c.Ref)
	if err != nil {
		return err
	}
	if c.Name == nil && c.Target == nil && c.Description == nil && c.Category == nil {
		ctx.Println("No changes specified. Use --name, --target, --description or --category.")
		return nil
	}

	name, target, desc, category := h.Name, h.TargetCount, h.Description, h.Category
	if c.Name != nil {
		name = *c.Name
	}
	if c.Target != nil {
		target = *c.Target
	}
	if c.Description != nil {
		desc = *c.Description
	}
	if c.Category != nil {
		category = *c.Category
	}

	updated, ok, err := ctx.Habits.Edit(h.ID, name, target, desc, category)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("habit %q not found", c.Ref)
	}
	ctx.RefreshWidget()
	ctx.Printf("Updated habit: %s\n", updated.Name)
	return nil
}

type HabitDeleteCmd struct {
	Ref string `arg:"" help:"Habit id or name."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	h, err := findHabit(ctx, c.Ref)
	if err != nil {
		return err
	}
	if err := ctx.Habits.Delete(h.ID); err != nil {
		return err
	}
	ctx.RefreshWidget()
	ctx.Printf("Deleted habit: %s\n", h.Name)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	list, err := ctx.Habits.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		ctx.Println("No habits found. Add one with 'wellnest habit add <name>'.")
		return nil
	}

	stats, err := ctx.Habits.Stats()
	if err != nil {
		return err
	}
	ctx.Printf("Today's habits (%d/%d completed, %d%%):\n\n", stats.Completed, stats.Total, stats.CompletionRate)

	width := 0
	for _, h := range list {
		if n := len([]rune(h.Name)); n > width {
			width = n
		}
	}
	for _, h := range list {
		mark := " "
		if h.Completed {
			mark = "✓"
		}
		ctx.Printf("  [%s] %-*s  %-14s %3d%%  %s\n", mark, width, h.Name, h.Display, h.Percentage, h.ID)
		if strings.TrimSpace(h.Description) != "" {
			ctx.Printf("      %s\n", h.Description)
		}
	}
	return nil
}

type HabitProgressCmd struct {
	Ref   string `arg:"" help:"Habit id or name."`
	By    int    `help:"Steps to add (negative to remove). Calorie habits step by 50 kcal." default:"1"`
	Value *int   `help:"Absolute value for percentage habits (0-100)."`
}

func (c *HabitProgressCmd) Run(ctx *cli.Context) error {
	h, err := findHabit(ctx, c.Ref)
	if err != nil {
		return err
	}

	delta := c.By
	if h.Category.Normalize() == models.CategoryPercentage {
		if c.Value == nil {
			return apperrors.Validation("value", "percentage habits need --value")
		}
		delta = *c.Value
	} else if c.Value != nil {
		return apperrors.Validation("value", "--value only applies to percentage habits")
	}

	if err := ctx.Habits.RecordProgress(h.ID, delta); err != nil {
		return err
	}
	ctx.RefreshWidget()
	return printProgress(ctx, h.ID)
}

type HabitUndoCmd struct {
	Ref string `arg:"" help:"Habit id or name."`
}

func (c *HabitUndoCmd) Run(ctx *cli.Context) error {
	h, err := findHabit(ctx, c.Ref)
	if err != nil {
		return err
	}
	if h.Category.Normalize() == models.CategoryPercentage {
		return apperrors.Validation("category", "use 'habit progress --value' for percentage habits")
	}
	if err := ctx.Habits.Decrement(h.ID); err != nil {
		return err
	}
	ctx.RefreshWidget()
	return printProgress(ctx, h.ID)
}

type HabitSeedCmd struct{}

func (c *HabitSeedCmd) Run(ctx *cli.Context) error {
	n, err := ctx.Habits.SeedDefaults()
	if err != nil {
		return err
	}
	if n == 0 {
		ctx.Println("Habits already exist; nothing seeded.")
		return nil
	}
	ctx.RefreshWidget()
	ctx.Printf("Added %d sample habits.\n", n)
	return nil
}

func findHabit(ctx *cli.Context, ref string) (models.Habit, error) {
	h, err := ctx.Habits.Find(ref)
	if errors.Is(err, apperrors.ErrNotFound) {
		return models.Habit{}, fmt.Errorf("habit %q not found", ref)
	}
	return h, err
}

func printProgress(ctx *cli.Context, id string) error {
	list, err := ctx.Habits.List()
	if err != nil {
		return err
	}
	for _, h := range list {
		if h.ID != id {
			continue
		}
		suffix := ""
		if h.Completed {
			suffix = " 🎉 Completed!"
		}
		ctx.Printf("%s: %s (%d%%)%s\n", h.Name, h.Display, h.Percentage, suffix)
	}
	return nil
}
