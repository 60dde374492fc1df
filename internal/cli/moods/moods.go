package moods

import (
	"strings"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/cli"
	apperrors "github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/errors"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/models"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/mood"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/share"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/utils"
)

type MoodCmd struct {
	Add     MoodAddCmd     `cmd:"" help:"Record how you feel."`
	List    MoodListCmd    `cmd:"" help:"Show the mood history, newest first." default:"1"`
	Stats   MoodStatsCmd   `cmd:"" help:"Show mood statistics for a day."`
	Share   MoodShareCmd   `cmd:"" help:"Share a mood entry (copies to the clipboard)."`
	Export  MoodExportCmd  `cmd:"" help:"Print the whole journal as shareable text."`
	Clear   MoodClearCmd   `cmd:"" help:"Delete the whole mood history."`
	Palette MoodPaletteCmd `cmd:"" help:"List the available moods."`
}

type MoodAddCmd struct {
	Mood  string `arg:"" help:"Mood label, e.g. Happy or Tired."`
	Emoji string `help:"Emoji to record. Defaults to the palette emoji for the label." default:""`
	Notes string `help:"Optional notes." default:""`
}

func (c *MoodAddCmd) Run(ctx *cli.Context) error {
	label := strings.TrimSpace(c.Mood)
	emoji := c.Emoji
	if m, ok := mood.Lookup(label); ok {
		label = m.Label
		if emoji == "" {
			emoji = m.Emoji
		}
	}
	if emoji == "" {
		return apperrors.Validation("emoji", "%q is not in the palette; pass --emoji", label)
	}

	e, err := ctx.Moods.Add(emoji, label, c.Notes)
	if err != nil {
		return err
	}
	ctx.RefreshWidget()
	ctx.Printf("Mood saved! %s %s\n", e.Emoji, e.MoodType)
	return nil
}

type MoodListCmd struct {
	Date  string `help:"Only show entries for a date (YYYY-MM-DD, or 'today')." default:""`
	Limit int    `help:"Maximum entries to show (0 for all)." default:"0"`
}

func (c *MoodListCmd) Run(ctx *cli.Context) error {
	var (
		entries []models.MoodEntry
		err     error
	)
	switch c.Date {
	case "":
		entries, err = ctx.Moods.List()
	case "today":
		entries, err = ctx.Moods.ForDate(utils.DateString(ctx.Now(), ctx.Location))
	default:
		if _, perr := utils.ParseDateInLocation(c.Date, ctx.Location); perr != nil {
			return apperrors.Validation("date", "invalid date format: %s (expected YYYY-MM-DD)", c.Date)
		}
		entries, err = ctx.Moods.ForDate(c.Date)
	}
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		ctx.Println("No mood entries yet.")
		return nil
	}
	if c.Limit > 0 && len(entries) > c.Limit {
		entries = entries[:c.Limit]
	}

	now := ctx.Now()
	for _, e := range entries {
		ctx.Printf("%s %-8s %s  #%d\n", e.Emoji, e.MoodType, mood.DisplayDate(e, now, ctx.Location), e.ID)
		if e.Notes != "" {
			ctx.Printf("   %s\n", e.Notes)
		}
	}
	return nil
}

type MoodStatsCmd struct {
	Date string `help:"Date (YYYY-MM-DD). Defaults to today." default:""`
}

func (c *MoodStatsCmd) Run(ctx *cli.Context) error {
	date := c.Date
	if date == "" {
		date = utils.DateString(ctx.Now(), ctx.Location)
	}
	stats, err := ctx.Moods.Stats(date)
	if err != nil {
		return err
	}
	ctx.Printf("Moods on %s:\n", stats.Date)
	ctx.Printf("  Logged:       %d\n", stats.Count)
	ctx.Printf("  Unique moods: %d\n", stats.UniqueTypes)
	ctx.Printf("  All time:     %d\n", stats.Total)

	latest, ok, err := ctx.Moods.LatestForDate(date)
	if err != nil {
		return err
	}
	if ok {
		ctx.Printf("  Latest:       %s %s at %s\n", latest.Emoji, latest.MoodType, mood.FormattedTime(latest, ctx.Location))
	}
	return nil
}

type MoodShareCmd struct {
	ID     int64 `arg:"" optional:"" help:"Entry id. Defaults to the newest entry."`
	Stdout bool  `help:"Print instead of copying to the clipboard."`
}

func (c *MoodShareCmd) Run(ctx *cli.Context) error {
	var e models.MoodEntry
	if c.ID != 0 {
		found, err := ctx.Moods.Get(c.ID)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrNotFound) {
				return apperrors.Validation("id", "no mood entry with id %d", c.ID)
			}
			return err
		}
		e = found
	} else {
		entries, err := ctx.Moods.List()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			ctx.Println("No mood entries to share.")
			return nil
		}
		e = entries[0]
	}

	sink := share.NewSink(c.Stdout, ctx.Out)
	if err := sink.Share(share.Text(e, ctx.Location)); err != nil {
		return err
	}
	if _, ok := sink.(share.Clipboard); ok {
		ctx.Println("✓ Mood entry copied to the clipboard")
	}
	return nil
}

type MoodExportCmd struct{}

func (c *MoodExportCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.Moods.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		ctx.Println("No mood entries yet.")
		return nil
	}
	ctx.Println(share.ExportMoods(entries, ctx.Location))
	return nil
}

type MoodClearCmd struct {
	Yes bool `short:"y" help:"Do not ask for confirmation."`
}

func (c *MoodClearCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := ctx.Confirm("Delete every mood entry?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Cancelled.")
			return nil
		}
	}
	if err := ctx.Moods.Clear(); err != nil {
		return err
	}
	ctx.RefreshWidget()
	ctx.Println("Mood history cleared.")
	return nil
}

type MoodPaletteCmd struct{}

func (c *MoodPaletteCmd) Run(ctx *cli.Context) error {
	for _, m := range mood.AvailableMoods() {
		ctx.Printf("  %s %s\n", m.Emoji, m.Label)
	}
	return nil
}
