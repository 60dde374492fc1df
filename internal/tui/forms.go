package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/constants"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/models"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/mood"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/utils"
)

func positiveInt(what string) func(string) error {
	return func(s string) error {
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || i <= 0 {
			return fmt.Errorf("%s must be a positive number", what)
		}
		return nil
	}
}

// NewHabitForm creates the form for adding or editing a habit.
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[models.Category]().
				Title("Category").
				Options(
					huh.NewOption("Count", models.CategoryCount),
					huh.NewOption("Calories", models.CategoryCalories),
					huh.NewOption("Percentage", models.CategoryPercentage),
				).
				Value(&fm.Category),
			huh.NewInput().
				Title("Daily Target").
				Description("Times, calories, or 100 for percentage habits").
				Value(&fm.Target).
				Validate(positiveInt("target")),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewMoodForm creates the form for logging a mood.
func NewMoodForm(fm *MoodFormModel) *huh.Form {
	options := make([]huh.Option[string], 0, len(mood.Palette))
	for _, p := range mood.Palette {
		options = append(options, huh.NewOption(p.Emoji+" "+p.Label, p.Label))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("How are you feeling?").
				Options(options...).
				Value(&fm.Label),
			huh.NewText().
				Title("Notes").
				Value(&fm.Notes),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewSettingsForm creates the form for editing settings.
func NewSettingsForm(fm *SettingsFormModel) *huh.Form {
	intervals := make([]huh.Option[int], 0, len(constants.ReminderIntervals))
	for _, n := range constants.ReminderIntervals {
		intervals = append(intervals, huh.NewOption(intervalLabel(n), n))
	}
	themes := make([]huh.Option[string], 0, len(constants.Themes))
	for _, t := range constants.Themes {
		themes = append(themes, huh.NewOption(t, t))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Water Reminders").
				Value(&fm.WaterReminderEnabled),
			huh.NewSelect[int]().
				Title("Reminder Interval").
				Options(intervals...).
				Value(&fm.WaterReminderInterval),
			huh.NewConfirm().
				Title("Notifications").
				Value(&fm.NotificationEnabled),
			huh.NewConfirm().
				Title("Shake Detection").
				Value(&fm.EnableShakeDetection),
			huh.NewSelect[string]().
				Title("Theme").
				Options(themes...).
				Value(&fm.Theme),
			huh.NewInput().
				Title("Timezone").
				Description("IANA name, or Local").
				Value(&fm.Timezone).
				Validate(func(s string) error {
					if !utils.ValidateTimezone(strings.TrimSpace(s)) {
						return fmt.Errorf("invalid timezone")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewWaterGoalForm creates the form for changing the daily glass goal.
func NewWaterGoalForm(fm *WaterFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Daily Water Goal (glasses)").
				Value(&fm.Goal).
				Validate(func(s string) error {
					i, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || i < constants.MinWaterGoal || i > constants.MaxWaterGoal {
						return fmt.Errorf("goal must be between %d and %d", constants.MinWaterGoal, constants.MaxWaterGoal)
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func intervalLabel(minutes int) string {
	switch {
	case minutes == 1:
		return "1 minute"
	case minutes < 60:
		return fmt.Sprintf("%d minutes", minutes)
	case minutes == 60:
		return "1 hour"
	case minutes%60 == 0:
		return fmt.Sprintf("%d hours", minutes/60)
	default:
		return fmt.Sprintf("%.1f hours", float64(minutes)/60)
	}
}
