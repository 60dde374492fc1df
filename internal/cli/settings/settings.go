package settings

import (
	"context"
	"fmt"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/cli"
)

type SettingsCmd struct {
	List  bool `help:"List current settings."`
	Reset bool `help:"Restore the default settings."`

	WaterReminder  *bool   `help:"Enable or disable the hydration reminder."`
	Interval       *int    `help:"Reminder interval in minutes (1, 5, 15, 30, 60, 90, 120)."`
	ShakeDetection *bool   `help:"Enable or disable shake detection."`
	Theme          *string `help:"Theme: light, dark or system."`
	Notifications  *bool   `help:"Enable or disable notifications."`
	Timezone       *string `help:"IANA timezone for day boundaries, or Local."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	if c.Reset {
		if err := ctx.Settings.Reset(context.Background()); err != nil {
			return fmt.Errorf("failed to reset settings: %w", err)
		}
		ctx.Println("Settings restored to defaults.")
		return nil
	}

	settings, err := ctx.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		status, err := ctx.Reminder.Status()
		if err != nil {
			return err
		}
		ctx.Println("Current Settings:")
		ctx.Printf("  Water Reminder:        %v\n", settings.WaterReminderEnabled)
		ctx.Printf("  Reminder Interval:     %d min\n", settings.WaterReminderInterval)
		ctx.Printf("  Reminder Status:       %s\n", status)
		ctx.Printf("  Shake Detection:       %v\n", settings.EnableShakeDetection)
		ctx.Printf("  Theme:                 %s\n", settings.Theme)
		ctx.Printf("  Notifications Enabled: %v\n", settings.NotificationEnabled)
		ctx.Printf("  Timezone:              %s\n", settings.Timezone)
		return nil
	}

	updated := false
	if c.WaterReminder != nil {
		settings.WaterReminderEnabled = *c.WaterReminder
		updated = true
	}
	if c.Interval != nil {
		settings.WaterReminderInterval = *c.Interval
		updated = true
	}
	if c.ShakeDetection != nil {
		settings.EnableShakeDetection = *c.ShakeDetection
		updated = true
	}
	if c.Theme != nil {
		settings.Theme = *c.Theme
		updated = true
	}
	if c.Notifications != nil {
		settings.NotificationEnabled = *c.Notifications
		updated = true
	}
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}
	if err := ctx.Settings.Save(context.Background(), settings); err != nil {
		return err
	}
	ctx.Println("Settings updated successfully.")
	return nil
}
