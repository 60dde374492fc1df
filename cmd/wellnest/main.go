package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/cli"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/cli/backups"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/cli/habits"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/cli/moods"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/cli/reminders"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/cli/settings"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/cli/system"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/cli/water"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/cli/widgets"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/config"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/constants"
	apperrors "github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/errors"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/logger"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/prefs"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"string" default:"${config_file}"`
	Store   string `help:"Store location: a SQLite or .json file path, a PostgreSQL connection string, 'keyring:' or 'memory:'. Overrides the config file. Embedded passwords are NOT allowed; use .pgpass, PGPASSWORD or the OS keyring instead." type:"string"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init    system.InitCmd `cmd:"" help:"Initialize wellnest storage."`
	Tui     system.TuiCmd  `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability." default:"1"`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Data     system.DataCmd         `cmd:"" help:"Clear or reset stored data."`
	Habit    habits.HabitCmd        `cmd:"" help:"Manage habits and today's progress."`
	Mood     moods.MoodCmd          `cmd:"" help:"Log and review moods."`
	Water    water.WaterCmd         `cmd:"" help:"Track today's water intake."`
	Reminder reminders.ReminderCmd  `cmd:"" help:"Manage the hydration reminder."`
	Settings settings.SettingsCmd   `cmd:"" help:"Manage application settings."`
	Widget   widgets.WidgetCmd      `cmd:"" help:"Show, refresh or serve the home-screen summary."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal wellness tracker: habits, moods, hydration and reminders"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": constants.DefaultConfigFile,
		},
	)

	command := ctx.Command()

	config.LoadDotEnv()
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	cfg.ApplyEnv(os.Getenv)
	if CLI.Store != "" {
		cfg.Store = CLI.Store
	}
	if err := cfg.Validate(); err != nil {
		apperrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: cfg.ConfigDir(),
		Stderr:    command == "reminder watch",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	// Keyring commands manage the credentials a store would need, so they run without one.
	var store prefs.Provider
	if strings.HasPrefix(command, "keyring") {
		store = prefs.NewMemory()
	} else if store, err = prefs.Open(cfg.Store); err != nil {
		apperrors.Fatal(err)
	}

	appCtx, err := cli.NewContext(store, cfg)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer appCtx.Close()

	// Init handles its own loading
	if command != "init" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
		appCtx.UseStoredTimezone()
		appCtx.CheckRollover()
	}

	if err := ctx.Run(appCtx); err != nil {
		appCtx.Close()
		apperrors.Fatal(err)
	}
}
