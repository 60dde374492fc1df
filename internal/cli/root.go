package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/alarm"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/backup"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/config"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/constants"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/daily"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/habits"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/logger"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/metrics"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/mood"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/notifier"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/prefs"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/reminder"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/settings"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/utils"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/water"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/widget"
)

// Context is handed to every command's Run method.
type Context struct {
	Store    prefs.Provider
	Config   *config.Config
	Location *time.Location
	Now      utils.Clock
	Out      io.Writer
	In       io.Reader

	Habits   *habits.Tracker
	Moods    *mood.Journal
	Water    *water.Tracker
	Reminder *reminder.Scheduler
	Settings *settings.Service
	Rollover *daily.Rollover
	Notifier notifier.Notifier
	// Alarms is the facility Reminder schedules with. Commands use alarm.Nop;
	// the reminder daemon swaps in an alarm.Local.
	Alarms alarm.Facility

	refresher *widget.Refresher
	closers   []func()
}

// NewContext wires every tracker over store. A nil cfg uses the defaults.
func NewContext(store prefs.Provider, cfg *config.Config) (*Context, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	loc, err := utils.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	c := &Context{
		Store:    store,
		Config:   cfg,
		Location: loc,
		Now:      utils.SystemClock,
		Out:      os.Stdout,
		In:       os.Stdin,
	}
	c.Notifier = notifier.New(cfg.Notifier, c.Out)
	c.wire(alarm.Nop{})
	return c, nil
}

func (c *Context) wire(alarms alarm.Facility) {
	c.Alarms = alarms
	c.Habits = habits.New(c.Store, c.Now)
	c.Moods = mood.New(c.Store, c.Now, c.Location)
	c.Water = water.New(c.Store)
	c.Reminder = reminder.New(c.Store, alarms, c.Notifier, c.Now)
	c.Settings = settings.New(c.Store, c.Reminder)
	c.Rollover = daily.New(c.Store, c.Location)
}

// UseAlarms rebuilds the reminder scheduler over alarms.
func (c *Context) UseAlarms(alarms alarm.Facility) {
	c.wire(alarms)
}

// UseClock rebuilds every component over now.
func (c *Context) UseClock(now utils.Clock) {
	c.Now = now
	c.wire(c.Alarms)
}

// UseStoredTimezone switches to the timezone saved in settings when the
// configuration leaves it at Local. Called once the store is loaded.
func (c *Context) UseStoredTimezone() {
	if c.Config.Timezone != "" && c.Config.Timezone != constants.DefaultTimezone {
		return
	}
	s, err := c.Settings.Get()
	if err != nil || s.Timezone == "" || s.Timezone == constants.DefaultTimezone {
		return
	}
	loc, err := utils.LoadLocation(s.Timezone)
	if err != nil {
		logger.Warn("Ignoring stored timezone", "timezone", s.Timezone, "error", err)
		return
	}
	c.Location = loc
	c.wire(c.Alarms)
}

// Printf writes to the command output.
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

// Println writes a line to the command output.
func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Out, args...)
}

// Confirm prints prompt and reads a yes/no answer from In. Anything but y or yes is no.
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && response == "" {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// CheckRollover resets daily progress when the calendar day changed since the last run.
func (c *Context) CheckRollover() {
	reset, err := c.Rollover.Check(c.Now())
	if err != nil {
		logger.Warn("Daily rollover check failed", "error", err)
		return
	}
	if reset {
		metrics.Rollovers.Inc()
	}
}

// PerformAutomaticBackup creates an automatic backup of sqlite stores and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	db, ok := c.Store.(*prefs.SQLite)
	if !ok {
		logger.Debug("Automatic backup skipped for non-sqlite store", "store", c.Store.Path())
		return
	}
	if _, err := backup.NewManager(db.Path()).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Refresher returns the widget refresher over the configured surfaces.
// Surfaces that fail to open are logged and skipped.
func (c *Context) Refresher() *widget.Refresher {
	if c.refresher != nil {
		return c.refresher
	}
	var surfaces []widget.Surface
	if c.Config.Widget.File != "" {
		if f, err := widget.NewFileSurface(c.Config.Widget.File); err != nil {
			logger.Warn("Widget file disabled", "error", err)
		} else {
			surfaces = append(surfaces, f)
		}
	}
	if c.Config.Widget.NATSURL != "" {
		if n, err := widget.NewNATSSurface(c.Config.Widget.NATSURL, c.Config.Widget.NATSSubject); err != nil {
			logger.Warn("Widget NATS publishing disabled", "error", err)
		} else {
			surfaces = append(surfaces, n)
			c.closers = append(c.closers, n.Close)
		}
	}
	c.refresher = widget.NewRefresher(c.Sources(), c.Now, surfaces...)
	return c.refresher
}

// Sources returns the trackers the widget summary is built from.
func (c *Context) Sources() widget.Sources {
	return widget.Sources{Habits: c.Habits, Water: c.Water, Moods: c.Moods}
}

// RefreshWidget pushes a new summary after a change. Failures are logged only.
func (c *Context) RefreshWidget() {
	r := c.Refresher()
	if r.Surfaces() == 0 {
		return
	}
	if _, err := r.Refresh(context.Background()); err != nil {
		logger.Warn("Widget refresh failed", "error", err)
	}
}

// Close releases the store and any widget connections.
func (c *Context) Close() error {
	for _, fn := range c.closers {
		fn()
	}
	c.closers = nil
	return c.Store.Close()
}
