package reminders

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/alarm"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/cli"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/daemon"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/models"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/prefs"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/reminder"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/widget"
)

type ReminderCmd struct {
	Status ReminderStatusCmd `cmd:"" help:"Show the reminder state." default:"1"`
	Arm    ReminderArmCmd    `cmd:"" help:"Arm a one-shot hydration reminder."`
	Cancel ReminderCancelCmd `cmd:"" help:"Cancel the reminder."`
	Ack    ReminderAckCmd    `cmd:"" help:"Dismiss the hydration notification."`
	Watch  ReminderWatchCmd  `cmd:"" help:"Run the reminder daemon (alarms, daily reset, widget server)."`
}

type ReminderStatusCmd struct{}

func (c *ReminderStatusCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Reminder.State()
	if err != nil {
		return err
	}
	status, err := ctx.Reminder.Status()
	if err != nil {
		return err
	}
	ctx.Println(status)
	ctx.Printf("  State:    %s\n", st.Phase)
	ctx.Printf("  Interval: %d min\n", st.Interval)
	if !st.TriggerAt.IsZero() {
		ctx.Printf("  Trigger:  %s\n", st.TriggerAt.In(ctx.Location).Format("2006-01-02 15:04:05"))
	}
	if st.Phase == models.ReminderDue {
		ctx.Println("  The reminder is overdue. Is 'wellnest reminder watch' running?")
	}
	return nil
}

type ReminderArmCmd struct {
	Interval *int `arg:"" optional:"" help:"Minutes until the reminder: 1, 5, 15, 30, 60, 90 or 120. Defaults to the stored interval."`
}

func (c *ReminderArmCmd) Run(ctx *cli.Context) error {
	interval := 0
	if c.Interval != nil {
		interval = *c.Interval
	} else {
		stored, err := ctx.Reminder.Interval()
		if err != nil {
			return err
		}
		interval = stored
	}

	if err := ctx.Reminder.Arm(context.Background(), interval); err != nil {
		return err
	}
	if err := syncSettings(ctx, true, interval); err != nil {
		return err
	}
	remaining, err := ctx.Reminder.Remaining()
	if err != nil {
		return err
	}
	ctx.Printf("✓ Water reminder set for %d minutes (%s)\n", interval, reminder.FormatRemaining(remaining))
	return nil
}

type ReminderCancelCmd struct{}

func (c *ReminderCancelCmd) Run(ctx *cli.Context) error {
	if err := ctx.Reminder.Cancel(context.Background()); err != nil {
		return err
	}
	interval, err := ctx.Reminder.Interval()
	if err != nil {
		return err
	}
	if err := syncSettings(ctx, false, interval); err != nil {
		return err
	}
	ctx.Println("✓ Water reminder cancelled")
	return nil
}

type ReminderAckCmd struct{}

func (c *ReminderAckCmd) Run(ctx *cli.Context) error {
	if err := ctx.Reminder.Acknowledge(context.Background()); err != nil {
		return err
	}
	ctx.Println("Got it! Stay hydrated 💧")
	return nil
}

func syncSettings(ctx *cli.Context, enabled bool, interval int) error {
	return ctx.Settings.RecordReminder(enabled, interval)
}

type ReminderWatchCmd struct {
	Listen *string `help:"Address for the widget HTTP server (default from config). Empty disables it."`
	Exact  *bool  `help:"Allow exact alarms (overrides allow_exact_alarms)."`
}

func (c *ReminderWatchCmd) Run(ctx *cli.Context) error {
	allowExact := ctx.Config.AllowExactAlarms
	if c.Exact != nil {
		allowExact = *c.Exact
	}
	local := alarm.NewLocal(allowExact)
	ctx.UseAlarms(local)

	listen := ctx.Config.Widget.Listen
	if c.Listen != nil {
		listen = *c.Listen
	}
	refresher := ctx.Refresher()
	var server *widget.Server
	if listen != "" {
		server = widget.NewServer(refresher, ctx.Water)
	}

	storePath := ""
	switch ctx.Store.(type) {
	case *prefs.SQLite, *prefs.JSONFile:
		storePath = ctx.Store.Path()
	}

	d := daemon.New(daemon.Options{
		StorePath: storePath,
		Store:     ctx.Store,
		Alarms:    local,
		Reminder:  ctx.Reminder,
		Rollover:  ctx.Rollover,
		Refresher: refresher,
		Server:    server,
		Listen:    listen,
		Now:       ctx.Now,
	})

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.Println("Watching reminders. Press Ctrl+C to stop.")
	return d.Run(runCtx)
}
