// Package daemon keeps the reminder, the daily rollover and the widget alive
// between CLI invocations.
package daemon

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/alarm"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/logger"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/metrics"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/prefs"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/utils"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/widget"
)

const (
	DefaultTick     = time.Minute
	DefaultDebounce = 200 * time.Millisecond
)

// Reminder is the scheduler surface the daemon drives.
type Reminder interface {
	Resync(ctx context.Context) error
	HandleAlarm(id string)
}

// Rollover resets daily progress on a new calendar day.
type Rollover interface {
	Check(now time.Time) (bool, error)
}

// Reloader is implemented by stores that cache file contents in memory.
type Reloader interface {
	Reload() error
}

// Options wires a Daemon.
type Options struct {
	// StorePath is the store file to watch. Empty disables watching.
	StorePath string
	Store     prefs.Store
	Alarms    *alarm.Local
	Reminder  Reminder
	Rollover  Rollover
	// Refresher and Server are optional.
	Refresher *widget.Refresher
	Server    *widget.Server
	Listen    string
	Now       utils.Clock
	Tick      time.Duration
	Debounce  time.Duration
}

type Daemon struct {
	opts Options
}

func New(opts Options) *Daemon {
	if opts.Now == nil {
		opts.Now = utils.SystemClock
	}
	if opts.Tick <= 0 {
		opts.Tick = DefaultTick
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Daemon{opts: opts}
}

// Run blocks until ctx is canceled.
func (d *Daemon) Run(ctx context.Context) error {
	o := d.opts
	if o.Alarms != nil {
		o.Alarms.Handle(func(id string) {
			o.Reminder.HandleAlarm(id)
			d.refresh(ctx)
		})
		defer o.Alarms.Stop()
	}

	changes, stopWatch := d.watch()
	defer stopWatch()

	d.rollover()
	d.resync(ctx)
	d.refresh(ctx)

	var wg sync.WaitGroup
	serverErr := make(chan error, 1)
	if o.Server != nil && o.Listen != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			serverErr <- o.Server.ListenAndServe(ctx, o.Listen)
		}()
	}

	ticker := time.NewTicker(o.Tick)
	defer ticker.Stop()

	logger.Info("Daemon started", "store", o.StorePath, "tick", o.Tick)
	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			logger.Info("Daemon stopped")
			return nil
		case err := <-serverErr:
			if err != nil {
				return err
			}
		case <-changes:
			logger.Debug("Store changed on disk")
			d.reload()
			d.resync(ctx)
			d.refresh(ctx)
		case <-ticker.C:
			d.rollover()
			// Stores without a watchable file are only picked up here.
			d.resync(ctx)
			d.refresh(ctx)
		}
	}
}

func (d *Daemon) rollover() {
	if d.opts.Rollover == nil {
		return
	}
	reset, err := d.opts.Rollover.Check(d.opts.Now())
	if err != nil {
		logger.Warn("Daily rollover check failed", "error", err)
		return
	}
	if reset {
		metrics.Rollovers.Inc()
	}
}

func (d *Daemon) resync(ctx context.Context) {
	if err := d.opts.Reminder.Resync(ctx); err != nil {
		logger.Warn("Reminder resync failed", "error", err)
	}
}

func (d *Daemon) refresh(ctx context.Context) {
	if d.opts.Refresher == nil || d.opts.Refresher.Surfaces() == 0 {
		return
	}
	if _, err := d.opts.Refresher.Refresh(ctx); err != nil {
		logger.Debug("Widget refresh incomplete", "error", err)
	}
}

func (d *Daemon) reload() {
	r, ok := d.opts.Store.(Reloader)
	if !ok {
		return
	}
	if err := r.Reload(); err != nil {
		logger.Warn("Failed to reload store", "error", err)
	}
}

// watch reports debounced writes to the store file. The directory is watched
// because atomic saves replace the file.
func (d *Daemon) watch() (<-chan struct{}, func()) {
	out := make(chan struct{}, 1)
	path := d.opts.StorePath
	if path == "" {
		return out, func() {}
	}
	if _, err := os.Stat(path); err != nil {
		logger.Debug("Store file not watchable", "path", path, "error", err)
		return out, func() {}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("Failed to create file watcher", "error", err)
		return out, func() {}
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		logger.Warn("Failed to watch store directory", "path", path, "error", err)
		fsw.Close()
		return out, func() {}
	}

	done := make(chan struct{})
	go func() {
		var timer *time.Timer
		fire := func() {
			select {
			case out <- struct{}{}:
			default:
			}
		}
		for {
			select {
			case <-done:
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if !matches(path, ev) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(d.opts.Debounce, fire)
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				logger.Warn("File watcher error", "error", err)
			}
		}
	}()

	var once sync.Once
	return out, func() {
		once.Do(func() {
			close(done)
			fsw.Close()
		})
	}
}

func matches(path string, ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(ev.Name)
	clean := filepath.Clean(path)
	return name == clean || name == clean+"-wal" || name == clean+"-journal"
}
