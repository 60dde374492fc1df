// Package reminder runs the one-shot hydration reminder.
//
// The persisted keys reminder_enabled, reminder_interval and next_reminder_time
// are the only state. Each call derives the phase from them, so the CLI, the TUI
// and the daemon agree without sharing memory.
package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/alarm"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/constants"
	apperrors "github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/errors"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/logger"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/metrics"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/models"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/notifier"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/prefs"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/utils"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/validation"
)

const (
	NotificationTitle  = "Time for a hydration break! 💧"
	NotificationBody   = "Staying hydrated is key to a healthy day. Take a moment to drink a glass of water."
	NotificationAction = "Got it!"
)

// Scheduler arms, cancels and delivers the reminder.
type Scheduler struct {
	mu     sync.Mutex
	store  prefs.Store
	alarms alarm.Facility
	notify notifier.Notifier
	now    utils.Clock
}

// New returns a scheduler. A nil clock uses the wall clock.
func New(store prefs.Store, alarms alarm.Facility, notify notifier.Notifier, now utils.Clock) *Scheduler {
	if now == nil {
		now = utils.SystemClock
	}
	if alarms == nil {
		alarms = alarm.Nop{}
	}
	return &Scheduler{store: store, alarms: alarms, notify: notify, now: now}
}

// State derives the reminder phase from the stored keys.
// Enabled with no stored trigger is reported as due.
func (s *Scheduler) State() (models.ReminderState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

// state reads the three keys; callers hold s.mu.
func (s *Scheduler) state() (models.ReminderState, error) {
	enabled, err := prefs.GetBool(s.store, constants.KeyReminderEnabled, false)
	if err != nil {
		return models.ReminderState{}, err
	}
	interval, err := prefs.GetInt(s.store, constants.KeyReminderInterval, constants.DefaultReminderInterval)
	if err != nil {
		return models.ReminderState{}, err
	}
	next, err := prefs.GetInt64(s.store, constants.KeyNextReminderTime, 0)
	if err != nil {
		return models.ReminderState{}, err
	}

	st := models.ReminderState{Phase: models.ReminderDisabled, Interval: interval}
	if next > 0 {
		st.TriggerAt = utils.FromMillis(next)
	}
	if !enabled {
		return st, nil
	}
	if next > 0 && next > s.now().UnixMilli() {
		st.Phase = models.ReminderArmed
	} else {
		st.Phase = models.ReminderDue
	}
	return st, nil
}

// Arm cancels any outstanding reminder and schedules one interval minutes from now.
// An exact alarm is tried first; a denied exact alarm falls back to an inexact one.
func (s *Scheduler) Arm(ctx context.Context, interval int) error {
	if !validation.IsReminderInterval(interval) {
		return apperrors.Validation("interval", "must be one of %v minutes", constants.ReminderIntervals)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.alarms.Cancel(ctx, constants.ReminderAlarmID); err != nil {
		logger.Warn("Failed to cancel previous reminder", "error", err)
	}

	trigger := s.now().Add(time.Duration(interval) * time.Minute)
	if err := s.schedule(ctx, trigger); err != nil {
		return err
	}

	b := prefs.NewBatch().
		SetBool(constants.KeyReminderEnabled, true).
		SetInt(constants.KeyReminderInterval, interval).
		SetInt64(constants.KeyNextReminderTime, trigger.UnixMilli())
	if err := s.store.Apply(b); err != nil {
		_ = s.alarms.Cancel(ctx, constants.ReminderAlarmID)
		return err
	}
	metrics.RemindersArmed.Inc()
	logger.Info("Reminder armed", "interval", interval, "trigger", trigger)
	return nil
}

func (s *Scheduler) schedule(ctx context.Context, at time.Time) error {
	err := s.alarms.ScheduleExact(ctx, constants.ReminderAlarmID, at)
	if err == nil {
		return nil
	}
	if !apperrors.Is(err, alarm.ErrExactDenied) {
		return apperrors.Permission(err)
	}
	logger.Warn("Exact alarm denied, scheduling inexact reminder", "trigger", at)
	metrics.InexactFallbacks.Inc()
	if err := s.alarms.ScheduleInexact(ctx, constants.ReminderAlarmID, at); err != nil {
		return apperrors.Permission(err)
	}
	return nil
}

// Cancel disables the reminder. The chosen interval is kept.
func (s *Scheduler) Cancel(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disable(ctx)
}

func (s *Scheduler) disable(ctx context.Context) error {
	if err := s.alarms.Cancel(ctx, constants.ReminderAlarmID); err != nil {
		logger.Warn("Failed to cancel reminder alarm", "error", err)
	}
	b := prefs.NewBatch().
		SetBool(constants.KeyReminderEnabled, false).
		Remove(constants.KeyNextReminderTime)
	return s.store.Apply(b)
}

// Remaining returns the time until the stored trigger, or 0 when there is none.
func (s *Scheduler) Remaining() (time.Duration, error) {
	next, err := prefs.GetInt64(s.store, constants.KeyNextReminderTime, 0)
	if err != nil || next == 0 {
		return 0, err
	}
	d := time.Duration(next-s.now().UnixMilli()) * time.Millisecond
	if d < 0 {
		return 0, nil
	}
	return d, nil
}

// Interval returns the stored interval in minutes.
func (s *Scheduler) Interval() (int, error) {
	return prefs.GetInt(s.store, constants.KeyReminderInterval, constants.DefaultReminderInterval)
}

// Fire delivers the reminder and disables it. It never re-arms.
// A failed notification is logged and does not block the transition.
func (s *Scheduler) Fire(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fire(ctx)
}

func (s *Scheduler) fire(ctx context.Context) error {
	if s.notify != nil {
		err := s.notify.Post(ctx, notifier.Notification{
			ID:     constants.ReminderNotificationID,
			Title:  NotificationTitle,
			Body:   NotificationBody,
			Action: NotificationAction,
		})
		if err != nil {
			logger.Warn("Failed to post hydration reminder", "error", err)
		}
	}
	metrics.RemindersFired.Inc()
	logger.Info("Reminder delivered")
	return s.disable(ctx)
}

// Acknowledge handles the notification's action button.
func (s *Scheduler) Acknowledge(ctx context.Context) error {
	if s.notify == nil {
		return nil
	}
	return s.notify.Dismiss(ctx, constants.ReminderNotificationID)
}

// NeedsReschedule reports whether the reminder is enabled with no time remaining.
func (s *Scheduler) NeedsReschedule() (bool, error) {
	st, err := s.State()
	if err != nil {
		return false, err
	}
	return st.Phase == models.ReminderDue, nil
}

// Resync brings the alarm facility in line with the stored state: an armed
// reminder is rescheduled for its stored trigger and a due one is delivered.
func (s *Scheduler) Resync(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.state()
	if err != nil {
		return err
	}
	switch st.Phase {
	case models.ReminderArmed:
		return s.schedule(ctx, st.TriggerAt)
	case models.ReminderDue:
		return s.fire(ctx)
	default:
		return s.alarms.Cancel(ctx, constants.ReminderAlarmID)
	}
}

// HandleAlarm is the alarm facility callback. The stored state decides what
// happens, so an alarm left behind by another process cannot fire a cancelled reminder.
func (s *Scheduler) HandleAlarm(id string) {
	if id != constants.ReminderAlarmID {
		return
	}
	if err := s.Resync(context.Background()); err != nil {
		logger.Error("Failed to handle reminder alarm", "error", err)
	}
}

// Status returns the one-line reminder summary shown in settings.
func (s *Scheduler) Status() (string, error) {
	st, err := s.State()
	if err != nil {
		return "", err
	}
	switch st.Phase {
	case models.ReminderDisabled:
		return "Reminders disabled", nil
	case models.ReminderArmed:
		return "Next reminder in: " + FormatRemaining(st.TriggerAt.Sub(s.now())), nil
	default:
		return "Setting up next reminder...", nil
	}
}

// FormatRemaining renders d as HH:MM:SS from one hour up, MM:SS below it.
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "No reminder set"
	}
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total / 60) % 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
