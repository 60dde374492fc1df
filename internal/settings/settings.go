// Package settings persists the user preferences record.
package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/constants"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/logger"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/models"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/prefs"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/validation"
)

// Reminder is the part of the reminder scheduler the settings screen drives.
// Its state is authoritative for whether the reminder is on.
type Reminder interface {
	State() (models.ReminderState, error)
	Arm(ctx context.Context, interval int) error
	Cancel(ctx context.Context) error
}

type Service struct {
	store    prefs.Store
	reminder Reminder
}

// New returns a service over store. reminder may be nil, in which case
// saving never touches the reminder.
func New(store prefs.Store, reminder Reminder) *Service {
	return &Service{store: store, reminder: reminder}
}

// Get returns the stored settings. Fields absent from the stored record keep
// their defaults; an unreadable record yields the defaults. The reminder toggle
// and, while it is on, the interval come from the scheduler.
func (s *Service) Get() (models.Settings, error) {
	out, err := s.record()
	if err != nil || s.reminder == nil {
		return out, err
	}
	st, err := s.reminder.State()
	if err != nil {
		return out, err
	}
	out.WaterReminderEnabled = st.Enabled()
	if st.Enabled() {
		out.WaterReminderInterval = st.Interval
	}
	return out, nil
}

func (s *Service) record() (models.Settings, error) {
	out := models.DefaultSettings()
	if err := prefs.GetJSON(s.store, constants.KeySettings, &out); err != nil {
		if errors.Is(err, prefs.ErrMalformed) {
			logger.Warn("Stored settings are unreadable, using defaults", "error", err)
			return models.DefaultSettings(), nil
		}
		return out, err
	}
	return out, nil
}

// Save validates next, brings the reminder in line with it and then stores it.
// An enabled reminder is armed unless it is already armed with the same interval.
// When arming fails nothing is stored.
func (s *Service) Save(ctx context.Context, next models.Settings) error {
	if err := validation.Struct(next); err != nil {
		return err
	}
	if err := s.driveReminder(ctx, next); err != nil {
		return err
	}
	if err := prefs.SetJSON(s.store, constants.KeySettings, next); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (s *Service) driveReminder(ctx context.Context, next models.Settings) error {
	if s.reminder == nil {
		return nil
	}
	st, err := s.reminder.State()
	if err != nil {
		return err
	}
	switch {
	case next.WaterReminderEnabled && (st.Phase != models.ReminderArmed || st.Interval != next.WaterReminderInterval):
		return s.reminder.Arm(ctx, next.WaterReminderInterval)
	case !next.WaterReminderEnabled && st.Enabled():
		return s.reminder.Cancel(ctx)
	}
	return nil
}

// RecordReminder mirrors a reminder armed or cancelled elsewhere into the
// settings record without driving the reminder again.
func (s *Service) RecordReminder(enabled bool, interval int) error {
	cur, err := s.record()
	if err != nil {
		return err
	}
	cur.WaterReminderEnabled = enabled
	if validation.IsReminderInterval(interval) {
		cur.WaterReminderInterval = interval
	}
	return prefs.SetJSON(s.store, constants.KeySettings, cur)
}

// Reset stores the defaults, cancelling the reminder if it was on.
func (s *Service) Reset(ctx context.Context) error {
	return s.Save(ctx, models.DefaultSettings())
}
