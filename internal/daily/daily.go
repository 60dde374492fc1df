// Package daily resets per-day progress when the calendar day changes.
package daily

import (
	"time"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/constants"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/logger"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/prefs"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/utils"
)

// Rollover compares the stored reset marker with today.
type Rollover struct {
	store prefs.Store
	loc   *time.Location
}

func New(store prefs.Store, loc *time.Location) *Rollover {
	if loc == nil {
		loc = time.Local
	}
	return &Rollover{store: store, loc: loc}
}

// Check clears habit completions and water intake when now falls on a later
// day than the last reset. The first run only stamps the marker.
// It reports whether a reset happened.
func (r *Rollover) Check(now time.Time) (bool, error) {
	last, err := prefs.GetInt64(r.store, constants.KeyLastResetDate, 0)
	if err != nil {
		return false, err
	}

	if last == 0 {
		return false, prefs.SetInt64(r.store, constants.KeyLastResetDate, now.UnixMilli())
	}
	lastDay := utils.DateString(utils.FromMillis(last), r.loc)
	today := utils.DateString(now, r.loc)
	if today <= lastDay {
		return false, nil
	}

	if err := r.store.Apply(ResetBatch().SetInt64(constants.KeyLastResetDate, now.UnixMilli())); err != nil {
		return false, err
	}
	logger.Info("Daily progress reset", "previous", lastDay, "today", today)
	return true, nil
}

// ResetBatch removes today's habit completions and water intake.
func ResetBatch() *prefs.Batch {
	return prefs.NewBatch().Remove(constants.KeyTodayCompletions, constants.KeyCurrentWaterIntake)
}

// ResetNow clears today's progress without touching the marker.
func (r *Rollover) ResetNow() error {
	return r.store.Apply(ResetBatch())
}
