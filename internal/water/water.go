// Package water tracks glasses of water against a daily goal.
package water

import (
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/constants"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/models"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/prefs"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/validation"
)

// Tracker reads and writes the water goal and today's intake.
type Tracker struct {
	store prefs.Store
}

func New(store prefs.Store) *Tracker {
	return &Tracker{store: store}
}

// Goal returns the daily goal in glasses.
func (t *Tracker) Goal() (int, error) {
	return prefs.GetInt(t.store, constants.KeyWaterGoal, constants.DefaultWaterGoal)
}

// Current returns the glasses consumed today.
func (t *Tracker) Current() (int, error) {
	return prefs.GetInt(t.store, constants.KeyCurrentWaterIntake, 0)
}

// AddGlass records one glass. It reports false, changing nothing, once the goal is reached.
func (t *Tracker) AddGlass() (models.WaterStatus, bool, error) {
	s, err := t.Status()
	if err != nil {
		return models.WaterStatus{}, false, err
	}
	if s.Current >= s.Goal {
		return s, false, nil
	}
	if err := prefs.SetInt(t.store, constants.KeyCurrentWaterIntake, s.Current+1); err != nil {
		return models.WaterStatus{}, false, err
	}
	s, err = t.Status()
	return s, err == nil, err
}

// SetGoal changes the daily goal. Today's intake is not touched.
func (t *Tracker) SetGoal(goal int) error {
	if err := validation.Struct(models.WaterGoal{Goal: goal}); err != nil {
		return err
	}
	return prefs.SetInt(t.store, constants.KeyWaterGoal, goal)
}

// Reset sets today's intake back to zero.
func (t *Tracker) Reset() error {
	return prefs.SetInt(t.store, constants.KeyCurrentWaterIntake, 0)
}

// Percentage returns floor(current*100/goal), or 0 for a non-positive goal.
func Percentage(current, goal int) int {
	if goal <= 0 {
		return 0
	}
	return current * 100 / goal
}

// Percentage returns today's progress toward the goal.
func (t *Tracker) Percentage() (int, error) {
	s, err := t.Status()
	return s.Percentage, err
}

// Message returns the encouragement shown for current out of goal.
func Message(current, goal int) string {
	switch {
	case current == 0:
		return "Let's start hydrating! 💧"
	case current < goal/3:
		return "Great start! Keep going! 💪"
	case current < goal/2:
		return "You're doing well! Stay hydrated! 😊"
	case current < goal:
		return "Almost there! Keep it up! 🌟"
	default:
		return "🎉 Amazing! You've reached your water goal! 🎉"
	}
}

// Status returns the full hydration view for today.
func (t *Tracker) Status() (models.WaterStatus, error) {
	goal, err := t.Goal()
	if err != nil {
		return models.WaterStatus{}, err
	}
	current, err := t.Current()
	if err != nil {
		return models.WaterStatus{}, err
	}
	return models.WaterStatus{
		Current:    current,
		Goal:       goal,
		Percentage: Percentage(current, goal),
		Message:    Message(current, goal),
	}, nil
}
