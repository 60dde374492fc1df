// Package widget builds the home-screen summary and pushes it to the
// configured surfaces: a JSON file, a NATS subject and an HTTP endpoint.
package widget

import (
	"fmt"
	"time"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/constants"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/models"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/utils"
)

// Summary is what a widget displays.
type Summary struct {
	HabitsText  string `json:"habitsText"`
	WaterText   string `json:"waterText"`
	MoodEmoji   string `json:"moodEmoji"`
	LastUpdated string `json:"lastUpdated"`
}

type HabitStats interface {
	Stats() (models.HabitStats, error)
}

type WaterStatus interface {
	Status() (models.WaterStatus, error)
}

type MoodLatest interface {
	LatestForDate(date string) (models.MoodEntry, bool, error)
	Location() *time.Location
}

// Sources are the trackers a summary is read from.
type Sources struct {
	Habits HabitStats
	Water  WaterStatus
	Moods  MoodLatest
}

// Build reads every source as of now.
func Build(src Sources, now time.Time) (Summary, error) {
	stats, err := src.Habits.Stats()
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read habit stats: %w", err)
	}
	water, err := src.Water.Status()
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read water status: %w", err)
	}

	loc := src.Moods.Location()
	emoji := constants.DefaultMoodEmoji
	latest, ok, err := src.Moods.LatestForDate(utils.DateString(now, loc))
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read moods: %w", err)
	}
	if ok {
		emoji = latest.Emoji
	}

	return Summary{
		HabitsText:  fmt.Sprintf("%d/%d", stats.Completed, stats.Total),
		WaterText:   fmt.Sprintf("%d/%d", water.Current, water.Goal),
		MoodEmoji:   emoji,
		LastUpdated: "Updated: " + now.In(loc).Format(constants.TimeFormat),
	}, nil
}
