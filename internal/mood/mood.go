// Package mood keeps the mood journal, newest entry first.
package mood

import (
	"sort"
	"strings"
	"time"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/constants"
	apperrors "github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/errors"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/logger"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/models"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/prefs"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/utils"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/validation"
)

// Palette is the fixed set of moods offered by the pickers.
var Palette = []models.Mood{
	{Emoji: "😊", Label: "Happy"},
	{Emoji: "😢", Label: "Sad"},
	{Emoji: "😡", Label: "Angry"},
	{Emoji: "😴", Label: "Tired"},
	{Emoji: "😃", Label: "Excited"},
	{Emoji: "😌", Label: "Calm"},
	{Emoji: "😰", Label: "Anxious"},
	{Emoji: "🤩", Label: "Amazed"},
}

// AvailableMoods returns a copy of the palette.
func AvailableMoods() []models.Mood {
	return append([]models.Mood(nil), Palette...)
}

// Lookup returns the palette entry whose label matches (case-insensitive).
func Lookup(label string) (models.Mood, bool) {
	for _, m := range Palette {
		if strings.EqualFold(m.Label, strings.TrimSpace(label)) {
			return m, true
		}
	}
	return models.Mood{}, false
}

// Journal is the append-only mood history.
type Journal struct {
	store prefs.Store
	now   utils.Clock
	loc   *time.Location
}

// New returns a journal over store. Dates are assigned in loc.
func New(store prefs.Store, now utils.Clock, loc *time.Location) *Journal {
	if now == nil {
		now = utils.SystemClock
	}
	if loc == nil {
		loc = time.Local
	}
	return &Journal{store: store, now: now, loc: loc}
}

// Location returns the timezone used for entry dates.
func (j *Journal) Location() *time.Location { return j.loc }

// Today returns today's date string in the journal's timezone.
func (j *Journal) Today() string {
	return utils.DateString(j.now(), j.loc)
}

func (j *Journal) entries() ([]models.MoodEntry, error) {
	var list []models.MoodEntry
	if err := prefs.GetJSON(j.store, constants.KeyMoods, &list); err != nil {
		if apperrors.Is(err, prefs.ErrMalformed) {
			logger.Warn("Discarding unreadable mood history", "error", err)
			return nil, nil
		}
		return nil, err
	}
	sort.SliceStable(list, func(a, b int) bool {
		return list[a].Timestamp > list[b].Timestamp
	})
	return list, nil
}

// Add records a mood now and stores it at the front of the history.
func (j *Journal) Add(emoji, label, notes string) (models.MoodEntry, error) {
	now := j.now()
	e := models.MoodEntry{
		ID:        now.UnixMilli(),
		Emoji:     strings.TrimSpace(emoji),
		MoodType:  strings.TrimSpace(label),
		Notes:     strings.TrimSpace(notes),
		Timestamp: now.UnixMilli(),
		Date:      utils.DateString(now, j.loc),
	}
	if err := validation.Struct(e); err != nil {
		return models.MoodEntry{}, err
	}

	list, err := j.entries()
	if err != nil {
		return models.MoodEntry{}, err
	}
	// Two entries in the same millisecond get consecutive ids.
	for _, existing := range list {
		if existing.ID >= e.ID {
			e.ID = existing.ID + 1
		}
	}

	list = append([]models.MoodEntry{e}, list...)
	if err := prefs.SetJSON(j.store, constants.KeyMoods, list); err != nil {
		return models.MoodEntry{}, err
	}
	logger.Debug("Mood recorded", "id", e.ID, "mood", e.MoodType)
	return e, nil
}

// List returns the history, newest first.
func (j *Journal) List() ([]models.MoodEntry, error) {
	return j.entries()
}

// Get returns the entry with id or ErrNotFound.
func (j *Journal) Get(id int64) (models.MoodEntry, error) {
	list, err := j.entries()
	if err != nil {
		return models.MoodEntry{}, err
	}
	for _, e := range list {
		if e.ID == id {
			return e, nil
		}
	}
	return models.MoodEntry{}, apperrors.ErrNotFound
}

// Clear empties the history.
func (j *Journal) Clear() error {
	return prefs.SetJSON(j.store, constants.KeyMoods, []models.MoodEntry{})
}

// ForDate returns the entries recorded on date (YYYY-MM-DD), newest first.
func (j *Journal) ForDate(date string) ([]models.MoodEntry, error) {
	list, err := j.entries()
	if err != nil {
		return nil, err
	}
	var out []models.MoodEntry
	for _, e := range list {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out, nil
}

// CountForDate returns how many moods were recorded on date.
func (j *Journal) CountForDate(date string) (int, error) {
	list, err := j.ForDate(date)
	return len(list), err
}

// UniqueTypesForDate returns how many distinct mood labels were recorded on date.
func (j *Journal) UniqueTypesForDate(date string) (int, error) {
	list, err := j.ForDate(date)
	if err != nil {
		return 0, err
	}
	seen := make(map[string]struct{}, len(list))
	for _, e := range list {
		seen[e.MoodType] = struct{}{}
	}
	return len(seen), nil
}

// LatestForDate returns the most recent entry recorded on date.
func (j *Journal) LatestForDate(date string) (models.MoodEntry, bool, error) {
	list, err := j.ForDate(date)
	if err != nil || len(list) == 0 {
		return models.MoodEntry{}, false, err
	}
	return list[0], true, nil
}

// Stats summarizes date against the whole history.
func (j *Journal) Stats(date string) (models.MoodStats, error) {
	list, err := j.entries()
	if err != nil {
		return models.MoodStats{}, err
	}
	s := models.MoodStats{Date: date, Total: len(list)}
	seen := map[string]struct{}{}
	for _, e := range list {
		if e.Date != date {
			continue
		}
		s.Count++
		seen[e.MoodType] = struct{}{}
	}
	s.UniqueTypes = len(seen)
	return s, nil
}
