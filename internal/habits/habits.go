// Package habits tracks user-defined daily goals and today's progress toward them.
package habits

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/constants"
	apperrors "github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/errors"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/logger"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/models"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/prefs"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/utils"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/validation"
)

// Tracker owns the habit list and today's completion map.
type Tracker struct {
	store prefs.Store
	now   utils.Clock
	newID func() string
}

// New returns a tracker over store. A nil clock uses the wall clock.
func New(store prefs.Store, now utils.Clock) *Tracker {
	if now == nil {
		now = utils.SystemClock
	}
	return &Tracker{store: store, now: now, newID: uuid.NewString}
}

func (t *Tracker) habits() ([]models.Habit, error) {
	var list []models.Habit
	if err := prefs.GetJSON(t.store, constants.KeyHabits, &list); err != nil {
		if apperrors.Is(err, prefs.ErrMalformed) {
			logger.Warn("Discarding unreadable habit list", "error", err)
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (t *Tracker) completions() (models.CompletionMap, error) {
	m := models.CompletionMap{}
	if err := prefs.GetJSON(t.store, constants.KeyTodayCompletions, &m); err != nil {
		if apperrors.Is(err, prefs.ErrMalformed) {
			logger.Warn("Discarding unreadable completion map", "error", err)
			return models.CompletionMap{}, nil
		}
		return nil, err
	}
	if m == nil {
		m = models.CompletionMap{}
	}
	return m, nil
}

func find(list []models.Habit, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

// Add creates a habit. An empty category means count.
func (t *Tracker) Add(name string, targetCount int, description string, category models.Category) (models.Habit, error) {
	h := models.Habit{
		ID:          t.newID(),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		TargetCount: targetCount,
		Category:    category.Normalize(),
		CreatedAt:   t.now(),
	}
	if err := validation.Struct(h); err != nil {
		return models.Habit{}, err
	}

	list, err := t.habits()
	if err != nil {
		return models.Habit{}, err
	}
	list = append(list, h)
	if err := prefs.SetJSON(t.store, constants.KeyHabits, list); err != nil {
		return models.Habit{}, err
	}
	logger.Debug("Habit added", "id", h.ID, "name", h.Name)
	return h, nil
}

// Edit replaces the mutable fields of habit id. It returns false for an unknown id.
// Today's count is re-clamped to the new target.
func (t *Tracker) Edit(id, name string, targetCount int, description string, category models.Category) (models.Habit, bool, error) {
	list, err := t.habits()
	if err != nil {
		return models.Habit{}, false, err
	}
	i := find(list, id)

	edited := models.Habit{
		ID:          id,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		TargetCount: targetCount,
		Category:    category.Normalize(),
	}
	if err := validation.Struct(edited); err != nil {
		return models.Habit{}, false, err
	}
	if i < 0 {
		return models.Habit{}, false, nil
	}
	edited.CreatedAt = list[i].CreatedAt
	list[i] = edited

	comps, err := t.completions()
	if err != nil {
		return models.Habit{}, false, err
	}
	b := prefs.NewBatch()
	if err := b.SetJSON(constants.KeyHabits, list); err != nil {
		return models.Habit{}, false, err
	}
	if cur, ok := comps[id]; ok {
		if next := clamp(cur, 0, behaviorFor(edited.Category).limit(edited)); next != cur {
			setCount(comps, id, next)
			if err := b.SetJSON(constants.KeyTodayCompletions, comps); err != nil {
				return models.Habit{}, false, err
			}
		}
	}
	if err := t.store.Apply(b); err != nil {
		return models.Habit{}, false, err
	}
	return edited, true, nil
}

// Delete removes habit id and its progress together. Unknown ids are ignored.
func (t *Tracker) Delete(id string) error {
	list, err := t.habits()
	if err != nil {
		return err
	}
	i := find(list, id)
	if i < 0 {
		return nil
	}
	list = append(list[:i], list[i+1:]...)

	comps, err := t.completions()
	if err != nil {
		return err
	}
	delete(comps, id)

	b := prefs.NewBatch()
	if err := b.SetJSON(constants.KeyHabits, list); err != nil {
		return err
	}
	if err := b.SetJSON(constants.KeyTodayCompletions, comps); err != nil {
		return err
	}
	return t.store.Apply(b)
}

// Get returns habit id or ErrNotFound.
func (t *Tracker) Get(id string) (models.Habit, error) {
	list, err := t.habits()
	if err != nil {
		return models.Habit{}, err
	}
	if i := find(list, id); i >= 0 {
		return list[i], nil
	}
	return models.Habit{}, apperrors.ErrNotFound
}

// Find resolves a habit by id, or by case-insensitive name when no id matches.
func (t *Tracker) Find(ref string) (models.Habit, error) {
	list, err := t.habits()
	if err != nil {
		return models.Habit{}, err
	}
	if i := find(list, ref); i >= 0 {
		return list[i], nil
	}
	for _, h := range list {
		if strings.EqualFold(h.Name, strings.TrimSpace(ref)) {
			return h, nil
		}
	}
	return models.Habit{}, apperrors.ErrNotFound
}

func setCount(m models.CompletionMap, id string, n int) {
	if n <= 0 {
		delete(m, id)
		return
	}
	m[id] = n
}

// RecordProgress moves today's count for id. Count and calorie habits add
// delta steps; percentage habits take delta as the new absolute value.
// The result is clamped and a zero result removes the entry.
func (t *Tracker) RecordProgress(id string, delta int) error {
	list, err := t.habits()
	if err != nil {
		return err
	}
	i := find(list, id)
	if i < 0 {
		return nil
	}
	h := list[i]

	comps, err := t.completions()
	if err != nil {
		return err
	}
	bh := behaviorFor(h.Category)
	next := delta
	if bh.step > 0 {
		next = comps[id] + delta*bh.step
	}
	setCount(comps, id, clamp(next, 0, bh.limit(h)))
	return prefs.SetJSON(t.store, constants.KeyTodayCompletions, comps)
}

// Increment adds one step to habit id.
func (t *Tracker) Increment(id string) error { return t.RecordProgress(id, 1) }

// Decrement removes one step from habit id.
func (t *Tracker) Decrement(id string) error { return t.RecordProgress(id, -1) }

// Count returns today's stored count for id.
func (t *Tracker) Count(id string) (int, error) {
	comps, err := t.completions()
	if err != nil {
		return 0, err
	}
	return comps[id], nil
}

// ProgressPercentage returns today's progress for id in [0, 100].
func (t *Tracker) ProgressPercentage(id string) (int, error) {
	h, err := t.Get(id)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	cur, err := t.Count(id)
	if err != nil {
		return 0, err
	}
	return behaviorFor(h.Category).percent(h, cur), nil
}

func completed(h models.Habit, cur int) bool {
	if h.Category.Normalize() == models.CategoryPercentage {
		return cur >= constants.MaxPercentage
	}
	return h.TargetCount > 0 && cur >= h.TargetCount
}

// IsCompleted reports whether habit id reached its target today.
func (t *Tracker) IsCompleted(id string) (bool, error) {
	h, err := t.Get(id)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	cur, err := t.Count(id)
	if err != nil {
		return false, err
	}
	return completed(h, cur), nil
}

func progress(h models.Habit, cur int) models.HabitProgress {
	bh := behaviorFor(h.Category)
	return models.HabitProgress{
		Habit:        h,
		CurrentCount: cur,
		Completed:    completed(h, cur),
		Percentage:   bh.percent(h, cur),
		Display:      bh.display(h, cur),
	}
}

// List returns every habit with today's progress, incomplete habits first.
// Relative order is kept within each group.
func (t *Tracker) List() ([]models.HabitProgress, error) {
	list, err := t.habits()
	if err != nil {
		return nil, err
	}
	comps, err := t.completions()
	if err != nil {
		return nil, err
	}

	out := make([]models.HabitProgress, 0, len(list))
	for _, h := range list {
		out = append(out, progress(h, comps[h.ID]))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return !out[i].Completed && out[j].Completed
	})
	return out, nil
}

// Stats summarizes today's progress across all habits.
func (t *Tracker) Stats() (models.HabitStats, error) {
	list, err := t.List()
	if err != nil {
		return models.HabitStats{}, err
	}
	var s models.HabitStats
	s.Total = len(list)
	for _, p := range list {
		if p.Completed {
			s.Completed++
		}
		s.TotalCount += p.CurrentCount
	}
	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionRate = s.Completed * 100 / s.Total
	}
	return s, nil
}

// ResetDay clears today's progress for every habit.
func (t *Tracker) ResetDay() error {
	return t.store.Remove(constants.KeyTodayCompletions)
}

var defaults = []struct {
	name        string
	target      int
	description string
	category    models.Category
}{
	{"Drinking water", 110, "Stay hydrated", models.CategoryCount},
	{"Eating main 3 meals", 13, "Weekly meal target", models.CategoryCount},
	{"Exercise", 7, "Daily exercise", models.CategoryCount},
	{"Reading", 5, "Reading time", models.CategoryCount},
}

// SeedDefaults stores the sample habits when no habits exist yet.
// It returns the number of habits added.
func (t *Tracker) SeedDefaults() (int, error) {
	list, err := t.habits()
	if err != nil {
		return 0, err
	}
	if len(list) > 0 {
		return 0, nil
	}
	created := t.now()
	for i, d := range defaults {
		list = append(list, models.Habit{
			ID:          t.newID(),
			Name:        d.name,
			Description: d.description,
			TargetCount: d.target,
			Category:    d.category,
			CreatedAt:   created.Add(time.Duration(i) * time.Millisecond),
		})
	}
	if err := prefs.SetJSON(t.store, constants.KeyHabits, list); err != nil {
		return 0, err
	}
	return len(list), nil
}
