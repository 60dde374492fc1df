package models

import "time"

// Category selects how a habit's progress is stepped, computed and displayed.
type Category string

const (
	// CategoryCount steps by one toward the target.
	CategoryCount Category = "count"
	// CategoryCalories steps by constants.CalorieStep toward the target.
	CategoryCalories Category = "calories"
	// CategoryPercentage records an absolute percentage, capped at 100.
	CategoryPercentage Category = "percentage"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryCount, CategoryCalories, CategoryPercentage}

// Normalize maps the empty category written by older data files to CategoryCount.
func (c Category) Normalize() Category {
	if c == "" {
		return CategoryCount
	}
	return c
}

// Valid reports whether c names a known category.
func (c Category) Valid() bool {
	switch c.Normalize() {
	case CategoryCount, CategoryCalories, CategoryPercentage:
		return true
	}
	return false
}

// Habit is a user-defined daily goal. Progress lives in the completion map, not here.
type Habit struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"notblank"`
	Description string    `json:"description"`
	TargetCount int       `json:"targetCount" validate:"gt=0"`
	Category    Category  `json:"category,omitempty" validate:"omitempty,oneof=count calories percentage"`
	CreatedAt   time.Time `json:"date"`
}

// HabitProgress is a habit joined with today's completion count.
type HabitProgress struct {
	Habit
	CurrentCount int    `json:"currentCount"`
	Completed    bool   `json:"completed"`
	Percentage   int    `json:"percentage"`
	Display      string `json:"display"`
}

// CompletionMap maps habit id to today's accumulated count.
// Entries exist only for habits with nonzero progress.
type CompletionMap map[string]int

// HabitStats summarizes today's habit progress.
type HabitStats struct {
	Completed      int `json:"completed"`
	Total          int `json:"total"`
	Pending        int `json:"pending"`
	CompletionRate int `json:"completionRate"`
	// TotalCount is the sum of every habit's count today.
	TotalCount int `json:"totalCount"`
}
